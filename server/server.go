package server

import (
	"bytes"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wippyai/formcodec/errors"
	"github.com/wippyai/formcodec/pathcodec"
	"github.com/wippyai/formcodec/render"
)

// Host is the form state the server edits.
type Host interface {
	Items() ([]pathcodec.Item, error)
	Update(entries pathcodec.Entries) error
	Document() (any, error)
}

// maxBodySize bounds a submitted form body.
const maxBodySize = 4 << 20

type Server struct {
	host  Host
	log   *zap.Logger
	title string
}

type Option func(*Server)

func WithLogger(l *zap.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithTitle sets the page title of the rendered form.
func WithTitle(title string) Option {
	return func(s *Server) { s.title = title }
}

func New(host Host, opts ...Option) *Server {
	s := &Server{host: host, log: zap.NewNop(), title: "Edit"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes registers the form endpoints on router.
func (s *Server) Routes(router *gin.RouterGroup) {
	router.GET("/form", s.getForm)
	router.POST("/form", s.postForm)
	router.GET("/form/value", s.getValue)
}

// Handler returns a standalone gin engine serving the form at /form.
func (s *Server) Handler() http.Handler {
	engine := gin.New()
	engine.Use(s.requestLogger(), gin.Recovery())
	s.Routes(&engine.RouterGroup)
	engine.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/form")
	})
	return engine
}

func (s *Server) getForm(c *gin.Context) {
	s.writePage(c, http.StatusOK, "")
}

func (s *Server) writePage(c *gin.Context, status int, message string) {
	items, err := s.host.Items()
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}

	var buf bytes.Buffer
	page := render.Page{
		Title:  s.title,
		Action: c.Request.URL.Path,
		Error:  message,
		Items:  items,
	}
	if err := page.Write(&buf); err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

// postForm decodes the urlencoded body as a complete submission set.
// Entry order is preserved so repeated bool names keep their sequence.
func (s *Server) postForm(c *gin.Context) {
	ct := c.ContentType()
	if ct != "" && ct != gin.MIMEPOSTForm {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "expected " + gin.MIMEPOSTForm})
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize))
	if err != nil {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		return
	}
	entries, err := pathcodec.ParseQuery(string(body))
	if err != nil {
		s.reject(c, err)
		return
	}

	if err := s.host.Update(entries); err != nil {
		s.reject(c, err)
		return
	}

	if s.wantsHTML(c) {
		c.Redirect(http.StatusSeeOther, c.Request.URL.Path)
		return
	}
	s.getValue(c)
}

func (s *Server) getValue(c *gin.Context) {
	doc, err := s.host.Document()
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// reject answers a submission the host refused. Browsers get the previous
// form back with the message; API clients get the structured error.
func (s *Server) reject(c *gin.Context, err error) {
	if s.wantsHTML(c) {
		s.writePage(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.fail(c, http.StatusUnprocessableEntity, err)
}

func (s *Server) fail(c *gin.Context, status int, err error) {
	body := gin.H{"error": err.Error()}
	var e *errors.Error
	if stderrors.As(err, &e) {
		body["phase"] = e.Phase
		body["kind"] = e.Kind
		if len(e.Path) > 0 {
			body["path"] = errors.JoinPath(e.Path)
		}
	}
	c.JSON(status, body)
}

func (s *Server) wantsHTML(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML
}
