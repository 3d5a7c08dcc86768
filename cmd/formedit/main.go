package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/wippyai/formcodec/form"
	"github.com/wippyai/formcodec/pathcodec"
	"github.com/wippyai/formcodec/render"
	"github.com/wippyai/formcodec/server"
	"github.com/wippyai/formcodec/value"
)

func main() {
	var (
		inFile      = flag.String("in", "", "Document to edit (.yaml, .yml, .json or .toml)")
		outFile     = flag.String("out", "", "Where to write the edited document (default: -in)")
		printOnly   = flag.Bool("print", false, "Print the form entries and exit (the default when no other mode is given)")
		htmlOnly    = flag.Bool("html", false, "Print the rendered HTML form and exit")
		apply       = flag.Bool("apply", false, "Read a complete entry set from stdin and write the document")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		serveAddr   = flag.String("serve", "", "Serve the form over HTTP on this address")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *inFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: formedit -in <doc> -print")
		fmt.Fprintln(os.Stderr, "       formedit -in <doc> -html")
		fmt.Fprintln(os.Stderr, "       formedit -in <doc> [-out file] -apply < entries")
		fmt.Fprintln(os.Stderr, "       formedit -in <doc> [-out file] -i  (interactive mode)")
		fmt.Fprintln(os.Stderr, "       formedit -in <doc> [-out file] -serve :8080")
		os.Exit(1)
	}
	if *outFile == "" {
		*outFile = *inFile
	}

	var err error
	switch {
	case *interactive:
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			err = errors.New("interactive mode needs a terminal")
			break
		}
		err = runInteractive(*inFile, *outFile)
	case *serveAddr != "":
		err = serve(*inFile, *outFile, *serveAddr, newLogger(*verbose))
	default:
		var m mode
		if m, err = selectMode(*printOnly, *htmlOnly, *apply); err != nil {
			break
		}
		err = run(*inFile, *outFile, m, os.Stdin, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func openForm(inFile string, opts ...form.Option) (*form.Form[value.Value], error) {
	doc, err := loadDocument(inFile)
	if err != nil {
		return nil, err
	}
	return form.NewDynamic(doc, opts...)
}

type mode int

const (
	modePrint mode = iota
	modeHTML
	modeApply
)

// selectMode picks the batch mode from its flags. At most one may be set;
// none means print.
func selectMode(printOnly, htmlOnly, apply bool) (mode, error) {
	m, n := modePrint, 0
	if printOnly {
		n++
	}
	if htmlOnly {
		m, n = modeHTML, n+1
	}
	if apply {
		m, n = modeApply, n+1
	}
	if n > 1 {
		return 0, errors.New("-print, -html and -apply are exclusive")
	}
	return m, nil
}

func run(inFile, outFile string, m mode, stdin io.Reader, stdout io.Writer) error {
	f, err := openForm(inFile)
	if err != nil {
		return err
	}

	switch m {
	case modeHTML:
		items, err := f.Items()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, render.HTML(items))
		return err

	case modeApply:
		entries, err := readEntries(stdin)
		if err != nil {
			return err
		}
		if err := f.Update(entries); err != nil {
			return err
		}
		doc, err := f.Document()
		if err != nil {
			return err
		}
		return writeDocument(outFile, doc)

	default:
		entries, err := f.Entries()
		if err != nil {
			return err
		}
		return writeEntries(stdout, entries)
	}
}

// writeEntries prints one urlencoded entry per line, the format readEntries
// accepts.
func writeEntries(w io.Writer, entries pathcodec.Entries) error {
	for _, e := range entries {
		if _, err := fmt.Fprintln(w, pathcodec.Entries{e}.Encode()); err != nil {
			return err
		}
	}
	return nil
}

func readEntries(r io.Reader) (pathcodec.Entries, error) {
	var parts []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			parts = append(parts, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return pathcodec.ParseQuery(strings.Join(parts, "&"))
}

func serve(inFile, outFile, addr string, log *zap.Logger) error {
	defer log.Sync()

	f, err := openForm(inFile, form.WithLogger(log))
	if err != nil {
		return err
	}
	f.Subscribe(func(value.Value) {
		doc, err := f.Document()
		if err == nil {
			err = writeDocument(outFile, doc)
		}
		if err != nil {
			log.Error("failed to save document", zap.String("path", outFile), zap.Error(err))
			return
		}
		log.Info("document saved", zap.String("path", outFile))
	})

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(f, server.WithLogger(log), server.WithTitle(inFile)).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info("serving form", zap.String("addr", addr), zap.String("document", inFile))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
