package transcoder

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/formcodec/errors"
)

type NestedExample struct {
	Tuple [2]uint
}

type Example struct {
	Amount  uint
	Vector  []uint
	Text    string `form:"string"`
	Boolean bool
	Nested  NestedExample
}

func exampleGo() Example {
	return Example{
		Amount:  19,
		Vector:  []uint{1, 2, 3, 4, 5},
		Text:    "Hello!",
		Boolean: true,
		Nested:  NestedExample{Tuple: [2]uint{19, 67}},
	}
}

type Color string

func (Color) FormCases() []string { return []string{"red", "green", "blue"} }

type Rect struct {
	W, H float64
}

type Figure struct {
	Dot    *struct{}
	Circle *float64
	Line   *[2]float64
	Rect   *Rect `form:"rect"`
	Label  *string
}

func (Figure) FormUnion() {}

type Profile struct {
	Name     string
	Initial  rune `form:",char"`
	Age      int8
	Scores   map[string]int
	Nickname *string
	Manager  *Profile
	Favorite Color
	Shapes   []Figure
	Tags     []string
}

type Tree struct {
	Value    int
	Children []Tree
}

func ptr[T any](v T) *T { return &v }

func errKind(t *testing.T, err error) errors.Kind {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("error %v is not *errors.Error", err)
	}
	return e.Kind
}
