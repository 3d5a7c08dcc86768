package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const settingsYAML = `name: svc
retries: 3
verbose: true
hosts:
  - a
  - b
`

func TestRun_Print(t *testing.T) {
	in := writeTemp(t, "settings.yaml", settingsYAML)

	var out bytes.Buffer
	if err := run(in, in, modePrint, strings.NewReader(""), &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	want := `name.s=svc
retries.n=3
verbose.b=on
verbose.b=off
hosts%5B0%5D.s=a
hosts%5B1%5D.s=b
`
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_HTML(t *testing.T) {
	in := writeTemp(t, "settings.yaml", settingsYAML)

	var out bytes.Buffer
	if err := run(in, in, modeHTML, strings.NewReader(""), &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	for _, want := range []string{
		`<input name="name.s" id="name" type="text" value="svc"/>`,
		`<input name="verbose.b" id="verbose" type="checkbox" checked value="on"/>`,
		`<input name="verbose.b" type="hidden" value="off"/>`,
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %s\n%s", want, out.String())
		}
	}
}

func TestRun_Apply(t *testing.T) {
	in := writeTemp(t, "settings.yaml", settingsYAML)
	out := filepath.Join(t.TempDir(), "settings.json")

	stdin := strings.NewReader(`name.s=api
retries.n=5

verbose.b=off
hosts%5B0%5D.s=c
`)
	if err := run(in, out, modeApply, stdin, &bytes.Buffer{}); err != nil {
		t.Fatalf("run: %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := `{
  "name": "api",
  "retries": 5,
  "verbose": false,
  "hosts": [
    "c"
  ]
}
`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_ApplyRejected(t *testing.T) {
	in := writeTemp(t, "settings.yaml", settingsYAML)
	out := filepath.Join(t.TempDir(), "out.yaml")

	stdin := strings.NewReader("name.s=api\nretries.n=many\nverbose.b=off\n")
	if err := run(in, out, modeApply, stdin, &bytes.Buffer{}); err == nil {
		t.Fatal("expected rejection")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("rejected apply must not write output, stat err = %v", err)
	}
}

func TestReadEntries(t *testing.T) {
	es, err := readEntries(strings.NewReader("  a.s=1  \n\nb.s=x%20y\n"))
	if err != nil {
		t.Fatalf("readEntries: %v", err)
	}
	if got := es.Encode(); got != "a.s=1&b.s=x+y" {
		t.Errorf("got %q", got)
	}
}

func TestSelectMode(t *testing.T) {
	tests := []struct {
		name                   string
		printOnly, html, apply bool
		want                   mode
		wantErr                bool
	}{
		{name: "default", want: modePrint},
		{name: "print", printOnly: true, want: modePrint},
		{name: "html", html: true, want: modeHTML},
		{name: "apply", apply: true, want: modeApply},
		{name: "print and html", printOnly: true, html: true, wantErr: true},
		{name: "html and apply", html: true, apply: true, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := selectMode(tt.printOnly, tt.html, tt.apply)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}
