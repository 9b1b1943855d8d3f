package terminal

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestPlainEditor(t *testing.T) {
	var out bytes.Buffer
	e := newPlainEditor(strings.NewReader("wordsize\r\n\nexit"), &out)
	for _, want := range []string{"wordsize", "", "exit"} {
		l, err := e.Prompt("(42) ")
		if err != nil || l != want {
			t.Fatalf("expected %q; but was %q (%v)", want, l, err)
		}
	}
	if _, err := e.Prompt("(42) "); err != io.EOF {
		t.Fatalf("expected io.EOF; but was %v", err)
	}
	if got := out.String(); got != strings.Repeat("(42) ", 4) {
		t.Fatalf("expected four prompts; but was %q", got)
	}
}

func TestRunPlainEditor(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	tr := newFakeTracer()
	var out bytes.Buffer
	term := newTerm(tr, 42, nil, &out)
	term.line = newPlainEditor(strings.NewReader("wordsize\n\nexit\n"), io.Discard)
	status, err := term.Run()
	if err != nil || status != 0 {
		t.Fatalf("expected a clean exit; but was %d (%v)", status, err)
	}
	if !strings.Contains(out.String(), "4\n") || !strings.Contains(out.String(), "detached from process 42\n") {
		t.Fatalf("unexpected shell output %q", out.String())
	}
	if got := strings.Join(tr.calls, ","); got != "detach" {
		t.Fatalf("expected a single detach; but was %s", got)
	}
}
