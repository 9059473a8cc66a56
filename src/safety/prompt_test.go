package safety

import (
	"bytes"
	"strings"
	"testing"
)

func TestConfirmDryRunDeclines(t *testing.T) {
	ok, err := Confirm(Options{DryRun: true}, strings.NewReader("y\n"), nil, "Delete?")
	if err != nil || ok {
		t.Fatalf("dry-run must decline without error, got ok=%v err=%v", ok, err)
	}
}

func TestConfirmYesSkipsPrompt(t *testing.T) {
	var out bytes.Buffer
	ok, err := Confirm(Options{Yes: true}, strings.NewReader(""), &out, "Delete?")
	if err != nil || !ok {
		t.Fatalf("--yes must accept, got ok=%v err=%v", ok, err)
	}
	if out.Len() != 0 {
		t.Fatalf("no prompt expected with --yes, got %q", out.String())
	}
}

func TestConfirmReadsAnswer(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"y\n", true},
		{"yes\n", true},
		{"Y\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}
	for _, c := range cases {
		var out bytes.Buffer
		ok, err := Confirm(Options{}, strings.NewReader(c.in), &out, "Delete?")
		if err != nil {
			t.Fatalf("Confirm(%q): %v", c.in, err)
		}
		if ok != c.want {
			t.Fatalf("Confirm(%q) = %v, want %v", c.in, ok, c.want)
		}
		if !strings.Contains(out.String(), "Delete? [y/N]: ") {
			t.Fatalf("prompt missing: %q", out.String())
		}
	}
}
