package ui

import (
	"os"
	"testing"
)

func TestRender_NoColor(t *testing.T) {
	saved := noColor
	t.Cleanup(func() { noColor = saved })
	ForceNoColor()

	for name, fn := range map[string]func(string) string{
		"Accent":  RenderAccent,
		"Muted":   RenderMuted,
		"Command": RenderCommand,
		"Success": RenderSuccess,
		"Warn":    RenderWarn,
		"Error":   RenderError,
	} {
		if got := fn("text"); got != "text" {
			t.Errorf("Render%s() = %q, want plain text", name, got)
		}
	}
	if got := RenderCurrentPage(3); got != "[3]" {
		t.Errorf("RenderCurrentPage(3) = %q, want [3]", got)
	}
}

func TestRender_Color(t *testing.T) {
	saved := noColor
	t.Cleanup(func() { noColor = saved })
	noColor = false

	if got, want := RenderError("x"), "\x1b[38;5;203mx\x1b[0m"; got != want {
		t.Errorf("RenderError() = %q, want %q", got, want)
	}
}

func TestShouldUseColor_Env(t *testing.T) {
	for _, tc := range []struct {
		name string
		env  map[string]string
		want bool
	}{
		{"NoColorWins", map[string]string{"NO_COLOR": "1", "CLICOLOR_FORCE": "1"}, false},
		{"Forced", map[string]string{"NO_COLOR": "", "CLICOLOR_FORCE": "1"}, true},
		{"Disabled", map[string]string{"NO_COLOR": "", "CLICOLOR_FORCE": "", "CLICOLOR": "0"}, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			for _, k := range []string{"NO_COLOR", "CLICOLOR_FORCE", "CLICOLOR"} {
				t.Setenv(k, "")
			}
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if got := ShouldUseColor(os.Stdout); got != tc.want {
				t.Errorf("ShouldUseColor() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestReadSecret_Piped(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if _, err := w.WriteString("  tok-123  \n"); err != nil {
		t.Fatal(err)
	}
	w.Close()

	var out discard
	got, err := ReadSecret(r, &out, "Token: ")
	if err != nil {
		t.Fatalf("ReadSecret() error = %v", err)
	}
	if got != "tok-123" {
		t.Errorf("ReadSecret() = %q, want tok-123", got)
	}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
