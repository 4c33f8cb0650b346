package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/speechmatics/smcli/internal/api"
)

func TestRenderPassthrough(t *testing.T) {
	payload := `{"speakers": [], "words": []}`
	got, err := Render(payload, api.TypeTranscription, false, true)
	if err != nil {
		t.Fatal(err)
	}
	if got != payload {
		t.Errorf("expected untouched payload, got %q", got)
	}
}

func TestRenderWrapsAlternateTranscript(t *testing.T) {
	got, err := Render("hello world\n", api.TypeTranscription, true, true)
	if err != nil {
		t.Fatal(err)
	}
	if got != `"hello world\n"` {
		t.Errorf("expected JSON-framed text, got %q", got)
	}
}

func TestRenderWrapKeepsHTMLCharacters(t *testing.T) {
	got, err := Render("<time=0.1> & so on", api.TypeTranscription, true, true)
	if err != nil {
		t.Fatal(err)
	}
	if got != `"<time=0.1> & so on"` {
		t.Errorf("expected angle brackets preserved, got %q", got)
	}
}

func TestRenderWrapDisabled(t *testing.T) {
	got, err := Render("hello world", api.TypeTranscription, true, false)
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello world" {
		t.Errorf("expected plain text, got %q", got)
	}
}

func TestRenderNeverWrapsAlignments(t *testing.T) {
	payload := "<time=0.1>\nhello\n"
	got, err := Render(payload, api.TypeAlignment, true, true)
	if err != nil {
		t.Fatal(err)
	}
	if got != payload {
		t.Errorf("expected untouched alignment, got %q", got)
	}
}

func TestWriteFileVerbatim(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := Write(path, "héllo"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "héllo" {
		t.Errorf("expected byte-for-byte write, got %q", data)
	}
}

func TestWriteFileBadPath(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "missing", "out.txt"), "x")
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
}
