package cmd

import (
	"bufio"
	"strings"
	"testing"
)

func TestPromptTakesAnswer(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("new-value\n"))
	if got := prompt(r, "User id", "old", "old"); got != "new-value" {
		t.Errorf("expected new-value, got %q", got)
	}
}

func TestPromptKeepsCurrentOnEmpty(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("\n"))
	if got := prompt(r, "User id", "old", "old"); got != "old" {
		t.Errorf("expected old, got %q", got)
	}
}

func TestPromptKeepsCurrentOnEOF(t *testing.T) {
	r := bufio.NewReader(strings.NewReader(""))
	if got := prompt(r, "User id", "old", "old"); got != "old" {
		t.Errorf("expected old, got %q", got)
	}
}

func TestPromptTrimsWhitespace(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("  spaced  \n"))
	if got := prompt(r, "User id", "old", "old"); got != "spaced" {
		t.Errorf("expected spaced, got %q", got)
	}
}

func TestMaskToken(t *testing.T) {
	if got := maskToken(""); got != "" {
		t.Errorf("expected empty mask, got %q", got)
	}
	if got := maskToken("ab"); got != "****" {
		t.Errorf("expected opaque mask for short tokens, got %q", got)
	}
	if got := maskToken("sekrit-token-1234"); got != "****1234" {
		t.Errorf("expected trailing characters only, got %q", got)
	}
}
