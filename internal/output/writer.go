package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/speechmatics/smcli/internal/api"
)

// Render prepares a fetched payload for delivery. Plain-text transcripts
// requested with the alternate format are framed as a JSON string when wrap
// is set, matching what older releases of this tool produced. Everything else
// passes through untouched.
func Render(payload string, jobType api.JobType, alternate, wrap bool) (string, error) {
	if jobType == api.TypeTranscription && alternate && wrap {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(payload); err != nil {
			return "", fmt.Errorf("failed to frame transcript: %w", err)
		}
		// Encode appends a newline.
		return strings.TrimSuffix(buf.String(), "\n"), nil
	}
	return payload, nil
}

// Write delivers rendered output to path, or to stdout when path is empty.
// Files get the payload byte for byte; stdout gains a trailing newline when
// the payload lacks one.
func Write(path, rendered string) error {
	if path == "" {
		if !strings.HasSuffix(rendered, "\n") {
			rendered += "\n"
		}
		_, err := os.Stdout.WriteString(rendered)
		return err
	}
	if err := os.WriteFile(path, []byte(rendered), 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}
