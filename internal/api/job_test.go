package api

import (
	"encoding/json"
	"testing"
	"time"
)

func TestJobIDFromNumber(t *testing.T) {
	var out struct {
		ID JobID `json:"id"`
	}
	if err := json.Unmarshal([]byte(`{"id": 23806}`), &out); err != nil {
		t.Fatal(err)
	}
	if out.ID != "23806" {
		t.Errorf("expected '23806', got %q", out.ID)
	}
}

func TestJobIDFromString(t *testing.T) {
	var out struct {
		ID JobID `json:"id"`
	}
	if err := json.Unmarshal([]byte(`{"id": "23806"}`), &out); err != nil {
		t.Fatal(err)
	}
	if out.ID != "23806" {
		t.Errorf("expected '23806', got %q", out.ID)
	}
}

func TestJobIDRejectsOtherShapes(t *testing.T) {
	var out struct {
		ID JobID `json:"id"`
	}
	if err := json.Unmarshal([]byte(`{"id": {"n": 1}}`), &out); err == nil {
		t.Error("expected error for object-valued id")
	}
}

func TestTerminalStatuses(t *testing.T) {
	for _, s := range []JobStatus{StatusDone, StatusExpired, StatusUnsupportedFileFormat, StatusCouldNotAlign} {
		if !s.Terminal() {
			t.Errorf("expected %q to be terminal", s)
		}
	}
	for _, s := range []JobStatus{"transcribing", "aligning", "queued", "some_future_state", ""} {
		if s.Terminal() {
			t.Errorf("expected %q to keep polling", s)
		}
	}
}

func TestOutputSegment(t *testing.T) {
	seg, err := TypeTranscription.OutputSegment()
	if err != nil {
		t.Fatal(err)
	}
	if seg != "transcript" {
		t.Errorf("expected 'transcript', got %q", seg)
	}

	seg, err = TypeAlignment.OutputSegment()
	if err != nil {
		t.Fatal(err)
	}
	if seg != "alignment" {
		t.Errorf("expected 'alignment', got %q", seg)
	}

	if _, err := JobType("diarization").OutputSegment(); err == nil {
		t.Error("expected error for unknown job type")
	}
}

func TestCheckWaitDuration(t *testing.T) {
	d := &JobDetails{CheckWait: 30}
	if got := d.CheckWaitDuration(); got != 30*time.Second {
		t.Errorf("expected 30s, got %v", got)
	}
	d.CheckWait = 0.5
	if got := d.CheckWaitDuration(); got != 500*time.Millisecond {
		t.Errorf("expected 500ms, got %v", got)
	}
	d.CheckWait = 0
	if got := d.CheckWaitDuration(); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
	d.CheckWait = -3
	if got := d.CheckWaitDuration(); got != 0 {
		t.Errorf("expected 0 for negative wait, got %v", got)
	}
}

func TestFailure(t *testing.T) {
	done := &JobDetails{ID: "1", Status: StatusDone}
	if err := done.Failure(); err != nil {
		t.Errorf("expected nil for done job, got %v", err)
	}

	for _, s := range []JobStatus{StatusExpired, StatusUnsupportedFileFormat, StatusCouldNotAlign} {
		d := &JobDetails{ID: "1", Status: s}
		err := d.Failure()
		if err == nil {
			t.Fatalf("expected failure for status %q", s)
		}
		failed, ok := err.(*JobFailedError)
		if !ok {
			t.Fatalf("expected *JobFailedError, got %T", err)
		}
		if failed.Status != s {
			t.Errorf("expected status %q, got %q", s, failed.Status)
		}
	}
}
