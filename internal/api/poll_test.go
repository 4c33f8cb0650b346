package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// scriptedServer serves a canned sequence of job snapshots, one per request,
// repeating the last one if polled again.
func scriptedServer(t *testing.T, snapshots ...string) *httptest.Server {
	t.Helper()
	i := 0
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snap := snapshots[i]
		if i < len(snapshots)-1 {
			i++
		}
		fmt.Fprintf(w, `{"job": %s}`, snap)
	}))
}

func TestAwaitPollsUntilDone(t *testing.T) {
	server := scriptedServer(t,
		`{"id": 42, "job_status": "transcribing", "job_type": "transcription", "check_wait": 2}`,
		`{"id": 42, "job_status": "transcribing", "job_type": "transcription", "check_wait": 7}`,
		`{"id": 42, "job_status": "done", "job_type": "transcription", "check_wait": 30}`,
	)
	defer server.Close()

	c := NewClient("7", "tok", server.URL)
	var slept []time.Duration
	c.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	var seen []JobStatus
	details, err := c.Await(context.Background(), "42", func(d *JobDetails) {
		seen = append(seen, d.Status)
	})
	if err != nil {
		t.Fatal(err)
	}
	if details.Status != StatusDone {
		t.Errorf("expected done, got %q", details.Status)
	}
	if len(slept) != 2 || slept[0] != 2*time.Second || slept[1] != 7*time.Second {
		t.Errorf("expected waits [2s 7s], got %v", slept)
	}
	if len(seen) != 2 || seen[0] != "transcribing" || seen[1] != "transcribing" {
		t.Errorf("expected two in-flight notifications, got %v", seen)
	}
}

func TestAwaitUnknownStatusKeepsPolling(t *testing.T) {
	server := scriptedServer(t,
		`{"id": 9, "job_status": "some_future_state", "job_type": "alignment", "check_wait": 1}`,
		`{"id": 9, "job_status": "done", "job_type": "alignment"}`,
	)
	defer server.Close()

	c := NewClient("7", "tok", server.URL)
	c.sleep = func(ctx context.Context, d time.Duration) error { return nil }

	details, err := c.Await(context.Background(), "9", nil)
	if err != nil {
		t.Fatal(err)
	}
	if details.Status != StatusDone {
		t.Errorf("expected done, got %q", details.Status)
	}
}

func TestAwaitTerminalImmediately(t *testing.T) {
	for _, status := range []JobStatus{StatusDone, StatusExpired, StatusUnsupportedFileFormat, StatusCouldNotAlign} {
		server := scriptedServer(t,
			fmt.Sprintf(`{"id": 5, "job_status": %q, "job_type": "transcription"}`, status),
		)

		c := NewClient("7", "tok", server.URL)
		c.sleep = func(ctx context.Context, d time.Duration) error {
			t.Errorf("status %q: expected no sleep", status)
			return nil
		}
		details, err := c.Await(context.Background(), "5", nil)
		server.Close()

		if err != nil {
			t.Fatalf("status %q: %v", status, err)
		}
		if details.Status != status {
			t.Errorf("expected %q, got %q", status, details.Status)
		}
		if status == StatusDone && details.Failure() != nil {
			t.Errorf("done job reported as failed: %v", details.Failure())
		}
		if status != StatusDone && details.Failure() == nil {
			t.Errorf("status %q: expected failure", status)
		}
	}
}

func TestAwaitCancelled(t *testing.T) {
	server := scriptedServer(t,
		`{"id": 3, "job_status": "aligning", "job_type": "alignment", "check_wait": 60}`,
	)
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient("7", "tok", server.URL)
	_, err := c.Await(ctx, "3", nil)
	if err == nil {
		t.Fatal("expected error after cancellation")
	}
}

func TestAwaitPollError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := NewClient("7", "tok", server.URL)
	_, err := c.Await(context.Background(), "3", nil)
	if err == nil {
		t.Fatal("expected poll error to surface")
	}
}

func TestSleepCtx(t *testing.T) {
	if err := sleepCtx(context.Background(), 0); err != nil {
		t.Errorf("zero wait on live context: %v", err)
	}
	if err := sleepCtx(context.Background(), time.Millisecond); err != nil {
		t.Errorf("short wait on live context: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sleepCtx(ctx, time.Hour); err == nil {
		t.Error("expected context error for cancelled wait")
	}
}
