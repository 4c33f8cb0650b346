package api

import (
	"encoding/json"
	"fmt"
	"time"
)

// JobID identifies a job on the server. The v1.0 API hands ids out as JSON
// numbers, but they are opaque to the client and only ever travel back inside
// URL paths, so they are carried as strings.
type JobID string

func (id JobID) String() string { return string(id) }

// UnmarshalJSON accepts both numeric and quoted job ids.
func (id *JobID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = JobID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("job id must be a number or string: %w", err)
	}
	*id = JobID(n.String())
	return nil
}

// JobStatus is the server-reported lifecycle state of a job.
type JobStatus string

const (
	StatusDone                  JobStatus = "done"
	StatusExpired               JobStatus = "expired"
	StatusUnsupportedFileFormat JobStatus = "unsupported_file_format"
	StatusCouldNotAlign         JobStatus = "could_not_align"
)

// Terminal reports whether the job has stopped processing. Statuses the
// client does not recognize are assumed to still be in flight, so new
// server-side states keep the polling loop alive rather than breaking it.
func (s JobStatus) Terminal() bool {
	switch s {
	case StatusDone, StatusExpired, StatusUnsupportedFileFormat, StatusCouldNotAlign:
		return true
	}
	return false
}

// JobType distinguishes plain transcriptions from text-to-audio alignments.
// The server decides which one a submission becomes: uploads that include a
// text file are alignment jobs, audio-only uploads are transcriptions.
type JobType string

const (
	TypeTranscription JobType = "transcription"
	TypeAlignment     JobType = "alignment"
)

// OutputSegment maps the job type to the URL path segment its output is
// served under.
func (t JobType) OutputSegment() (string, error) {
	switch t {
	case TypeTranscription:
		return "transcript", nil
	case TypeAlignment:
		return "alignment", nil
	}
	return "", fmt.Errorf("unknown job type %q", string(t))
}

// JobDetails is the per-job state returned by the job details endpoint.
type JobDetails struct {
	ID        JobID     `json:"id"`
	Status    JobStatus `json:"job_status"`
	Type      JobType   `json:"job_type"`
	CheckWait float64   `json:"check_wait"`
}

// CheckWaitDuration converts the server-suggested seconds-until-next-poll
// into a Duration.
func (d *JobDetails) CheckWaitDuration() time.Duration {
	if d.CheckWait <= 0 {
		return 0
	}
	return time.Duration(d.CheckWait * float64(time.Second))
}

// Failure returns a *JobFailedError when the job reached a terminal state
// other than done, and nil otherwise.
func (d *JobDetails) Failure() error {
	switch d.Status {
	case StatusUnsupportedFileFormat, StatusCouldNotAlign, StatusExpired:
		return &JobFailedError{ID: d.ID, Status: d.Status}
	}
	return nil
}

// Notification kinds accepted by the submission endpoint.
const (
	NotifyEmail    = "email"
	NotifyNone     = "none"
	NotifyCallback = "callback"
)

// SubmitOpts describes one job submission.
type SubmitOpts struct {
	AudioPath string // required
	TextPath  string // makes the submission an alignment job
	Language  string // language/model code, optionally "model=version"

	Notification      string // email, none or callback; empty keeps the account default
	CallbackURL       string // required when Notification is callback
	NotificationEmail string // alternative address for completion emails
}
