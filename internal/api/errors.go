package api

import (
	"fmt"
	"net/http"
	"strings"
)

// supportFooter closes out every API error so users always know where to
// escalate.
const supportFooter = "If you are still unsure why your request failed please contact Speechmatics: support@speechmatics.com"

// Operation labels used in API error messages.
const (
	opSubmit  = "POST job"
	opDetails = "GET job details"
	opOutput  = "GET job output"
)

// APIError is a non-200 response from the REST API. Hint carries the
// documented common causes for the status code; only the submission endpoint
// has any.
type APIError struct {
	Op         string
	StatusCode int
	Hint       string
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "attempt to %s failed with code %d\n", e.Op, e.StatusCode)
	if e.Hint != "" {
		b.WriteString("Common causes of this error are:\n")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}
	b.WriteString(supportFooter)
	return b.String()
}

// submitHint returns the documented causes of a failed submission. Codes the
// API documentation does not call out get no hint, only the generic message.
func submitHint(code int) string {
	switch code {
	case http.StatusBadRequest:
		return "Malformed arguments\n" +
			"Missing data file\n" +
			"Absent / unsupported language selection."
	case http.StatusUnauthorized:
		return "Invalid user id or authentication token."
	case http.StatusForbidden:
		return "Insufficient credit\n" +
			"User id not in our database\n" +
			"Incorrect authentication token."
	case http.StatusTooManyRequests:
		return "You are submitting too many POSTs in a short period of time."
	case http.StatusServiceUnavailable:
		return "The system is temporarily unavailable or overloaded.\n" +
			"Your POST will typically succeed if you try again soon."
	}
	return ""
}

// JobFailedError reports a job that reached a terminal state other than done.
// These are job outcomes, not transport problems: the API calls themselves
// all succeeded.
type JobFailedError struct {
	ID     JobID
	Status JobStatus
}

func (e *JobFailedError) Error() string {
	switch e.Status {
	case StatusUnsupportedFileFormat:
		return "file was in an unsupported file format and could not be transcribed; you have been reimbursed all credits for this job"
	case StatusCouldNotAlign:
		return "could not align text and audio file; you have been reimbursed all credits for this job"
	case StatusExpired:
		return fmt.Sprintf("job %s has expired and its output can no longer be retrieved", e.ID)
	}
	return fmt.Sprintf("job %s ended with status %q", e.ID, e.Status)
}
