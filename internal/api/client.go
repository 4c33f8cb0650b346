// Package api is a client for v1.0 of the Speechmatics batch REST API: job
// submission, job status and output retrieval, plus the polling loop that
// waits for a job to finish. Authentication is a per-user token passed as the
// auth_token query parameter on every request.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultBaseURL is the public endpoint for v1.0 of the REST API.
const DefaultBaseURL = "https://api.speechmatics.com/v1.0"

// Client issues requests to the batch API on behalf of one user. It is bound
// to a single base URL and credential pair for its lifetime and may be reused
// across jobs. It performs no retries of its own; rate-limit and overload
// responses are reported to the caller as errors with retry guidance.
type Client struct {
	userID  string
	token   string
	baseURL string
	httpc   *http.Client

	// sleep waits between status polls; swapped out in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient returns a client for the given account. An empty baseURL selects
// the public API endpoint; anything else (an on-premises appliance, a test
// server) is used as-is.
func NewClient(userID, token, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		userID:  userID,
		token:   token,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
		sleep:   sleepCtx,
	}
}

func (c *Client) authQuery() url.Values {
	q := url.Values{}
	q.Set("auth_token", c.token)
	return q
}

// SubmitJob uploads the audio (and optional text) file and creates a new job,
// returning the server-assigned job id. Local file problems surface before
// any network traffic happens.
func (c *Client) SubmitJob(ctx context.Context, opts SubmitOpts) (JobID, error) {
	body, contentType, err := buildSubmission(opts)
	if err != nil {
		return "", err
	}

	reqURL := fmt.Sprintf("%s/user/%s/jobs/?%s", c.baseURL, c.userID, c.authQuery().Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("job submission request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", &APIError{Op: opSubmit, StatusCode: resp.StatusCode, Hint: submitHint(resp.StatusCode)}
	}

	var out struct {
		ID JobID `json:"id"`
	}
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("failed to parse submission response: %w", err)
	}
	if out.ID == "" {
		return "", fmt.Errorf("submission response carried no job id")
	}
	return out.ID, nil
}

// buildSubmission assembles the multipart form for a job submission. The
// audio file is opened first so a bad path fails fast, before the text file
// is touched and long before any bytes hit the wire.
func buildSubmission(opts SubmitOpts) (*bytes.Buffer, string, error) {
	audio, err := os.Open(opts.AudioPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open audio file %s: %w", opts.AudioPath, err)
	}
	defer audio.Close()

	var text *os.File
	if opts.TextPath != "" {
		text, err = os.Open(opts.TextPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open text file %s: %w", opts.TextPath, err)
		}
		defer text.Close()
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fw, err := w.CreateFormFile("data_file", filepath.Base(opts.AudioPath))
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(fw, audio); err != nil {
		return nil, "", fmt.Errorf("failed to read audio file: %w", err)
	}

	if text != nil {
		fw, err := w.CreateFormFile("text_file", filepath.Base(opts.TextPath))
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(fw, text); err != nil {
			return nil, "", fmt.Errorf("failed to read text file: %w", err)
		}
	}

	// "en-US=1.2" selects model en-US pinned to version 1.2.
	model, version, pinned := strings.Cut(opts.Language, "=")
	w.WriteField("model", model)
	if pinned {
		w.WriteField("version", version)
	}

	if opts.Notification != "" {
		w.WriteField("notification", opts.Notification)
		if opts.Notification == NotifyCallback {
			w.WriteField("callback", opts.CallbackURL)
		}
	}
	if opts.NotificationEmail != "" {
		w.WriteField("notification_email_address", opts.NotificationEmail)
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// JobDetails fetches the current server-side state of a job.
func (c *Client) JobDetails(ctx context.Context, id JobID) (*JobDetails, error) {
	reqURL := fmt.Sprintf("%s/user/%s/jobs/%s/?%s", c.baseURL, c.userID, id, c.authQuery().Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("job details request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Op: opDetails, StatusCode: resp.StatusCode}
	}

	var out struct {
		Job JobDetails `json:"job"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to parse job details: %w", err)
	}
	if out.Job.ID == "" {
		out.Job.ID = id
	}
	return &out.Job, nil
}

// Output downloads the finished output of a job as UTF-8 text. With alternate
// set, transcripts come back as plain text instead of JSON and alignments
// carry one timing tag per line instead of one per word.
func (c *Client) Output(ctx context.Context, id JobID, jobType JobType, alternate bool) (string, error) {
	segment, err := jobType.OutputSegment()
	if err != nil {
		return "", err
	}

	q := c.authQuery()
	if alternate {
		switch jobType {
		case TypeTranscription:
			q.Set("format", "txt")
		case TypeAlignment:
			q.Set("tags", "one_per_line")
		}
	}

	reqURL := fmt.Sprintf("%s/user/%s/jobs/%s/%s?%s", c.baseURL, c.userID, id, segment, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("job output request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", &APIError{Op: opOutput, StatusCode: resp.StatusCode}
	}
	return string(body), nil
}
