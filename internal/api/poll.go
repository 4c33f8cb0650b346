package api

import (
	"context"
	"time"
)

// Await polls a job until it reaches a terminal status and returns its final
// details. Between polls it sleeps for however long the server asked for in
// check_wait. If notify is non-nil it is called with each non-terminal
// snapshot before the wait, so callers can show progress.
//
// A terminal status is not necessarily success: check Failure on the result.
func (c *Client) Await(ctx context.Context, id JobID, notify func(*JobDetails)) (*JobDetails, error) {
	details, err := c.JobDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	for !details.Status.Terminal() {
		if notify != nil {
			notify(details)
		}
		if err := c.sleep(ctx, details.CheckWaitDuration()); err != nil {
			return nil, err
		}
		details, err = c.JobDetails(ctx, id)
		if err != nil {
			return nil, err
		}
	}
	return details, nil
}

// sleepCtx waits for d or until ctx is done, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
