// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/paper-digest/internal/retry"
)

// DoWithRetry executes an HTTP request under the given retry policy. HTTP
// 429 and 5xx responses and transport errors are retried with the policy's
// backoff; any other response is returned as-is for the caller to inspect.
// The response body of a retried attempt is drained and closed before the
// backoff wait. Requests are cloned per attempt, so only body-less requests
// (GET) are safe to pass in.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, p retry.Policy) (*http.Response, error) {
	var resp *http.Response

	_, err := retry.Do(ctx, p, func(ctx context.Context) error {
		r, err := client.Do(req.Clone(ctx))
		if err != nil {
			return err
		}

		if retryableStatus(r.StatusCode) {
			io.Copy(io.Discard, r.Body)
			r.Body.Close()
			return fmt.Errorf("HTTP %d from %s", r.StatusCode, req.URL.Host)
		}

		resp = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// retryableStatus reports whether the status code indicates a transient
// condition worth retrying.
func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}
