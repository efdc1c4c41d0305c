package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rohmanhakim/mauvaise-langue/internal/metadata"
	"github.com/rohmanhakim/mauvaise-langue/pkg/failure"
	"github.com/rohmanhakim/mauvaise-langue/pkg/retry"
)

/*
Responsibilities

- Perform HTTP GET requests
- Apply headers and the per-request timeout
- Classify transport failures

Fetch Semantics

- Every HTTP status is returned to the caller with its body; deciding
  what a non-200 means belongs to the caller
- Redirects are followed by net/http
- Only transport failures (refused, reset, DNS, timeout, unreadable body)
  are errors, and only those are retried when the retry budget allows it
- All fetches are recorded with metadata

The fetcher never parses content; it only returns bytes and metadata.
*/

type HtmlFetcher struct {
	metadataSink metadata.MetadataSink
	httpClient   *http.Client
}

func NewHtmlFetcher(
	metadataSink metadata.MetadataSink,
	timeout time.Duration,
) HtmlFetcher {
	return HtmlFetcher{
		metadataSink: metadataSink,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

// NewHtmlFetcherWithClient lets callers (and tests) supply their own client.
func NewHtmlFetcherWithClient(
	metadataSink metadata.MetadataSink,
	httpClient *http.Client,
) HtmlFetcher {
	return HtmlFetcher{
		metadataSink: metadataSink,
		httpClient:   httpClient,
	}
}

func (h *HtmlFetcher) Fetch(
	ctx context.Context,
	fetchParam FetchParam,
	retryParam retry.RetryParam,
) (FetchResult, failure.ClassifiedError) {
	callerMethod := "HtmlFetcher.Fetch"
	startTime := time.Now()

	fetchTask := func() (FetchResult, failure.ClassifiedError) {
		return h.performFetch(ctx, fetchParam.fetchUrl, fetchParam.userAgent)
	}
	outcome := retry.Retry(ctx, retryParam, fetchTask)

	duration := time.Since(startTime)

	if outcome.IsFailure() {
		h.metadataSink.RecordFetch(fetchParam.fetchUrl, 0, duration, "", outcome.Attempts())
		h.recordError(callerMethod, fetchParam.fetchUrl, outcome.Err())
		return FetchResult{}, outcome.Err()
	}

	result := outcome.Value()
	result.meta.attempts = outcome.Attempts()

	h.metadataSink.RecordFetch(
		fetchParam.fetchUrl,
		result.Code(),
		duration,
		result.Headers()["Content-Type"],
		result.Attempts(),
	)

	return result, nil
}

func (h *HtmlFetcher) recordError(callerMethod string, fetchUrl string, err failure.ClassifiedError) {
	cause := metadata.CauseUnknown
	var fetchError *FetchError
	var retryError *retry.RetryError
	switch {
	case errors.As(err, &fetchError):
		cause = mapFetchErrorToMetadataCause(fetchError)
	case errors.As(err, &retryError):
		cause = metadata.CauseNetworkFailure
	}

	h.metadataSink.RecordError(
		time.Now(),
		"fetcher",
		callerMethod,
		cause,
		err.Error(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrURL, fetchUrl),
		},
	)
}

func (h *HtmlFetcher) performFetch(ctx context.Context, fetchUrl string, userAgent string) (FetchResult, failure.ClassifiedError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchUrl, nil)
	if err != nil {
		return FetchResult{}, &FetchError{
			Message:   fmt.Sprintf("failed to create request: %v", err),
			Retryable: false,
			Cause:     ErrCauseInvalidURL,
		}
	}

	for key, value := range requestHeaders(userAgent) {
		req.Header.Set(key, value)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return FetchResult{}, classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return FetchResult{}, &FetchError{
			Message:   fmt.Sprintf("failed to read response body: %v", err),
			Retryable: true,
			Cause:     ErrCauseReadResponseBodyError,
		}
	}

	responseHeaders := make(map[string]string)
	for key, values := range resp.Header {
		if len(values) > 0 {
			responseHeaders[key] = values[0]
		}
	}

	return FetchResult{
		url:  fetchUrl,
		body: body,
		meta: ResponseMeta{
			statusCode:          resp.StatusCode,
			transferredSizeByte: uint64(len(body)),
			responseHeaders:     responseHeaders,
		},
	}, nil
}

func classifyTransportError(err error) *FetchError {
	// a cancelled caller is not worth another attempt
	if errors.Is(err, context.Canceled) {
		return &FetchError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseNetworkFailure,
		}
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &FetchError{
			Message:   err.Error(),
			Retryable: true,
			Cause:     ErrCauseTimeout,
		}
	}

	return &FetchError{
		Message:   err.Error(),
		Retryable: true,
		Cause:     ErrCauseNetworkFailure,
	}
}

// Accept-Encoding is left to net/http so gzip bodies are decoded transparently.
func requestHeaders(userAgent string) map[string]string {
	return map[string]string{
		"User-Agent":      userAgent,
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "fr-FR,fr;q=0.9",
	}
}
