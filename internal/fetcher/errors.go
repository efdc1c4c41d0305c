package fetcher

import (
	"fmt"

	"github.com/rohmanhakim/mauvaise-langue/internal/metadata"
	"github.com/rohmanhakim/mauvaise-langue/pkg/failure"
)

type FetchErrorCause string

const (
	ErrCauseInvalidURL            FetchErrorCause = "invalid url"
	ErrCauseTimeout               FetchErrorCause = "timeout"
	ErrCauseNetworkFailure        FetchErrorCause = "network issues"
	ErrCauseReadResponseBodyError FetchErrorCause = "failed to read response body"
)

type FetchError struct {
	Message   string
	Retryable bool
	Cause     FetchErrorCause
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetcher error: %s: %s", e.Cause, e.Message)
}

func (e *FetchError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// IsRetryable returns whether this error is retryable
func (e *FetchError) IsRetryable() bool {
	return e.Retryable
}

// mapFetchErrorToMetadataCause maps fetcher-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapFetchErrorToMetadataCause(err *FetchError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseTimeout, ErrCauseNetworkFailure, ErrCauseReadResponseBodyError:
		return metadata.CauseNetworkFailure
	default:
		return metadata.CauseUnknown
	}
}
