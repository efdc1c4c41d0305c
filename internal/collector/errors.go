package collector

import (
	"fmt"

	"github.com/rohmanhakim/mauvaise-langue/internal/metadata"
	"github.com/rohmanhakim/mauvaise-langue/pkg/failure"
)

type CollectorErrorCause string

const (
	ErrCauseUpstreamStatus CollectorErrorCause = "unexpected status"
	ErrCauseUnparseable    CollectorErrorCause = "unparseable page"
	ErrCausePageCycle      CollectorErrorCause = "page cycle"
)

type CollectorError struct {
	Message    string
	Retryable  bool
	Cause      CollectorErrorCause
	HTTPStatus int
}

func (e *CollectorError) Error() string {
	return fmt.Sprintf("collector error: %s: %s", e.Cause, e.Message)
}

func (e *CollectorError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapCollectorErrorToMetadataCause maps collector-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapCollectorErrorToMetadataCause(err *CollectorError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseUpstreamStatus:
		return metadata.CauseUpstreamStatus
	case ErrCauseUnparseable:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
