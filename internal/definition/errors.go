package definition

import (
	"fmt"

	"github.com/rohmanhakim/mauvaise-langue/internal/metadata"
	"github.com/rohmanhakim/mauvaise-langue/pkg/failure"
)

type DefinitionErrorCause string

const (
	ErrCauseUpstreamStatus    DefinitionErrorCause = "unexpected status"
	ErrCauseUnparseable       DefinitionErrorCause = "unparseable page"
	ErrCauseConversionFailure DefinitionErrorCause = "conversion failed"
)

type DefinitionError struct {
	Message    string
	Retryable  bool
	Cause      DefinitionErrorCause
	HTTPStatus int
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("definition error: %s: %s", e.Cause, e.Message)
}

func (e *DefinitionError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapDefinitionErrorToMetadataCause maps definition-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapDefinitionErrorToMetadataCause(err *DefinitionError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseUpstreamStatus:
		return metadata.CauseUpstreamStatus
	case ErrCauseUnparseable, ErrCauseConversionFailure:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
