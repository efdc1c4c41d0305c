package cache

import (
	"fmt"

	"github.com/rohmanhakim/mauvaise-langue/internal/metadata"
	"github.com/rohmanhakim/mauvaise-langue/pkg/failure"
)

type CacheErrorCause string

const (
	ErrCauseDiskFull       CacheErrorCause = "disk is full"
	ErrCauseWriteFailure   CacheErrorCause = "write failed"
	ErrCausePathError      CacheErrorCause = "path error"
	ErrCauseEncodingFailed CacheErrorCause = "encoding failed"
)

type CacheError struct {
	Message   string
	Retryable bool
	Cause     CacheErrorCause
	Path      string
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache error: %s", e.Cause)
}

func (e *CacheError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// IsRetryable returns whether this error is retryable
func (e *CacheError) IsRetryable() bool {
	return e.Retryable
}

// mapCacheErrorToMetadataCause maps cache-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapCacheErrorToMetadataCause(err *CacheError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseDiskFull, ErrCauseWriteFailure, ErrCausePathError:
		return metadata.CauseStorageFailure
	default:
		return metadata.CauseUnknown
	}
}
