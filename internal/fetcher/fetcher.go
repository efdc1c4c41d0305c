package fetcher

import (
	"context"

	"github.com/rohmanhakim/mauvaise-langue/pkg/failure"
	"github.com/rohmanhakim/mauvaise-langue/pkg/retry"
)

// Fetcher is the HTTP collaborator: GET a URL, hand back status and body.
// Any HTTP status is a successful fetch; only transport-level failures are errors.
type Fetcher interface {
	Fetch(
		ctx context.Context,
		fetchParam FetchParam,
		retryParam retry.RetryParam,
	) (FetchResult, failure.ClassifiedError)
}
