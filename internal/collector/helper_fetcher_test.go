package collector_test

import (
	"context"

	"github.com/rohmanhakim/mauvaise-langue/internal/fetcher"
	"github.com/rohmanhakim/mauvaise-langue/pkg/failure"
	"github.com/rohmanhakim/mauvaise-langue/pkg/retry"
	"github.com/stretchr/testify/mock"
)

// fetcherMock is a testify mock for the Fetcher
type fetcherMock struct {
	mock.Mock
}

func (f *fetcherMock) Fetch(
	ctx context.Context,
	fetchParam fetcher.FetchParam,
	retryParam retry.RetryParam,
) (fetcher.FetchResult, failure.ClassifiedError) {
	args := f.Called(ctx, fetchParam, retryParam)
	result := args.Get(0).(fetcher.FetchResult)
	var err failure.ClassifiedError
	if args.Get(1) != nil {
		err = args.Get(1).(failure.ClassifiedError)
	}
	return result, err
}

// onURL matches a fetch of the given address.
func onURL(url string) interface{} {
	return mock.MatchedBy(func(p fetcher.FetchParam) bool {
		return p.URL() == url
	})
}
