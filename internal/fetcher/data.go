package fetcher

// HTTP boundary

type FetchParam struct {
	// raw URL, sent as given; net/http escapes what must be escaped on the wire
	fetchUrl  string
	userAgent string
}

func NewFetchParam(fetchUrl string, userAgent string) FetchParam {
	return FetchParam{
		fetchUrl:  fetchUrl,
		userAgent: userAgent,
	}
}

func (f FetchParam) URL() string {
	return f.fetchUrl
}

type FetchResult struct {
	url  string
	body []byte
	meta ResponseMeta
}

func (f *FetchResult) URL() string {
	return f.url
}

func (f *FetchResult) Body() []byte {
	return f.body
}

func (f *FetchResult) Code() int {
	return f.meta.statusCode
}

func (f *FetchResult) SizeByte() uint64 {
	return f.meta.transferredSizeByte
}

func (f *FetchResult) Headers() map[string]string {
	return f.meta.responseHeaders
}

func (f *FetchResult) Attempts() int {
	return f.meta.attempts
}

type ResponseMeta struct {
	statusCode          int
	transferredSizeByte uint64
	responseHeaders     map[string]string
	attempts            int
}

// NewFetchResultForTest creates a FetchResult for testing purposes.
// This allows test packages to construct FetchResult values without
// accessing unexported fields directly.
func NewFetchResultForTest(
	url string,
	body []byte,
	statusCode int,
	responseHeaders map[string]string,
) FetchResult {
	return FetchResult{
		url:  url,
		body: body,
		meta: ResponseMeta{
			statusCode:          statusCode,
			transferredSizeByte: uint64(len(body)),
			responseHeaders:     responseHeaders,
			attempts:            1,
		},
	}
}
