package metadata

/*
	ErrorCause is a closed, canonical classification used exclusively for
	observability (logging, reporting).

	Rules:
	 - ErrorCause MUST NOT influence control flow.
	 - Packages MAY map their local errors to ErrorCause,
	   but MUST NOT invent new meanings.
	 - If a failure does not clearly match a defined cause, CauseUnknown MUST be used.

# CauseUnknown
  - The failure does not map cleanly to any known category.

# CauseNetworkFailure
  - Transport-level failure: DNS, refused connection, timeout, reset.

# CauseUpstreamStatus
  - The wiki answered, but not with 200 OK.

# CauseContentInvalid
  - Content was read but could not be parsed (a wiki page, or the cache file).

# CauseStorageFailure
  - The insult cache could not be written.
*/
type ErrorCause int

const (
	CauseUnknown ErrorCause = iota
	CauseNetworkFailure
	CauseUpstreamStatus
	CauseContentInvalid
	CauseStorageFailure
)

func (c ErrorCause) String() string {
	switch c {
	case CauseNetworkFailure:
		return "network_failure"
	case CauseUpstreamStatus:
		return "upstream_status"
	case CauseContentInvalid:
		return "content_invalid"
	case CauseStorageFailure:
		return "storage_failure"
	default:
		return "unknown"
	}
}

type ArtifactKind string

const (
	ArtifactInsultCache ArtifactKind = "insult_cache"
)

type Attribute struct {
	Key   AttributeKey
	Value string
}

func NewAttr(key AttributeKey, val string) Attribute {
	return Attribute{
		Key:   key,
		Value: val,
	}
}

type AttributeKey string

const (
	AttrURL         AttributeKey = "url"
	AttrPath        AttributeKey = "path"
	AttrHTTPStatus  AttributeKey = "http_status"
	AttrWritePath   AttributeKey = "write_path"
	AttrTerm        AttributeKey = "term"
	AttrPage        AttributeKey = "page"
	AttrCount       AttributeKey = "count"
	AttrFingerprint AttributeKey = "fingerprint"
)
