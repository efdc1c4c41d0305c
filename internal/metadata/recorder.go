package metadata

import (
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/go-logfmt/logfmt"
)

/*
Metadata Collected
- Fetch URLs, status codes and durations
- Cache writes and their content fingerprint
- Failures, classified by ErrorCause
- One summary per category scrape

Metadata is write-only.
No component may read metadata to influence scrape, detection or lookup decisions.
*/

type MetadataSink interface {
	RecordError(
		observedAt time.Time,
		packageName string,
		action string,
		cause ErrorCause,
		details string,
		attrs []Attribute,
	)

	RecordFetch(
		fetchUrl string,
		httpStatus int,
		duration time.Duration,
		contentType string,
		attempts int,
	)

	RecordArtifact(kind ArtifactKind, path string, attrs []Attribute)
}

type ScrapeFinalizer interface {
	RecordScrapeStats(
		pages int,
		insults int,
		status string,
		duration time.Duration,
	)
}

/*
Recorder writes every event as one logfmt record on the given writer.
Write failures are dropped: metadata must never turn into a control-flow signal.
Records are serialized with a mutex so a shared Recorder never interleaves lines.
*/
type Recorder struct {
	mu  sync.Mutex
	enc *logfmt.Encoder
}

func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{
		enc: logfmt.NewEncoder(w),
	}
}

func (r *Recorder) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	details string,
	attrs []Attribute,
) {
	keyvals := []interface{}{
		"time", observedAt.UTC().Format(time.RFC3339Nano),
		"level", "error",
		"event", "error",
		"package", packageName,
		"action", action,
		"cause", cause.String(),
		"details", details,
	}
	r.write(appendAttrs(keyvals, attrs))
}

func (r *Recorder) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
	contentType string,
	attempts int,
) {
	r.write([]interface{}{
		"time", time.Now().UTC().Format(time.RFC3339Nano),
		"level", "info",
		"event", "fetch",
		"url", fetchUrl,
		"status", strconv.Itoa(httpStatus),
		"duration_ms", strconv.FormatInt(duration.Milliseconds(), 10),
		"content_type", contentType,
		"attempts", strconv.Itoa(attempts),
	})
}

func (r *Recorder) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {
	keyvals := []interface{}{
		"time", time.Now().UTC().Format(time.RFC3339Nano),
		"level", "info",
		"event", "artifact",
		"kind", string(kind),
		"path", path,
	}
	r.write(appendAttrs(keyvals, attrs))
}

/*
RecordScrapeStats records the summary of a completed category scrape.
It is called once per scrape, after the cache write, and must not
influence what the scrape returns.
*/
func (r *Recorder) RecordScrapeStats(
	pages int,
	insults int,
	status string,
	duration time.Duration,
) {
	r.write([]interface{}{
		"time", time.Now().UTC().Format(time.RFC3339Nano),
		"level", "info",
		"event", "scrape_stats",
		"pages", strconv.Itoa(pages),
		"insults", strconv.Itoa(insults),
		"status", status,
		"duration_ms", strconv.FormatInt(duration.Milliseconds(), 10),
	})
}

func (r *Recorder) write(keyvals []interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.enc.EncodeKeyvals(keyvals...); err != nil {
		return
	}
	_ = r.enc.EndRecord()
}

func appendAttrs(keyvals []interface{}, attrs []Attribute) []interface{} {
	for _, attr := range attrs {
		keyvals = append(keyvals, string(attr.Key), attr.Value)
	}
	return keyvals
}

// NoopSink, struct that implements MetadataSink and ScrapeFinalizer but does nothing.
// Library defaults and tests inject it to keep metadata orthogonal.
type NoopSink struct{}

func (n *NoopSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	errorString string,
	attrs []Attribute,
) {
}

func (n *NoopSink) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
	contentType string,
	attempts int,
) {
}

func (n *NoopSink) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {}

func (n *NoopSink) RecordScrapeStats(pages int, insults int, status string, duration time.Duration) {
}
