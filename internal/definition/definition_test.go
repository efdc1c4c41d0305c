package definition_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rohmanhakim/mauvaise-langue/internal/config"
	"github.com/rohmanhakim/mauvaise-langue/internal/definition"
	"github.com/rohmanhakim/mauvaise-langue/internal/fetcher"
	"github.com/rohmanhakim/mauvaise-langue/internal/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorEvent struct {
	packageName string
	cause       metadata.ErrorCause
}

type spySink struct {
	metadata.NoopSink
	errors []errorEvent
}

func (s *spySink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	s.errors = append(s.errors, errorEvent{packageName: packageName, cause: cause})
}

func newDefiner(t *testing.T, baseURL string, format string, sink metadata.MetadataSink) definition.Definer {
	t.Helper()
	cfg, err := config.WithDefault().
		WithBaseURL(baseURL).
		WithTimeout(2 * time.Second).
		WithDefinitionFormat(format).
		Build()
	require.NoError(t, err)

	htmlFetcher := fetcher.NewHtmlFetcher(&metadata.NoopSink{}, cfg.Timeout())
	return definition.NewDefiner(sink, &htmlFetcher, cfg)
}

func serveHTML(t *testing.T, status int, body string) (*httptest.Server, *string) {
	t.Helper()
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &gotPath
}

func readFixture(t *testing.T, name string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(content)
}

func TestDefiner_Define_FirstOrderedList(t *testing.T) {
	server, gotPath := serveHTML(t, http.StatusOK, readFixture(t, "idiot.html"))
	d := newDefiner(t, server.URL, config.FormatText, &metadata.NoopSink{})

	got := d.Define(context.Background(), "idiot")

	assert.Equal(t, "Personne stupide.\nTerme injurieux.", got)
	assert.Equal(t, "/wiki/idiot", *gotPath)
}

func TestDefiner_Lookup_OK(t *testing.T) {
	server, _ := serveHTML(t, http.StatusOK, readFixture(t, "idiot.html"))
	d := newDefiner(t, server.URL, config.FormatText, &metadata.NoopSink{})

	result := d.Lookup(context.Background(), "idiot")

	assert.Equal(t, definition.StatusOK, result.Status())
	assert.Equal(t, http.StatusOK, result.HTTPStatus())
	assert.Equal(t, server.URL+"/wiki/idiot", result.URL())
	assert.Equal(t, []string{"Personne stupide.", "Terme injurieux."}, result.Entries())
	assert.Empty(t, result.Markdown())
	assert.Nil(t, result.Reason())
}

func TestDefiner_Define_NestedItemsAreIncluded(t *testing.T) {
	body := `<ol><li>Sens général.<ol><li>Sens figuré.</li></ol></li></ol>`
	server, _ := serveHTML(t, http.StatusOK, body)
	d := newDefiner(t, server.URL, config.FormatText, &metadata.NoopSink{})

	got := d.Define(context.Background(), "abruti")

	assert.Equal(t, "Sens général.Sens figuré.\nSens figuré.", got)
}

func TestDefiner_Define_NoDefinition(t *testing.T) {
	cases := map[string]string{
		"no ordered list":    `<html><body><ul><li>pas une définition</li></ul></body></html>`,
		"empty ordered list": `<html><body><ol></ol><ol><li>trop tard</li></ol></body></html>`,
		"empty body":         ``,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			server, _ := serveHTML(t, http.StatusOK, body)
			d := newDefiner(t, server.URL, config.FormatText, &metadata.NoopSink{})

			result := d.Lookup(context.Background(), "gougnafier")

			assert.Equal(t, definition.StatusEmpty, result.Status())
			assert.Equal(t, "Aucune définition trouvée.", result.String())
		})
	}
}

func TestDefiner_Define_UpstreamStatus(t *testing.T) {
	server, _ := serveHTML(t, http.StatusNotFound, "<html><body><ol><li>page d'erreur</li></ol></body></html>")
	sink := &spySink{}
	d := newDefiner(t, server.URL, config.FormatText, sink)

	got := d.Define(context.Background(), "inexistant")

	assert.Equal(t, "Erreur lors de la récupération de la définition (status: 404).", got)
	assert.Contains(t, got, "404")

	require.Len(t, sink.errors, 1)
	assert.Equal(t, "definition", sink.errors[0].packageName)
	assert.Equal(t, metadata.CauseUpstreamStatus, sink.errors[0].cause)
}

func TestDefiner_Define_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := server.URL
	server.Close()

	d := newDefiner(t, deadURL, config.FormatText, &metadata.NoopSink{})

	result := d.Lookup(context.Background(), "idiot")

	assert.Equal(t, definition.StatusFailed, result.Status())
	assert.Equal(t, 0, result.HTTPStatus())
	assert.Contains(t, result.String(), "Une erreur est survenue : ")

	var fetchErr *fetcher.FetchError
	require.ErrorAs(t, result.Reason(), &fetchErr)
	assert.Equal(t, fetcher.ErrCauseNetworkFailure, fetchErr.Cause)
}

func TestDefiner_Define_TermIsNotEncodedByCaller(t *testing.T) {
	server, gotPath := serveHTML(t, http.StatusOK, readFixture(t, "idiot.html"))
	d := newDefiner(t, server.URL, config.FormatText, &metadata.NoopSink{})

	result := d.Lookup(context.Background(), "imbécile")

	assert.Equal(t, server.URL+"/wiki/imbécile", result.URL())
	assert.Equal(t, "/wiki/imbécile", *gotPath)
}

func TestDefiner_Define_Markdown(t *testing.T) {
	body := `<ol><li>Personne <a href="/wiki/stupide">stupide</a>.</li><li>Terme <i>injurieux</i>.</li></ol>`
	server, _ := serveHTML(t, http.StatusOK, body)
	d := newDefiner(t, server.URL, config.FormatMarkdown, &metadata.NoopSink{})

	result := d.Lookup(context.Background(), "idiot")
	got := result.String()

	assert.Equal(t, definition.StatusOK, result.Status())
	assert.Equal(t, []string{"Personne stupide.", "Terme injurieux."}, result.Entries())
	assert.Equal(t, got, result.Markdown())
	assert.Contains(t, got, "1. Personne [stupide](/wiki/stupide).")
	assert.Contains(t, got, "2. Terme *injurieux*.")
}

func TestDefiner_Define_StrayPercentInTerm(t *testing.T) {
	server, gotPath := serveHTML(t, http.StatusOK, readFixture(t, "idiot.html"))
	d := newDefiner(t, server.URL, config.FormatText, &metadata.NoopSink{})

	result := d.Lookup(context.Background(), "100%")

	assert.Equal(t, definition.StatusOK, result.Status())
	assert.Equal(t, server.URL+"/wiki/100%25", result.URL())
	assert.Equal(t, "/wiki/100%", *gotPath)
}

func TestDefiner_Define_TermWithSpaces(t *testing.T) {
	server, gotPath := serveHTML(t, http.StatusOK, readFixture(t, "idiot.html"))
	d := newDefiner(t, server.URL, config.FormatText, &metadata.NoopSink{})

	got := d.Define(context.Background(), "face de rat")

	assert.Equal(t, "Personne stupide.\nTerme injurieux.", got)
	assert.Equal(t, "/wiki/face de rat", *gotPath)
}
