// Package mauvaise scrapes the French Wiktionary category of insults,
// caches the list in a local JSON file, detects known insults in a text
// and fetches the definition of one insult.
//
// The package-level functions use the default configuration and the
// insultes_cache.json file of the working directory. New builds a Client
// for anything else.
package mauvaise

import (
	"context"
	"net/http"

	"github.com/rohmanhakim/mauvaise-langue/internal/cache"
	"github.com/rohmanhakim/mauvaise-langue/internal/collector"
	"github.com/rohmanhakim/mauvaise-langue/internal/config"
	"github.com/rohmanhakim/mauvaise-langue/internal/definition"
	"github.com/rohmanhakim/mauvaise-langue/internal/detector"
	"github.com/rohmanhakim/mauvaise-langue/internal/fetcher"
	"github.com/rohmanhakim/mauvaise-langue/internal/metadata"
)

// Client wires the cache store, the collector, the detector and the
// definition lookup around one configuration. It performs sequential,
// blocking I/O and does not lock the cache file.
type Client struct {
	store     cache.Store
	collector collector.Collector
	detector  detector.Detector
	definer   definition.Definer
}

type options struct {
	store        cache.Store
	metadataSink metadata.MetadataSink
	httpClient   *http.Client
}

type Option func(*options)

// WithStore replaces the JSON file store.
func WithStore(store cache.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithMetadataSink receives fetch, error and artifact events.
// Events are dropped by default.
func WithMetadataSink(sink metadata.MetadataSink) Option {
	return func(o *options) {
		o.metadataSink = sink
	}
}

// WithHTTPClient replaces the client built from the configured timeout.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *options) {
		o.httpClient = httpClient
	}
}

func New(cfg config.Config, opts ...Option) *Client {
	o := options{
		metadataSink: &metadata.NoopSink{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.store == nil {
		o.store = cache.NewFileStore(cfg.CacheFile(), o.metadataSink)
	}

	var htmlFetcher fetcher.HtmlFetcher
	if o.httpClient != nil {
		htmlFetcher = fetcher.NewHtmlFetcherWithClient(o.metadataSink, o.httpClient)
	} else {
		htmlFetcher = fetcher.NewHtmlFetcher(o.metadataSink, cfg.Timeout())
	}

	c := &Client{
		store:     o.store,
		collector: collector.NewCollector(o.metadataSink, &htmlFetcher, o.store, cfg),
		definer:   definition.NewDefiner(o.metadataSink, &htmlFetcher, cfg),
	}
	c.detector = detector.NewDetector(o.store, &c.collector)
	return c
}

// Scrape walks the whole category, saves the list and returns it. When the
// walk produced nothing, the stored list is returned instead.
func (c *Client) Scrape(ctx context.Context) []string {
	return c.collector.Scrape(ctx)
}

// Collect is Scrape with the outcome of the run made explicit.
func (c *Client) Collect(ctx context.Context) collector.Outcome {
	return c.collector.Collect(ctx)
}

// Detect returns, in list order, the known insults that occur in text.
// An empty store triggers a scrape first.
func (c *Client) Detect(ctx context.Context, text string) []string {
	return c.detector.Detect(ctx, text)
}

// Define returns the definition of term, or a French message explaining
// why none could be produced.
func (c *Client) Define(ctx context.Context, term string) string {
	return c.definer.Define(ctx, term)
}

func (c *Client) Lookup(ctx context.Context, term string) definition.Result {
	return c.definer.Lookup(ctx, term)
}

// Cached returns the stored list without touching the network.
func (c *Client) Cached() []string {
	return c.store.Load()
}

func defaultClient() *Client {
	cfg, err := config.WithDefault().Build()
	if err != nil {
		panic(err)
	}
	return New(cfg)
}

// ScrapeInsultes scrapes the category with the default configuration.
func ScrapeInsultes() []string {
	return defaultClient().Scrape(context.Background())
}

// DetectInsultes lists the known insults found in prompt.
func DetectInsultes(prompt string) []string {
	return defaultClient().Detect(context.Background(), prompt)
}

// GetDefinitionInsulte returns the definition of insulte.
func GetDefinitionInsulte(insulte string) string {
	return defaultClient().Define(context.Background(), insulte)
}
