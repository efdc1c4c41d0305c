package collector

import (
	"bytes"
	"context"
	"fmt"
	"iter"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rohmanhakim/mauvaise-langue/internal/cache"
	"github.com/rohmanhakim/mauvaise-langue/internal/config"
	"github.com/rohmanhakim/mauvaise-langue/internal/fetcher"
	"github.com/rohmanhakim/mauvaise-langue/internal/metadata"
	"github.com/rohmanhakim/mauvaise-langue/pkg/failure"
	"github.com/rohmanhakim/mauvaise-langue/pkg/retry"
	"github.com/rohmanhakim/mauvaise-langue/pkg/timeutil"
	"github.com/rohmanhakim/mauvaise-langue/pkg/urlutil"
)

/*
Responsibilities

- Walk the paginated category listing, one page at a time
- Extract member titles from the listing container
- Persist the scraped list and fall back to the store when it is empty

Walk Semantics

- The cursor starts at the category path and follows the "next page" link
- A non-200 status or a transport failure stops the walk; pages already
  read are kept
- A page without the listing container ends the walk
- A next link leading back to a visited page ends the walk
- The list is saved even when empty, so a total failure overwrites the
  previous cache with []

The collector never returns an error to its caller; failures are recorded
on the metadata sink and surfaced through Outcome.
*/
type Collector struct {
	metadataSink metadata.MetadataSink
	fetcher      fetcher.Fetcher
	store        cache.Store
	cfg          config.Config
	retryParam   retry.RetryParam
}

func NewCollector(
	metadataSink metadata.MetadataSink,
	htmlFetcher fetcher.Fetcher,
	store cache.Store,
	cfg config.Config,
) Collector {
	return Collector{
		metadataSink: metadataSink,
		fetcher:      htmlFetcher,
		store:        store,
		cfg:          cfg,
		retryParam: retry.NewRetryParam(
			cfg.Jitter(),
			cfg.RandomSeed(),
			cfg.MaxAttempt(),
			timeutil.NewBackoffParam(
				cfg.BackoffInitialDuration(),
				cfg.BackoffMultiplier(),
				cfg.BackoffMaxDuration(),
			),
		),
	}
}

// Pages returns the category listing as a lazy sequence. Each iteration
// starts a fresh walk from the category path. A failure is yielded once,
// with an empty page, and ends the sequence.
func (c *Collector) Pages(ctx context.Context) iter.Seq2[CategoryPage, failure.ClassifiedError] {
	return func(yield func(CategoryPage, failure.ClassifiedError) bool) {
		visited := newCursorSet()
		cursor := c.cfg.CategoryPath()
		for index := 1; cursor != ""; index++ {
			pageURL := urlutil.Resolve(c.cfg.BaseURL(), cursor)
			// a fragment does not make a different page
			pageKey := urlutil.StripFragment(pageURL)
			if visited.contains(pageKey) {
				cycleErr := &CollectorError{
					Message:   "next page link points to an already visited page",
					Retryable: false,
					Cause:     ErrCausePageCycle,
				}
				c.recordError(pageURL, index, cycleErr)
				yield(CategoryPage{url: pageURL}, cycleErr)
				return
			}
			visited.add(pageKey)

			page, err := c.fetchPage(ctx, pageURL, index)
			if err != nil {
				yield(CategoryPage{url: pageURL}, err)
				return
			}
			if !yield(page, nil) {
				return
			}
			cursor = page.next
		}
	}
}

// Collect runs one full scrape, saves the result and reports how it went.
func (c *Collector) Collect(ctx context.Context) Outcome {
	startTime := time.Now()

	all := []string{}
	pages := 0
	var reason failure.ClassifiedError
	for page, err := range c.Pages(ctx) {
		if err != nil {
			reason = err
			break
		}
		pages++
		all = append(all, page.insults...)
	}

	// a failed save is recorded by the store and does not change the result
	_ = c.store.Save(all)

	outcome := Outcome{
		insults: all,
		pages:   pages,
		reason:  reason,
	}
	switch {
	case len(all) > 0:
		outcome.status = StatusOK
	case reason != nil:
		outcome.status = StatusFailed
		outcome.insults = c.store.Load()
	default:
		outcome.status = StatusEmpty
		outcome.insults = c.store.Load()
	}

	if finalizer, ok := c.metadataSink.(metadata.ScrapeFinalizer); ok {
		finalizer.RecordScrapeStats(pages, len(all), outcome.status.String(), time.Since(startTime))
	}
	return outcome
}

// Scrape returns the scraped insults, or the stored list when the scrape
// produced nothing. It never fails.
func (c *Collector) Scrape(ctx context.Context) []string {
	return c.Collect(ctx).Insults()
}

func (c *Collector) fetchPage(ctx context.Context, pageURL string, index int) (CategoryPage, failure.ClassifiedError) {
	result, err := c.fetcher.Fetch(
		ctx,
		fetcher.NewFetchParam(pageURL, c.cfg.UserAgent()),
		c.retryParam,
	)
	if err != nil {
		// already recorded by the fetcher
		return CategoryPage{}, err
	}

	if result.Code() != http.StatusOK {
		collectorErr := &CollectorError{
			Message:    fmt.Sprintf("request failed with status: %d", result.Code()),
			Retryable:  false,
			Cause:      ErrCauseUpstreamStatus,
			HTTPStatus: result.Code(),
		}
		c.recordError(pageURL, index, collectorErr)
		return CategoryPage{}, collectorErr
	}

	return c.parsePage(pageURL, index, result.Body()), nil
}

func (c *Collector) parsePage(pageURL string, index int, body []byte) CategoryPage {
	page := CategoryPage{url: pageURL, insults: []string{}}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		c.recordError(pageURL, index, &CollectorError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseUnparseable,
		})
		return page
	}

	container := doc.Find("#" + c.cfg.ContainerID()).First()
	if container.Length() == 0 {
		return page
	}

	container.Find("a[href][title]").Each(func(_ int, link *goquery.Selection) {
		title, _ := link.Attr("title")
		if title == c.cfg.CategoryTitle() {
			return
		}
		page.insults = append(page.insults, title)
	})

	container.Find("a").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		if strings.TrimSpace(link.Text()) != c.cfg.NextPageText() {
			return true
		}
		if href, ok := link.Attr("href"); ok {
			page.next = href
		}
		return false
	})

	return page
}

func (c *Collector) recordError(pageURL string, index int, err *CollectorError) {
	attrs := []metadata.Attribute{
		metadata.NewAttr(metadata.AttrURL, pageURL),
		metadata.NewAttr(metadata.AttrPage, strconv.Itoa(index)),
	}
	if err.HTTPStatus != 0 {
		attrs = append(attrs, metadata.NewAttr(metadata.AttrHTTPStatus, strconv.Itoa(err.HTTPStatus)))
	}
	c.metadataSink.RecordError(
		time.Now(),
		"collector",
		"Collector.Collect",
		mapCollectorErrorToMetadataCause(err),
		err.Message,
		attrs,
	)
}
