package definition

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rohmanhakim/mauvaise-langue/internal/config"
	"github.com/rohmanhakim/mauvaise-langue/internal/fetcher"
	"github.com/rohmanhakim/mauvaise-langue/internal/metadata"
	"github.com/rohmanhakim/mauvaise-langue/pkg/retry"
	"github.com/rohmanhakim/mauvaise-langue/pkg/timeutil"
	"github.com/rohmanhakim/mauvaise-langue/pkg/urlutil"
	"golang.org/x/net/html"
)

/*
Definer looks up the definition of one term on its own wiki page.

Lookup Semantics

- The page address is base + wiki prefix + term, concatenated as-is
  except for a '%' that starts no valid escape, which becomes "%25"
- Only the first ordered list of the page is read; every list item it
  contains, nested ones included, becomes one entry
- Nothing is cached

Define never fails: every outcome, failures included, is rendered as a
French message for the caller.
*/
type Definer struct {
	metadataSink metadata.MetadataSink
	fetcher      fetcher.Fetcher
	cfg          config.Config
	retryParam   retry.RetryParam
}

func NewDefiner(
	metadataSink metadata.MetadataSink,
	htmlFetcher fetcher.Fetcher,
	cfg config.Config,
) Definer {
	return Definer{
		metadataSink: metadataSink,
		fetcher:      htmlFetcher,
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

// Define returns the definition entries joined by newlines, or a message
// describing why there is none.
func (d *Definer) Define(ctx context.Context, term string) string {
	return d.Lookup(ctx, term).String()
}

func (d *Definer) Lookup(ctx context.Context, term string) Result {
	pageURL := d.cfg.BaseURL() + d.cfg.WikiPathPrefix() + urlutil.EscapeStrayPercent(term)
	result := Result{
		term: term,
		url:  pageURL,
	}

	fetchResult, err := d.fetcher.Fetch(
		ctx,
		fetcher.NewFetchParam(pageURL, d.cfg.UserAgent()),
		d.retryParam,
	)
	if err != nil {
		// already recorded by the fetcher
		result.status = StatusFailed
		result.reason = err
		return result
	}

	result.httpStatus = fetchResult.Code()
	if fetchResult.Code() != http.StatusOK {
		definitionErr := &DefinitionError{
			Message:    fmt.Sprintf("request failed with status: %d", fetchResult.Code()),
			Retryable:  false,
			Cause:      ErrCauseUpstreamStatus,
			HTTPStatus: fetchResult.Code(),
		}
		d.recordError(term, pageURL, definitionErr)
		result.status = StatusFailed
		result.reason = definitionErr
		return result
	}

	doc, parseErr := html.Parse(bytes.NewReader(fetchResult.Body()))
	if parseErr != nil {
		d.recordError(term, pageURL, &DefinitionError{
			Message:   parseErr.Error(),
			Retryable: false,
			Cause:     ErrCauseUnparseable,
		})
		result.status = StatusEmpty
		return result
	}

	list := goquery.NewDocumentFromNode(doc).Find("ol").First()
	if list.Length() == 0 {
		result.status = StatusEmpty
		return result
	}

	list.Find("li").Each(func(_ int, item *goquery.Selection) {
		result.entries = append(result.entries, item.Text())
	})
	if len(result.entries) == 0 {
		result.status = StatusEmpty
		return result
	}
	result.status = StatusOK

	if d.cfg.DefinitionFormat() == config.FormatMarkdown {
		markdown, convErr := renderMarkdown(list.Nodes[0])
		if convErr != nil {
			// plain entries remain available
			d.recordError(term, pageURL, convErr)
		} else {
			result.markdown = markdown
		}
	}
	return result
}

// String renders the result the way Define returns it.
func (r Result) String() string {
	switch r.status {
	case StatusOK:
		if r.markdown != "" {
			return r.markdown
		}
		return strings.Join(r.entries, "\n")
	case StatusEmpty:
		return msgNoDefinition
	default:
		var definitionErr *DefinitionError
		if errors.As(r.reason, &definitionErr) && definitionErr.Cause == ErrCauseUpstreamStatus {
			return fmt.Sprintf(msgUpstreamStatus, definitionErr.HTTPStatus)
		}
		return fmt.Sprintf(msgFailure, r.reason)
	}
}

func (d *Definer) recordError(term string, pageURL string, err *DefinitionError) {
	attrs := []metadata.Attribute{
		metadata.NewAttr(metadata.AttrTerm, term),
		metadata.NewAttr(metadata.AttrURL, pageURL),
	}
	if err.HTTPStatus != 0 {
		attrs = append(attrs, metadata.NewAttr(metadata.AttrHTTPStatus, strconv.Itoa(err.HTTPStatus)))
	}
	d.metadataSink.RecordError(
		time.Now(),
		"definition",
		"Definer.Lookup",
		mapDefinitionErrorToMetadataCause(err),
		err.Message,
		attrs,
	)
}
