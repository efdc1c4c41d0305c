package collector

import "github.com/rohmanhakim/mauvaise-langue/pkg/failure"

// CategoryPage is one fetched page of the category listing.
type CategoryPage struct {
	url     string
	insults []string
	next    string
}

func (p CategoryPage) URL() string {
	return p.url
}

// Insults returns the member titles found on the page, in document order.
func (p CategoryPage) Insults() []string {
	return p.insults
}

// Next returns the cursor of the following page, or "" on the last page.
func (p CategoryPage) Next() string {
	return p.next
}

type Status int

const (
	// StatusOK: at least one insult was scraped.
	StatusOK Status = iota
	// StatusEmpty: the listing was read to the end but yielded nothing.
	StatusEmpty
	// StatusFailed: the run stopped on a failure before anything was scraped.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusEmpty:
		return "empty"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

/*
Outcome is the explicit view of one scrape run.

Insults holds what Scrape returns: the scraped list when non-empty,
otherwise whatever the store held after the save.
Reason is the failure that stopped the run. It can be set alongside
StatusOK when a later page failed after earlier pages succeeded.
*/
type Outcome struct {
	status  Status
	insults []string
	pages   int
	reason  failure.ClassifiedError
}

func (o Outcome) Status() Status {
	return o.status
}

func (o Outcome) Insults() []string {
	return o.insults
}

// Pages returns how many pages were fetched with a 200 response.
func (o Outcome) Pages() int {
	return o.pages
}

func (o Outcome) Reason() failure.ClassifiedError {
	return o.reason
}
