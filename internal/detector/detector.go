package detector

import (
	"context"
	"strings"

	"github.com/rohmanhakim/mauvaise-langue/internal/cache"
)

// Scraper refreshes the insult list when the store holds nothing.
// collector.Collector satisfies it.
type Scraper interface {
	Scrape(ctx context.Context) []string
}

/*
Detector reports which known insults occur in a text.

Matching is plain substring containment: case sensitive, no word
boundaries, no normalization. Results follow the list order, and an
insult listed twice is reported twice.
*/
type Detector struct {
	store   cache.Store
	scraper Scraper
}

func NewDetector(store cache.Store, scraper Scraper) Detector {
	return Detector{
		store:   store,
		scraper: scraper,
	}
}

// Detect loads the stored list, scraping synchronously when it is empty,
// and returns every insult that occurs in text.
func (d *Detector) Detect(ctx context.Context, text string) []string {
	insults := d.store.Load()
	if len(insults) == 0 {
		insults = d.scraper.Scrape(ctx)
	}

	detected := []string{}
	for _, insult := range insults {
		if strings.Contains(text, insult) {
			detected = append(detected, insult)
		}
	}
	return detected
}

func (d *Detector) Contains(ctx context.Context, text string) bool {
	return len(d.Detect(ctx, text)) > 0
}
