package fetcher

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"socialbot/types"

	"github.com/mmcdole/gofeed"
)

// DefaultRequestDelay is the pause between feed requests to avoid hammering
// feed servers.
const DefaultRequestDelay = 1 * time.Second

// Fetcher retrieves content items from a set of RSS/Atom feeds.
type Fetcher struct {
	feeds        []string
	requestDelay time.Duration
	parser       *gofeed.Parser
}

// NewFetcher creates a fetcher over the given feed URLs.
func NewFetcher(feeds []string) *Fetcher {
	return &Fetcher{
		feeds:        feeds,
		requestDelay: DefaultRequestDelay,
		parser:       gofeed.NewParser(),
	}
}

// Fetch pulls items from every configured feed, optionally filtered by topic
// substrings (case-insensitive, matched against title and description). At
// most limit items are returned; when more match, a random sample is taken.
//
// A feed that fails to parse is logged and skipped. Fetch returns an error
// only when every feed failed.
func (f *Fetcher) Fetch(ctx context.Context, topics []string, limit int) ([]types.ContentItem, error) {
	var all []types.ContentItem
	var feedErrs []error

	for i, feedURL := range f.feeds {
		if i > 0 {
			// Polite delay between feed requests
			select {
			case <-time.After(f.requestDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			log.Printf("Error fetching feed %s: %v", feedURL, err)
			feedErrs = append(feedErrs, fmt.Errorf("fetch %s: %w", feedURL, err))
			continue
		}

		source := feed.Title
		if source == "" {
			source = feedURL
		}

		for _, entry := range feed.Items {
			item := types.ContentItem{
				Title:       entry.Title,
				Description: StripHTML(entry.Description),
				Link:        entry.Link,
				Source:      source,
				Published:   entry.Published,
			}
			if matchesTopics(item, topics) {
				all = append(all, item)
			}
		}
	}

	if len(all) == 0 && len(feedErrs) > 0 && len(feedErrs) == len(f.feeds) {
		return nil, errors.Join(feedErrs...)
	}
	return sample(all, limit), nil
}

// matchesTopics reports whether the item mentions any of the topics in its
// title or description. An empty topic list matches everything.
func matchesTopics(item types.ContentItem, topics []string) bool {
	if len(topics) == 0 {
		return true
	}
	title := strings.ToLower(item.Title)
	desc := strings.ToLower(item.Description)
	for _, topic := range topics {
		needle := strings.ToLower(topic)
		if needle == "" {
			continue
		}
		if strings.Contains(title, needle) || strings.Contains(desc, needle) {
			return true
		}
	}
	return false
}

// sample returns at most limit items, chosen at random when the input is
// larger. limit <= 0 means no cap.
func sample(items []types.ContentItem, limit int) []types.ContentItem {
	if limit <= 0 || len(items) <= limit {
		return items
	}
	picked := make([]types.ContentItem, len(items))
	copy(picked, items)
	rand.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	return picked[:limit]
}

var tagRe = regexp.MustCompile(`(?s)<[^>]*>`)

// StripHTML removes markup tags from feed descriptions, which frequently
// arrive as HTML fragments.
func StripHTML(s string) string {
	return strings.TrimSpace(tagRe.ReplaceAllString(s, ""))
}
