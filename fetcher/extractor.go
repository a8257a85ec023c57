package fetcher

import (
	"fmt"
	"log"
	"sync"
	"time"

	"socialbot/types"

	readability "github.com/go-shiori/go-readability"
)

const (
	WorkerCount      = 5
	extractorTimeout = 30 * time.Second
)

// EnrichDescriptions fetches each item's article page and fills in a readable
// excerpt for items whose feed description was empty, using a worker pool.
// Items that fail extraction keep their original description.
func EnrichDescriptions(items []types.ContentItem) {
	var wg sync.WaitGroup
	indexChan := make(chan int, len(items))

	for i := 0; i < WorkerCount; i++ {
		go func(workerID int) {
			for idx := range indexChan {
				if err := enrichItem(&items[idx]); err != nil {
					log.Printf("[Worker %d] Failed to extract %s: %v", workerID, items[idx].Link, err)
				}
				wg.Done()
			}
		}(i)
	}

	for i := range items {
		if items[i].Description != "" {
			continue
		}
		wg.Add(1)
		indexChan <- i
	}

	wg.Wait()
	close(indexChan)
}

func enrichItem(item *types.ContentItem) error {
	if item.Link == "" {
		return fmt.Errorf("item link is empty")
	}

	article, err := readability.FromURL(item.Link, extractorTimeout)
	if err != nil {
		return fmt.Errorf("readability extraction failed: %w", err)
	}

	if article.Excerpt != "" {
		item.Description = article.Excerpt
	} else {
		item.Description = StripHTML(article.TextContent)
	}

	log.Printf("✓ Extracted: %s", item.Title)
	return nil
}
