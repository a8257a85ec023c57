package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"socialbot/types"
)

func TestStripHTML(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "hello world", "hello world"},
		{"simple tags", "<p>hello <b>world</b></p>", "hello world"},
		{"attributes", `<a href="http://x">link</a> text`, "link text"},
		{"multiline", "<div>\nline one\n</div>", "line one"},
		{"empty", "", ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := StripHTML(c.in); got != c.want {
				t.Fatalf("StripHTML(%q) = %q; want %q", c.in, got, c.want)
			}
		})
	}
}

func TestMatchesTopics(t *testing.T) {
	item := types.ContentItem{
		Title:       "AI breakthroughs in 2024",
		Description: "New developments in machine learning",
	}

	cases := []struct {
		name   string
		topics []string
		want   bool
	}{
		{"no topics matches all", nil, true},
		{"title match", []string{"ai"}, true},
		{"case insensitive", []string{"MACHINE"}, true},
		{"description match", []string{"learning"}, true},
		{"no match", []string{"sports", "finance"}, false},
		{"empty topic ignored", []string{""}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := matchesTopics(item, c.topics); got != c.want {
				t.Fatalf("matchesTopics(%v) = %v; want %v", c.topics, got, c.want)
			}
		})
	}
}

func TestSample(t *testing.T) {
	items := make([]types.ContentItem, 10)
	for i := range items {
		items[i].Title = fmt.Sprintf("item %d", i)
	}

	if got := sample(items, 3); len(got) != 3 {
		t.Errorf("sample(10 items, 3) returned %d items", len(got))
	}
	if got := sample(items, 20); len(got) != 10 {
		t.Errorf("sample(10 items, 20) returned %d items", len(got))
	}
	if got := sample(items, 0); len(got) != 10 {
		t.Errorf("sample(10 items, 0) returned %d items", len(got))
	}
}

const testFeedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Feed A</title>
    <link>http://feed-a.example</link>
    <item>
      <title>AI in 2024</title>
      <description>&lt;p&gt;The state of &lt;b&gt;artificial intelligence&lt;/b&gt;&lt;/p&gt;</description>
      <link>http://x</link>
      <pubDate>Mon, 01 Jan 2024 00:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Local sports roundup</title>
      <description>Weekend match results</description>
      <link>http://y</link>
      <pubDate>Tue, 02 Jan 2024 00:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

func TestFetchFiltersAndNormalizes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, testFeedXML)
	}))
	defer srv.Close()

	f := NewFetcher([]string{srv.URL})
	f.requestDelay = 0

	items, err := f.Fetch(context.Background(), []string{"artificial"}, 5)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Fetch returned %d items; want 1", len(items))
	}

	got := items[0]
	if got.Title != "AI in 2024" {
		t.Errorf("Title = %q; want %q", got.Title, "AI in 2024")
	}
	if got.Description != "The state of artificial intelligence" {
		t.Errorf("Description = %q; want HTML stripped", got.Description)
	}
	if got.Source != "Feed A" {
		t.Errorf("Source = %q; want feed title", got.Source)
	}
	if got.Link != "http://x" {
		t.Errorf("Link = %q; want http://x", got.Link)
	}
}

func TestFetchAllFeedsFailing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := NewFetcher([]string{srv.URL})
	f.requestDelay = 0

	if _, err := f.Fetch(context.Background(), nil, 5); err == nil {
		t.Fatal("Fetch with every feed failing returned nil error")
	}
}

func TestFetchContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, testFeedXML)
	}))
	defer srv.Close()

	f := NewFetcher([]string{srv.URL, srv.URL})
	f.requestDelay = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Cancellation must interrupt the inter-feed delay
	done := make(chan struct{})
	go func() {
		_, _ = f.Fetch(ctx, nil, 5)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Fetch did not return promptly after cancellation")
	}
}
