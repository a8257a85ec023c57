package orchestrator

import (
	"context"
	"errors"
	"testing"

	"socialbot/config"
	"socialbot/scheduler"
	"socialbot/types"
)

type fakeFetcher struct {
	items []types.ContentItem
	err   error
}

func (f *fakeFetcher) Fetch(_ context.Context, topics []string, limit int) ([]types.ContentItem, error) {
	return f.items, f.err
}

type fakeImages struct {
	path string
	err  error
}

func (f *fakeImages) Generate(_ context.Context, prompt string) (string, error) {
	return f.path, f.err
}

type fakeCaptions struct {
	caption string
	err     error
}

func (f *fakeCaptions) Generate(_ context.Context, item types.ContentItem, tone string, includeHashtags bool) (string, error) {
	return f.caption, f.err
}

type fakePoster struct {
	mediaID   string
	err       error
	published int
}

func (f *fakePoster) Authenticate(_ context.Context) error { return f.err }

func (f *fakePoster) Publish(_ context.Context, imagePath, caption string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.published++
	return f.mediaID, nil
}

func testItem() types.ContentItem {
	return types.ContentItem{
		Title:     "AI in 2024",
		Link:      "http://x",
		Source:    "Feed A",
		Published: "2024-01-01",
	}
}

func newTestRunner(t *testing.T, images *fakeImages, captions *fakeCaptions, poster *fakePoster) (*Runner, scheduler.Store) {
	t.Helper()
	cfg := config.Config{ContentTone: "professional", PostingTime: "09:00"}
	store := scheduler.NewFileStore(t.TempDir())
	return NewRunner(cfg, store, &fakeFetcher{}, images, captions, poster), store
}

func TestCreatePostSchedules(t *testing.T) {
	ctx := context.Background()
	runner, store := newTestRunner(t,
		&fakeImages{path: "images/x.png"},
		&fakeCaptions{caption: "Check it out!"},
		&fakePoster{mediaID: "m1"},
	)

	res, err := runner.CreatePost(ctx, testItem(), "", false)
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if res.PostID == "" {
		t.Fatal("CreatePost returned empty post id")
	}
	if res.MediaID != "" {
		t.Errorf("scheduled post got media id %q", res.MediaID)
	}

	payload, err := store.Get(ctx, res.PostID)
	if err != nil {
		t.Fatalf("Get scheduled post: %v", err)
	}
	if payload.Caption != "Check it out!" {
		t.Errorf("Caption = %q; want Check it out!", payload.Caption)
	}
	if payload.ScheduledTime != "09:00" {
		t.Errorf("ScheduledTime = %q; want config default 09:00", payload.ScheduledTime)
	}
	if payload.CreatedAt == "" {
		t.Error("CreatedAt not set")
	}
}

func TestCreatePostImmediate(t *testing.T) {
	ctx := context.Background()
	poster := &fakePoster{mediaID: "m42"}
	runner, store := newTestRunner(t,
		&fakeImages{path: "images/x.png"},
		&fakeCaptions{caption: "Check it out!"},
		poster,
	)

	res, err := runner.CreatePost(ctx, testItem(), "", true)
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if res.MediaID != "m42" {
		t.Errorf("MediaID = %q; want m42", res.MediaID)
	}

	// Immediate publish must not persist anything
	posts, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("store contains %d posts after post-now; want 0", len(posts))
	}
}

func TestCreatePostAbortsOnImageFailure(t *testing.T) {
	ctx := context.Background()
	runner, store := newTestRunner(t,
		&fakeImages{err: errors.New("image api down")},
		&fakeCaptions{caption: "unused"},
		&fakePoster{},
	)

	if _, err := runner.CreatePost(ctx, testItem(), "", false); err == nil {
		t.Fatal("CreatePost with failing image generation returned nil error")
	}

	posts, _ := store.List(ctx)
	if len(posts) != 0 {
		t.Errorf("store contains %d posts after aborted create; want 0", len(posts))
	}
}

func TestCreatePostFallbackCaption(t *testing.T) {
	ctx := context.Background()
	runner, store := newTestRunner(t,
		&fakeImages{path: "images/x.png"},
		&fakeCaptions{err: errors.New("caption api down")},
		&fakePoster{},
	)

	res, err := runner.CreatePost(ctx, testItem(), "10:00", false)
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	payload, err := store.Get(ctx, res.PostID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	want := "Check out this interesting content: AI in 2024 http://x"
	if payload.Caption != want {
		t.Errorf("Caption = %q; want %q", payload.Caption, want)
	}
	if payload.ScheduledTime != "10:00" {
		t.Errorf("ScheduledTime = %q; want 10:00", payload.ScheduledTime)
	}
}

func TestPublishScheduledRemovesRecord(t *testing.T) {
	ctx := context.Background()
	poster := &fakePoster{mediaID: "m7"}
	runner, store := newTestRunner(t,
		&fakeImages{path: "images/x.png"},
		&fakeCaptions{caption: "Check it out!"},
		poster,
	)

	res, err := runner.CreatePost(ctx, testItem(), "", false)
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	mediaID, err := runner.PublishScheduled(ctx, res.PostID)
	if err != nil {
		t.Fatalf("PublishScheduled: %v", err)
	}
	if mediaID != "m7" {
		t.Errorf("media id = %q; want m7", mediaID)
	}

	if _, err := store.Get(ctx, res.PostID); !errors.Is(err, scheduler.ErrNotFound) {
		t.Fatalf("record still present after successful publish: %v", err)
	}
}

func TestPublishScheduledFailureKeepsRecord(t *testing.T) {
	ctx := context.Background()
	runner, store := newTestRunner(t,
		&fakeImages{path: "images/x.png"},
		&fakeCaptions{caption: "Check it out!"},
		&fakePoster{},
	)

	res, err := runner.CreatePost(ctx, testItem(), "", false)
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	// Swap in a failing poster for the publish attempt
	runner.poster = &fakePoster{err: errors.New("upload rejected")}
	if _, err := runner.PublishScheduled(ctx, res.PostID); err == nil {
		t.Fatal("PublishScheduled with failing poster returned nil error")
	}

	// The record stays pending and is retriable
	if _, err := store.Get(ctx, res.PostID); err != nil {
		t.Fatalf("record missing after failed publish: %v", err)
	}
	runner.poster = &fakePoster{mediaID: "m8"}
	if _, err := runner.PublishScheduled(ctx, res.PostID); err != nil {
		t.Fatalf("retry after failed publish: %v", err)
	}
}

func TestPublishScheduledUnknownID(t *testing.T) {
	runner, _ := newTestRunner(t, &fakeImages{}, &fakeCaptions{}, &fakePoster{})

	_, err := runner.PublishScheduled(context.Background(), "post_unknown")
	if !IsNotFound(err) {
		t.Fatalf("PublishScheduled unknown id returned %v; want not-found", err)
	}
}

func TestFetchContentDefaultsToConfiguredTopics(t *testing.T) {
	fetched := &fakeFetcher{items: []types.ContentItem{testItem()}}
	cfg := config.Config{ContentTopics: []string{"technology"}}
	runner := NewRunner(cfg, scheduler.NewFileStore(t.TempDir()), fetched, &fakeImages{}, &fakeCaptions{}, &fakePoster{})

	items, err := runner.FetchContent(context.Background(), nil, 5)
	if err != nil {
		t.Fatalf("FetchContent: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("FetchContent returned %d items; want 1", len(items))
	}
}
