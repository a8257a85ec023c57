package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"socialbot/config"
	"socialbot/generator"
	"socialbot/scheduler"
	"socialbot/types"
)

// ContentFetcher pulls content items from configured feeds.
type ContentFetcher interface {
	Fetch(ctx context.Context, topics []string, limit int) ([]types.ContentItem, error)
}

// ImageGenerator produces an image for a prompt and returns its local path.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// CaptionGenerator produces a caption for a content item.
type CaptionGenerator interface {
	Generate(ctx context.Context, item types.ContentItem, tone string, includeHashtags bool) (string, error)
}

// Publisher authenticates against the platform and uploads photo posts.
type Publisher interface {
	Authenticate(ctx context.Context) error
	Publish(ctx context.Context, imagePath, caption string) (string, error)
}

// Runner sequences the fetch → generate → publish/schedule pipeline. All
// user-facing progress reporting happens here; the store stays silent.
type Runner struct {
	cfg      config.Config
	store    scheduler.Store
	fetcher  ContentFetcher
	images   ImageGenerator
	captions CaptionGenerator
	poster   Publisher
}

// NewRunner wires the pipeline components together.
func NewRunner(cfg config.Config, store scheduler.Store, fetcher ContentFetcher, images ImageGenerator, captions CaptionGenerator, poster Publisher) *Runner {
	return &Runner{
		cfg:      cfg,
		store:    store,
		fetcher:  fetcher,
		images:   images,
		captions: captions,
		poster:   poster,
	}
}

// FetchContent pulls items from the configured feeds, filtered by topics.
// Empty topics fall back to the configured content topics.
func (r *Runner) FetchContent(ctx context.Context, topics []string, limit int) ([]types.ContentItem, error) {
	if len(topics) == 0 {
		topics = r.cfg.ContentTopics
	}
	return r.fetcher.Fetch(ctx, topics, limit)
}

// CreateResult describes the outcome of CreatePost.
type CreateResult struct {
	PostID    string // set when the post was scheduled
	MediaID   string // set when the post was published immediately
	ImagePath string
	Caption   string
}

// CreatePost generates an image and caption for the item, then either
// publishes immediately or persists a scheduled post.
//
// Image generation failure aborts the operation. Caption generation failure
// falls back to a deterministic caption built from the item, so a post is
// never lost to a flaky caption model.
func (r *Runner) CreatePost(ctx context.Context, item types.ContentItem, scheduledTime string, postNow bool) (CreateResult, error) {
	log.Println("Generating image...")
	imagePath, err := r.images.Generate(ctx, generator.ImagePrompt(item))
	if err != nil {
		return CreateResult{}, fmt.Errorf("image generation failed: %w", err)
	}
	log.Printf("Image generated: %s", imagePath)

	log.Println("Generating caption...")
	caption, err := r.captions.Generate(ctx, item, r.cfg.ContentTone, true)
	if err != nil {
		log.Printf("Caption generation failed, using fallback: %v", err)
		caption = generator.FallbackCaption(item)
	}

	if postNow {
		log.Println("Posting to Instagram...")
		mediaID, err := r.poster.Publish(ctx, imagePath, caption)
		if err != nil {
			return CreateResult{}, fmt.Errorf("publish failed: %w", err)
		}
		return CreateResult{MediaID: mediaID, ImagePath: imagePath, Caption: caption}, nil
	}

	if scheduledTime == "" {
		scheduledTime = r.cfg.PostingTime
	}
	payload := types.PostPayload{
		ContentItem:   item,
		ImagePath:     imagePath,
		Caption:       caption,
		ScheduledTime: scheduledTime,
		CreatedAt:     time.Now().Format(time.RFC3339),
	}
	id, err := r.store.Create(ctx, payload)
	if err != nil {
		return CreateResult{}, fmt.Errorf("schedule post: %w", err)
	}
	return CreateResult{PostID: id, ImagePath: imagePath, Caption: caption}, nil
}

// ListScheduled returns every pending post.
func (r *Runner) ListScheduled(ctx context.Context) ([]types.ScheduledPost, error) {
	return r.store.List(ctx)
}

// PublishScheduled publishes the stored post with the given id and removes it
// from the store on success. A failed publish leaves the record in place so
// the operation can be retried. Returns scheduler.ErrNotFound for unknown ids.
func (r *Runner) PublishScheduled(ctx context.Context, id string) (string, error) {
	payload, err := r.store.Get(ctx, id)
	if err != nil {
		return "", err
	}

	log.Println("Posting to Instagram...")
	mediaID, err := r.poster.Publish(ctx, payload.ImagePath, payload.Caption)
	if err != nil {
		return "", fmt.Errorf("publish failed: %w", err)
	}

	// Removal from the store is what marks the post published
	if _, err := r.store.Delete(ctx, id); err != nil {
		return mediaID, fmt.Errorf("post published as %s but could not be removed from store: %w", mediaID, err)
	}
	return mediaID, nil
}

// DeleteScheduled removes a pending post without publishing it.
func (r *Runner) DeleteScheduled(ctx context.Context, id string) (bool, error) {
	return r.store.Delete(ctx, id)
}

// IsNotFound reports whether an error from the runner means the post id was
// unknown, which callers report rather than treat as a failure.
func IsNotFound(err error) bool {
	return errors.Is(err, scheduler.ErrNotFound)
}
