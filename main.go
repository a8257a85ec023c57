package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"socialbot/api"
	"socialbot/common"
	"socialbot/config"
	"socialbot/fetcher"
	"socialbot/generator"
	"socialbot/orchestrator"
	"socialbot/publisher"
	"socialbot/scheduler"
	"socialbot/tui"
	"socialbot/types"
)

const usage = `socialbot - AI-powered social media content scheduler

Usage:
  socialbot <command> [flags]

Commands:
  fetch-content     Fetch content from configured RSS feeds
  generate-image    Generate an image using DALL-E
  generate-caption  Generate a caption using OpenAI
  create-post       Create and schedule (or publish) a post from RSS content
  list-scheduled    List all scheduled posts
  post-now          Publish a scheduled post immediately by id
  delete-post       Delete a scheduled post by id
  serve             Run the HTTP API server
  tui               Run the interactive terminal UI
`

func main() {
	log.SetOutput(os.Stderr)

	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()
	cfg := config.FromEnv()

	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	ctx := context.Background()

	var err error
	switch os.Args[1] {
	case "fetch-content":
		err = cmdFetchContent(ctx, cfg, os.Args[2:])
	case "generate-image":
		err = cmdGenerateImage(ctx, cfg, os.Args[2:])
	case "generate-caption":
		err = cmdGenerateCaption(ctx, cfg, os.Args[2:])
	case "create-post":
		err = cmdCreatePost(ctx, cfg, os.Args[2:])
	case "list-scheduled":
		err = cmdListScheduled(ctx, cfg)
	case "post-now":
		err = cmdPostNow(ctx, cfg, os.Args[2:])
	case "delete-post":
		err = cmdDeletePost(ctx, cfg, os.Args[2:])
	case "serve":
		err = cmdServe(ctx, cfg, os.Args[2:])
	case "tui":
		err = cmdTUI(ctx, cfg)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Printf("Unknown command: %s\n\n%s", os.Args[1], usage)
		os.Exit(1)
	}

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// newStore picks the store backend from configuration: S3 when a bucket is
// configured, Redis when an address is configured, local files otherwise.
func newStore(ctx context.Context, cfg config.Config) (scheduler.Store, error) {
	if cfg.S3Bucket != "" {
		s3c, err := common.NewS3(ctx, common.S3Config{
			Region:       cfg.S3Region,
			Profile:      cfg.S3Profile,
			UsePathStyle: cfg.S3UsePathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("init S3 store: %w", err)
		}
		return scheduler.NewS3Store(s3c, cfg.S3Bucket, cfg.S3Prefix), nil
	}
	if cfg.RedisAddr != "" {
		store, err := scheduler.NewRedisStore(ctx, scheduler.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err != nil {
			return nil, fmt.Errorf("init Redis store: %w", err)
		}
		return store, nil
	}
	return scheduler.NewFileStore(cfg.DataDir), nil
}

func newRunner(ctx context.Context, cfg config.Config) (*orchestrator.Runner, error) {
	store, err := newStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return orchestrator.NewRunner(
		cfg,
		store,
		fetcher.NewFetcher(cfg.RSSFeeds),
		generator.NewImageGenerator(cfg.OpenAIAPIKey, cfg.ImagesDir),
		generator.NewCaptionGenerator(cfg.OpenAIAPIKey),
		publisher.NewPoster(cfg.InstagramUsername, cfg.InstagramPassword),
	), nil
}

func cmdFetchContent(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("fetch-content", flag.ExitOnError)
	topics := fs.String("topics", "", "Comma-separated list of topics to filter content")
	limit := fs.Int("limit", 5, "Number of content items to fetch")
	extract := fs.Bool("extract", false, "Fill empty descriptions from the article pages")
	fs.Parse(args)

	topicList := cfg.ContentTopics
	if *topics != "" {
		topicList = strings.Split(*topics, ",")
	}

	f := fetcher.NewFetcher(cfg.RSSFeeds)
	items, err := f.Fetch(ctx, topicList, *limit)
	if err != nil {
		return err
	}
	if *extract {
		fetcher.EnrichDescriptions(items)
	}

	fmt.Printf("Found %d content items:\n", len(items))
	for i, item := range items {
		fmt.Printf("\n%d. %s\n", i+1, item.Title)
		fmt.Printf("   Source: %s\n", item.Source)
		fmt.Printf("   Link: %s\n", item.Link)
		fmt.Printf("   Published: %s\n", item.Published)
	}
	return nil
}

func cmdGenerateImage(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("generate-image", flag.ExitOnError)
	prompt := fs.String("prompt", "", "Prompt for image generation (required)")
	fs.Parse(args)

	if *prompt == "" {
		return fmt.Errorf("--prompt is required")
	}

	gen := generator.NewImageGenerator(cfg.OpenAIAPIKey, cfg.ImagesDir)
	path, err := gen.Generate(ctx, *prompt)
	if err != nil {
		return fmt.Errorf("failed to generate image: %w", err)
	}
	fmt.Printf("Image generated successfully and saved to: %s\n", path)
	return nil
}

func cmdGenerateCaption(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("generate-caption", flag.ExitOnError)
	title := fs.String("title", "", "Content title (required)")
	description := fs.String("description", "", "Content description")
	link := fs.String("link", "", "Content link")
	source := fs.String("source", "Manual Entry", "Content source")
	tone := fs.String("tone", "", "Caption tone (professional, casual, humorous)")
	fs.Parse(args)

	if *title == "" {
		return fmt.Errorf("--title is required")
	}

	item := types.ContentItem{
		Title:       *title,
		Description: *description,
		Link:        *link,
		Source:      *source,
		Published:   time.Now().Format("2006-01-02"),
	}

	captionTone := *tone
	if captionTone == "" {
		captionTone = cfg.ContentTone
	}

	gen := generator.NewCaptionGenerator(cfg.OpenAIAPIKey)
	caption, err := gen.Generate(ctx, item, captionTone, true)
	if err != nil {
		log.Printf("Caption generation failed, using fallback: %v", err)
		caption = generator.FallbackCaption(item)
	}

	fmt.Println("\nGenerated Caption:")
	fmt.Println("=================")
	fmt.Println(caption)
	return nil
}

func cmdCreatePost(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("create-post", flag.ExitOnError)
	index := fs.Int("index", 0, "Index of RSS item to use (from fetch-content, 1-based)")
	limit := fs.Int("limit", 5, "Number of content items to fetch for selection")
	postTime := fs.String("time", "", "Posting time (HH:MM format)")
	postNow := fs.Bool("post-now", false, "Post immediately instead of scheduling")
	fs.Parse(args)

	runner, err := newRunner(ctx, cfg)
	if err != nil {
		return err
	}

	items, err := runner.FetchContent(ctx, nil, *limit)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return fmt.Errorf("no content items found")
	}

	var item types.ContentItem
	if *index != 0 {
		if *index < 1 || *index > len(items) {
			return fmt.Errorf("invalid index: choose between 1 and %d", len(items))
		}
		item = items[*index-1]
	} else {
		fmt.Println("Available content items:")
		for i, it := range items {
			fmt.Printf("%d. %s (from %s)\n", i+1, it.Title, it.Source)
		}
		selected, err := promptSelection(len(items))
		if err != nil {
			return err
		}
		item = items[selected-1]
	}

	res, err := runner.CreatePost(ctx, item, *postTime, *postNow)
	if err != nil {
		return err
	}

	fmt.Println("\nGenerated Caption:")
	fmt.Println("=================")
	fmt.Println(res.Caption)

	if *postNow {
		fmt.Printf("\nPosted successfully to Instagram! Media ID: %s\n", res.MediaID)
	} else {
		fmt.Printf("\nPost scheduled successfully! Post ID: %s\n", res.PostID)
	}
	return nil
}

func cmdListScheduled(ctx context.Context, cfg config.Config) error {
	store, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}

	posts, err := store.List(ctx)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		fmt.Println("No scheduled posts found.")
		return nil
	}

	fmt.Printf("Found %d scheduled posts:\n", len(posts))
	for _, post := range posts {
		fmt.Printf("\nID: %s\n", post.ID)
		fmt.Printf("Title: %s\n", post.Payload.ContentItem.Title)
		fmt.Printf("Scheduled for: %s\n", post.Payload.ScheduledTime)
		fmt.Printf("Created at: %s\n", post.Payload.CreatedAt)
	}
	return nil
}

func cmdPostNow(ctx context.Context, cfg config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: socialbot post-now <post_id>")
	}
	id := args[0]

	runner, err := newRunner(ctx, cfg)
	if err != nil {
		return err
	}

	mediaID, err := runner.PublishScheduled(ctx, id)
	if err != nil {
		if orchestrator.IsNotFound(err) {
			fmt.Printf("Post with ID %s not found.\n", id)
			return nil
		}
		return err
	}
	fmt.Printf("Posted successfully to Instagram! Media ID: %s\n", mediaID)
	return nil
}

func cmdDeletePost(ctx context.Context, cfg config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: socialbot delete-post <post_id>")
	}
	id := args[0]

	store, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}

	removed, err := store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if removed {
		fmt.Printf("Post %s deleted successfully.\n", id)
	} else {
		fmt.Printf("Post %s not found.\n", id)
	}
	return nil
}

func cmdServe(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	port := fs.String("port", "8080", "Port for the HTTP API server")
	fs.Parse(args)

	runner, err := newRunner(ctx, cfg)
	if err != nil {
		return err
	}

	addr := ":" + *port
	r := api.NewRouter(runner)
	log.Printf("Starting API server on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  GET    /api/health")
	log.Println("  GET    /api/posts")
	log.Println("  POST   /api/posts")
	log.Println("  POST   /api/posts/:id/publish")
	log.Println("  DELETE /api/posts/:id")

	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	return srv.ListenAndServe()
}

func cmdTUI(ctx context.Context, cfg config.Config) error {
	runner, err := newRunner(ctx, cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(runner))
	_, err = p.Run()
	return err
}

// promptSelection reads a 1-based item selection from stdin.
func promptSelection(max int) (int, error) {
	fmt.Print("Select content item (number): ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return 0, fmt.Errorf("read selection: %w", err)
	}
	selected, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || selected < 1 || selected > max {
		return 0, fmt.Errorf("invalid selection")
	}
	return selected, nil
}
