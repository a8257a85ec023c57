package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"socialbot/types"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ImageGenerator produces post images through the OpenAI Images API and
// stores them locally.
type ImageGenerator struct {
	client    openai.Client
	httpc     *http.Client
	imagesDir string
}

// NewImageGenerator builds a generator that saves downloaded images under
// imagesDir. The directory is created on first use.
func NewImageGenerator(apiKey, imagesDir string) *ImageGenerator {
	return &ImageGenerator{
		client:    openai.NewClient(option.WithAPIKey(apiKey)),
		httpc:     &http.Client{Timeout: 60 * time.Second},
		imagesDir: imagesDir,
	}
}

// Generate requests a DALL-E 3 image for the prompt, downloads it, and
// returns the local file path.
func (g *ImageGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Model:   openai.ImageModelDallE3,
		Prompt:  prompt,
		Size:    openai.ImageGenerateParamsSize1024x1024,
		Quality: openai.ImageGenerateParamsQualityStandard,
		N:       openai.Int(1),
	})
	if err != nil {
		return "", fmt.Errorf("image generation: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", errors.New("image generation: empty response")
	}

	return g.download(ctx, resp.Data[0].URL, prompt)
}

func (g *ImageGenerator) download(ctx context.Context, imageURL, prompt string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("download image: %w", err)
	}
	resp, err := g.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download image: unexpected status %d", resp.StatusCode)
	}

	if err := os.MkdirAll(g.imagesDir, 0o755); err != nil {
		return "", fmt.Errorf("create images directory: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.png", time.Now().Format("20060102_150405"), promptSlug(prompt))
	path := filepath.Join(g.imagesDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return path, nil
}

// ImagePrompt builds an image generation prompt from a content item.
func ImagePrompt(item types.ContentItem) string {
	return fmt.Sprintf("Create a visually appealing social media image representing: %s. "+
		"The image should be professional, engaging, and suitable for Instagram.", item.Title)
}

// promptSlug turns the first 30 characters of a prompt into a filesystem-safe
// filename fragment.
func promptSlug(prompt string) string {
	if len(prompt) > 30 {
		prompt = prompt[:30]
	}
	var b strings.Builder
	for _, r := range prompt {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return strings.TrimRight(b.String(), "_")
}
