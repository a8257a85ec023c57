package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"socialbot/types"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const captionSystemPrompt = "You are a professional social media content creator. " +
	"Your task is to create engaging, concise captions for Instagram posts."

// CaptionGenerator produces post captions through the OpenAI chat API.
type CaptionGenerator struct {
	client openai.Client
	model  openai.ChatModel
}

// NewCaptionGenerator builds a caption generator using gpt-4o.
func NewCaptionGenerator(apiKey string) *CaptionGenerator {
	return &CaptionGenerator{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  openai.ChatModelGPT4o,
	}
}

// Generate asks the model for a caption in the requested tone. Callers decide
// what to do on failure; FallbackCaption provides the standard substitute.
func (g *CaptionGenerator) Generate(ctx context.Context, item types.ContentItem, tone string, includeHashtags bool) (string, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(captionSystemPrompt),
			openai.UserMessage(CaptionPrompt(item, tone, includeHashtags)),
		},
		MaxTokens:   openai.Int(300),
		Temperature: openai.Float(0.7),
	})
	if err != nil {
		return "", fmt.Errorf("caption generation: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("caption generation: empty choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// CaptionPrompt builds the user prompt for caption generation.
func CaptionPrompt(item types.ContentItem, tone string, includeHashtags bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create an engaging Instagram caption for the following content:\n\n")
	fmt.Fprintf(&b, "Title: %s\n", item.Title)
	fmt.Fprintf(&b, "Description: %s\n", item.Description)
	fmt.Fprintf(&b, "Source: %s\n\n", item.Source)
	fmt.Fprintf(&b, "The caption should:\n")
	fmt.Fprintf(&b, "- Be in a %s tone\n", tone)
	b.WriteString("- Be concise (max 150 words)\n")
	b.WriteString("- Include a call to action\n")
	b.WriteString("- Reference the original source")
	if includeHashtags {
		b.WriteString("\n- Include 3-5 relevant hashtags at the end")
	}
	return b.String()
}

// FallbackCaption is the deterministic caption used when generation fails.
func FallbackCaption(item types.ContentItem) string {
	return fmt.Sprintf("Check out this interesting content: %s %s", item.Title, item.Link)
}
