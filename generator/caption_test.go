package generator

import (
	"strings"
	"testing"

	"socialbot/types"
)

func TestFallbackCaption(t *testing.T) {
	item := types.ContentItem{
		Title: "AI in 2024",
		Link:  "http://x",
	}
	want := "Check out this interesting content: AI in 2024 http://x"
	if got := FallbackCaption(item); got != want {
		t.Fatalf("FallbackCaption = %q; want %q", got, want)
	}
}

func TestCaptionPrompt(t *testing.T) {
	item := types.ContentItem{
		Title:       "AI in 2024",
		Description: "The year in review",
		Source:      "Feed A",
	}

	cases := []struct {
		name            string
		tone            string
		includeHashtags bool
		wantHashtags    bool
	}{
		{"with hashtags", "professional", true, true},
		{"without hashtags", "casual", false, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			prompt := CaptionPrompt(item, c.tone, c.includeHashtags)

			for _, fragment := range []string{"AI in 2024", "The year in review", "Feed A", c.tone} {
				if !strings.Contains(prompt, fragment) {
					t.Errorf("prompt missing %q:\n%s", fragment, prompt)
				}
			}
			if got := strings.Contains(prompt, "hashtags"); got != c.wantHashtags {
				t.Errorf("hashtag instruction present = %v; want %v", got, c.wantHashtags)
			}
		})
	}
}

func TestImagePrompt(t *testing.T) {
	item := types.ContentItem{Title: "AI in 2024"}
	prompt := ImagePrompt(item)
	if !strings.Contains(prompt, "AI in 2024") {
		t.Fatalf("image prompt missing title: %s", prompt)
	}
	if !strings.Contains(prompt, "Instagram") {
		t.Fatalf("image prompt missing platform hint: %s", prompt)
	}
}

func TestPromptSlug(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"alphanumeric", "hello123", "hello123"},
		{"spaces and punctuation", "a cat, sitting!", "a_cat__sitting"},
		{"truncated", strings.Repeat("x", 40), strings.Repeat("x", 30)},
		{"trailing underscores stripped", "abc...", "abc"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := promptSlug(c.in); got != c.want {
				t.Fatalf("promptSlug(%q) = %q; want %q", c.in, got, c.want)
			}
		})
	}
}
