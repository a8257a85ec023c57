package types

// ContentItem represents one normalized piece of source content, either
// fetched from an RSS feed or entered manually. Fields are free-form text;
// manual entries may leave any of them empty.
type ContentItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Source      string `json:"source"`
	Published   string `json:"published"`
}

// PostPayload is everything that makes up a pending social post except its
// store-assigned identifier: the source content, the generated image and
// caption, and scheduling metadata.
type PostPayload struct {
	ContentItem   ContentItem `json:"content_item"`
	ImagePath     string      `json:"image_path"`
	Caption       string      `json:"caption"`
	ScheduledTime string      `json:"scheduled_time"`
	CreatedAt     string      `json:"created_at"`
}

// ScheduledPost pairs a stored payload with the identifier it lives under.
type ScheduledPost struct {
	ID      string      `json:"id"`
	Payload PostPayload `json:"payload"`
}
