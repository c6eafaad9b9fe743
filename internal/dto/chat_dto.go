package dto

import "encoding/json"

const (
	RoleSystem = "system"
	RoleUser   = "user"

	PartText     = "text"
	PartImageURL = "image_url"
)

// ChatMessage is forwarded to the model untouched. Content is either a plain
// string or an array of ContentPart.
type ChatMessage struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

type ImageURL struct {
	URL string `json:"url"`
}

type ExtractRequest struct {
	Messages []ChatMessage `json:"messages"`
}

func TextPart(text string) ContentPart {
	return ContentPart{Type: PartText, Text: text}
}

func ImagePart(url string) ContentPart {
	return ContentPart{Type: PartImageURL, ImageURL: &ImageURL{URL: url}}
}

// NewTextMessage builds a message whose content is a plain string.
func NewTextMessage(role, text string) ChatMessage {
	raw, _ := json.Marshal(text)
	return ChatMessage{Role: role, Content: raw}
}

// NewPartsMessage builds a multimodal message.
func NewPartsMessage(role string, parts ...ContentPart) ChatMessage {
	raw, _ := json.Marshal(parts)
	return ChatMessage{Role: role, Content: raw}
}
