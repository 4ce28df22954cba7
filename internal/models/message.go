package models

import (
	"time"
)

type MediaKind string

const (
	MediaKindNone    MediaKind = "none"
	MediaKindImage   MediaKind = "image"
	MediaKindSticker MediaKind = "sticker"
	MediaKindVideo   MediaKind = "video"
	MediaKindAudio   MediaKind = "audio"
	MediaKindFile    MediaKind = "file"
	MediaKindOmitted MediaKind = "omitted"
)

// Message is one normalized logical chat entry. A single entry may span
// several source lines; continuation lines are folded into Content during
// parsing and the record is immutable afterwards.
type Message struct {
	DateText      string    `json:"date"`
	TimeText      string    `json:"time"`
	Timestamp     time.Time `json:"timestamp"`
	Sender        string    `json:"sender"`
	Content       string    `json:"content"`
	IsMultimedia  bool      `json:"isMultimedia"`
	MediaKind     MediaKind `json:"mediaKind"`
	MediaFileName string    `json:"mediaFileName,omitempty"`
	Links         []string  `json:"links,omitempty"`
}

// ParseResult is the parser output: the ordered message sequence plus the
// distinct sender names in first-seen order.
type ParseResult struct {
	Messages     []Message `json:"messages"`
	Participants []string  `json:"participants"`
}
