// Package parser turns a WhatsApp conversation export into a normalized
// sequence of typed message records. It never fails on malformed input:
// lines that do not match the entry grammar are folded into the current
// message as continuations or dropped when there is nothing to continue.
package parser

import (
	"strings"

	"wasdash/internal/models"
)

// defaultEncryptionNotices are substrings of the service banner WhatsApp
// injects into exports; such lines are discarded rather than appended.
var defaultEncryptionNotices = []string{
	"cifrados de extremo a extremo",
	"end-to-end encrypted",
}

// Options configures a Parser. The zero value uses the built-in defaults.
type Options struct {
	// EncryptionNotices overrides the phrases that identify the
	// end-to-end-encryption service banner.
	EncryptionNotices []string
}

type Parser struct {
	notices []string
}

func New(opts Options) *Parser {
	notices := opts.EncryptionNotices
	if len(notices) == 0 {
		notices = defaultEncryptionNotices
	}
	return &Parser{notices: notices}
}

// Parse converts raw export text into the ordered message sequence plus the
// distinct participants in first-seen order. Messages that end up with an
// empty sender or content (system and service lines that slipped through
// classification) are dropped from the final sequence.
func (p *Parser) Parse(text string) models.ParseResult {
	var (
		messages     []models.Message
		participants []string
	)
	seen := make(map[string]struct{})
	var current *messageBuilder

	flush := func() {
		if current == nil {
			return
		}
		msg := current.build()
		if msg.Sender != "" && msg.Content != "" {
			messages = append(messages, msg)
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")

		if parts, ok := scanEntryLine(line); ok {
			flush()
			current = newMessageBuilder(parts)
			if sender := current.msg.Sender; sender != "" {
				if _, dup := seen[sender]; !dup {
					seen[sender] = struct{}{}
					participants = append(participants, sender)
				}
			}
			continue
		}

		if current == nil {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || p.isServiceNotice(line) {
			continue
		}
		current.appendContinuation(trimmed)
	}
	flush()

	return models.ParseResult{Messages: messages, Participants: participants}
}

func (p *Parser) isServiceNotice(line string) bool {
	for _, phrase := range p.notices {
		if strings.Contains(line, phrase) {
			return true
		}
	}
	return false
}

// messageBuilder is the mutable staging record for the message currently
// being assembled; it is finalized into an immutable Message when the next
// entry starts or input ends.
type messageBuilder struct {
	msg models.Message
}

func newMessageBuilder(parts entryParts) *messageBuilder {
	msg := models.Message{
		DateText:  parts.dateText,
		TimeText:  parts.timeText,
		Timestamp: buildTimestamp(parts.dateText, parts.timeText),
		Sender:    strings.TrimSpace(parts.sender),
		Content:   strings.TrimSpace(parts.body),
		MediaKind: models.MediaKindNone,
	}

	// Attachment detection runs once, on the first-line content only.
	if att, ok := detectAttachment(msg.Content); ok {
		msg.IsMultimedia = true
		msg.MediaKind = att.kind
		msg.MediaFileName = att.fileName
		msg.Content = att.placeholder
	}

	msg.Links = extractLinks(msg.Content, nil)
	return &messageBuilder{msg: msg}
}

// appendContinuation folds a trimmed continuation line into the staged
// message and rescans the accumulated content for links.
func (b *messageBuilder) appendContinuation(trimmed string) {
	b.msg.Content += "\n" + trimmed
	b.msg.Links = extractLinks(b.msg.Content, b.msg.Links)
}

func (b *messageBuilder) build() models.Message {
	return b.msg
}
