package parser

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"wasdash/internal/models"
)

// leftToRightMark is an invisible control character WhatsApp sometimes
// prepends to attachment lines.
const leftToRightMark = "‎"

// attachedSuffixes are the locale phrases that follow an attachment file
// name, e.g. "photo.jpg (archivo adjunto)".
var attachedSuffixes = []string{
	" (archivo adjunto)",
	" (file attached)",
}

// legacyAttachedPattern matches the older bracketed attachment form.
var legacyAttachedPattern = regexp.MustCompile(`<(?:adjunto|attached): (.*?)>`)

// omittedPhrases mark attachments that were exported without the file.
var omittedPhrases = []string{
	"(archivo omitido)",
	"(file omitted)",
}

var extensionKinds = map[string]models.MediaKind{
	"jpg":  models.MediaKindImage,
	"jpeg": models.MediaKindImage,
	"png":  models.MediaKindImage,
	"webp": models.MediaKindSticker,
	"mp4":  models.MediaKindVideo,
	"mov":  models.MediaKindVideo,
	"opus": models.MediaKindAudio,
	"m4a":  models.MediaKindAudio,
	"mp3":  models.MediaKindAudio,
}

type attachment struct {
	fileName    string
	kind        models.MediaKind
	placeholder string
}

// detectAttachment recognizes attachment markers in the first-line content
// of a newly started message. On a match the message content is replaced by
// a canonical placeholder and the media kind is classified by file
// extension; unknown extensions fall back to the generic file kind.
func detectAttachment(content string) (attachment, bool) {
	trimmed := strings.TrimPrefix(content, leftToRightMark)

	for _, suffix := range attachedSuffixes {
		if strings.HasSuffix(trimmed, suffix) {
			name := strings.TrimSpace(strings.TrimSuffix(trimmed, suffix))
			return newAttachment(name), true
		}
	}

	if m := legacyAttachedPattern.FindStringSubmatch(trimmed); m != nil {
		return newAttachment(strings.TrimSpace(m[1])), true
	}

	for _, phrase := range omittedPhrases {
		if strings.Contains(content, phrase) {
			return attachment{
				kind:        models.MediaKindOmitted,
				placeholder: "[Multimedia omitido]",
			}, true
		}
	}

	return attachment{}, false
}

func newAttachment(fileName string) attachment {
	return attachment{
		fileName:    fileName,
		kind:        classifyExtension(fileName),
		placeholder: fmt.Sprintf("[Adjunto: %s]", fileName),
	}
}

// classifyExtension is case-insensitive so "photo.JPG" classifies the same
// as "photo.jpg".
func classifyExtension(fileName string) models.MediaKind {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	if kind, ok := extensionKinds[ext]; ok {
		return kind
	}
	return models.MediaKindFile
}
