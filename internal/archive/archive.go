// Package archive extracts the chat transcript from an uploaded export.
// WhatsApp exports arrive either as a bare text file or as a zip archive
// containing the transcript next to the attachment files.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"

	"wasdash/internal/security"
)

// maxTranscriptBytes caps how much transcript is read out of an archive so
// a malicious zip cannot balloon in memory.
const maxTranscriptBytes = 256 << 20

var zipMagic = []byte{'P', 'K', 0x03, 0x04}

// ExtractChatText returns the transcript text from an uploaded export.
// Plain text payloads pass through unchanged; zip archives are searched for
// the transcript member, preferring names containing "_chat" over other
// .txt members.
func ExtractChatText(data []byte) (string, error) {
	if !bytes.HasPrefix(data, zipMagic) {
		return string(data), nil
	}

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open zip archive: %w", err)
	}

	member := findTranscript(reader)
	if member == nil {
		return "", fmt.Errorf("no chat transcript found in archive")
	}

	rc, err := member.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open archive member %s: %w", member.Name, err)
	}
	defer rc.Close()

	text, err := io.ReadAll(io.LimitReader(rc, maxTranscriptBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read archive member %s: %w", member.Name, err)
	}

	return string(text), nil
}

func findTranscript(reader *zip.Reader) *zip.File {
	var fallback *zip.File
	for _, f := range reader.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if err := security.ValidateArchiveName(f.Name); err != nil {
			continue
		}
		name := strings.ToLower(f.Name)
		if !strings.HasSuffix(name, ".txt") {
			continue
		}
		if strings.Contains(name, "_chat") {
			return f
		}
		if fallback == nil {
			fallback = f
		}
	}
	return fallback
}
