package parser

import (
	"strings"
	"testing"
	"time"

	"wasdash/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBasicConversation(t *testing.T) {
	text := strings.Join([]string{
		"13/2/24, 10:00 - Ana: Hola",
		"13/2/24, 10:05 - Ben: Hola Ana",
		"13/2/24, 10:06 - Ana: nos vemos?",
	}, "\n")

	result := New(Options{}).Parse(text)

	require.Len(t, result.Messages, 3)
	assert.Equal(t, []string{"Ana", "Ben"}, result.Participants)

	first := result.Messages[0]
	assert.Equal(t, "13/2/24", first.DateText)
	assert.Equal(t, "10:00", first.TimeText)
	assert.Equal(t, "Ana", first.Sender)
	assert.Equal(t, "Hola", first.Content)
	assert.Equal(t, models.MediaKindNone, first.MediaKind)
	assert.False(t, first.IsMultimedia)
	assert.Equal(t, time.Date(2024, time.February, 13, 10, 0, 0, 0, time.Local), first.Timestamp)
}

func TestParseContinuationLines(t *testing.T) {
	text := strings.Join([]string{
		"13/2/24, 10:00 - Ana: primera línea",
		"segunda línea",
		"",
		"tercera línea",
		"13/2/24, 10:05 - Ben: ok",
	}, "\n")

	result := New(Options{}).Parse(text)

	require.Len(t, result.Messages, 2)
	assert.Equal(t, "primera línea\nsegunda línea\ntercera línea", result.Messages[0].Content)
	assert.Equal(t, "ok", result.Messages[1].Content)
}

func TestParseCRLFLineEndings(t *testing.T) {
	text := "13/2/24, 10:00 - Ana: Hola\r\n13/2/24, 10:05 - Ben: Hola Ana\r\n"

	result := New(Options{}).Parse(text)

	require.Len(t, result.Messages, 2)
	assert.Equal(t, "Hola", result.Messages[0].Content)
	assert.Equal(t, "Hola Ana", result.Messages[1].Content)
}

func TestParseDropsServiceNotices(t *testing.T) {
	text := strings.Join([]string{
		"13/2/24, 9:59 - Los mensajes están cifrados de extremo a extremo.",
		"13/2/24, 10:00 - Ana: Hola",
		"Los mensajes están cifrados de extremo a extremo. Nadie fuera de este chat puede leerlos.",
		"13/2/24, 10:05 - Ben: Hola Ana",
	}, "\n")

	result := New(Options{}).Parse(text)

	require.Len(t, result.Messages, 2)
	assert.Equal(t, "Hola", result.Messages[0].Content)
	assert.Equal(t, []string{"Ana", "Ben"}, result.Participants)
}

func TestParseCustomServiceNotices(t *testing.T) {
	text := strings.Join([]string{
		"13/2/24, 10:00 - Ana: Hola",
		"chiffrées de bout en bout",
	}, "\n")

	p := New(Options{EncryptionNotices: []string{"chiffrées de bout en bout"}})
	result := p.Parse(text)

	require.Len(t, result.Messages, 1)
	assert.Equal(t, "Hola", result.Messages[0].Content)
}

func TestParseAttachments(t *testing.T) {
	text := strings.Join([]string{
		"13/2/24, 10:00 - Ana: IMG-20240213-WA0001.jpg (archivo adjunto)",
		"13/2/24, 10:01 - Ben: " + leftToRightMark + "(archivo omitido)",
		"13/2/24, 10:02 - Ana: hola de nuevo",
	}, "\n")

	result := New(Options{}).Parse(text)
	require.Len(t, result.Messages, 3)

	img := result.Messages[0]
	assert.True(t, img.IsMultimedia)
	assert.Equal(t, models.MediaKindImage, img.MediaKind)
	assert.Equal(t, "IMG-20240213-WA0001.jpg", img.MediaFileName)
	assert.Equal(t, "[Adjunto: IMG-20240213-WA0001.jpg]", img.Content)

	omitted := result.Messages[1]
	assert.True(t, omitted.IsMultimedia)
	assert.Equal(t, models.MediaKindOmitted, omitted.MediaKind)
	assert.Empty(t, omitted.MediaFileName)
	assert.Equal(t, "[Multimedia omitido]", omitted.Content)

	assert.False(t, result.Messages[2].IsMultimedia)
}

func TestParseExtractsLinksAcrossContinuations(t *testing.T) {
	text := strings.Join([]string{
		"13/2/24, 10:00 - Ana: mira https://www.example.com/articulo",
		"y también https://golang.org/doc",
		"13/2/24, 10:05 - Ben: sin enlaces",
	}, "\n")

	result := New(Options{}).Parse(text)
	require.Len(t, result.Messages, 2)

	assert.Equal(t, []string{
		"https://www.example.com/articulo",
		"https://golang.org/doc",
	}, result.Messages[0].Links)
	assert.Empty(t, result.Messages[1].Links)
}

func TestParseDuplicateLinksCountedOnce(t *testing.T) {
	text := "13/2/24, 10:00 - Ana: https://example.com\notra vez https://example.com"

	result := New(Options{}).Parse(text)
	require.Len(t, result.Messages, 1)
	assert.Equal(t, []string{"https://example.com"}, result.Messages[0].Links)
}

func TestParseNeverFails(t *testing.T) {
	inputs := []string{
		"",
		"\n\n\n",
		"texto sin formato alguno",
		"13/2/24",
		"13/2/24, 10:00",
		"13/2/24, 10:00 - sin dos puntos",
		strings.Repeat("a", 10000),
		"\x00\x01\x02",
	}

	for _, input := range inputs {
		result := New(Options{}).Parse(input)
		assert.Empty(t, result.Messages)
		assert.Empty(t, result.Participants)
	}
}

func TestParseDropsEmptyContentMessages(t *testing.T) {
	text := strings.Join([]string{
		"13/2/24, 10:00 - Ana:",
		"13/2/24, 10:05 - Ben: hola",
	}, "\n")

	result := New(Options{}).Parse(text)

	// The empty message is dropped from the sequence but its sender still
	// counts as a participant.
	require.Len(t, result.Messages, 1)
	assert.Equal(t, "Ben", result.Messages[0].Sender)
	assert.Equal(t, []string{"Ana", "Ben"}, result.Participants)
}

func TestParsePreservesOrder(t *testing.T) {
	var lines []string
	for i := 0; i < 50; i++ {
		lines = append(lines, "13/2/24, 10:00 - Ana: mensaje")
		lines = append(lines, "13/2/24, 10:01 - Ben: respuesta")
	}

	result := New(Options{}).Parse(strings.Join(lines, "\n"))
	require.Len(t, result.Messages, 100)
	for i, msg := range result.Messages {
		if i%2 == 0 {
			assert.Equal(t, "Ana", msg.Sender)
		} else {
			assert.Equal(t, "Ben", msg.Sender)
		}
	}
}
