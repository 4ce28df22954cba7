// Package analyzer derives the statistical summary of a parsed conversation.
// All computation is pure: every call builds fresh local accumulators, so the
// engine is safely re-entrant across repeated runs with different selected
// participant pairs.
package analyzer

import (
	"math"
	"sort"
	"time"
	"unicode/utf8"

	"wasdash/internal/constants"
	"wasdash/internal/models"
)

// Options configures one statistics computation. Zero-valued fields fall
// back to the built-in defaults.
type Options struct {
	// ConversationGap is the silence threshold after which the next
	// message counts as starting a new conversation.
	ConversationGap time.Duration
	StopWords       []string
	PositiveWords   []string
	NegativeWords   []string
}

// DefaultOptions returns the configuration the dashboard ships with.
func DefaultOptions() Options {
	return Options{
		ConversationGap: constants.DefaultConversationGapHours * time.Hour,
		StopWords:       defaultStopWords,
		PositiveWords:   defaultPositiveWords,
		NegativeWords:   defaultNegativeWords,
	}
}

func (o Options) withDefaults() Options {
	defaults := DefaultOptions()
	if o.ConversationGap <= 0 {
		o.ConversationGap = defaults.ConversationGap
	}
	if o.StopWords == nil {
		o.StopWords = defaults.StopWords
	}
	if o.PositiveWords == nil {
		o.PositiveWords = defaults.PositiveWords
	}
	if o.NegativeWords == nil {
		o.NegativeWords = defaults.NegativeWords
	}
	return o
}

type engine struct {
	opts      Options
	stopWords map[string]struct{}
	sender    string
	receiver  string
}

// Compute runs the statistics engine over the full message sequence for the
// two selected participants. It returns nil when there is nothing to
// compute: an empty sequence or an empty participant name. Global metrics
// (histograms, frequencies, silences, streak resets) consider every message
// in the sequence; multimedia totals and averages are scoped to the two
// selected participants only. That asymmetry is deliberate and matches the
// 1-to-1 view of a possibly multi-party log.
func Compute(messages []models.Message, senderName, receiverName string, opts Options) *models.StatisticsResult {
	if len(messages) == 0 || senderName == "" || receiverName == "" {
		return nil
	}

	opts = opts.withDefaults()
	e := &engine{
		opts:      opts,
		stopWords: make(map[string]struct{}, len(opts.StopWords)),
		sender:    senderName,
		receiver:  receiverName,
	}
	for _, w := range opts.StopWords {
		e.stopWords[w] = struct{}{}
	}

	res := &models.StatisticsResult{
		SenderName:   senderName,
		ReceiverName: receiverName,
		Total:        len(messages),
		MessageCount: len(messages),
		ConversationStarters: map[string]int{
			senderName:   0,
			receiverName: 0,
		},
	}

	e.tallyActivity(messages, res)
	e.tallyFrequencies(messages, res)
	e.tallyParticipants(messages, res)
	e.scanInteractions(messages, res)

	return res
}

// tallyParticipants computes per-participant message counts, average content
// lengths and the media tallies. Messages from participants other than the
// selected pair are excluded here.
func (e *engine) tallyParticipants(messages []models.Message, res *models.StatisticsResult) {
	var senderLen, receiverLen int

	for _, msg := range messages {
		switch msg.Sender {
		case e.sender:
			res.SenderTotal++
			senderLen += utf8.RuneCountInString(msg.Content)
			countMedia(&res.SenderMedia, msg.MediaKind)
		case e.receiver:
			res.ReceiverTotal++
			receiverLen += utf8.RuneCountInString(msg.Content)
			countMedia(&res.ReceiverMedia, msg.MediaKind)
		}
	}

	res.SenderAvgLength = roundDiv(senderLen, res.SenderTotal)
	res.ReceiverAvgLength = roundDiv(receiverLen, res.ReceiverTotal)

	res.TotalImages = res.SenderMedia.Image + res.ReceiverMedia.Image
	res.TotalAudios = res.SenderMedia.Audio + res.ReceiverMedia.Audio
	res.TotalVideos = res.SenderMedia.Video + res.ReceiverMedia.Video
	res.TotalStickers = res.SenderMedia.Sticker + res.ReceiverMedia.Sticker
	res.TotalFiles = res.SenderMedia.File + res.ReceiverMedia.File
	res.TotalMultimedia = res.TotalImages + res.TotalAudios +
		res.TotalVideos + res.TotalStickers + res.TotalFiles
}

func countMedia(counts *models.MediaCounts, kind models.MediaKind) {
	switch kind {
	case models.MediaKindImage:
		counts.Image++
	case models.MediaKindAudio:
		counts.Audio++
	case models.MediaKindVideo:
		counts.Video++
	case models.MediaKindSticker:
		counts.Sticker++
	case models.MediaKindFile:
		counts.File++
	}
}

// roundDiv divides with a count||1 denominator so empty slices degrade to 0
// instead of failing.
func roundDiv(sum, count int) int {
	if count <= 0 {
		count = 1
	}
	return int(math.Round(float64(sum) / float64(count)))
}

// rankCounts orders a frequency table by descending count. Ties break on the
// text so repeated runs over identical input produce identical output.
func rankCounts(freq map[string]int, limit int) []models.WordCount {
	ranked := make([]models.WordCount, 0, len(freq))
	for text, count := range freq {
		ranked = append(ranked, models.WordCount{Text: text, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Text < ranked[j].Text
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
