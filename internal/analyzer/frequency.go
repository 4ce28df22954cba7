package analyzer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"wasdash/internal/constants"
	"wasdash/internal/models"
)

// wordPattern extracts lowercase alphabetic tokens including the accented
// Latin letters common in Spanish chats.
var wordPattern = regexp.MustCompile(`[a-záéíóúñü]+`)

// emojiPattern covers the main emoji blocks: emoticons, symbols and
// pictographs, transport, flags, miscellaneous and supplemental symbols.
var emojiPattern = regexp.MustCompile(`[\x{1F600}-\x{1F64F}\x{1F300}-\x{1F5FF}\x{1F680}-\x{1F6FF}\x{1F1E0}-\x{1F1FF}\x{2600}-\x{26FF}\x{2700}-\x{27BF}\x{1F900}-\x{1F9FF}]`)

// tallyFrequencies builds the word and emoji frequency tables. Words come
// from non-multimedia content only, lowercased, with short tokens and stop
// words dropped. Emojis are scanned in every message, including multimedia
// placeholder text.
func (e *engine) tallyFrequencies(messages []models.Message, res *models.StatisticsResult) {
	wordFreq := make(map[string]int)
	emojiFreq := make(map[string]int)

	for _, msg := range messages {
		if !msg.IsMultimedia {
			for _, word := range wordPattern.FindAllString(strings.ToLower(msg.Content), -1) {
				if utf8.RuneCountInString(word) <= 2 {
					continue
				}
				if _, stop := e.stopWords[word]; stop {
					continue
				}
				wordFreq[word]++
			}
		}

		for _, emoji := range emojiPattern.FindAllString(msg.Content, -1) {
			emojiFreq[emoji]++
		}
	}

	res.TopWords = rankCounts(wordFreq, constants.TopWordCount)
	res.TopEmojis = rankCounts(emojiFreq, constants.TopEmojiCount)

	cloud := rankCounts(wordFreq, constants.CloudWordCount)
	res.WordCloudData = make([]models.CloudWord, len(cloud))
	for i, w := range cloud {
		res.WordCloudData[i] = models.CloudWord{Text: w.Text, Value: w.Count}
	}
}
