package models

// MediaCounts is a per-participant tally of attachments by kind. Omitted
// attachments carry no kind information and are not counted here.
type MediaCounts struct {
	Image   int `json:"image"`
	Audio   int `json:"audio"`
	Video   int `json:"video"`
	Sticker int `json:"sticker"`
	File    int `json:"file"`
}

// Total returns the sum over all counted kinds.
func (m MediaCounts) Total() int {
	return m.Image + m.Audio + m.Video + m.Sticker + m.File
}

// WordCount is one ranked entry of the word or emoji frequency tables.
type WordCount struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

// CloudWord is a word-cloud entry; the field names match what cloud
// renderers expect.
type CloudWord struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

// DayCount is one day-label→count pair, chronologically sorted for trend
// display. Label keeps the raw date text from the export.
type DayCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// DomainCount is one ranked link-domain entry.
type DomainCount struct {
	Domain string `json:"domain"`
	Count  int    `json:"count"`
}

// SentimentCounts is a coarse three-way tally from keyword matching.
type SentimentCounts struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// SentimentSummary holds the global tally plus the per-participant split.
type SentimentSummary struct {
	Total    SentimentCounts `json:"total"`
	Sender   SentimentCounts `json:"sender"`
	Receiver SentimentCounts `json:"receiver"`
}

// StatisticsResult is the flat aggregate produced by the statistics engine.
// It holds no reference back to the message sequence, so it can be persisted
// verbatim as a saved analysis and outlive the raw chat.
type StatisticsResult struct {
	SenderName   string `json:"senderName"`
	ReceiverName string `json:"receiverName"`

	Total         int `json:"total"`
	SenderTotal   int `json:"senderTotal"`
	ReceiverTotal int `json:"receiverTotal"`
	TotalDays     int `json:"totalDays"`
	AvgPerDay     int `json:"avgPerDay"`
	TotalLinks    int `json:"totalLinks"`
	MessageCount  int `json:"messageCount"`

	TotalMultimedia int         `json:"totalMultimedia"`
	TotalImages     int         `json:"totalImages"`
	TotalAudios     int         `json:"totalAudios"`
	TotalVideos     int         `json:"totalVideos"`
	TotalStickers   int         `json:"totalStickers"`
	TotalFiles      int         `json:"totalFiles"`
	SenderMedia     MediaCounts `json:"senderMedia"`
	ReceiverMedia   MediaCounts `json:"receiverMedia"`

	SenderAvgLength   int `json:"senderAvgLength"`
	ReceiverAvgLength int `json:"receiverAvgLength"`

	AvgSenderResponse     string         `json:"avgSenderResponse"`
	AvgReceiverResponse   string         `json:"avgReceiverResponse"`
	ConversationStarters  map[string]int `json:"conversationStarters"`
	ConversationStarter   string         `json:"conversationStarter"`
	StarterPercent        int            `json:"starterPercent"`
	LongestSenderStreak   int            `json:"longestSenderStreak"`
	LongestReceiverStreak int            `json:"longestReceiverStreak"`
	MostInsistent         string         `json:"mostInsistent"`
	LongestSilence        string         `json:"longestSilence"`

	TopWords          []WordCount   `json:"topWords"`
	WordCloudData     []CloudWord   `json:"wordCloudData"`
	TopEmojis         []WordCount   `json:"topEmojis"`
	HourCounts        [24]int       `json:"hourCounts"`
	DayCounts         []DayCount    `json:"dayCounts"`
	DayActivityMatrix [7][24]int    `json:"dayActivityMatrix"`
	TopDomains        []DomainCount `json:"topDomains"`

	Sentiment SentimentSummary `json:"sentiment"`
}
