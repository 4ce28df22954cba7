package analyzer

import (
	"net/url"
	"sort"
	"strings"
	"time"

	"wasdash/internal/constants"
	"wasdash/internal/models"
)

// scanInteractions is the ordered, stateful pass: response latency,
// conversation-starter attribution, streaks, longest silence, link domains
// and sentiment all depend on carrying state across consecutive messages.
// Gaps and streak resets are computed over the full chronological sequence,
// so messages from non-selected participants still end silences and break
// runs.
func (e *engine) scanInteractions(messages []models.Message, res *models.StatisticsResult) {
	var (
		lastSenderAt   time.Time
		lastReceiverAt time.Time
		prevAt         time.Time

		senderLatency   time.Duration
		senderSamples   int
		receiverLatency time.Duration
		receiverSamples int

		longestSilence time.Duration
		streakSender   string
		streakCount    int
	)
	domains := make(map[string]int)

	for i, msg := range messages {
		// The very first message always starts the first conversation;
		// afterwards a start is attributed whenever the gap since the
		// preceding message (any sender) exceeds the threshold.
		if i == 0 {
			res.ConversationStarters[msg.Sender]++
		} else {
			gap := msg.Timestamp.Sub(prevAt)
			if gap > longestSilence {
				longestSilence = gap
			}
			if gap > e.opts.ConversationGap {
				res.ConversationStarters[msg.Sender]++
			}
		}
		prevAt = msg.Timestamp

		// At most one latency sample per reply run: the tracker for the
		// other direction is cleared once answered, so consecutive
		// messages from the same sender add no further samples.
		switch msg.Sender {
		case e.sender:
			if !lastReceiverAt.IsZero() {
				senderLatency += msg.Timestamp.Sub(lastReceiverAt)
				senderSamples++
				lastReceiverAt = time.Time{}
			}
			lastSenderAt = msg.Timestamp
		case e.receiver:
			if !lastSenderAt.IsZero() {
				receiverLatency += msg.Timestamp.Sub(lastSenderAt)
				receiverSamples++
				lastSenderAt = time.Time{}
			}
			lastReceiverAt = msg.Timestamp
		}

		if msg.Sender == streakSender {
			streakCount++
		} else {
			streakSender = msg.Sender
			streakCount = 1
		}
		switch streakSender {
		case e.sender:
			if streakCount > res.LongestSenderStreak {
				res.LongestSenderStreak = streakCount
			}
		case e.receiver:
			if streakCount > res.LongestReceiverStreak {
				res.LongestReceiverStreak = streakCount
			}
		}

		for _, link := range msg.Links {
			if host := linkHost(link); host != "" {
				domains[host]++
			}
		}

		if !msg.IsMultimedia {
			e.bucketSentiment(msg, res)
		}
	}

	res.AvgSenderResponse = FormatDuration(meanDuration(senderLatency, senderSamples))
	res.AvgReceiverResponse = FormatDuration(meanDuration(receiverLatency, receiverSamples))
	res.LongestSilence = FormatDuration(longestSilence)

	senderStarts := res.ConversationStarters[e.sender]
	receiverStarts := res.ConversationStarters[e.receiver]
	if senderStarts >= receiverStarts {
		res.ConversationStarter = e.sender
		res.StarterPercent = percentOf(senderStarts, senderStarts+receiverStarts)
	} else {
		res.ConversationStarter = e.receiver
		res.StarterPercent = percentOf(receiverStarts, senderStarts+receiverStarts)
	}

	if res.LongestSenderStreak >= res.LongestReceiverStreak {
		res.MostInsistent = e.sender
	} else {
		res.MostInsistent = e.receiver
	}

	res.TopDomains = rankDomains(domains, constants.TopDomainCount)
}

type sentimentBucket int

const (
	sentimentNeutral sentimentBucket = iota
	sentimentPositive
	sentimentNegative
)

// bucketSentiment classifies one text message into a coarse three-way
// bucket. Positive keywords are checked first, so a message containing both
// positive and negative keywords counts as positive.
func (e *engine) bucketSentiment(msg models.Message, res *models.StatisticsResult) {
	lower := strings.ToLower(msg.Content)

	bucket := sentimentNeutral
	for _, word := range e.opts.PositiveWords {
		if strings.Contains(lower, word) {
			bucket = sentimentPositive
			break
		}
	}
	if bucket == sentimentNeutral {
		for _, word := range e.opts.NegativeWords {
			if strings.Contains(lower, word) {
				bucket = sentimentNegative
				break
			}
		}
	}

	tally(&res.Sentiment.Total, bucket)
	switch msg.Sender {
	case e.sender:
		tally(&res.Sentiment.Sender, bucket)
	case e.receiver:
		tally(&res.Sentiment.Receiver, bucket)
	}
}

func tally(counts *models.SentimentCounts, bucket sentimentBucket) {
	switch bucket {
	case sentimentPositive:
		counts.Positive++
	case sentimentNegative:
		counts.Negative++
	default:
		counts.Neutral++
	}
}

func meanDuration(sum time.Duration, samples int) time.Duration {
	if samples == 0 {
		return 0
	}
	return sum / time.Duration(samples)
}

func percentOf(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(float64(part)/float64(total)*100 + 0.5)
}

// linkHost extracts the host of a URL with a leading "www." stripped.
// Malformed links yield "" and are silently skipped.
func linkHost(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

func rankDomains(domains map[string]int, limit int) []models.DomainCount {
	ranked := make([]models.DomainCount, 0, len(domains))
	for domain, count := range domains {
		ranked = append(ranked, models.DomainCount{Domain: domain, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Domain < ranked[j].Domain
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
