package analyzer

import (
	"sort"

	"wasdash/internal/models"
	"wasdash/internal/parser"
)

// tallyActivity buckets every message by hour of day, by raw date label and
// into the 7×24 day-of-week activity matrix, and sums the extracted links.
func (e *engine) tallyActivity(messages []models.Message, res *models.StatisticsResult) {
	dayCounts := make(map[string]int)

	for _, msg := range messages {
		hour := msg.Timestamp.Hour()
		res.HourCounts[hour]++
		res.DayActivityMatrix[int(msg.Timestamp.Weekday())][hour]++
		dayCounts[msg.DateText]++
		res.TotalLinks += len(msg.Links)
	}

	res.TotalDays = len(dayCounts)
	res.AvgPerDay = roundDiv(res.Total, res.TotalDays)
	res.DayCounts = sortDayCounts(dayCounts)
}

// sortDayCounts orders day labels chronologically for trend display. The
// label stays the raw date text from the export; only the sort key is
// parsed. Labels that fail to parse sort after the valid ones, by text.
func sortDayCounts(dayCounts map[string]int) []models.DayCount {
	type keyed struct {
		entry models.DayCount
		at    int64
		valid bool
	}

	entries := make([]keyed, 0, len(dayCounts))
	for label, count := range dayCounts {
		k := keyed{entry: models.DayCount{Label: label, Count: count}}
		if at, ok := parser.DateValue(label); ok {
			k.at = at.Unix()
			k.valid = true
		}
		entries = append(entries, k)
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch {
		case a.valid != b.valid:
			return a.valid
		case a.valid && a.at != b.at:
			return a.at < b.at
		default:
			return a.entry.Label < b.entry.Label
		}
	})

	sorted := make([]models.DayCount, len(entries))
	for i, k := range entries {
		sorted[i] = k.entry
	}
	return sorted
}
