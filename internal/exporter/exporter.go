// Package exporter renders core output structures into the flat formats the
// dashboard offers for download. It consumes parsed messages and statistics
// documents; it holds no logic of its own beyond formatting.
package exporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"wasdash/internal/models"
)

var csvHeader = []string{"date", "time", "sender", "content", "mediaKind", "links"}

// WriteMessagesCSV writes the message sequence as CSV, one row per message.
// Multi-line content stays in a single quoted field; links are joined with
// spaces.
func WriteMessagesCSV(w io.Writer, messages []models.Message) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, msg := range messages {
		record := []string{
			msg.DateText,
			msg.TimeText,
			msg.Sender,
			msg.Content,
			mediaKindLabel(msg),
			strings.Join(msg.Links, " "),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func mediaKindLabel(msg models.Message) string {
	if !msg.IsMultimedia {
		return ""
	}
	return string(msg.MediaKind)
}

// StatsJSON renders a statistics document as indented JSON, the format the
// dashboard downloads and re-imports.
func StatsJSON(stats *models.StatisticsResult) ([]byte, error) {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize statistics: %w", err)
	}
	return data, nil
}
