package service

import (
	"context"
	"fmt"
	"time"

	"wasdash/internal/analyzer"
	"wasdash/internal/metrics"
	"wasdash/internal/models"
	"wasdash/internal/parser"
	"wasdash/internal/tracing"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// AnalysisStore is the persistence surface the service needs; satisfied by
// *database.Database.
type AnalysisStore interface {
	SaveAnalysis(ctx context.Context, analysis *models.SavedAnalysis) (int64, error)
	GetAnalysis(ctx context.Context, id int64) (*models.SavedAnalysis, error)
	ListAnalyses(ctx context.Context) ([]models.AnalysisSummary, error)
	DeleteAnalysis(ctx context.Context, id int64) (bool, error)
	DeleteAllAnalyses(ctx context.Context) error
}

// AnalysisService orchestrates the parse → compute → persist flow. Parsing
// and computation are pure and build fresh state per call, so the service is
// safe for concurrent requests.
type AnalysisService struct {
	store    AnalysisStore
	parser   *parser.Parser
	opts     analyzer.Options
	logger   *logrus.Logger
	notifier *Notifier
}

func NewAnalysisService(store AnalysisStore, cfg models.AnalysisConfig, logger *logrus.Logger) *AnalysisService {
	opts := analyzer.DefaultOptions()
	if cfg.ConversationGapHours > 0 {
		opts.ConversationGap = time.Duration(cfg.ConversationGapHours) * time.Hour
	}
	if len(cfg.StopWords) > 0 {
		opts.StopWords = cfg.StopWords
	}
	if len(cfg.PositiveWords) > 0 {
		opts.PositiveWords = cfg.PositiveWords
	}
	if len(cfg.NegativeWords) > 0 {
		opts.NegativeWords = cfg.NegativeWords
	}

	return &AnalysisService{
		store:    store,
		parser:   parser.New(parser.Options{EncryptionNotices: cfg.EncryptionNotices}),
		opts:     opts,
		logger:   logger,
		notifier: NewNotifier(),
	}
}

// Notifier exposes the store-change event feed for watch subscribers.
func (s *AnalysisService) Notifier() *Notifier {
	return s.notifier
}

// Parse converts raw export text into the message sequence and participant
// set.
func (s *AnalysisService) Parse(ctx context.Context, text string) models.ParseResult {
	ctx, span := tracing.StartSpan(ctx, "chat_parse")
	defer span.End()

	start := time.Now()
	result := s.parser.Parse(text)

	metrics.RecordTimer("chat_parse_duration", time.Since(start), nil, "Chat parse duration")
	metrics.AddToCounter("chat_messages_parsed_total", float64(len(result.Messages)), nil, "Total messages parsed")

	tracing.AddSpanAttributes(ctx,
		attribute.Int("chat.messages", len(result.Messages)),
		attribute.Int("chat.participants", len(result.Participants)),
	)

	s.logger.WithFields(logrus.Fields{
		"messages":     len(result.Messages),
		"participants": len(result.Participants),
	}).Debug("Parsed chat export")

	return result
}

// Compute runs the statistics engine over an already parsed sequence. A nil
// result means the statistics are not computable (empty sequence or missing
// participant name), not a failure.
func (s *AnalysisService) Compute(ctx context.Context, messages []models.Message, sender, receiver string) *models.StatisticsResult {
	ctx, span := tracing.StartSpan(ctx, "stats_compute")
	defer span.End()

	start := time.Now()
	stats := analyzer.Compute(messages, sender, receiver, s.opts)
	metrics.RecordTimer("stats_compute_duration", time.Since(start), nil, "Statistics computation duration")

	tracing.AddSpanAttributes(ctx, attribute.Bool("stats.computable", stats != nil))
	return stats
}

// Analyze parses the export and computes statistics for the selected pair in
// one step.
func (s *AnalysisService) Analyze(ctx context.Context, text, sender, receiver string) (*models.StatisticsResult, models.ParseResult) {
	result := s.Parse(ctx, text)
	stats := s.Compute(ctx, result.Messages, sender, receiver)
	return stats, result
}

// SaveAnalysis persists a computed statistics document and notifies watch
// subscribers.
func (s *AnalysisService) SaveAnalysis(ctx context.Context, name string, stats *models.StatisticsResult) (int64, error) {
	if stats == nil {
		return 0, fmt.Errorf("cannot save empty analysis")
	}
	if name == "" {
		name = fmt.Sprintf("%s vs %s", stats.SenderName, stats.ReceiverName)
	}

	analysis := &models.SavedAnalysis{
		Name:         name,
		Sender:       stats.SenderName,
		Receiver:     stats.ReceiverName,
		MessageCount: stats.MessageCount,
		Stats:        stats,
	}

	id, err := s.store.SaveAnalysis(ctx, analysis)
	if err != nil {
		tracing.RecordError(ctx, err)
		return 0, fmt.Errorf("failed to save analysis: %w", err)
	}

	metrics.IncrementCounter("analyses_saved_total", nil, "Total analyses saved")
	s.logger.WithFields(logrus.Fields{
		"analysis_id": id,
		"name":        name,
		"messages":    stats.MessageCount,
	}).Info("Saved analysis")

	s.notifier.Publish(Event{
		Type:         EventAnalysisSaved,
		AnalysisID:   id,
		Name:         name,
		Sender:       stats.SenderName,
		Receiver:     stats.ReceiverName,
		MessageCount: stats.MessageCount,
	})

	return id, nil
}

// ListAnalyses returns saved analysis summaries, newest first.
func (s *AnalysisService) ListAnalyses(ctx context.Context) ([]models.AnalysisSummary, error) {
	summaries, err := s.store.ListAnalyses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	return summaries, nil
}

// GetAnalysis fetches one saved analysis; (nil, nil) when not found.
func (s *AnalysisService) GetAnalysis(ctx context.Context, id int64) (*models.SavedAnalysis, error) {
	analysis, err := s.store.GetAnalysis(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return analysis, nil
}

// DeleteAnalysis removes one saved analysis, reporting whether it existed.
func (s *AnalysisService) DeleteAnalysis(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.store.DeleteAnalysis(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete analysis: %w", err)
	}
	if deleted {
		s.notifier.Publish(Event{Type: EventAnalysisDeleted, AnalysisID: id})
	}
	return deleted, nil
}

// DeleteAllAnalyses clears the saved analysis store.
func (s *AnalysisService) DeleteAllAnalyses(ctx context.Context) error {
	if err := s.store.DeleteAllAnalyses(ctx); err != nil {
		return fmt.Errorf("failed to clear analyses: %w", err)
	}
	s.notifier.Publish(Event{Type: EventAnalysesCleared})
	return nil
}
