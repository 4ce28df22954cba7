// Package database persists saved analyses in SQLite. The raw chat is never
// stored; only the self-contained statistics document survives.
package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"wasdash/internal/migrations"
	"wasdash/internal/models"
	"wasdash/internal/security"

	_ "github.com/mattn/go-sqlite3"
)

type Database struct {
	db        *sql.DB
	encryptor *encryptor
}

func New(dbPath string) (*Database, error) {
	if len(dbPath) == 0 || dbPath[0] == '\x00' {
		return nil, fmt.Errorf("invalid database path")
	}

	if err := security.ValidateFilePath(dbPath); err != nil {
		return nil, fmt.Errorf("invalid database path: %w", err)
	}

	file, err := os.OpenFile(dbPath, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to create database file: %w", err)
	}
	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("failed to close database file: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to ping database: %w (close error: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	schema, err := migrations.GetInitialSchema()
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to read schema: %w (close error: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to initialize schema: %w (close error: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	encryptor, err := NewEncryptor()
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to initialize encryptor: %w (close error: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to initialize encryptor: %w", err)
	}

	return &Database{db: db, encryptor: encryptor}, nil
}

func (d *Database) Close() error {
	return d.db.Close()
}

// SaveAnalysis stores a completed analysis and returns its ID. The
// statistics document is serialized to JSON and encrypted at rest when
// encryption is enabled.
func (d *Database) SaveAnalysis(ctx context.Context, analysis *models.SavedAnalysis) (int64, error) {
	if analysis.Stats == nil {
		return 0, fmt.Errorf("analysis has no statistics document")
	}

	statsJSON, err := json.Marshal(analysis.Stats)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize statistics: %w", err)
	}

	encryptedStats, err := d.encryptor.Encrypt(string(statsJSON))
	if err != nil {
		return 0, fmt.Errorf("failed to encrypt statistics: %w", err)
	}

	query := `
		INSERT INTO saved_analyses (name, sender, receiver, message_count, stats)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := d.db.ExecContext(ctx, query,
		analysis.Name,
		analysis.Sender,
		analysis.Receiver,
		analysis.MessageCount,
		encryptedStats,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save analysis: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted analysis ID: %w", err)
	}
	return id, nil
}

// GetAnalysis fetches one saved analysis with its statistics document.
// It returns (nil, nil) when the ID does not exist.
func (d *Database) GetAnalysis(ctx context.Context, id int64) (*models.SavedAnalysis, error) {
	query := `
		SELECT id, name, sender, receiver, message_count, stats, created_at
		FROM saved_analyses
		WHERE id = ?
	`

	analysis := &models.SavedAnalysis{}
	var encryptedStats string

	err := d.db.QueryRowContext(ctx, query, id).Scan(
		&analysis.ID,
		&analysis.Name,
		&analysis.Sender,
		&analysis.Receiver,
		&analysis.MessageCount,
		&encryptedStats,
		&analysis.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	statsJSON, err := d.encryptor.Decrypt(encryptedStats)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt statistics: %w", err)
	}

	var stats models.StatisticsResult
	if err := json.Unmarshal([]byte(statsJSON), &stats); err != nil {
		return nil, fmt.Errorf("failed to deserialize statistics: %w", err)
	}
	analysis.Stats = &stats

	return analysis, nil
}

// ListAnalyses returns summaries of all saved analyses, newest first.
func (d *Database) ListAnalyses(ctx context.Context) ([]models.AnalysisSummary, error) {
	query := `
		SELECT id, name, sender, receiver, message_count, created_at
		FROM saved_analyses
		ORDER BY created_at DESC, id DESC
	`

	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var summaries []models.AnalysisSummary
	for rows.Next() {
		var s models.AnalysisSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Sender, &s.Receiver, &s.MessageCount, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate analyses: %w", err)
	}

	return summaries, nil
}

// DeleteAnalysis removes one saved analysis. Deleting an unknown ID is not
// an error; it reports whether a row was removed.
func (d *Database) DeleteAnalysis(ctx context.Context, id int64) (bool, error) {
	result, err := d.db.ExecContext(ctx, `DELETE FROM saved_analyses WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete analysis: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to count deleted analyses: %w", err)
	}
	return affected > 0, nil
}

// DeleteAllAnalyses clears the saved analysis store.
func (d *Database) DeleteAllAnalyses(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM saved_analyses`); err != nil {
		return fmt.Errorf("failed to delete analyses: %w", err)
	}
	return nil
}

// DeleteAnalysesOlderThan removes analyses created before the retention
// window and returns how many were removed.
func (d *Database) DeleteAnalysesOlderThan(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	result, err := d.db.ExecContext(ctx,
		`DELETE FROM saved_analyses WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old analyses: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted analyses: %w", err)
	}
	return affected, nil
}
