package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"wsn_dashboard/internal/models"
)

type ReadingSQLite struct {
	db *sql.DB
}

func NewReadingSQLite(db *sql.DB) *ReadingSQLite { return &ReadingSQLite{db: db} }

const (
	insertReadingSQL = `
		INSERT INTO readings (id, mode, iteration, time_label, row_json, status_json, timer, received_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	// newest first inside the subquery, flipped back to ascending outside
	selectRecentReadingsSQL = `
		SELECT id, mode, iteration, time_label, row_json, status_json, timer, received_at FROM (
			SELECT id, mode, iteration, time_label, row_json, status_json, timer, received_at
			FROM readings WHERE mode = ? ORDER BY received_at DESC LIMIT ?
		) ORDER BY received_at ASC
	`
)

// Insert stores one reading, filling ID and ReceivedAt when empty.
func (r *ReadingSQLite) Insert(ctx context.Context, rd models.Reading) error {
	if rd.ID == "" {
		rd.ID = uuid.NewString()
	}
	if rd.ReceivedAt.IsZero() {
		rd.ReceivedAt = time.Now().UTC()
	}

	rowJSON, err := json.Marshal(rd.Values)
	if err != nil {
		return fmt.Errorf("marshal reading values: %w", err)
	}
	statusJSON, err := json.Marshal(rd.Status)
	if err != nil {
		return fmt.Errorf("marshal reading status: %w", err)
	}

	_, err = r.db.ExecContext(ctx, insertReadingSQL,
		rd.ID, rd.Mode, rd.Iteration, rd.TimeLabel,
		string(rowJSON), string(statusJSON), rd.Timer, rd.ReceivedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert reading: %w", err)
	}
	return nil
}

func (r *ReadingSQLite) Recent(ctx context.Context, mode string, limit int) ([]models.Reading, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, selectRecentReadingsSQL, mode, limit)
	if err != nil {
		return nil, fmt.Errorf("select readings: %w", err)
	}
	defer rows.Close()

	out := make([]models.Reading, 0, limit)
	for rows.Next() {
		var (
			rd         models.Reading
			rowJSON    string
			statusJSON string
		)
		if err := rows.Scan(&rd.ID, &rd.Mode, &rd.Iteration, &rd.TimeLabel, &rowJSON, &statusJSON, &rd.Timer, &rd.ReceivedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(rowJSON), &rd.Values); err != nil {
			return nil, fmt.Errorf("reading %s values: %w", rd.ID, err)
		}
		if err := json.Unmarshal([]byte(statusJSON), &rd.Status); err != nil {
			return nil, fmt.Errorf("reading %s status: %w", rd.ID, err)
		}
		rd.ReceivedAt = rd.ReceivedAt.UTC()
		out = append(out, rd)
	}
	return out, rows.Err()
}
