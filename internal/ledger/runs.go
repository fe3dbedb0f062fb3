package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrRunNotFound is returned when no run matches a lookup.
var ErrRunNotFound = errors.New("run not found")

const runColumns = "id, input_path, mode, started_at, finished_at, eligible, sent, failed, interrupted"

// BeginRun records the start of a run and returns it with a fresh ID.
func (s *Store) BeginRun(ctx context.Context, inputPath, mode string, eligible int) (*Run, error) {
	run := &Run{
		ID:        uuid.NewString(),
		InputPath: inputPath,
		Mode:      mode,
		StartedAt: time.Now().UTC(),
		Eligible:  eligible,
	}
	_, err := s.exec(ctx,
		`INSERT INTO runs (id, input_path, mode, started_at, eligible) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.InputPath, run.Mode, formatTime(run.StartedAt), run.Eligible,
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// RecordDelivery appends one resolved invite to its run.
func (s *Store) RecordDelivery(ctx context.Context, delivery Delivery) error {
	if delivery.RunID == "" {
		return errors.New("record delivery: run id required")
	}
	if delivery.CreatedAt.IsZero() {
		delivery.CreatedAt = time.Now().UTC()
	}
	_, err := s.exec(ctx,
		`INSERT INTO deliveries (
            run_id, invite_id, name, phone, digits, outcome, error_message, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		delivery.RunID,
		delivery.InviteID,
		delivery.Name,
		delivery.Phone,
		delivery.Digits,
		delivery.Outcome,
		nullableString(delivery.ErrorMessage),
		formatTime(delivery.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

// FinishRun stores the final counters. interrupted marks runs stopped before
// every eligible invite was resolved.
func (s *Store) FinishRun(ctx context.Context, runID string, sent, failed int, interrupted bool) error {
	res, err := s.exec(ctx,
		`UPDATE runs SET finished_at = ?, sent = ?, failed = ?, interrupted = ? WHERE id = ?`,
		formatTime(time.Now()), sent, failed, boolToInt(interrupted), runID,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("finish run %s: %w", runID, ErrRunNotFound)
	}
	return nil
}

// ListRuns returns the most recent runs first. limit <= 0 returns all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := "SELECT " + runColumns + " FROM runs ORDER BY started_at DESC"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// FindRun resolves a run by full ID or unique prefix.
func (s *Store) FindRun(ctx context.Context, idOrPrefix string) (Run, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return Run{}, ErrRunNotFound
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+runColumns+" FROM runs WHERE id = ? OR id LIKE ? ORDER BY started_at DESC LIMIT 2",
		idOrPrefix, stripLikeWildcards(idOrPrefix)+"%",
	)
	if err != nil {
		return Run{}, fmt.Errorf("query run: %w", err)
	}
	defer rows.Close()

	var matches []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return Run{}, fmt.Errorf("scan run: %w", err)
		}
		if run.ID == idOrPrefix {
			return run, nil
		}
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		return Run{}, err
	}
	switch len(matches) {
	case 0:
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, idOrPrefix)
	case 1:
		return matches[0], nil
	default:
		return Run{}, fmt.Errorf("run prefix %q is ambiguous", idOrPrefix)
	}
}

// Deliveries lists a run's deliveries in the order they were resolved.
func (s *Store) Deliveries(ctx context.Context, runID string) ([]Delivery, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, invite_id, name, phone, digits, outcome, error_message, created_at
         FROM deliveries WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query deliveries: %w", err)
	}
	defer rows.Close()

	var deliveries []Delivery
	for rows.Next() {
		var (
			d          Delivery
			errMessage sql.NullString
			createdRaw sql.NullString
		)
		if err := rows.Scan(&d.ID, &d.RunID, &d.InviteID, &d.Name, &d.Phone, &d.Digits, &d.Outcome, &errMessage, &createdRaw); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		d.ErrorMessage = errMessage.String
		d.CreatedAt = parseTime(createdRaw)
		deliveries = append(deliveries, d)
	}
	return deliveries, rows.Err()
}

// DeliveredInviteIDs returns invite IDs with a sent delivery in any run that
// was not a preview. Blank IDs are never returned: they do not identify a
// guest.
func (s *Store) DeliveredInviteIDs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT d.invite_id FROM deliveries d
         JOIN runs r ON r.id = d.run_id
         WHERE d.outcome = ? AND r.mode <> ? AND TRIM(d.invite_id) <> ''`,
		OutcomeSent, ModePreview,
	)
	if err != nil {
		return nil, fmt.Errorf("query delivered invites: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan invite id: %w", err)
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (Run, error) {
	var (
		run         Run
		startedRaw  sql.NullString
		finishedRaw sql.NullString
		interrupted int
	)
	if err := scanner.Scan(
		&run.ID,
		&run.InputPath,
		&run.Mode,
		&startedRaw,
		&finishedRaw,
		&run.Eligible,
		&run.Sent,
		&run.Failed,
		&interrupted,
	); err != nil {
		return Run{}, err
	}
	run.StartedAt = parseTime(startedRaw)
	run.FinishedAt = parseTime(finishedRaw)
	run.Interrupted = interrupted != 0
	return run, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func stripLikeWildcards(value string) string {
	replacer := strings.NewReplacer("%", "", "_", "")
	return replacer.Replace(value)
}
