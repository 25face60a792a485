package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bestchance/orderdesk/internal/domain/model"
	"github.com/bestchance/orderdesk/internal/domain/repository"
)

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage keeps the submission ledger in PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type submissionRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Storage) Submissions() repository.SubmissionRepository {
	return &submissionRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS order_submissions (
            id UUID PRIMARY KEY,
            project_id TEXT NOT NULL,
            flow TEXT NOT NULL,
            username TEXT NOT NULL,
            payload JSONB NOT NULL,
            succeeded BOOLEAN NOT NULL,
            response TEXT NOT NULL DEFAULT '',
            submitted_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS project_submission_stats (
            project_id TEXT PRIMARY KEY,
            attempts BIGINT NOT NULL DEFAULT 0,
            successes BIGINT NOT NULL DEFAULT 0,
            last_submitted_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_order_submissions_project ON order_submissions(project_id, submitted_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- SubmissionRepository implementation ---

// Record stores the attempt and bumps the per-project counters in one transaction.
func (r *submissionRepository) Record(ctx context.Context, sub model.Submission) error {
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = time.Now().UTC()
	}
	payload := sub.Payload
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertSubmission = `INSERT INTO order_submissions
                                  (id, project_id, flow, username, payload, succeeded, response, submitted_at)
                                  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
		if _, err := tx.Exec(ctx, insertSubmission,
			sub.ID, sub.ProjectID, string(sub.Flow), sub.Username, payload, sub.Succeeded, sub.Response, sub.SubmittedAt,
		); err != nil {
			return err
		}

		successes := 0
		if sub.Succeeded {
			successes = 1
		}
		const upsertStats = `INSERT INTO project_submission_stats (project_id, attempts, successes, last_submitted_at)
                             VALUES ($1, 1, $2, $3)
                             ON CONFLICT (project_id) DO UPDATE
                             SET attempts = project_submission_stats.attempts + 1,
                                 successes = project_submission_stats.successes + EXCLUDED.successes,
                                 last_submitted_at = GREATEST(project_submission_stats.last_submitted_at, EXCLUDED.last_submitted_at)`
		if _, err := tx.Exec(ctx, upsertStats, sub.ProjectID, successes, sub.SubmittedAt); err != nil {
			return err
		}
		return nil
	})
}

func (r *submissionRepository) ListByProject(ctx context.Context, projectID string, limit int) ([]model.Submission, error) {
	const query = `SELECT id, project_id, flow, username, payload, succeeded, response, submitted_at
                   FROM order_submissions WHERE project_id=$1
                   ORDER BY submitted_at DESC
                   LIMIT $2`
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.storage.pool.Query(ctx, query, projectID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Submission, 0)
	for rows.Next() {
		var (
			s    model.Submission
			flow string
		)
		if err := rows.Scan(&s.ID, &s.ProjectID, &flow, &s.Username, &s.Payload, &s.Succeeded, &s.Response, &s.SubmittedAt); err != nil {
			return nil, err
		}
		s.Flow = model.Flow(flow)
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *submissionRepository) Summary(ctx context.Context, projectID string) (model.SubmissionSummary, error) {
	const query = `SELECT attempts, successes, last_submitted_at FROM project_submission_stats WHERE project_id=$1`
	summary := model.SubmissionSummary{ProjectID: projectID}
	var attempts, successes int64
	err := r.storage.pool.QueryRow(ctx, query, projectID).Scan(&attempts, &successes, &summary.LastSubmittedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return summary, nil
		}
		return model.SubmissionSummary{}, err
	}
	summary.Attempts = int(attempts)
	summary.Successes = int(successes)
	return summary, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
