package errorrepo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/agemaster/internal/domain/clienterror"
)

// Schema creates the table used by PostgresRepository.
const Schema = `
CREATE TABLE IF NOT EXISTS client_errors (
	id          UUID PRIMARY KEY,
	message     TEXT NOT NULL,
	error_type  TEXT NOT NULL DEFAULT '',
	source      TEXT NOT NULL DEFAULT '',
	line        INTEGER NOT NULL DEFAULT 0,
	col         INTEGER NOT NULL DEFAULT 0,
	stack       TEXT NOT NULL DEFAULT '',
	url         TEXT NOT NULL DEFAULT '',
	user_agent  TEXT NOT NULL DEFAULT '',
	client_ip   TEXT NOT NULL DEFAULT '',
	request_id  TEXT NOT NULL DEFAULT '',
	received_at TIMESTAMPTZ NOT NULL
)`

// PostgresRepository implements clienterror.Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the client_errors table when missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, Schema)
	return err
}

// Save inserts a report row.
func (r *PostgresRepository) Save(ctx context.Context, report clienterror.Report) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO client_errors (id, message, error_type, source, line, col, stack, url, user_agent, client_ip, request_id, received_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, report.ID, report.Message, report.Type, report.Source, report.Line, report.Column,
		report.Stack, report.URL, report.UserAgent, report.ClientIP, report.RequestID, report.ReceivedAt)
	return err
}

var _ clienterror.Repository = (*PostgresRepository)(nil)
