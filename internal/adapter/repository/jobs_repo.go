package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cvgen/internal/domain"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ErrNotFound is returned when a job id has no row.
var ErrNotFound = errors.New("render job not found")

// JobsRepo persists render jobs in Postgres. A nil pool turns every call into
// a no-op so the serve mode keeps working without a database.
type JobsRepo struct {
	pool *pgxpool.Pool
}

func NewJobsRepo(pool *pgxpool.Pool) *JobsRepo {
	return &JobsRepo{pool: pool}
}

func (r *JobsRepo) Save(ctx context.Context, j *domain.RenderJob) error {
	if r.pool == nil {
		return nil
	}

	metaB, _ := json.Marshal(j.Metadata)
	docB, _ := json.Marshal(j.Document)

	_, err := r.pool.Exec(ctx, `INSERT INTO render_jobs (id, theme, status, error, metadata, document, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (id) DO UPDATE SET theme = EXCLUDED.theme, status = EXCLUDED.status, error = EXCLUDED.error, metadata = EXCLUDED.metadata, updated_at = EXCLUDED.updated_at`,
		j.ID, j.Theme, j.Status, j.Error, metaB, docB, j.CreatedAt, j.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save render job: %w", err)
	}
	return nil
}

func (r *JobsRepo) Get(ctx context.Context, id string) (*domain.RenderJob, error) {
	if r.pool == nil {
		return nil, ErrNotFound
	}

	var (
		j     domain.RenderJob
		metaB []byte
	)
	row := r.pool.QueryRow(ctx, `SELECT id, theme, status, error, metadata, created_at, updated_at
		FROM render_jobs WHERE id = $1`, id)
	if err := row.Scan(&j.ID, &j.Theme, &j.Status, &j.Error, &metaB, &j.CreatedAt, &j.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load render job: %w", err)
	}
	if len(metaB) > 0 {
		_ = json.Unmarshal(metaB, &j.Metadata)
	}
	return &j, nil
}
