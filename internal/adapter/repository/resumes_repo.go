// Package repository persists validated resume documents and parse jobs in
// Postgres, documents are stored as JSONB.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"resume-parser/internal/domain"
)

// ErrStorageDisabled is returned by lookups when no database is configured.
// Writes are a no-op in that case, the pipeline still produces files.
var ErrStorageDisabled = errors.New("storage disabled: no database configured")

// ErrNotFound is returned when a resume id has no row.
var ErrNotFound = errors.New("resume not found")

type ResumesRepo struct {
	pool *pgxpool.Pool
}

func NewResumesRepo(pool *pgxpool.Pool) *ResumesRepo {
	return &ResumesRepo{pool: pool}
}

// InsertOne stores a single resume document and returns its generated id.
func (r *ResumesRepo) InsertOne(ctx context.Context, owner string, doc json.RawMessage) (uuid.UUID, error) {
	if r.pool == nil {
		return uuid.Nil, ErrStorageDisabled
	}

	id := uuid.New()
	now := time.Now()

	_, err := r.pool.Exec(ctx, `INSERT INTO resumes (id, owner, document, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5)`,
		id, owner, doc, now, now)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert resume for %s: %w", owner, err)
	}
	return id, nil
}

// InsertMany stores a batch of documents keyed by owner in one round trip
// and returns the generated ids in input order.
func (r *ResumesRepo) InsertMany(ctx context.Context, docs []domain.StoredResume) ([]uuid.UUID, error) {
	if r.pool == nil {
		return nil, ErrStorageDisabled
	}

	now := time.Now()
	batch := &pgx.Batch{}
	ids := make([]uuid.UUID, 0, len(docs))

	for _, d := range docs {
		id := d.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		ids = append(ids, id)
		batch.Queue(`INSERT INTO resumes (id, owner, document, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5)
			ON CONFLICT (id) DO UPDATE SET owner = EXCLUDED.owner, document = EXCLUDED.document, updated_at = EXCLUDED.updated_at`,
			id, d.Owner, d.Document, now, now)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range docs {
		if _, err := br.Exec(); err != nil {
			return nil, fmt.Errorf("insert resumes batch: %w", err)
		}
	}
	return ids, nil
}

func (r *ResumesRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.StoredResume, error) {
	if r.pool == nil {
		return nil, ErrStorageDisabled
	}

	var res domain.StoredResume
	err := r.pool.QueryRow(ctx, `SELECT id, owner, document, created_at, updated_at FROM resumes WHERE id = $1`, id).
		Scan(&res.ID, &res.Owner, &res.Document, &res.CreatedAt, &res.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select resume %s: %w", id, err)
	}
	return &res, nil
}

// SaveJob upserts the state of a parse job. Storage being unavailable is not
// an error here, job tracking is best-effort like the rest of the pipeline.
func (r *ResumesRepo) SaveJob(ctx context.Context, j *domain.ParseJob) error {
	if r.pool == nil {
		return nil
	}

	filesB, err := json.Marshal(j.Files)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `INSERT INTO parse_jobs (id, status, files, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status, files = EXCLUDED.files, updated_at = EXCLUDED.updated_at`,
		j.ID, j.Status, filesB, j.CreatedAt, j.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save parse job %s: %w", j.ID, err)
	}
	return nil
}

func (r *ResumesRepo) GetJob(ctx context.Context, id uuid.UUID) (*domain.ParseJob, error) {
	if r.pool == nil {
		return nil, ErrStorageDisabled
	}

	var (
		job    domain.ParseJob
		filesB []byte
	)
	err := r.pool.QueryRow(ctx, `SELECT id, status, files, created_at, updated_at FROM parse_jobs WHERE id = $1`, id).
		Scan(&job.ID, &job.Status, &filesB, &job.CreatedAt, &job.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select parse job %s: %w", id, err)
	}
	if err := json.Unmarshal(filesB, &job.Files); err != nil {
		return nil, fmt.Errorf("decode files of parse job %s: %w", id, err)
	}
	return &job, nil
}
