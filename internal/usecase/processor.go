// Package usecase drives the parsing pipeline: collect resume texts, have
// the model restate each as schema-shaped JSON, validate, write the JSON to
// the output directory and store the valid documents.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"resume-parser/internal/adapter/repository"
	"resume-parser/internal/domain"
	"resume-parser/internal/jsonio"
	"resume-parser/internal/model"
	"resume-parser/internal/schema"
	"resume-parser/pkg/ai"
)

// TextSource yields resume texts keyed by source file path.
type TextSource interface {
	ReadAll() map[string]string
}

// ResumeParser turns one resume text into schema-shaped JSON.
type ResumeParser interface {
	ParseResume(ctx context.Context, owner, resumeText string, schemaJSON []byte) (*ai.Result, error)
}

// Store persists parsed documents and job state.
type Store interface {
	InsertMany(ctx context.Context, docs []domain.StoredResume) ([]uuid.UUID, error)
	SaveJob(ctx context.Context, j *domain.ParseJob) error
}

type Processor struct {
	source    TextSource
	parser    ResumeParser
	store     Store
	outputDir string
	log       zerolog.Logger
}

func NewProcessor(source TextSource, parser ResumeParser, store Store, outputDir string, log zerolog.Logger) *Processor {
	return &Processor{source: source, parser: parser, store: store, outputDir: outputDir, log: log}
}

// Run executes the pipeline for the given job. Per-file failures are
// recorded on the job and do not stop the remaining files; the job only
// fails as a whole when nothing could be processed or the store rejects the
// batch.
func (p *Processor) Run(ctx context.Context, job *domain.ParseJob) error {
	p.setStatus(ctx, job, domain.JobStatusRunning)

	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		p.setStatus(ctx, job, domain.JobStatusFailed)
		return fmt.Errorf("create output directory: %w", err)
	}

	contents := p.source.ReadAll()

	paths := make([]string, 0, len(contents))
	for path := range contents {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var stored []domain.StoredResume
	storedIdx := make(map[int]int) // job file index -> stored batch index

	for _, path := range paths {
		owner := fileStem(path)
		p.log.Info().Str("file", path).Msg("parsing resume")

		result := domain.FileResult{Path: path}

		res, err := p.parser.ParseResume(ctx, owner, contents[path], schema.ResumeSchema())
		if err != nil {
			p.log.Error().Err(err).Str("file", path).Msg("parse failed")
			result.Error = err.Error()
			job.Files = append(job.Files, result)
			continue
		}

		// The raw model output is written out even when it fails
		// validation, so a broken document can be inspected and fixed.
		outPath := filepath.Join(p.outputDir, owner+".json")
		if err := jsonio.SaveRaw(outPath, res.Content); err != nil {
			p.log.Error().Err(err).Str("file", path).Msg("write parsed output failed")
			result.Error = err.Error()
			job.Files = append(job.Files, result)
			continue
		}
		result.OutputPath = outPath

		if err := model.ValidateJSON(res.Content); err != nil {
			p.log.Error().Err(err).Str("file", path).Msg("parsed resume does not match schema")
			result.Error = err.Error()
			job.Files = append(job.Files, result)
			continue
		}

		p.log.Info().Str("file", path).Str("finish_reason", res.FinishReason).Msg("parsed resume")

		storedIdx[len(job.Files)] = len(stored)
		stored = append(stored, domain.StoredResume{Owner: owner, Document: res.Content})
		job.Files = append(job.Files, result)
	}

	if len(stored) > 0 {
		ids, err := p.store.InsertMany(ctx, stored)
		switch {
		case errors.Is(err, repository.ErrStorageDisabled):
			p.log.Warn().Msg("no database configured, parsed resumes were not stored")
		case err != nil:
			p.setStatus(ctx, job, domain.JobStatusFailed)
			return fmt.Errorf("store parsed resumes: %w", err)
		default:
			for fileIdx, batchIdx := range storedIdx {
				id := ids[batchIdx]
				job.Files[fileIdx].ResumeID = &id
			}
		}
	}

	status := domain.JobStatusDone
	if len(job.Files) > 0 && len(stored) == 0 {
		status = domain.JobStatusFailed
	}
	p.setStatus(ctx, job, status)

	p.log.Info().
		Str("job", job.ID.String()).
		Int("files", len(job.Files)).
		Int("stored", len(stored)).
		Str("status", status).
		Msg("parse job finished")

	return nil
}

// setStatus persists the job state best-effort.
func (p *Processor) setStatus(ctx context.Context, job *domain.ParseJob, status string) {
	job.Status = status
	job.UpdatedAt = time.Now()
	if err := p.store.SaveJob(ctx, job); err != nil {
		p.log.Warn().Err(err).Str("job", job.ID.String()).Msg("failed to save job state")
	}
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
