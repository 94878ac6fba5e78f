// Package http exposes schema validation, resume storage and the parsing
// pipeline over a small fiber API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"resume-parser/internal/adapter/repository"
	"resume-parser/internal/domain"
	"resume-parser/internal/model"
)

// Runner starts the parsing pipeline for a job.
type Runner interface {
	Run(ctx context.Context, job *domain.ParseJob) error
}

// Store is the subset of the repository the handlers need.
type Store interface {
	InsertOne(ctx context.Context, owner string, doc json.RawMessage) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StoredResume, error)
	SaveJob(ctx context.Context, j *domain.ParseJob) error
	GetJob(ctx context.Context, id uuid.UUID) (*domain.ParseJob, error)
}

type Handler struct {
	runner Runner
	store  Store
	log    zerolog.Logger
}

func NewHandler(runner Runner, store Store, log zerolog.Logger) *Handler {
	return &Handler{runner: runner, store: store, log: log}
}

// Register mounts all routes on the app.
func (h *Handler) Register(app *fiber.App) {
	app.Post("/validate", h.ValidateDocument)
	app.Post("/resumes", h.CreateResume)
	app.Get("/resumes/:id", h.GetResume)
	app.Post("/jobs/parse", h.StartParseJob)
	app.Get("/jobs/:id", h.GetJob)
}

// ValidateDocument checks a candidate document against the resume schema and
// reports pass/fail plus the violation list.
func (h *Handler) ValidateDocument(c *fiber.Ctx) error {
	body := c.Body()
	if !json.Valid(body) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "body is not valid JSON"})
	}

	err := model.ValidateJSON(body)
	if err == nil {
		return c.JSON(fiber.Map{"valid": true, "violations": []model.Violation{}})
	}

	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(fiber.Map{"valid": false, "violations": verr.Violations})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

type createResumeReq struct {
	Owner    string          `json:"owner"`
	Document json.RawMessage `json:"document"`
}

// CreateResume validates and stores one resume document.
func (h *Handler) CreateResume(c *fiber.Ctx) error {
	var req createResumeReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if len(req.Document) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "document is required"})
	}

	if err := model.ValidateJSON(req.Document); err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":      "document does not match the resume schema",
				"violations": verr.Violations,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := h.store.InsertOne(c.UserContext(), req.Owner, req.Document)
	if errors.Is(err, repository.ErrStorageDisabled) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		h.log.Error().Err(err).Msg("failed to store resume")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store resume"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id.String()})
}

func (h *Handler) GetResume(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	res, err := h.store.GetByID(c.UserContext(), id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "resume not found"})
	case errors.Is(err, repository.ErrStorageDisabled):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		h.log.Error().Err(err).Str("id", id.String()).Msg("failed to load resume")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load resume"})
	}

	return c.JSON(res)
}

// StartParseJob spawns the parsing pipeline in the background and replies
// with the job id right away.
func (h *Handler) StartParseJob(c *fiber.Ctx) error {
	job := domain.NewParseJob()

	if err := h.store.SaveJob(c.UserContext(), job); err != nil {
		h.log.Warn().Err(err).Msg("failed to save job")
	}

	go func(j *domain.ParseJob) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()
		if err := h.runner.Run(ctx, j); err != nil {
			h.log.Error().Err(err).Str("job", j.ID.String()).Msg("parse job failed")
		}
	}(job)

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"jobId": job.ID.String(), "status": "started"})
}

func (h *Handler) GetJob(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	job, err := h.store.GetJob(c.UserContext(), id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "job not found"})
	case errors.Is(err, repository.ErrStorageDisabled):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		h.log.Error().Err(err).Str("id", id.String()).Msg("failed to load job")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load job"})
	}

	return c.JSON(job)
}
