package http

import (
	"context"
	"errors"
	"log"
	"time"

	"cvgen/internal/adapter/repository"
	"cvgen/internal/domain"
	"cvgen/internal/model"
	"cvgen/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handler struct {
	processor *usecase.Processor
	repo      usecase.JobsRepo
}

func NewHandler(p *usecase.Processor, r usecase.JobsRepo) *Handler {
	return &Handler{processor: p, repo: r}
}

type renderReq struct {
	Document map[string]any `json:"document"`
	Theme    string         `json:"theme,omitempty"`
}

// StartRender queues a render of the posted CV document and returns the job
// id. Validation failures surface when the job is polled.
func (h *Handler) StartRender(c *fiber.Ctx) error {
	var req renderReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if req.Document == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "document is required"})
	}

	job := &domain.RenderJob{
		ID:        uuid.New(),
		Theme:     req.Theme,
		Status:    domain.StatusPending,
		Metadata:  map[string]any{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Document:  req.Document,
	}

	// persist initial job (best-effort)
	if h.repo != nil {
		if err := h.repo.Save(context.Background(), job); err != nil {
			log.Printf("warning: failed to save job: %v", err)
		}
	}

	go func(j *domain.RenderJob) {
		ctx := context.Background()
		if err := h.processor.ProcessJob(ctx, j); err != nil {
			log.Printf("job %s failed: %v", j.ID.String(), err)
		}
	}(job)

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"jobId": job.ID.String(), "status": domain.StatusPending})
}

// JobStatus reports the stored state of a render job.
func (h *Handler) JobStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid job id"})
	}
	job, err := h.repo.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "job not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(job)
}

// ValidateDocument runs the validation half of the pipeline synchronously and
// returns every collected field problem, so editors can lint documents
// without rendering them.
func (h *Handler) ValidateDocument(c *fiber.Ctx) error {
	var req renderReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if req.Document == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "document is required"})
	}

	_, err := model.NewDocument(req.Document, nil)
	if err == nil {
		return c.JSON(fiber.Map{"valid": true})
	}
	problems := []string{err.Error()}
	if list, ok := model.AsErrorList(err); ok {
		problems = problems[:0]
		for _, item := range list {
			problems = append(problems, item.Error())
		}
	}
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"valid": false, "problems": problems})
}

// SchemaHandler serves the generated JSON Schema for editor integration.
func SchemaHandler(c *fiber.Ctx) error {
	data, err := model.SchemaJSON()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	c.Set("Content-Type", "application/schema+json")
	return c.Send(data)
}
