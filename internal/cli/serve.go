package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	httpadapter "cvgen/internal/adapter/http"
	repo "cvgen/internal/adapter/repository"
	"cvgen/internal/infrastructure/migration"
	"cvgen/internal/usecase"
	infra "cvgen/pkg/infrastructure"
	"cvgen/pkg/logging"

	"github.com/gofiber/fiber/v2"
)

// runServe starts the HTTP rendering service. The history database is
// optional: without one, renders still work and only job polling is lost.
func runServe(ctx context.Context, errOut io.Writer) Result {
	logger := logging.NewLogger()

	pool, err := infra.NewHistoryPool(ctx)
	if err != nil {
		logger.Warn("history DB not available, job status disabled", "error", err)
	} else if err := migration.RunMigrations(ctx, pool); err != nil {
		fmt.Fprintln(errOut, err)
		return Result{ExitCode: ExitInternalError}
	}

	jobsRepo := repo.NewJobsRepo(pool)
	processor := usecase.NewProcessor(infra.NewChromedpRenderer(), jobsRepo, logger)

	app := fiber.New()
	h := httpadapter.NewHandler(processor, jobsRepo)
	app.Post("/render", h.StartRender)
	app.Post("/validate", h.ValidateDocument)
	app.Get("/jobs/:id", h.JobStatus)
	app.Get("/schema.json", httpadapter.SchemaHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	logger.Info("serving", "port", port)
	if err := app.Listen(":" + port); err != nil {
		fmt.Fprintln(errOut, err)
		return Result{ExitCode: ExitInternalError}
	}
	return Result{ExitCode: ExitOK}
}
