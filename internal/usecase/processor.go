package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cvgen/internal/domain"
	"cvgen/internal/model"
	"cvgen/internal/render"
	"cvgen/internal/theme"

	"gopkg.in/yaml.v3"
)

// PDFRenderer turns rendered HTML into the binary artifacts. The concrete
// implementation drives a headless browser and is treated as an external
// collaborator with its own timeout policy.
type PDFRenderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
	RenderHTMLToPNGs(ctx context.Context, html string) ([][]byte, error)
}

// JobsRepo persists render job history. Saves are best-effort; a nil repo
// disables persistence.
type JobsRepo interface {
	Save(ctx context.Context, j *domain.RenderJob) error
	Get(ctx context.Context, id string) (*domain.RenderJob, error)
}

// Processor runs the rendering pipeline: parse, override, validate, render,
// write artifacts. It holds no per-document state, so independent renders may
// run concurrently.
type Processor struct {
	renderer PDFRenderer
	repo     JobsRepo
	logger   *slog.Logger
}

func NewProcessor(r PDFRenderer, repo JobsRepo, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{renderer: r, repo: repo, logger: logger}
}

// Request describes one render run.
type Request struct {
	// InputPath is the YAML/JSON document to render; Input takes precedence
	// when non-nil (serve mode hands the payload directly).
	InputPath string
	Input     []byte

	Overrides []Override
	Theme     string // overrides design.theme when set
	OutputDir string
	BaseName  string

	SkipPDF      bool
	SkipMarkdown bool
	SkipHTML     bool
	SkipPNG      bool
}

// Result lists the produced artifacts by kind.
type Result struct {
	Document  *model.Document
	Artifacts map[string]string
}

// Render executes the pipeline for one request. Validation problems come back
// as a collected model.ErrorList; rendering problems fail fast.
func (p *Processor) Render(ctx context.Context, req Request) (*Result, error) {
	input := req.Input
	if input == nil {
		data, err := os.ReadFile(req.InputPath)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		input = data
	}

	raw, sectionOrder, err := model.ParseDocument(input)
	if err != nil {
		return nil, err
	}

	raw, err = ApplyOverrides(raw, req.Overrides)
	if err != nil {
		return nil, err
	}

	doc, err := p.validate(raw, sectionOrder)
	if err != nil {
		return nil, err
	}

	if req.Theme != "" {
		doc.Design.Theme = req.Theme
	}
	th, err := theme.New(doc.Design.Theme)
	if err != nil {
		return nil, err
	}
	if err := th.ApplyOptions(doc.Design.Options); err != nil {
		return nil, err
	}

	outDir := req.OutputDir
	if outDir == "" {
		outDir = "output"
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}
	base := req.BaseName
	if base == "" {
		base = baseName(doc.CV.Name)
	}

	result := &Result{Document: doc, Artifacts: map[string]string{}}

	preamble, err := th.Preamble()
	if err != nil {
		return nil, err
	}
	tex, err := render.RenderLaTeX(doc, preamble)
	if err != nil {
		return nil, err
	}
	texPath := filepath.Join(outDir, base+".tex")
	if err := os.WriteFile(texPath, []byte(tex), 0o644); err != nil {
		return nil, err
	}
	result.Artifacts["latex"] = texPath
	p.logger.Info("wrote LaTeX source", "path", texPath)

	if !req.SkipMarkdown {
		md, err := render.RenderMarkdown(doc)
		if err != nil {
			return nil, err
		}
		mdPath := filepath.Join(outDir, base+".md")
		if err := os.WriteFile(mdPath, []byte(md), 0o644); err != nil {
			return nil, err
		}
		result.Artifacts["markdown"] = mdPath
		p.logger.Info("wrote Markdown rendering", "path", mdPath)
	}

	needHTML := !req.SkipHTML || !req.SkipPDF || !req.SkipPNG
	var html string
	if needHTML {
		html, err = render.RenderHTML(doc, th.CSS())
		if err != nil {
			return nil, err
		}
	}
	if !req.SkipHTML {
		htmlPath := filepath.Join(outDir, base+".html")
		if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
			return nil, err
		}
		result.Artifacts["html"] = htmlPath
		p.logger.Info("wrote HTML rendering", "path", htmlPath)
	}

	if !req.SkipPDF && p.renderer != nil {
		pdfPath := filepath.Join(outDir, base+".pdf")
		if err := p.renderPDF(ctx, html, pdfPath); err != nil {
			return nil, err
		}
		result.Artifacts["pdf"] = pdfPath
		p.logger.Info("wrote PDF", "path", pdfPath)
	}

	if !req.SkipPNG && p.renderer != nil {
		pages, err := p.renderer.RenderHTMLToPNGs(ctx, html)
		if err != nil {
			return nil, fmt.Errorf("rasterize pages: %w", err)
		}
		for i, png := range pages {
			pngPath := filepath.Join(outDir, fmt.Sprintf("%s_%d.png", base, i+1))
			if err := os.WriteFile(pngPath, png, 0o644); err != nil {
				return nil, err
			}
			result.Artifacts[fmt.Sprintf("png_%d", i+1)] = pngPath
		}
		p.logger.Info("wrote page images", "pages", len(pages))
	}

	return result, nil
}

// validate runs the schema shape check and the typed model build, merging
// both error lists so the user sees every problem at once.
func (p *Processor) validate(raw map[string]any, sectionOrder []string) (*model.Document, error) {
	var errs model.ErrorList
	if err := model.ValidateRawShape(raw); err != nil {
		errs.Add(err)
	}
	doc, err := model.NewDocument(raw, sectionOrder)
	if err != nil {
		errs.Add(err)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}

// renderPDF retries the headless renderer a few times and checks the PDF
// signature before accepting the output.
func (p *Processor) renderPDF(ctx context.Context, html, path string) error {
	const attempts = 3
	var lastErr error
	for i := 0; i < attempts; i++ {
		pdf, err := p.renderer.RenderHTMLToPDF(ctx, html)
		if err == nil {
			if strings.HasPrefix(string(pdf), "%PDF") {
				return os.WriteFile(path, pdf, 0o644)
			}
			err = fmt.Errorf("invalid PDF output (len=%d)", len(pdf))
		}
		lastErr = err
		p.logger.Warn("PDF render attempt failed", "attempt", i+1, "error", err)
		if i < attempts-1 {
			backoff := time.Duration(1<<i) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return fmt.Errorf("rendering PDF failed after %d attempts: %w", attempts, lastErr)
}

// ProcessJob runs a render for a queued job and records the outcome on the
// job, saving it through the repo when one is configured.
func (p *Processor) ProcessJob(ctx context.Context, job *domain.RenderJob) error {
	payload, err := yaml.Marshal(job.Document)
	if err != nil {
		return p.failJob(ctx, job, fmt.Errorf("encode job document: %w", err))
	}

	req := Request{
		Input:     payload,
		Theme:     job.Theme,
		OutputDir: filepath.Join("cv-data", "generated", job.ID.String()),
		// page images are an interactive nicety; queued jobs produce documents
		SkipPNG: true,
	}
	res, err := p.Render(ctx, req)
	if err != nil {
		return p.failJob(ctx, job, err)
	}

	job.Status = domain.StatusCompleted
	job.Error = ""
	if job.Metadata == nil {
		job.Metadata = map[string]any{}
	}
	for kind, path := range res.Artifacts {
		job.Metadata["generated_"+kind] = path
	}
	job.UpdatedAt = time.Now()
	return p.saveJob(ctx, job)
}

func (p *Processor) failJob(ctx context.Context, job *domain.RenderJob, cause error) error {
	job.Status = domain.StatusFailed
	job.Error = cause.Error()
	job.UpdatedAt = time.Now()
	if err := p.saveJob(ctx, job); err != nil {
		p.logger.Warn("failed to save job state", "job", job.ID, "error", err)
	}
	return cause
}

func (p *Processor) saveJob(ctx context.Context, job *domain.RenderJob) error {
	if p.repo == nil {
		return nil
	}
	return p.repo.Save(ctx, job)
}

func baseName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '_'
		default:
			return -1
		}
	}, strings.TrimSpace(name))
	cleaned = strings.Trim(cleaned, "_")
	if cleaned == "" {
		return "cv"
	}
	return cleaned + "_CV"
}
