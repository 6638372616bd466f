package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"cvgen/internal/model"
	"cvgen/internal/render"
	"cvgen/internal/theme"
	"cvgen/internal/usecase"
	"cvgen/pkg/infrastructure"
	"cvgen/pkg/logging"
)

// Result carries the semantic exit code of an execution.
type Result struct {
	ExitCode int
}

// Run is a high-level CLI entrypoint suitable for black-box tests. It accepts
// the argument slice (excluding argv[0]) and writes human output to out/errOut.
func Run(ctx context.Context, args []string, out, errOut io.Writer) Result {
	inv, err := ParseInvocation(args)
	if err != nil {
		var invErr *InvocationError
		if errors.As(err, &invErr) {
			fmt.Fprintln(errOut, invErr.Message)
			return Result{ExitCode: invErr.ExitCode}
		}
		fmt.Fprintln(errOut, err)
		return Result{ExitCode: ExitInternalError}
	}
	return Execute(ctx, inv, out, errOut)
}

// Execute dispatches a parsed invocation.
func Execute(ctx context.Context, inv Invocation, out, errOut io.Writer) Result {
	switch inv.Command {
	case "new":
		return runNew(inv, out, errOut)
	case "render":
		return runRender(ctx, inv, out, errOut)
	case "create-theme":
		return runCreateTheme(inv, out, errOut)
	case "schema":
		return runSchema(inv, out, errOut)
	case "serve":
		return runServe(ctx, errOut)
	default:
		fmt.Fprintf(errOut, "unknown command %q\n", inv.Command)
		return Result{ExitCode: ExitUsage}
	}
}

func runRender(ctx context.Context, inv Invocation, out, errOut io.Writer) Result {
	logger := logging.NewTextLogger()

	var renderer usecase.PDFRenderer
	if !inv.SkipPDF || !inv.SkipPNG {
		renderer = infrastructure.NewChromedpRenderer()
	}
	processor := usecase.NewProcessor(renderer, nil, logger)

	res, err := processor.Render(ctx, usecase.Request{
		InputPath:    inv.InputPath,
		Overrides:    inv.Overrides,
		Theme:        inv.Theme,
		OutputDir:    inv.OutputDir,
		SkipPDF:      inv.SkipPDF,
		SkipMarkdown: inv.SkipMD,
		SkipHTML:     inv.SkipHTML,
		SkipPNG:      inv.SkipPNG,
	})
	if err != nil {
		return reportRenderError(err, errOut)
	}

	for _, kind := range []string{"latex", "markdown", "html", "pdf"} {
		if path, ok := res.Artifacts[kind]; ok {
			fmt.Fprintf(out, "%-9s %s\n", kind, path)
		}
	}
	return Result{ExitCode: ExitOK}
}

// reportRenderError prints validation problems one per line so the user can
// fix the whole document in one edit cycle, and maps the failure class to an
// exit code.
func reportRenderError(err error, errOut io.Writer) Result {
	if list, ok := model.AsErrorList(err); ok {
		fmt.Fprintf(errOut, "the document has %d problem(s):\n", len(list))
		for _, item := range list {
			fmt.Fprintf(errOut, "  - %v\n", item)
		}
		return Result{ExitCode: ExitValidation}
	}

	var pathErr *usecase.PathError
	if errors.As(err, &pathErr) {
		fmt.Fprintln(errOut, pathErr)
		return Result{ExitCode: ExitValidation}
	}

	var renderErr *render.RenderError
	if errors.As(err, &renderErr) {
		fmt.Fprintln(errOut, renderErr)
		return Result{ExitCode: ExitInternalError}
	}

	fmt.Fprintln(errOut, err)
	return Result{ExitCode: ExitInternalError}
}

func runCreateTheme(inv Invocation, out, errOut io.Writer) Result {
	dir, err := theme.Scaffold(inv.Name, ".")
	if err != nil {
		fmt.Fprintln(errOut, err)
		return Result{ExitCode: ExitUsage}
	}
	fmt.Fprintf(out, "created theme scaffold in %s\n", dir)
	return Result{ExitCode: ExitOK}
}

func runSchema(inv Invocation, out, errOut io.Writer) Result {
	data, err := model.SchemaJSON()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return Result{ExitCode: ExitInternalError}
	}
	if inv.SchemaOut == "" {
		fmt.Fprintln(out, string(data))
		return Result{ExitCode: ExitOK}
	}
	if err := os.WriteFile(inv.SchemaOut, data, 0o644); err != nil {
		fmt.Fprintln(errOut, err)
		return Result{ExitCode: ExitInternalError}
	}
	fmt.Fprintf(out, "wrote schema to %s\n", inv.SchemaOut)
	return Result{ExitCode: ExitOK}
}
