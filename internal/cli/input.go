// Package cli parses command-line invocations and maps pipeline outcomes to
// exit codes. main stays a thin boundary; Run is the entrypoint black-box
// tests drive.
package cli

import (
	"fmt"
	"strings"

	"cvgen/internal/usecase"
)

// Exit codes for the CLI surface.
const (
	ExitOK            = 0
	ExitUsage         = 2
	ExitValidation    = 3
	ExitInternalError = 4
)

// InvocationError reports unusable command-line input together with the exit
// code main should use.
type InvocationError struct {
	Message  string
	ExitCode int
}

func (e *InvocationError) Error() string { return e.Message }

func usageError(format string, args ...any) error {
	return &InvocationError{Message: fmt.Sprintf(format, args...), ExitCode: ExitUsage}
}

// Invocation is the canonicalized form of one CLI run.
type Invocation struct {
	Command string

	// new / create-theme
	Name string

	// render
	InputPath string
	Overrides []usecase.Override
	Theme     string
	OutputDir string
	SkipPDF   bool
	SkipMD    bool
	SkipHTML  bool
	SkipPNG   bool

	// schema
	SchemaOut string
}

const usageText = `usage: cvgen <command> [arguments]

commands:
  new <full name>         write a starter CV document
  render <input.yaml>     render a CV document to LaTeX, Markdown, HTML, PDF
  create-theme <name>     scaffold a custom theme directory
  schema [-o file]        print the document JSON Schema
  serve                   run the HTTP rendering service

render flags:
  --<dotted.path> <value>  override a document field, e.g. --cv.name "Jane Doe"
  --theme <name>           render with a specific theme
  --output-dir <dir>       artifact directory (default "output")
  --dont-generate-pdf      skip the PDF artifact
  --dont-generate-markdown skip the Markdown artifact
  --dont-generate-html     skip the HTML artifact
  --dont-generate-png      skip the page images`

// ParseInvocation canonicalizes the argument slice (excluding argv[0]).
func ParseInvocation(args []string) (Invocation, error) {
	if len(args) == 0 {
		return Invocation{}, usageError("%s", usageText)
	}
	inv := Invocation{Command: args[0]}
	rest := args[1:]

	switch inv.Command {
	case "new", "create-theme":
		if len(rest) != 1 || strings.TrimSpace(rest[0]) == "" {
			return Invocation{}, usageError("cvgen %s requires exactly one name argument", inv.Command)
		}
		inv.Name = rest[0]
		return inv, nil
	case "render":
		return parseRender(inv, rest)
	case "schema":
		if len(rest) == 2 && rest[0] == "-o" {
			inv.SchemaOut = rest[1]
			return inv, nil
		}
		if len(rest) != 0 {
			return Invocation{}, usageError("cvgen schema accepts only -o <file>")
		}
		return inv, nil
	case "serve":
		if len(rest) != 0 {
			return Invocation{}, usageError("cvgen serve takes no arguments")
		}
		return inv, nil
	case "help", "-h", "--help":
		return Invocation{}, &InvocationError{Message: usageText, ExitCode: ExitOK}
	default:
		return Invocation{}, usageError("unknown command %q\n\n%s", inv.Command, usageText)
	}
}

func parseRender(inv Invocation, args []string) (Invocation, error) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			if inv.InputPath != "" {
				return Invocation{}, usageError("unexpected argument %q, input file already given", arg)
			}
			inv.InputPath = arg
			continue
		}
		name := strings.TrimPrefix(arg, "--")
		switch name {
		case "dont-generate-pdf":
			inv.SkipPDF = true
		case "dont-generate-markdown":
			inv.SkipMD = true
		case "dont-generate-html":
			inv.SkipHTML = true
		case "dont-generate-png":
			inv.SkipPNG = true
		case "theme", "output-dir":
			if i+1 >= len(args) {
				return Invocation{}, usageError("flag --%s requires a value", name)
			}
			i++
			if name == "theme" {
				inv.Theme = args[i]
			} else {
				inv.OutputDir = args[i]
			}
		default:
			// flags with a dot are field overrides: --cv.name "Jane Doe"
			if !strings.Contains(name, ".") {
				return Invocation{}, usageError("unknown flag --%s", name)
			}
			if i+1 >= len(args) {
				return Invocation{}, usageError("override --%s requires a value", name)
			}
			i++
			ov, err := usecase.ParseOverride(name, args[i])
			if err != nil {
				return Invocation{}, usageError("%v", err)
			}
			inv.Overrides = append(inv.Overrides, ov)
		}
	}
	if inv.InputPath == "" {
		return Invocation{}, usageError("cvgen render requires an input file")
	}
	return inv, nil
}
