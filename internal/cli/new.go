package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const starterTemplate = `cv:
  name: NAME
  headline: Software Engineer
  location: Istanbul, Türkiye
  email: you@example.com
  website: https://example.com
  social_networks:
    - network: GitHub
      username: you
    - network: LinkedIn
      username: you
  sections:
    summary:
      - This is a **summary** entry. Markdown bold, *italics* and
        [links](https://example.com) are supported.
    education:
      - institution: Boğaziçi University
        area: Computer Engineering
        degree: BS
        start_date: 2018-09
        end_date: 2022-06
        highlights:
          - "GPA: 3.8/4.0"
    experience:
      - company: Example Corp
        position: Software Engineer
        location: Remote
        start_date: 2022-07
        end_date: present
        highlights:
          - Built things.
    skills:
      - label: Languages
        details: Go, Python, C++
design:
  theme: classic
`

// runNew writes a starter document named after the person, ready to render.
func runNew(inv Invocation, out, errOut io.Writer) Result {
	fileName := strings.ReplaceAll(strings.TrimSpace(inv.Name), " ", "_") + "_CV.yaml"
	if _, err := os.Stat(fileName); err == nil {
		fmt.Fprintf(errOut, "%s already exists\n", fileName)
		return Result{ExitCode: ExitUsage}
	}

	content := strings.Replace(starterTemplate, "NAME", inv.Name, 1)
	if err := os.WriteFile(fileName, []byte(content), 0o644); err != nil {
		fmt.Fprintln(errOut, err)
		return Result{ExitCode: ExitInternalError}
	}
	fmt.Fprintf(out, "wrote %s\n", fileName)
	return Result{ExitCode: ExitOK}
}
