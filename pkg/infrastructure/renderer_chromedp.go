package infrastructure

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

type ChromedpRenderer struct{}

func NewChromedpRenderer() *ChromedpRenderer { return &ChromedpRenderer{} }

func (r *ChromedpRenderer) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p := os.Getenv("CHROME_PATH"); p != "" {
		opts = append(opts, chromedp.ExecPath(p))
	}
	return opts
}

// withPage loads the HTML into a fresh headless browser tab from a temp file
// and runs the capture action against it.
func (r *ChromedpRenderer) withPage(ctx context.Context, html string, capture chromedp.Action) error {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx, r.allocatorOptions()...)
	defer cancel()

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	ctx2, cancel2 := context.WithTimeout(cctx, 60*time.Second)
	defer cancel2()

	tmpDir, err := os.MkdirTemp("", "cvgen-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return err
	}

	return chromedp.Run(ctx2,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		capture,
	)
}

func (r *ChromedpRenderer) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	var pdfBuf []byte
	err := r.withPage(ctx, html, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		// A4: 210mm x 297mm -> inches: 8.27 x 11.69
		pdfBuf, _, err = page.PrintToPDF().WithPrintBackground(true).
			WithPaperWidth(8.27).
			WithPaperHeight(11.69).
			WithPreferCSSPageSize(true).
			Do(ctx)
		return err
	}))
	if err != nil {
		return nil, err
	}
	return pdfBuf, nil
}

// RenderHTMLToPNGs rasterizes the page. The HTML rendering is one continuous
// page, so a single full-page screenshot covers it.
func (r *ChromedpRenderer) RenderHTMLToPNGs(ctx context.Context, html string) ([][]byte, error) {
	var shot []byte
	err := r.withPage(ctx, html, chromedp.FullScreenshot(&shot, 100))
	if err != nil {
		return nil, err
	}
	return [][]byte{shot}, nil
}
