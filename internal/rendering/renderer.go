package rendering

import (
	"context"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/mikhail/resume-builder/internal/types"
)

// Artifact is the rendered document: PDF bytes plus the filename the
// user downloads it as.
type Artifact struct {
	PDF      []byte
	FileName string
}

// PDFRenderer turns finished HTML into PDF bytes. Pagination is the
// engine's flow layout; section content may legally split across
// pages. Tests substitute a stub.
type PDFRenderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// Render lays the record out and produces the artifact. Layout errors
// and engine errors both abort; no partially labeled document is
// produced.
func Render(ctx context.Context, pdf PDFRenderer, record *types.ResumeRecord) (*Artifact, error) {
	html, err := BuildHTML(record)
	if err != nil {
		return nil, err
	}

	pdfBytes, err := pdf.RenderHTMLToPDF(ctx, html)
	if err != nil {
		return nil, &RenderError{Message: "PDF engine failed", Cause: err}
	}

	return &Artifact{
		PDF:      pdfBytes,
		FileName: FileName(record.Name, time.Now()),
	}, nil
}

// ChromedpRenderer renders HTML to PDF with headless Chrome.
type ChromedpRenderer struct {
	// Timeout bounds a single render. Zero means DefaultRenderTimeout.
	Timeout time.Duration
}

// DefaultRenderTimeout bounds a single headless-Chrome render.
const DefaultRenderTimeout = 60 * time.Second

// US-Letter paper dimensions in inches.
const (
	letterWidthInches  = 8.5
	letterHeightInches = 11.0
)

// NewChromedpRenderer returns a renderer with the default timeout.
func NewChromedpRenderer() *ChromedpRenderer {
	return &ChromedpRenderer{Timeout: DefaultRenderTimeout}
}

// RenderHTMLToPDF renders the given HTML in headless Chrome and
// returns the printed PDF bytes. Requires Chrome/Chromium on the
// system; CHROME_PATH overrides the binary location.
func (r *ChromedpRenderer) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	timeout := r.Timeout
	if timeout == 0 {
		timeout = DefaultRenderTimeout
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p := os.Getenv("CHROME_PATH"); p != "" {
		opts = append(opts, chromedp.ExecPath(p))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var pdfBuf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(letterWidthInches).
				WithPaperHeight(letterHeightInches).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}
