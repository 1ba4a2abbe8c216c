// Package pdf prints locked lesson pages to PDF with headless Chrome
package pdf

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// ErrDisabled is returned by printers that cannot produce PDF output
var ErrDisabled = errors.New("pdf printing is disabled")

// Printer renders an HTML page to a PDF document
type Printer interface {
	// Print renders html to PDF.
	// "ctx" bounds the whole print including the browser start.
	//
	// If printing is not available, ErrDisabled is returned.
	Print(ctx context.Context, html string) ([]byte, error)
}

// New returns a headless Chrome printer when enabled, or a printer that
// always reports ErrDisabled
func New(enabled bool, timeout time.Duration, logger *zap.Logger) Printer {
	if !enabled {
		return Disabled{}
	}
	return &ChromePrinter{timeout: timeout, logger: logger}
}

// Disabled is the printer used when PDF_ENABLED is off
type Disabled struct{}

// Print always returns ErrDisabled
func (Disabled) Print(context.Context, string) ([]byte, error) {
	return nil, ErrDisabled
}

// ChromePrinter starts a headless browser per print job
type ChromePrinter struct {
	timeout time.Duration
	logger  *zap.Logger
}

// A4 in inches
const (
	paperWidth  = 8.27
	paperHeight = 11.69
	margin      = 0.4
)

// Print loads html into a blank tab and prints it with backgrounds
func (p *ChromePrinter) Print(ctx context.Context, html string) ([]byte, error) {
	if strings.TrimSpace(html) == "" {
		return nil, fmt.Errorf("nothing to print")
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	start := time.Now()
	var out []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				WithMarginTop(margin).
				WithMarginBottom(margin).
				WithMarginLeft(margin).
				WithMarginRight(margin).
				WithPreferCSSPageSize(true).
				Do(ctx)
			if err != nil {
				return err
			}
			out = data
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to print pdf: %w", err)
	}

	if p.logger != nil {
		p.logger.Debug("printed pdf", zap.Int("bytes", len(out)), zap.Duration("duration", time.Since(start)))
	}
	return out, nil
}
