// Package browser drives a headless Chrome to measure rendered resumes and print them to PDF.
// Requires Chrome/Chromium to be installed on the system.
package browser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"

	"github.com/abdellahzou/HiResume/internal/layout"
)

// A4 paper size in inches.
const (
	paperWidthIn  = 8.27
	paperHeightIn = 11.69
)

// Config configures the browser.
type Config struct {
	// Timeout bounds a single measurement or print.
	Timeout time.Duration
	// ExecPath overrides Chrome discovery.
	ExecPath string
}

// DefaultConfig returns the defaults.
func DefaultConfig() Config {
	return Config{Timeout: 30 * time.Second}
}

// Browser is a long-lived headless Chrome. Each operation runs in its own tab.
type Browser struct {
	cfg         Config
	log         zerolog.Logger
	allocCancel context.CancelFunc
	ctx         context.Context
	cancel      context.CancelFunc
}

// New starts Chrome.
func New(cfg Config, log zerolog.Logger) (*Browser, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, cancel := chromedp.NewContext(allocCtx)
	// an empty Run starts the browser
	if err := chromedp.Run(browserCtx); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	log.Debug().Msg("browser: started headless chrome")
	return &Browser{cfg: cfg, log: log, allocCancel: allocCancel, ctx: browserCtx, cancel: cancel}, nil
}

// Close stops Chrome.
func (b *Browser) Close() {
	b.cancel()
	b.allocCancel()
}

// tab opens a new tab bound to ctx and the configured timeout.
func (b *Browser) tab(ctx context.Context) (context.Context, context.CancelFunc) {
	tabCtx, cancelTab := chromedp.NewContext(b.ctx)
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, b.cfg.Timeout)
	stop := context.AfterFunc(ctx, cancelTab)
	return tabCtx, func() {
		stop()
		cancelTimeout()
		cancelTab()
	}
}

// load writes html to a temporary file and navigates the tab to it.
func load(html []byte) (chromedp.Action, func(), error) {
	dir, err := os.MkdirTemp("", "hiresume-")
	if err != nil {
		return nil, nil, err
	}
	path := filepath.Join(dir, "index.html")
	if err := os.WriteFile(path, html, 0o600); err != nil {
		_ = os.RemoveAll(dir)
		return nil, nil, err
	}
	action := chromedp.Tasks{
		chromedp.Navigate("file://" + path),
		chromedp.WaitReady("#"+layout.ContentID, chromedp.ByQuery),
	}
	return action, func() { _ = os.RemoveAll(dir) }, nil
}

// ContentHeight loads html and returns the height of the measured content element in CSS pixels.
func (b *Browser) ContentHeight(ctx context.Context, html []byte) (float64, error) {
	nav, cleanup, err := load(html)
	if err != nil {
		return 0, err
	}
	defer cleanup()

	tabCtx, cancel := b.tab(ctx)
	defer cancel()

	var height float64
	script := fmt.Sprintf(`document.getElementById(%q).getBoundingClientRect().height`, layout.ContentID)
	if err := chromedp.Run(tabCtx, nav, chromedp.Evaluate(script, &height)); err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, fmt.Errorf("failed to measure content: %w", err)
	}
	return height, nil
}

// PrintPDF loads html and prints it on A4 paper with backgrounds.
func (b *Browser) PrintPDF(ctx context.Context, html []byte) ([]byte, error) {
	nav, cleanup, err := load(html)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	tabCtx, cancel := b.tab(ctx)
	defer cancel()

	var pdf []byte
	err = chromedp.Run(tabCtx,
		nav,
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidthIn).
				WithPaperHeight(paperHeightIn).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("failed to print pdf: %w", err)
	}
	b.log.Debug().Int("bytes", len(pdf)).Msg("browser: printed pdf")
	return pdf, nil
}
