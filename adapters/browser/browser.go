// Package browser automates the shared online workbook with a headless
// Chrome session: downloading the .xlsx export before a run and capturing
// per-tab screenshots for the digest mail.
package browser

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
)

// DefaultTimeout bounds one browser operation end to end.
const DefaultTimeout = 2 * time.Minute

// Options configures the Chrome session.
type Options struct {
	Headless    bool
	DownloadDir string
	Timeout     time.Duration
}

func (o Options) timeout() time.Duration {
	if o.Timeout > 0 {
		return o.Timeout
	}
	return DefaultTimeout
}

// newSession returns a browser context with the standard flag set and a
// deadline. The returned cancel tears the whole allocator down.
func newSession(ctx context.Context, opts Options) (context.Context, context.CancelFunc) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	timeoutCtx, timeoutCancel := context.WithTimeout(browserCtx, opts.timeout())

	cancel := func() {
		timeoutCancel()
		browserCancel()
		allocCancel()
	}
	return timeoutCtx, cancel
}
