package browser

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	cdpbrowser "github.com/chromedp/cdproto/browser"
	"github.com/chromedp/chromedp"

	"bugdesk/internal/logging"
)

// ExportURL rewrites a Google Sheets document URL into its .xlsx export
// endpoint. Already-direct file URLs pass through unchanged.
func ExportURL(sheetURL string) (string, error) {
	u, err := url.Parse(sheetURL)
	if err != nil {
		return "", fmt.Errorf("browser: parse sheet url: %w", err)
	}
	if !strings.Contains(u.Path, "/spreadsheets/d/") {
		return sheetURL, nil
	}
	parts := strings.Split(u.Path, "/")
	for i, p := range parts {
		if p == "d" && i+1 < len(parts) {
			u.Path = strings.Join(append(parts[:i+2], "export"), "/")
			u.RawQuery = "format=xlsx"
			u.Fragment = ""
			return u.String(), nil
		}
	}
	return "", fmt.Errorf("browser: no document id in %q", sheetURL)
}

// Download fetches the workbook export through the browser session (the
// session carries whatever login state the profile has) and writes it to
// dest. The download itself is done by Chrome; we watch progress events
// and rename the finished artifact.
func Download(ctx context.Context, opts Options, sheetURL, dest string) error {
	log := logging.New("browser")

	target, err := ExportURL(sheetURL)
	if err != nil {
		return err
	}
	dir := opts.DownloadDir
	if dir == "" {
		dir = filepath.Dir(dest)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("browser: create download dir: %w", err)
	}

	bctx, cancel := newSession(ctx, opts)
	defer cancel()

	done := make(chan string, 1)
	chromedp.ListenTarget(bctx, func(ev any) {
		if p, ok := ev.(*cdpbrowser.EventDownloadProgress); ok {
			switch p.State {
			case cdpbrowser.DownloadProgressStateCompleted:
				select {
				case done <- p.GUID:
				default:
				}
			case cdpbrowser.DownloadProgressStateCanceled:
				select {
				case done <- "":
				default:
				}
			}
		}
	})

	log.Info("downloading workbook", slog.String("url", target))
	err = chromedp.Run(bctx,
		cdpbrowser.SetDownloadBehavior(cdpbrowser.SetDownloadBehaviorBehaviorAllowAndName).
			WithDownloadPath(dir).
			WithEventsEnabled(true),
		chromedp.Navigate(target),
	)
	// Navigating straight into a download aborts the navigation; that
	// error is expected, the download events are what matter.
	if err != nil && !strings.Contains(err.Error(), "net::ERR_ABORTED") {
		return fmt.Errorf("browser: navigate %q: %w", target, err)
	}

	select {
	case guid := <-done:
		if guid == "" {
			return fmt.Errorf("browser: download of %q canceled", target)
		}
		src := filepath.Join(dir, guid)
		if err := os.Rename(src, dest); err != nil {
			return fmt.Errorf("browser: move download into place: %w", err)
		}
		log.Info("workbook downloaded", slog.String("dest", dest))
		return nil
	case <-bctx.Done():
		return fmt.Errorf("browser: download of %q timed out: %w", target, bctx.Err())
	}
}
