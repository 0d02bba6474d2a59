package browser

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"bugdesk/internal/logging"
)

// CaptureTabs renders the online workbook and screenshots each listed tab
// into dir as <tab>.png, for embedding in the digest mail. tabURL must
// produce the view for a named tab when formatted with the tab name (e.g.
// "...#gid=0&tab=%s" or any URL the deployment uses).
func CaptureTabs(ctx context.Context, opts Options, tabURL string, tabs []string, dir string) ([]string, error) {
	log := logging.New("browser")
	if !strings.Contains(tabURL, "%s") {
		return nil, fmt.Errorf("browser: tab url %q has no %%s placeholder for the tab name", tabURL)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("browser: create capture dir: %w", err)
	}

	bctx, cancel := newSession(ctx, opts)
	defer cancel()

	var paths []string
	for _, tab := range tabs {
		var buf []byte
		err := chromedp.Run(bctx,
			chromedp.Navigate(fmt.Sprintf(tabURL, tab)),
			chromedp.Sleep(2*time.Second), // let the grid paint
			chromedp.FullScreenshot(&buf, 90),
		)
		if err != nil {
			return paths, fmt.Errorf("browser: capture tab %q: %w", tab, err)
		}
		path := filepath.Join(dir, tab+".png")
		if err := os.WriteFile(path, buf, 0o644); err != nil {
			return paths, fmt.Errorf("browser: write capture %q: %w", path, err)
		}
		log.Info("tab captured", slog.String("tab", tab), slog.String("path", path))
		paths = append(paths, path)
	}
	return paths, nil
}
