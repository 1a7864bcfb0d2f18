package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Download streams url's body into w. Grounded on
// original_source/jp-postal-code-util/src/download.rs's download(), which
// streams the upstream zip via reqwest; net/http's client is the
// in-ecosystem equivalent here since no third-party HTTP client appears in
// any example repo's go.mod (see DESIGN.md).
func Download(ctx context.Context, url string, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("ingest: failed to build download request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("ingest: failed to download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ingest: unexpected status %d downloading %s", resp.StatusCode, url)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("ingest: failed to write downloaded body: %w", err)
	}
	return nil
}
