// Package connectivity decides, once per session, whether the upstream API is
// reachable.
package connectivity

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aaravmahajanofficial/inventory-client/internal/models"
)

const DefaultProbeTimeout = 3 * time.Second

// ProbeFunc reports the mode the session should run in.
type ProbeFunc func(ctx context.Context) models.Mode

// Probe issues one GET against url. Only a 2xx answer within timeout means
// online; everything else, ctx cancellation included, means offline.
func Probe(ctx context.Context, client *http.Client, url string, timeout time.Duration) models.Mode {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		slog.Warn("Connectivity probe could not be built", slog.String("url", url), slog.Any("error", err))
		return models.ModeOffline
	}

	resp, err := client.Do(req)
	if err != nil {
		slog.Info("Upstream unreachable, switching to offline mode", slog.String("url", url), slog.Any("error", err))
		return models.ModeOffline
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Info("Upstream answered with an error, switching to offline mode",
			slog.String("url", url), slog.Int("status", resp.StatusCode))
		return models.ModeOffline
	}

	return models.ModeOnline
}

// HTTPProbe binds Probe to a client and endpoint.
func HTTPProbe(client *http.Client, url string, timeout time.Duration) ProbeFunc {
	return func(ctx context.Context) models.Mode {
		return Probe(ctx, client, url, timeout)
	}
}
