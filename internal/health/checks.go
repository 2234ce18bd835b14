package health

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aaravmahajanofficial/inventory-client/internal/config"
	"github.com/aaravmahajanofficial/inventory-client/internal/storage"
	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

const ComponentName = "inventory-client"

type Endpoints struct {
	UpstreamURL string
	HTTPClient  *http.Client
	Entries     storage.EntryStore
}

// NewHealthHandler reports on the offline store, and on the upstream API as a
// non-fatal check since offline mode is a valid way to run. Redis and
// Postgres checks are added when the config selects them.
func NewHealthHandler(cfg *config.Config, endpoints *Endpoints, version string) (*health.Health, error) {

	checks := []health.Config{
		{
			Name:      "upstream",
			Timeout:   cfg.Remote.ProbeTimeout,
			SkipOnErr: true,
			Check:     upstreamCheck(endpoints.HTTPClient, endpoints.UpstreamURL),
		},
		{
			Name:      "offline-store",
			Timeout:   2 * time.Second,
			SkipOnErr: false,
			Check: func(ctx context.Context) error {
				if endpoints.Entries == nil {
					return fmt.Errorf("offline store is not initialized")
				}
				if _, _, err := endpoints.Entries.Get(ctx, cfg.Offline.Key); err != nil {
					return fmt.Errorf("failed to read offline store: %w", err)
				}
				return nil
			},
		},
	}

	if cfg.Cache.Backend == "redis" {
		checks = append(checks, health.Config{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: false,
			Check: healthRedis.New(healthRedis.Config{
				DSN: cfg.RedisConnect.GetDSN(),
			}),
		})
	}

	if cfg.Offline.Driver == "postgres" {
		checks = append(checks, health.Config{
			Name:      "database",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check: postgres.New(postgres.Config{
				DSN: cfg.Offline.DSN,
			}),
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    ComponentName,
			Version: version,
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

func upstreamCheck(client *http.Client, url string) health.CheckFunc {
	return func(ctx context.Context) error {
		if client == nil {
			client = http.DefaultClient
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("building upstream request: %w", err)
		}

		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("upstream unreachable: %w", err)
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return fmt.Errorf("upstream returned status %d", resp.StatusCode)
		}

		return nil
	}
}
