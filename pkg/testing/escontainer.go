package testing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/elasticsearch"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	esImage          = "docker.elastic.co/elasticsearch/elasticsearch:8.12.0"
	esPort           = "9200"
	esStartupTimeout = 90 * time.Second
)

type ESContainer struct {
	Container testcontainers.Container
	Address   string
}

type ESConfig struct {
	Image          string
	StartupTimeout time.Duration
}

// Addresses returns the node list in the form the storage client expects.
func (c *ESContainer) Addresses() []string {
	return []string{c.Address}
}

func NewESContainer(ctx context.Context, cfg ESConfig) (*ESContainer, error) {
	if cfg.Image == "" {
		cfg.Image = esImage
	}
	if cfg.StartupTimeout <= 0 {
		cfg.StartupTimeout = esStartupTimeout
	}

	container, err := elasticsearch.Run(ctx,
		cfg.Image,
		elasticsearch.WithPassword(""),
		testcontainers.WithWaitStrategy(
			wait.ForHTTP("/").
				WithPort(esPort).
				WithStartupTimeout(cfg.StartupTimeout),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start elasticsearch container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = testcontainers.TerminateContainer(container)
		return nil, fmt.Errorf("get elasticsearch host: %w", err)
	}
	port, err := container.MappedPort(ctx, esPort)
	if err != nil {
		_ = testcontainers.TerminateContainer(container)
		return nil, fmt.Errorf("get elasticsearch port: %w", err)
	}

	return &ESContainer{
		Container: container,
		Address:   fmt.Sprintf("http://%s:%s", host, port.Port()),
	}, nil
}

// NewESContainerWithCleanup starts a single-node Elasticsearch that is
// terminated when tb finishes.
func NewESContainerWithCleanup(ctx context.Context, tb testing.TB) *ESContainer {
	tb.Helper()

	container, err := NewESContainer(ctx, ESConfig{})
	if err != nil {
		tb.Fatalf("failed to create elasticsearch container: %v", err)
	}

	tb.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container.Container); err != nil {
			tb.Logf("failed to terminate elasticsearch container: %v", err)
		}
	})

	return container
}
