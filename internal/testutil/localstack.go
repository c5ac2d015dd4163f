package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/localstack"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Static credentials LocalStack accepts for every request.
const (
	LocalStackAccessKey = "test"
	LocalStackSecretKey = "test"
)

const (
	localStackImage  = "localstack/localstack:3.8"
	localStackPort   = "4566/tcp"
	localStackRegion = "us-east-1"
)

// LocalStack is a running LocalStack container serving only S3.
type LocalStack struct {
	container *localstack.LocalStackContainer
	endpoint  string
}

// StartLocalStack starts a LocalStack container with the S3 service and
// waits until its health endpoint answers.
func StartLocalStack(ctx context.Context) (*LocalStack, error) {
	container, err := localstack.Run(ctx, localStackImage,
		testcontainers.WithEnv(map[string]string{"SERVICES": "s3"}),
		testcontainers.WithWaitStrategy(
			wait.ForHTTP("/_localstack/health").
				WithPort(localStackPort).
				WithStartupTimeout(2*time.Minute),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("starting localstack: %w", err)
	}

	endpoint, err := container.PortEndpoint(ctx, localStackPort, "http")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("resolving localstack endpoint: %w", err)
	}

	return &LocalStack{container: container, endpoint: endpoint}, nil
}

// Endpoint returns the base URL to pass to WithEndpoint.
func (l *LocalStack) Endpoint() string {
	return l.endpoint
}

// Region returns the region LocalStack serves S3 from.
func (l *LocalStack) Region() string {
	return localStackRegion
}

// Terminate stops and removes the container.
func (l *LocalStack) Terminate(ctx context.Context) error {
	if l == nil || l.container == nil {
		return nil
	}
	if err := l.container.Terminate(ctx); err != nil {
		return fmt.Errorf("terminating localstack: %w", err)
	}
	return nil
}

// RequireLocalStack starts LocalStack for t and terminates it when t
// finishes. The test is skipped in short mode.
func RequireLocalStack(t *testing.T) *LocalStack {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	ls, err := StartLocalStack(ctx)
	if err != nil {
		t.Fatalf("LocalStack unavailable: %v", err)
	}
	t.Cleanup(func() {
		if err := ls.Terminate(ctx); err != nil {
			t.Logf("%v", err)
		}
	})

	return ls
}
