// internal/common/camunda/client_test.go
package camunda

import (
	"context"
	"fmt"
	"testing"
	"time"

	apperrors "pathway-workers/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient() *Client {
	return &Client{
		config: &ClientConfig{
			GatewayAddress:    "localhost:26500",
			ConnectionTimeout: time.Second,
			RetryConfig: &RetryConfig{
				MaxRetries: 3,
				BaseDelay:  time.Millisecond,
				MaxDelay:   5 * time.Millisecond,
			},
		},
	}
}

func TestExecuteWithRetry_SucceedsAfterTransientFailures(t *testing.T) {
	client := newTestClient()

	attempts := 0
	result, err := client.ExecuteWithRetry(context.Background(), func(ctx context.Context) (interface{}, error) {
		attempts++
		if attempts < 3 {
			return nil, fmt.Errorf("rpc error: connection refused")
		}
		return "deployed", nil
	}, "deploy-process")

	require.NoError(t, err)
	assert.Equal(t, "deployed", result)
	assert.Equal(t, 3, attempts)
}

func TestExecuteWithRetry_NonRetryableFailsImmediately(t *testing.T) {
	client := newTestClient()

	attempts := 0
	_, err := client.ExecuteWithRetry(context.Background(), func(ctx context.Context) (interface{}, error) {
		attempts++
		return nil, fmt.Errorf("process definition not found")
	}, "create-instance")

	require.Error(t, err)
	assert.Equal(t, 1, attempts)

	stdErr, ok := err.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorCode("RESOURCE_NOT_FOUND"), stdErr.Code)
}

func TestExecuteWithRetry_ExhaustsRetries(t *testing.T) {
	client := newTestClient()

	attempts := 0
	_, err := client.ExecuteWithRetry(context.Background(), func(ctx context.Context) (interface{}, error) {
		attempts++
		return nil, fmt.Errorf("gateway unavailable")
	}, "publish-message")

	require.Error(t, err)
	assert.Equal(t, 4, attempts)
}

func TestExecuteWithRetry_ContextCancelled(t *testing.T) {
	client := newTestClient()
	client.config.RetryConfig.BaseDelay = 50 * time.Millisecond
	client.config.RetryConfig.MaxDelay = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ExecuteWithRetry(ctx, func(ctx context.Context) (interface{}, error) {
		return nil, fmt.Errorf("deadline exceeded")
	}, "slow-op")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsRetryableZeebeError(t *testing.T) {
	assert.True(t, isRetryableZeebeError(fmt.Errorf("connection reset by peer")))
	assert.True(t, isRetryableZeebeError(fmt.Errorf("context deadline exceeded")))
	assert.False(t, isRetryableZeebeError(fmt.Errorf("element with id not found")))
}

func TestMapZeebeError(t *testing.T) {
	client := newTestClient()

	cases := []struct {
		err  error
		code apperrors.ErrorCode
	}{
		{fmt.Errorf("connection refused"), "EXTERNAL_SERVICE_ERROR"},
		{fmt.Errorf("request timeout"), "TIMEOUT_ERROR"},
		{fmt.Errorf("resource not found"), "RESOURCE_NOT_FOUND"},
		{fmt.Errorf("deployment already exists"), "BUSINESS_RULE_VIOLATION"},
		{fmt.Errorf("permission denied"), "AUTHENTICATION_ERROR"},
		{fmt.Errorf("something else entirely"), "EXTERNAL_SERVICE_ERROR"},
	}

	for _, tc := range cases {
		mapped := client.mapZeebeError(tc.err, "op", 0)
		stdErr, ok := mapped.(*apperrors.StandardError)
		require.True(t, ok, "error %v", tc.err)
		assert.Equal(t, tc.code, stdErr.Code, "error %v", tc.err)
	}
}
