//go:build integration

package integration

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/fivetwenty-io/lago-client/internal/constants"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	APIURL  string
	APIKey  string
	Verbose bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		APIURL:  os.Getenv(constants.EnvAPIURL),
		APIKey:  os.Getenv(constants.EnvAPIKey),
		Verbose: os.Getenv("LAGO_VERBOSE") == "true",
	}
}

// SkipIfMissingConfig skips the test unless a Lago instance is configured.
// Tests create and delete resources, so a dedicated instance is expected.
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.APIURL == "" {
		t.Skip("LAGO_API_URL not set, skipping integration test")
	}

	if config.APIKey == "" {
		t.Skip("LAGO_API_KEY not set, skipping integration test")
	}
}

// GenerateTestName creates a unique test resource code
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

// WaitForCondition polls condition until it holds or timeout elapses
func WaitForCondition(t *testing.T, condition func() bool, timeout time.Duration, message string) {
	t.Helper()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	timeoutChan := time.After(timeout)

	for {
		select {
		case <-ticker.C:
			if condition() {
				return
			}
		case <-timeoutChan:
			t.Fatalf("Timeout waiting for condition: %s", message)
		}
	}
}
