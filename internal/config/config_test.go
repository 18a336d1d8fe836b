package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/taskboard-client/internal/constants"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("API_TIMEOUT", "")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("MOCK_DB_DRIVER", "")
	t.Setenv("AUTH_ROUTE_STYLE", "")

	cfg := Load()

	assert.Equal(t, constants.DefaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "sqlite", cfg.StorageDriver)
	assert.Equal(t, "users", cfg.AuthRouteStyle)
	assert.Equal(t, "sqlite", cfg.MockDBDriver)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://boards.example.com/api/v1/")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("STORAGE_DRIVER", "REDIS")
	t.Setenv("AUTH_ROUTE_STYLE", "Auth")

	cfg := Load()

	assert.Equal(t, "https://boards.example.com/api/v1/", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "redis", cfg.StorageDriver)
	assert.Equal(t, "auth", cfg.AuthRouteStyle)
}

func TestLoad_InvalidTimeoutFallsBack(t *testing.T) {
	t.Setenv("API_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, constants.DefaultRequestTimeout, cfg.RequestTimeout)
}
