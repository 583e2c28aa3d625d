package app_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/km-arc/go-dislocator/framework/app"
	"github.com/km-arc/go-dislocator/framework/config"
	"github.com/km-arc/go-dislocator/framework/container"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func testConfig(inspect bool) *config.Config {
	return &config.Config{
		App:       config.AppConfig{Name: "test", Env: "testing", Port: "0"},
		Log:       config.LogConfig{Level: "error"},
		Inspector: config.InspectorConfig{Enabled: inspect, Prefix: "/_container"},
	}
}

func newApp(t *testing.T, inspect bool) *app.Application {
	t.Helper()
	a, err := app.NewWith(testConfig(inspect), zap.NewNop())
	require.NoError(t, err)
	return a
}

type greeterProvider struct {
	container.BaseProvider
}

func (p *greeterProvider) Register(c *container.Container) error {
	return c.Register("greeter", func(c *container.Container) (any, error) {
		cfg, err := container.Resolve[*config.Config](c, "config")
		if err != nil {
			return nil, err
		}
		return "hello from " + cfg.App.Name, nil
	})
}

// ── New ──────────────────────────────────────────────────────────────────────

func TestNewWith_RegistersFrameworkServices(t *testing.T) {
	a := newApp(t, true)

	assert.Equal(t, []string{"config", "logger", "router", "inspector"}, a.Names(nil))
	assert.False(t, a.Resolved("router"), "router is built lazily")
	assert.Len(t, a.Providers.Providers(), 3)
}

func TestNew_LoadsEnvFile(t *testing.T) {
	t.Setenv("APP_ENV", "testing")
	t.Setenv("LOG_LEVEL", "error")

	a, err := app.New("testdata/missing.env")
	require.NoError(t, err)

	assert.True(t, a.IsTesting())
	assert.False(t, a.IsProduction())
	assert.False(t, a.IsLocal())
}

func TestNew_InvalidLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "shouting")

	_, err := app.New("testdata/missing.env")

	assert.Error(t, err)
}

func TestAccessors(t *testing.T) {
	a := newApp(t, true)

	assert.Equal(t, "test", a.Config().App.Name)
	assert.Equal(t, "testing", a.Environment())
	assert.False(t, a.IsDebug())
	assert.NotNil(t, a.Logger())
	assert.Same(t, a.Router(), a.Router())
}

// ── Providers ────────────────────────────────────────────────────────────────

func TestRegisterProvider_ResolvesFromConfig(t *testing.T) {
	a := newApp(t, true)
	require.NoError(t, a.RegisterProvider(&greeterProvider{}))

	got, err := container.Resolve[string](a.Container, "greeter")
	require.NoError(t, err)
	assert.Equal(t, "hello from test", got)
}

// ── Boot / inspector ─────────────────────────────────────────────────────────

func TestBoot_MountsInspector(t *testing.T) {
	a := newApp(t, true)
	require.NoError(t, a.Boot())

	rr := httptest.NewRecorder()
	a.Router().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/_container/services/router", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		Data struct {
			Name     string `json:"name"`
			Resolved bool   `json:"resolved"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "router", body.Data.Name)
	assert.True(t, body.Data.Resolved)
}

func TestBoot_InspectorDisabled(t *testing.T) {
	a := newApp(t, false)
	require.NoError(t, a.Boot())

	rr := httptest.NewRecorder()
	a.Router().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/_container/services", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.False(t, a.Resolved("inspector"))
}

// ── Run ──────────────────────────────────────────────────────────────────────

func TestRun_StopsOnContextCancel(t *testing.T) {
	a := newApp(t, true)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.True(t, a.Providers.Booted())
}
