package server

import (
	"context"
	"net"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"io-link/internal/config"
)

func testConfig() config.Config {
	cfg := config.Config{Environment: config.EnvProduction, Port: 3000}
	cfg.FallbackURL.Default = "https://io.italia.it"
	cfg.FallbackURL.OnIOS = "https://apps.apple.com/app/id1501681835"
	return cfg
}

func TestServer_ServeAndShutdown(t *testing.T) {
	defer goleak.VerifyNone(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(testConfig()).Serve(ctx, ln) }()

	transport := &http.Transport{DisableKeepAlives: true}
	client := &http.Client{
		Transport: transport,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	defer transport.CloseIdleConnections()

	base := "http://" + ln.Addr().String()

	resp, err := client.Get(base + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, base+"/anything", nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "Mozilla/5.0 (iPhone; CPU iPhone OS 16_4 like Mac OS X)")
	resp, err = client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "https://apps.apple.com/app/id1501681835", resp.Header.Get("Location"))

	cancel()
	assert.NoError(t, <-done)
}

func TestServer_ServeReturnsListenerError(t *testing.T) {
	defer goleak.VerifyNone(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	require.NoError(t, ln.Close())

	err = New(testConfig()).Serve(context.Background(), ln)
	assert.Error(t, err)
}

func TestNew_Addr(t *testing.T) {
	cfg := testConfig()
	cfg.Port = 8081
	assert.Equal(t, "0.0.0.0:8081", New(cfg).http.Addr)
}
