package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAddr(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ":8080"},
		{"9090", ":9090"},
		{":7000", ":7000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeAddr(tt.in), "port %q", tt.in)
	}
}

func TestConfigWithDefaults(t *testing.T) {
	cfg := Config{WriteTimeout: 3 * time.Second}.withDefaults()

	assert.Equal(t, readHeaderTimeout, cfg.ReadHeaderTimeout)
	assert.Equal(t, 3*time.Second, cfg.WriteTimeout)
	assert.Equal(t, idleTimeout, cfg.IdleTimeout)
}

func TestNewHTTPServer(t *testing.T) {
	h := http.NewServeMux()
	srv := newHTTPServer(":1234", h, New(Config{IdleTimeout: time.Minute}).cfg)

	assert.Equal(t, ":1234", srv.Addr)
	assert.Equal(t, maxHeaderBytes, srv.MaxHeaderBytes)
	assert.Equal(t, time.Minute, srv.IdleTimeout)
	assert.Equal(t, writeTimeout, srv.WriteTimeout)
}

func TestShutdownBeforeRun(t *testing.T) {
	s := New(Config{})
	assert.NoError(t, s.Shutdown(context.Background()))
}
