package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weiwangfds/easterblog/config"
)

func TestNewServer(t *testing.T) {
	h := http.NotFoundHandler()

	t.Run("HTTP", func(t *testing.T) {
		srv, err := newServer(config.ServerConfig{Port: 3000, ReadTimeout: 5, WriteTimeout: 10}, h)
		require.NoError(t, err)
		assert.Equal(t, ":3000", srv.Addr)
		assert.Nil(t, srv.TLSConfig)
		assert.Equal(t, "5s", srv.ReadTimeout.String())
	})

	t.Run("HTTPS和HTTP/2", func(t *testing.T) {
		srv, err := newServer(config.ServerConfig{Port: 3000, HTTPSPort: 3443, EnableHTTPS: true, EnableHTTP2: true}, h)
		require.NoError(t, err)
		assert.Equal(t, ":3443", srv.Addr)
		require.NotNil(t, srv.TLSConfig)
		assert.Contains(t, srv.TLSConfig.NextProtos, "h2")
	})

	t.Run("仅HTTPS", func(t *testing.T) {
		srv, err := newServer(config.ServerConfig{HTTPSPort: 3443, EnableHTTPS: true}, h)
		require.NoError(t, err)
		assert.NotContains(t, srv.TLSConfig.NextProtos, "h2")
	})
}
