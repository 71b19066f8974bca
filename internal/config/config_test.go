package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	require.Equal(t, 4000, cfg.HTTP.Port)
	require.Equal(t, "uploads", cfg.Upload.Dir)
	require.Equal(t, "/uploads", cfg.Upload.PublicPath)
	require.Equal(t, int64(30<<20), cfg.Upload.MaxBytes)
	require.Contains(t, cfg.Upload.AllowedTypes, "image/jpeg")
	require.Contains(t, cfg.Upload.AllowedTypes, "image/jpg")

	// Cache and messaging fall back to noop drivers unless enabled.
	require.Equal(t, "noop", cfg.Cache.Driver)
	require.Equal(t, "noop", cfg.Messaging.Driver)

	require.Equal(t, "postgres", cfg.Database.Driver)
	require.Equal(t, cfg.Database.WriterDSN, cfg.Database.ReaderDSN)
	require.Contains(t, cfg.Database.WriterDSN, "billmate")
}

func TestNew_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "8181")
	t.Setenv("UPLOAD_DIR", "blobs")
	t.Setenv("UPLOAD_PUBLIC_PATH", "files")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_WRITER_DSN", "file:billmate.db")

	cfg, err := New()
	require.NoError(t, err)

	require.Equal(t, 8181, cfg.HTTP.Port)
	require.Equal(t, "blobs", cfg.Upload.Dir)
	require.Equal(t, "/files", cfg.Upload.PublicPath)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, "file:billmate.db", cfg.Database.WriterDSN)
}

func TestNew_InvalidPort(t *testing.T) {
	t.Setenv("HTTP_PORT", "-1")

	_, err := New()
	require.Error(t, err)
}

func TestNew_UnsupportedCacheDriver(t *testing.T) {
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("CACHE_DRIVER", "memcached")

	_, err := New()
	require.Error(t, err)
}
