package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pricelens/internal/errors"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("MAX_UPLOAD_MB", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, int64(20), cfg.Upload.MaxFileSizeMB)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("MAX_UPLOAD_MB", "5")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "9000", cfg.Server.Port)
	require.Equal(t, int64(5), cfg.Upload.MaxFileSizeMB)
	require.Equal(t, int64(5*1024*1024), cfg.Upload.MaxFileSizeBytes())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		port  string
		maxMB string
	}{
		{"non numeric port", "not-a-port", "20"},
		{"zero upload limit", "8080", "0"},
		{"negative upload limit", "8080", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PORT", tt.port)
			t.Setenv("MAX_UPLOAD_MB", tt.maxMB)

			_, err := Load()
			require.Error(t, err)
			require.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}
