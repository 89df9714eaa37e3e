package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveDefaults_AutoPrefersPostgresWhenDSNSet(t *testing.T) {
	cfg := &Config{DBDriver: "auto", PostgresDSN: "postgres://localhost/meetings", SQLitePath: "data/meetings.db"}
	require.NoError(t, cfg.ResolveDefaults())
	require.Equal(t, "postgres", cfg.DBDriver)
}

func TestResolveDefaults_AutoFallsBackToSQLite(t *testing.T) {
	cfg := &Config{DBDriver: "", SQLitePath: "data/meetings.db"}
	require.NoError(t, cfg.ResolveDefaults())
	require.Equal(t, "sqlite", cfg.DBDriver)
}

func TestResolveDefaults_RejectsUnknownDriver(t *testing.T) {
	cfg := &Config{DBDriver: "spanner"}
	require.Error(t, cfg.ResolveDefaults())
}

func TestResolveDefaults_SQLiteRequiresPath(t *testing.T) {
	cfg := &Config{DBDriver: "sqlite", SQLitePath: ""}
	require.Error(t, cfg.ResolveDefaults())
}
