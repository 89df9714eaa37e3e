package postgres

import (
	"os"
	"testing"

	"github.com/strelka-labs/meeting-assistant/internal/store"
	"github.com/strelka-labs/meeting-assistant/internal/store/storetest"
)

func makePGStore(t *testing.T) store.Store {
	t.Helper()
	dsn := os.Getenv("ASSISTANT_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("ASSISTANT_POSTGRES_DSN not set; skipping postgres store integration test")
	}
	s, err := New(dsn)
	if err != nil {
		t.Fatalf("postgres open: %v", err)
	}
	return s
}

func TestPostgresStore_Compliance(t *testing.T) {
	storetest.Run(t, makePGStore)
}
