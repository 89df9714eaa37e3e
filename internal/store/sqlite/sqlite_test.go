package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/strelka-labs/meeting-assistant/internal/store"
	"github.com/strelka-labs/meeting-assistant/internal/store/storetest"
)

func makeSQLiteStore(t *testing.T) store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "meetings.db")
	s, err := New(path)
	if err != nil {
		t.Fatalf("sqlite open: %v", err)
	}
	return s
}

func TestSQLiteStore_Compliance(t *testing.T) {
	storetest.Run(t, makeSQLiteStore)
}
