package termstats

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

const tableJSON = `{
	"Minutes:1": {"予算": [3, 0.42], "環境": [1, 0.10]},
	"Minutes:2": {"予算": [2, 0.30]}
}`

func writeTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "term_stats.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write table: %v", err)
	}
	return path
}

func TestReloadAndSnapshot(t *testing.T) {
	path := writeTable(t, tableJSON)
	store := NewStore(path, zap.NewNop())

	if store.Snapshot() != nil {
		t.Error("fresh store should have no snapshot")
	}
	if err := store.Reload(""); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	table := store.Snapshot()
	if len(table) != 2 {
		t.Fatalf("got %d minutes, want 2", len(table))
	}
	stats := table["Minutes:1"]["予算"]
	if stats.TF != 3 || stats.TFIDF != 0.42 {
		t.Errorf("stats = %+v, want tf=3 tfidf=0.42", stats)
	}
}

func TestReloadExplicitPath(t *testing.T) {
	store := NewStore("/nonexistent/default.json", zap.NewNop())
	path := writeTable(t, tableJSON)

	if err := store.Reload(path); err != nil {
		t.Fatalf("Reload(%q): %v", path, err)
	}
	if len(store.Snapshot()) != 2 {
		t.Errorf("snapshot = %v", store.Snapshot())
	}
}

func TestReloadFailureKeepsSnapshot(t *testing.T) {
	path := writeTable(t, tableJSON)
	store := NewStore(path, zap.NewNop())
	if err := store.Reload(""); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	if err := store.Reload("/nonexistent/other.json"); err == nil {
		t.Fatal("expected error for missing file")
	}
	if err := os.WriteFile(path, []byte(`{broken`), 0o644); err != nil {
		t.Fatalf("corrupt table: %v", err)
	}
	if err := store.Reload(""); err == nil {
		t.Fatal("expected error for corrupt file")
	}

	if len(store.Snapshot()) != 2 {
		t.Error("failed reload must keep the previous snapshot")
	}
}

func TestStatsPairRoundTrip(t *testing.T) {
	s := Stats{TF: 3, TFIDF: 0.42}
	data, err := s.MarshalJSON()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if got := string(data); got != "[3,0.42]" {
		t.Errorf("marshaled = %s, want [3,0.42]", got)
	}

	var back Stats
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back != s {
		t.Errorf("round trip = %+v, want %+v", back, s)
	}
}

func TestStatsUnmarshalRejectsObject(t *testing.T) {
	var s Stats
	if err := s.UnmarshalJSON([]byte(`{"tf": 3}`)); err == nil {
		t.Error("expected error for object form")
	}
}
