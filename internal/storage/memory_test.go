package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/chronoworld/showtimes/pkg/types"
)

func TestMemoryTable_ScanPreservesOrder(t *testing.T) {
	table := NewMemoryTable(
		types.Record{"eventName": "Time Rift Expo"},
		types.Record{"eventName": "Chrono Ball"},
	)
	table.Put(types.Record{"eventName": "Paradox Parade"})

	records, err := table.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	want := []string{"Time Rift Expo", "Chrono Ball", "Paradox Parade"}
	if len(records) != len(want) {
		t.Fatalf("got %d records, want %d", len(records), len(want))
	}
	for i, name := range want {
		if records[i].EventName() != name {
			t.Errorf("record %d: got %q, want %q", i, records[i].EventName(), name)
		}
	}
}

func TestMemoryTable_ScanReturnsCopies(t *testing.T) {
	table := NewMemoryTable(types.Record{"eventName": "Chrono Ball"})

	first, _ := table.Scan(context.Background())
	first[0]["eventName"] = "mutated"

	second, _ := table.Scan(context.Background())
	if second[0].EventName() != "Chrono Ball" {
		t.Errorf("scan result mutation leaked into table: %q", second[0].EventName())
	}
	if table.ScanCount() != 2 {
		t.Errorf("scan count = %d, want 2", table.ScanCount())
	}
}

func TestMemoryTable_ScanError(t *testing.T) {
	table := NewMemoryTable()
	cause := errors.New("table unavailable")
	table.SetScanError(cause)

	if _, err := table.Scan(context.Background()); !errors.Is(err, cause) {
		t.Errorf("expected injected error, got %v", err)
	}

	table.SetScanError(nil)
	if _, err := table.Scan(context.Background()); err != nil {
		t.Errorf("unexpected error after clearing: %v", err)
	}
}

func TestMemoryTable_ScanCancelled(t *testing.T) {
	table := NewMemoryTable()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := table.Scan(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestLoadRecordsFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "events.json")
	if err := os.WriteFile(jsonPath, []byte(`[{"eventName":"Time Rift Expo","day":1},{"venue":"Hall 9"}]`), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	records, err := LoadRecordsFile(jsonPath)
	if err != nil {
		t.Fatalf("LoadRecordsFile(json) failed: %v", err)
	}
	if len(records) != 2 || records[0].EventName() != "Time Rift Expo" || records[1].EventName() != "" {
		t.Errorf("unexpected records: %v", records)
	}

	yamlPath := filepath.Join(dir, "events.yaml")
	if err := os.WriteFile(yamlPath, []byte("- eventName: Chrono Ball\n- eventName: Paradox Parade\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	records, err = LoadRecordsFile(yamlPath)
	if err != nil {
		t.Fatalf("LoadRecordsFile(yaml) failed: %v", err)
	}
	if len(records) != 2 || records[1].EventName() != "Paradox Parade" {
		t.Errorf("unexpected records: %v", records)
	}

	csvPath := filepath.Join(dir, "events.csv")
	if err := os.WriteFile(csvPath, []byte("eventName\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if _, err := LoadRecordsFile(csvPath); err == nil {
		t.Error("expected error for unsupported format")
	}
}
