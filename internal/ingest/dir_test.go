package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestDirLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Murree_weather_2004_Jun.txt",
		"PKT,Max TemperatureC,Min TemperatureC,Max Humidity\n2004-6-1,29,17,68\n,30,18,70\n2004-6-2,31,19,72\n")
	writeFile(t, dir, "Murree_weather_2004_Jul.tsv",
		"PKT\tMax TemperatureC\tMin TemperatureC\tMax Humidity\n2004-7-1\t33\t20\t90\n")
	writeFile(t, dir, "notes.md", "not weather data")
	writeFile(t, dir, "undated.csv", "PKT,Max TemperatureC\n,12\n")
	writeFile(t, dir, "garbage.csv", "a,b\n1,2\n")
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	st, err := NewDirLoader(dir, nil).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	june, ok := st.Get(2004, time.June)
	if !ok || len(june) != 3 {
		t.Fatalf("expected 3 June readings, got %d (%v)", len(june), ok)
	}
	// The undated row stays between its neighbours.
	if june[1].HasDate() || *june[1].MaxTemperature != 30 {
		t.Fatalf("undated row out of place: %+v", june[1])
	}

	july, ok := st.Get(2004, time.July)
	if !ok || len(july) != 1 || *july[0].MaxHumidity != 90 {
		t.Fatalf("unexpected July readings %+v", july)
	}
}

func TestDirLoaderMissingDir(t *testing.T) {
	_, err := NewDirLoader(filepath.Join(t.TempDir(), "missing"), nil).Load(context.Background())
	if err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestDirLoaderCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", "PKT,Max TemperatureC\n2004-6-1,1\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewDirLoader(dir, nil).Load(ctx); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestFileKeyUsesLastDatedRow(t *testing.T) {
	readings, err := Decode(
		stringsReader("PKT,Max TemperatureC\n2004-5-31,1\n2004-6-1,2\n,3\n"), ',')
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	key, ok := fileKey(readings)
	if !ok || key.Year != 2004 || key.Month != time.June {
		t.Fatalf("fileKey = %v, %v", key, ok)
	}
}
