package report_fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/dkhalizov/site-pipeline/internal/domain"
)

func TestWrite_RoundTrip(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "nested", "validate.json")

	w := New(path)
	err := w.Write(context.Background(), domain.Report{
		Variant:   "default",
		Stages:    []string{"Source", "Build", "Deploy"},
		Issues:    nil,
		Generated: 1700000000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var got struct {
		Variant string   `json:"variant"`
		Stages  []string `json:"stages"`
		Valid   bool     `json:"valid"`
	}
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatal(err)
	}

	if !got.Valid {
		t.Error("expected valid report")
	}
	if len(got.Stages) != 3 {
		t.Errorf("stages: got %v", got.Stages)
	}
}

func TestWrite_EmptyPath(t *testing.T) {
	w := New("")
	if err := w.Write(context.Background(), domain.Report{}); err == nil {
		t.Fatal("expected an error for an empty path")
	}
}
