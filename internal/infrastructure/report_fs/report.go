package report_fs

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/dkhalizov/site-pipeline/internal/domain"
)

type FSReport struct {
	path string
}

func New(path string) *FSReport { return &FSReport{path: path} }

func (w *FSReport) Write(_ context.Context, r domain.Report) error {
	if w.path == "" {
		return errors.New("report path is empty")
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(w.path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	type out struct {
		Variant   string   `json:"variant"`
		Stages    []string `json:"stages"`
		Issues    []string `json:"issues"`
		Valid     bool     `json:"valid"`
		Generated int64    `json:"generated"`
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")

	return enc.Encode(out{
		Variant:   r.Variant,
		Stages:    r.Stages,
		Issues:    r.Issues,
		Valid:     len(r.Issues) == 0,
		Generated: r.Generated,
	})
}
