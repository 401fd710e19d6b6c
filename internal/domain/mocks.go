package domain

import (
	"context"
)

type MockProber struct {
	Results map[string]ProbeResult
	Err     error
	Called  int
}

func (m *MockProber) Fetch(ctx context.Context, url string) (ProbeResult, error) {
	m.Called++
	if m.Err != nil {
		return ProbeResult{}, m.Err
	}
	return m.Results[url], nil
}

type MockReportWriter struct {
	Reports []Report
	Err     error
}

func (w *MockReportWriter) Write(ctx context.Context, r Report) error {
	if w.Err != nil {
		return w.Err
	}
	w.Reports = append(w.Reports, r)
	return nil
}
