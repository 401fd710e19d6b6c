package application

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dkhalizov/site-pipeline/internal/domain"
)

// fallbackPath is a path no deployed site contains; the distribution must
// answer it with the single-page-application entry point.
const fallbackPath = "/.well-known/site-pipeline-missing"

type CheckUseCase struct {
	probe domain.Prober
}

func NewCheckUseCase(probe domain.Prober) *CheckUseCase {
	return &CheckUseCase{probe: probe}
}

// CheckSite verifies a deployed endpoint honors the distribution contract:
// the root document is served, and unknown paths fall back to the SPA entry
// point with a 200 instead of surfacing the origin's 403.
func (uc *CheckUseCase) CheckSite(ctx context.Context, baseURL string) error {
	base := strings.TrimRight(baseURL, "/")

	root, err := uc.probe.Fetch(ctx, base+"/")
	if err != nil {
		return fmt.Errorf("fetch root: %w", err)
	}
	if root.Status != http.StatusOK {
		return fmt.Errorf("root returned %d, want %d", root.Status, http.StatusOK)
	}

	miss, err := uc.probe.Fetch(ctx, base+fallbackPath)
	if err != nil {
		return fmt.Errorf("fetch fallback probe: %w", err)
	}
	if miss.Status != http.StatusOK {
		return fmt.Errorf("missing path returned %d, want %d via the SPA fallback", miss.Status, http.StatusOK)
	}
	if !strings.HasPrefix(miss.ContentType, "text/html") {
		return fmt.Errorf("fallback served %q, want the HTML entry point", miss.ContentType)
	}

	return nil
}
