package application

import (
	"context"
	"fmt"
	"time"

	"github.com/dkhalizov/site-pipeline/internal/domain"
)

type ValidateUseCase struct {
	reports domain.ReportWriter
}

func NewValidateUseCase(reports domain.ReportWriter) *ValidateUseCase {
	return &ValidateUseCase{reports: reports}
}

// ValidateOnce checks the definition and persists the outcome. The returned
// issue list is empty for a valid definition.
func (uc *ValidateUseCase) ValidateOnce(ctx context.Context, variant string, def domain.Definition) ([]string, error) {
	issues := CheckDefinition(def)

	stages := make([]string, 0, len(def.Stages))
	for _, s := range def.Stages {
		stages = append(stages, s.Name)
	}

	err := uc.reports.Write(ctx, domain.Report{
		Variant:   variant,
		Stages:    stages,
		Issues:    issues,
		Generated: time.Now().Unix(),
	})
	if err != nil {
		return issues, err
	}

	return issues, nil
}

// CheckDefinition verifies the invariants the engine is otherwise left to
// reject at apply time: fixed stage order, single producer per artifact,
// and every consumed artifact produced in a strictly earlier stage.
func CheckDefinition(def domain.Definition) []string {
	var issues []string

	want := []string{domain.StageSource, domain.StageBuild, domain.StageDeploy}
	if len(def.Stages) != len(want) {
		issues = append(issues, fmt.Sprintf("expected %d stages, got %d", len(want), len(def.Stages)))
	}
	for i, s := range def.Stages {
		if i < len(want) && s.Name != want[i] {
			issues = append(issues, fmt.Sprintf("stage %d: expected %q, got %q", i, want[i], s.Name))
		}
		if len(s.Actions) == 0 {
			issues = append(issues, fmt.Sprintf("stage %q has no actions", s.Name))
		}
	}

	// producer index: artifact name -> stage position
	produced := map[string]int{}
	for i, s := range def.Stages {
		names := map[string]bool{}
		for _, a := range s.Actions {
			if a.RunOrder < 1 {
				issues = append(issues, fmt.Sprintf("action %q in stage %q: run order must be >= 1", a.Name, s.Name))
			}
			if names[a.Name] {
				issues = append(issues, fmt.Sprintf("stage %q: duplicate action name %q", s.Name, a.Name))
			}
			names[a.Name] = true

			for _, art := range a.Produces {
				if _, ok := produced[art]; ok {
					issues = append(issues, fmt.Sprintf("artifact %q has more than one producer", art))
					continue
				}
				produced[art] = i
			}
		}
	}

	for i, s := range def.Stages {
		for _, a := range s.Actions {
			for _, art := range a.Consumes {
				at, ok := produced[art]
				if !ok {
					issues = append(issues, fmt.Sprintf("action %q in stage %q consumes %q, which nothing produces", a.Name, s.Name, art))
					continue
				}
				if at >= i {
					issues = append(issues, fmt.Sprintf("action %q in stage %q consumes %q before an earlier stage produces it", a.Name, s.Name, art))
				}
			}
		}
	}

	return issues
}
