package usecase

import (
	"sort"
	"sync"

	"github.com/diillson/aws-audit-reports/internal/domain/entity"
	"github.com/diillson/aws-audit-reports/internal/shared/types"
	"github.com/rs/zerolog"
)

// FailurePolicy decides what an unexpected fact failure does to the run.
type FailurePolicy int

const (
	// Substitute keeps the resource and renders the failed fact with its column's failure text.
	Substitute FailurePolicy = iota
	// Exclude drops the resource from a filtered report.
	Exclude
	// Abort stops the whole audit.
	Abort
)

func (p FailurePolicy) action() string {
	switch p {
	case Exclude:
		return "excluded"
	case Abort:
		return "aborted"
	default:
		return "substituted"
	}
}

// Warnings accumulates non-fatal collection failures from concurrent collectors.
type Warnings struct {
	mu    sync.Mutex
	items []entity.Warning
}

func (w *Warnings) Add(warning entity.Warning) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.items = append(w.items, warning)
}

// List returns the warnings ordered by resource and fact.
func (w *Warnings) List() []entity.Warning {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]entity.Warning, len(w.items))
	copy(out, w.items)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Resource != out[j].Resource {
			return out[i].Resource < out[j].Resource
		}
		return out[i].Fact < out[j].Fact
	})
	return out
}

func (w *Warnings) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.items)
}

// factGuard applies a report's fixed failure policy to each collected fact.
type factGuard struct {
	strict   bool
	warnings *Warnings
	logger   zerolog.Logger
}

func newFactGuard(strict bool, logger zerolog.Logger) *factGuard {
	return &factGuard{strict: strict, warnings: &Warnings{}, logger: logger}
}

// checkFact returns a ProviderError when a failed fact is fatal under policy,
// and records a warning otherwise. Present and absent facts pass through.
func checkFact[T any](g *factGuard, resource, fact string, f entity.Fact[T], policy FailurePolicy) error {
	if !f.IsFailed() {
		return nil
	}
	if g.strict {
		policy = Abort
	}

	if policy == Abort {
		return &types.ProviderError{Op: "collect", Resource: resource, Fact: fact, Err: f.Err}
	}

	reason := "unknown error"
	if f.Err != nil {
		reason = f.Err.Error()
	}
	g.warnings.Add(entity.Warning{
		Resource: resource,
		Fact:     fact,
		Action:   policy.action(),
		Reason:   reason,
	})
	g.logger.Warn().
		Str("resource", resource).
		Str("fact", fact).
		Str("action", policy.action()).
		Err(f.Err).
		Msg("fact collection failed")
	return nil
}
