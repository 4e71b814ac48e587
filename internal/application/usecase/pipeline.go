package usecase

import (
	"context"
	"sync"

	"github.com/diillson/aws-audit-reports/internal/domain/entity"
	"github.com/diillson/aws-audit-reports/internal/shared/types"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of resources whose facts are collected at once.
const DefaultConcurrency = 4

// Pipeline lists resources of type R, collects a fact set F for each one,
// optionally filters on the collected facts and assembles one record per
// included resource through a single schema.
type Pipeline[R any, F any] struct {
	// Resources names what is listed, for error messages.
	Resources string
	List      func(ctx context.Context) ([]R, error)
	// Collect returns an error only when the report's policy makes a failure fatal.
	Collect func(ctx context.Context, resource R) (F, error)
	// Include is evaluated after collection. Nil keeps every resource.
	Include     func(facts F) bool
	Schema      entity.Schema[F]
	Concurrency int
	// Progress, when set, is started once the listing size is known.
	Progress func(total int) types.ProgressHandle
}

// PipelineResult holds the assembled rows in listing order.
type PipelineResult struct {
	Header  []string
	Records []entity.Record
	Listed  int
}

// Run executes the pipeline. Nothing is returned on a fatal error, so callers
// never write a partial report.
func (p Pipeline[R, F]) Run(ctx context.Context) (PipelineResult, error) {
	resources, err := p.List(ctx)
	if err != nil {
		return PipelineResult{}, &types.ProviderError{Op: "list", Resource: p.Resources, Err: err}
	}

	var progress types.ProgressHandle
	if p.Progress != nil && len(resources) > 0 {
		progress = p.Progress(len(resources))
		defer progress.Stop()
	}

	limit := p.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	// Uma posição fixa por recurso: a ordem de saída é a ordem de listagem.
	slots := make([]F, len(resources))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, resource := range resources {
		i, resource := i, resource
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			facts, err := p.Collect(gctx, resource)
			if err != nil {
				return err
			}
			slots[i] = facts
			if progress != nil {
				mu.Lock()
				progress.Increment()
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return PipelineResult{}, err
	}

	records := make([]entity.Record, 0, len(slots))
	for _, facts := range slots {
		if p.Include != nil && !p.Include(facts) {
			continue
		}
		records = append(records, p.Schema.Assemble(facts))
	}

	return PipelineResult{
		Header:  p.Schema.Header(),
		Records: records,
		Listed:  len(resources),
	}, nil
}
