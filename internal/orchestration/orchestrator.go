// Package orchestration sequences the module clients for one audit run.
// It owns the run's AuditState, reports fractional progress as modules
// resolve and applies one of two failure policies: fail fast (halt on the
// first module error) or isolate (always complete all modules, collecting
// per-module errors).
package orchestration

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"siteaudit/internal/apperrors"
	"siteaudit/internal/domain"
	"siteaudit/internal/metrics"
	"siteaudit/internal/ports"
)

// Policy selects how the run reacts to a module failure.
type Policy int

const (
	// PolicyFailFast runs modules sequentially in the fixed order and halts
	// the run on the first failure. Already-completed results remain visible.
	PolicyFailFast Policy = iota
	// PolicyIsolate runs all selected modules concurrently; each yields a
	// result or an error and the run always completes all of them.
	PolicyIsolate
)

// ProgressFunc observes run progress. It is called after each module
// resolves, success or failure; fraction is completed/total.
type ProgressFunc func(completed, total int, fraction float64)

// Orchestrator fans one audit request out to the registered module clients.
type Orchestrator struct {
	clients map[domain.ModuleKind]ports.ModuleClient
	timeout time.Duration
	log     zerolog.Logger
}

// New builds an orchestrator over the given clients. timeout bounds every
// individual module call.
func New(clients []ports.ModuleClient, timeout time.Duration, log zerolog.Logger) *Orchestrator {
	byKind := make(map[domain.ModuleKind]ports.ModuleClient, len(clients))
	for _, c := range clients {
		byKind[c.Module()] = c
	}
	return &Orchestrator{clients: byKind, timeout: timeout, log: log.With().Str("component", "orchestrator").Logger()}
}

// Run executes the audit. The returned AuditState is always non-nil once
// validation passes, even when the run errored, so callers keep whatever
// partial results were collected. progress may be nil.
func (o *Orchestrator) Run(ctx context.Context, req domain.AuditRequest, policy Policy, progress ProgressFunc) (*domain.AuditState, error) {
	selected, err := o.validate(req)
	if err != nil {
		return nil, err
	}

	req.Target = domain.NormalizeTarget(req.Target)
	if len(req.Keywords) == 0 {
		req.Keywords = domain.DefaultKeywords
	}

	state := &domain.AuditState{
		Request: req,
		Total:   len(selected),
		Results: make(map[domain.ModuleKind]domain.ModuleResult, len(selected)),
		Errors:  make(map[domain.ModuleKind]string),
	}
	if progress == nil {
		progress = func(int, int, float64) {}
	}
	progress(0, state.Total, 0)

	metrics.AuditsStarted.Inc()
	started := time.Now()

	var runErr error
	if policy == PolicyIsolate {
		runErr = o.runIsolated(ctx, req, selected, state, progress)
	} else {
		runErr = o.runFailFast(ctx, req, selected, state, progress)
	}

	o.log.Info().
		Str("target", req.Target).
		Int("completed", state.Completed).
		Int("total", state.Total).
		Dur("elapsed", time.Since(started)).
		Bool("failed", runErr != nil || len(state.Errors) > 0).
		Msg("audit run finished")
	return state, runErr
}

// validate checks the request and resolves the selected modules into the
// fixed dispatch order. No client is invoked when validation fails.
func (o *Orchestrator) validate(req domain.AuditRequest) ([]domain.ModuleKind, error) {
	if req.Target == "" {
		return nil, apperrors.NewValidationError("url", "target must not be empty")
	}
	if len(req.Modules) == 0 {
		return nil, apperrors.NewValidationError("modules", "at least one module must be selected")
	}

	requested := make(map[domain.ModuleKind]bool, len(req.Modules))
	for _, m := range req.Modules {
		if _, ok := o.clients[m]; !ok {
			return nil, apperrors.NewValidationError("modules", "unknown module %q", m)
		}
		requested[m] = true
	}

	selected := make([]domain.ModuleKind, 0, len(requested))
	for _, m := range domain.ModuleOrder {
		if requested[m] {
			selected = append(selected, m)
		}
	}
	return selected, nil
}

func (o *Orchestrator) runFailFast(ctx context.Context, req domain.AuditRequest, selected []domain.ModuleKind, state *domain.AuditState, progress ProgressFunc) error {
	for _, kind := range selected {
		result, err := o.callModule(ctx, req, kind)
		state.Completed++
		if err != nil {
			state.Errors[kind] = err.Error()
			progress(state.Completed, state.Total, state.Progress())
			return err
		}
		state.Results[kind] = result
		progress(state.Completed, state.Total, state.Progress())
	}
	return nil
}

func (o *Orchestrator) runIsolated(ctx context.Context, req domain.AuditRequest, selected []domain.ModuleKind, state *domain.AuditState, progress ProgressFunc) error {
	var mu sync.Mutex
	var g errgroup.Group

	for _, kind := range selected {
		g.Go(func() error {
			result, err := o.callModule(ctx, req, kind)

			mu.Lock()
			defer mu.Unlock()
			state.Completed++
			if err != nil {
				state.Errors[kind] = err.Error()
			} else {
				state.Results[kind] = result
			}
			progress(state.Completed, state.Total, state.Progress())
			return nil
		})
	}
	// Module errors are recorded per module, never returned.
	return g.Wait()
}

func (o *Orchestrator) callModule(ctx context.Context, req domain.AuditRequest, kind domain.ModuleKind) (domain.ModuleResult, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	started := time.Now()
	result, err := o.clients[kind].Analyze(ctx, req)
	metrics.ObserveModuleCall(string(kind), time.Since(started), err)
	if err != nil {
		o.log.Warn().Err(err).Str("module", string(kind)).Msg("module failed")
		return domain.ModuleResult{}, err
	}
	return result, nil
}
