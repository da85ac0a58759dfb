package orchestration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"siteaudit/internal/apperrors"
	"siteaudit/internal/domain"
	"siteaudit/internal/ports"
)

// stubClient records the requests it sees and returns a canned result or
// error for its module kind.
type stubClient struct {
	kind domain.ModuleKind
	err  error

	mu    sync.Mutex
	calls []domain.AuditRequest
}

func (s *stubClient) Module() domain.ModuleKind { return s.kind }

func (s *stubClient) Analyze(ctx context.Context, req domain.AuditRequest) (domain.ModuleResult, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	s.mu.Unlock()
	if s.err != nil {
		return domain.ModuleResult{}, s.err
	}
	return domain.ModuleResult{Module: s.kind, Traffic: &domain.TrafficData{URL: req.Target}}, nil
}

func (s *stubClient) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func newStubs() []*stubClient {
	var stubs []*stubClient
	for _, kind := range domain.ModuleOrder {
		stubs = append(stubs, &stubClient{kind: kind})
	}
	return stubs
}

func newOrchestrator(stubs []*stubClient) *Orchestrator {
	clients := make([]ports.ModuleClient, len(stubs))
	for i, s := range stubs {
		clients[i] = s
	}
	return New(clients, time.Second, zerolog.Nop())
}

func TestRunAllModulesComplete(t *testing.T) {
	for _, policy := range []Policy{PolicyFailFast, PolicyIsolate} {
		stubs := newStubs()
		orch := newOrchestrator(stubs)

		state, err := orch.Run(context.Background(), domain.AuditRequest{
			Target:  "example.com",
			Modules: domain.ModuleOrder,
		}, policy, nil)
		require.NoError(t, err)

		assert.Equal(t, len(domain.ModuleOrder), state.Total)
		assert.Equal(t, state.Total, state.Completed)
		for _, kind := range domain.ModuleOrder {
			assert.Contains(t, state.Results, kind)
		}
		assert.Empty(t, state.Errors)
	}
}

func TestRunNormalizesTargetForEveryClient(t *testing.T) {
	stubs := newStubs()
	orch := newOrchestrator(stubs)

	_, err := orch.Run(context.Background(), domain.AuditRequest{
		Target:  "example.com",
		Modules: domain.ModuleOrder,
	}, PolicyFailFast, nil)
	require.NoError(t, err)

	for _, s := range stubs {
		require.Len(t, s.calls, 1)
		assert.Equal(t, "https://example.com", s.calls[0].Target)
	}
}

func TestRunProgressMonotonic(t *testing.T) {
	stubs := newStubs()
	orch := newOrchestrator(stubs)

	var mu sync.Mutex
	var fractions []float64
	progress := func(completed, total int, fraction float64) {
		mu.Lock()
		fractions = append(fractions, fraction)
		mu.Unlock()
	}

	_, err := orch.Run(context.Background(), domain.AuditRequest{
		Target:  "example.com",
		Modules: domain.ModuleOrder,
	}, PolicyIsolate, progress)
	require.NoError(t, err)

	require.Len(t, fractions, len(domain.ModuleOrder)+1)
	for i := 1; i < len(fractions); i++ {
		assert.GreaterOrEqual(t, fractions[i], fractions[i-1])
	}
	assert.InDelta(t, 1.0, fractions[len(fractions)-1], 1e-9)
}

func TestRunEmptyModulesRejectedWithoutCalls(t *testing.T) {
	stubs := newStubs()
	orch := newOrchestrator(stubs)

	_, err := orch.Run(context.Background(), domain.AuditRequest{Target: "example.com"}, PolicyFailFast, nil)

	var ve apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	for _, s := range stubs {
		assert.Zero(t, s.callCount())
	}
}

func TestRunEmptyTargetRejected(t *testing.T) {
	orch := newOrchestrator(newStubs())

	_, err := orch.Run(context.Background(), domain.AuditRequest{Modules: domain.ModuleOrder}, PolicyFailFast, nil)

	var ve apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestRunUnknownModuleRejected(t *testing.T) {
	orch := newOrchestrator(newStubs())

	_, err := orch.Run(context.Background(), domain.AuditRequest{
		Target:  "example.com",
		Modules: []domain.ModuleKind{"backlinks"},
	}, PolicyFailFast, nil)

	var ve apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestRunFailFastStopsOnSecondModule(t *testing.T) {
	stubs := newStubs()
	upstream := apperrors.UpstreamError{Service: "search-console", Status: 503}
	stubs[1].err = upstream
	orch := newOrchestrator(stubs)

	state, err := orch.Run(context.Background(), domain.AuditRequest{
		Target:  "example.com",
		Modules: domain.ModuleOrder,
	}, PolicyFailFast, nil)

	var ue apperrors.UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, upstream, ue)

	require.Len(t, state.Results, 1)
	assert.Contains(t, state.Results, domain.ModuleSEOHealth)
	assert.Equal(t, 2, state.Completed)
	assert.Contains(t, state.Errors, domain.ModuleSearchVisibility)

	// Modules after the failing one were never dispatched.
	assert.Zero(t, stubs[2].callCount())
	assert.Zero(t, stubs[3].callCount())
}

func TestRunIsolateCollectsPartialResults(t *testing.T) {
	stubs := newStubs()
	stubs[1].err = apperrors.UpstreamError{Service: "search-console", Status: 503}
	orch := newOrchestrator(stubs)

	state, err := orch.Run(context.Background(), domain.AuditRequest{
		Target:  "example.com",
		Modules: domain.ModuleOrder,
	}, PolicyIsolate, nil)
	require.NoError(t, err)

	assert.Equal(t, len(domain.ModuleOrder), state.Completed)
	assert.Len(t, state.Results, len(domain.ModuleOrder)-1)
	assert.Contains(t, state.Errors, domain.ModuleSearchVisibility)
	for _, s := range stubs {
		assert.Equal(t, 1, s.callCount())
	}
}

func TestRunDefaultsKeywords(t *testing.T) {
	stubs := newStubs()
	orch := newOrchestrator(stubs)

	state, err := orch.Run(context.Background(), domain.AuditRequest{
		Target:  "example.com",
		Modules: []domain.ModuleKind{domain.ModuleGEO},
	}, PolicyFailFast, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultKeywords, state.Request.Keywords)
	assert.Equal(t, 1, state.Total)
}

func TestRunSubsetPreservesDispatchOrder(t *testing.T) {
	stubs := newStubs()
	orch := newOrchestrator(stubs)

	// Request order deliberately reversed; dispatch follows the fixed order.
	state, err := orch.Run(context.Background(), domain.AuditRequest{
		Target:  "example.com",
		Modules: []domain.ModuleKind{domain.ModuleTraffic, domain.ModuleSEOHealth},
	}, PolicyFailFast, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, state.Total)
	assert.Contains(t, state.Results, domain.ModuleSEOHealth)
	assert.Contains(t, state.Results, domain.ModuleTraffic)
	assert.Zero(t, stubs[1].callCount())
	assert.Zero(t, stubs[2].callCount())
}
