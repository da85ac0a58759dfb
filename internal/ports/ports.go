package ports

import (
	"context"

	"siteaudit/internal/domain"
)

// ModuleClient wraps a single external audit API and normalizes its response
// into the module's result shape. Implementations return
// apperrors.UpstreamError, TimeoutError or NetworkError on failure and never
// a partially populated result.
type ModuleClient interface {
	Module() domain.ModuleKind
	Analyze(ctx context.Context, req domain.AuditRequest) (domain.ModuleResult, error)
}

// ChatClient asks a generative AI platform a single question and returns its
// text answer. Used by the geo module for brand-mention checks.
type ChatClient interface {
	Platform() string
	Ask(ctx context.Context, prompt string) (string, error)
}

// ReportGenerator renders collected module payloads into a downloadable
// document.
type ReportGenerator interface {
	Generate(ctx context.Context, req domain.ReportRequest) ([]byte, error)
}
