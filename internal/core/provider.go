package core

import "context"

// AnalysisProvider abstracts the generative-model backend that turns an
// analysis request into a structured review.
//
// Analyze must never fail the pipeline: implementations substitute a
// deterministic mock result when the backend is unconfigured, unreachable,
// or returns an unparseable response.
type AnalysisProvider interface {
	// Analyze produces a structured review for the request, making at most
	// one backend attempt before falling back to the mock result.
	Analyze(ctx context.Context, req AnalysisRequest) *AnalysisResult

	// ListModels returns the model identifiers usable for analysis, most
	// preferred first. It degrades to a static list on backend failure and
	// to a single sentinel name when no credential is configured.
	ListModels(ctx context.Context) []string
}
