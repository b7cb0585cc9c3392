// Package llm provides clients for the model collaborator: a local
// Ollama endpoint by default, or Cohere when an API key is configured.
package llm

import "context"

// Completer is the model collaborator boundary: one synchronous
// completion per call with a caller-supplied context for timeout and
// cancellation.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Model() string
}

// HealthChecker is implemented by clients that can verify their
// endpoint before a run starts. A failed health check is the only
// condition that aborts a whole run.
type HealthChecker interface {
	Healthcheck(ctx context.Context) error
}
