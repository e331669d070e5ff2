package classify

import "context"

// Classifier labels a single text for one task kind. For open kinds the
// existing slice carries the registry snapshot the provider should prefer
// reusing; closed kinds ignore it. Implementations return whatever the
// provider said; validation against the task alphabet happens in the pool.
type Classifier interface {
	Classify(ctx context.Context, text string, kind TaskKind, existing []string) (string, error)
}

// ClassifierFunc adapts a plain function to the Classifier interface.
type ClassifierFunc func(ctx context.Context, text string, kind TaskKind, existing []string) (string, error)

func (f ClassifierFunc) Classify(ctx context.Context, text string, kind TaskKind, existing []string) (string, error) {
	return f(ctx, text, kind, existing)
}

// Prescorer resolves sentiment locally before any provider call. ok=false
// means the scorer is not confident and the text falls through to the
// Classifier.
type Prescorer interface {
	Prescore(text string) (label string, ok bool)
}
