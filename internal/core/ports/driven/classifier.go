package driven

import (
	"context"

	"github.com/churnlens/churnlens-cli/internal/core/domain"
)

// ChurnClassifier is the external tabular prediction service. It is an
// unrelated subsystem from retrieval; the core only consumes its two
// operations and never sees the model itself.
type ChurnClassifier interface {
	// Predict returns the binary churn label and probability for the
	// given feature vector.
	Predict(ctx context.Context, features domain.FeatureVector) (domain.Prediction, error)

	// Explain returns per-feature contributions for the prediction,
	// sorted by descending absolute contribution.
	Explain(ctx context.Context, features domain.FeatureVector) ([]domain.FeatureContribution, error)

	// Ping validates the service is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
