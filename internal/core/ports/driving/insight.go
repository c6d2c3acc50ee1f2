package driving

import (
	"context"

	"github.com/churnlens/churnlens-cli/internal/core/domain"
)

// InsightService exposes the external churn classifier to the driving
// surfaces, with input validation and explanation ordering enforced.
type InsightService interface {
	// Predict returns the churn verdict for one customer's features.
	Predict(ctx context.Context, features domain.FeatureVector) (domain.Prediction, error)

	// Explain returns the ranked feature contributions for one
	// customer's features, sorted by descending absolute contribution.
	Explain(ctx context.Context, features domain.FeatureVector) ([]domain.FeatureContribution, error)
}
