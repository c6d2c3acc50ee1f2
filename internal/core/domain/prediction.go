package domain

// Prediction is the external classifier's verdict for one customer.
type Prediction struct {
	// Churn is the binary outcome label.
	Churn bool

	// Probability is the classifier's churn probability in [0, 1].
	Probability float64
}

// FeatureContribution is one entry of a prediction explanation:
// how much a single input feature pushed the prediction.
type FeatureContribution struct {
	// Feature is the input feature name.
	Feature string

	// Contribution is the signed attribution value. Positive values
	// push towards churn, negative away from it.
	Contribution float64

	// Value is the feature's value in the explained input.
	Value float64
}
