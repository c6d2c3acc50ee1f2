// Package rest provides a client for the external churn prediction
// service. The service wraps a trained tabular model and its
// feature-attribution explainer behind two JSON endpoints; this adapter
// only speaks the wire contract and knows nothing about the model.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/churnlens/churnlens-cli/internal/core/domain"
	"github.com/churnlens/churnlens-cli/internal/core/ports/driven"
)

// Ensure Classifier implements the interface.
var _ driven.ChurnClassifier = (*Classifier)(nil)

// Default configuration values.
const (
	DefaultTimeout = 30 * time.Second
)

// Config holds configuration for the classifier client.
type Config struct {
	// BaseURL is the prediction service base URL (required).
	BaseURL string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Classifier calls the external churn prediction service.
type Classifier struct {
	client  *http.Client
	baseURL string
}

// predictRequest is the /predict and /explain request format.
type predictRequest struct {
	Features map[string]float64 `json:"features"`
}

// predictResponse is the /predict response format.
type predictResponse struct {
	Churn       bool    `json:"churn"`
	Probability float64 `json:"probability"`
}

// explainResponse is the /explain response format.
type explainResponse struct {
	Contributions []struct {
		Feature      string  `json:"feature"`
		Contribution float64 `json:"contribution"`
		Value        float64 `json:"value"`
	} `json:"contributions"`
}

// NewClassifier creates a new classifier client.
func NewClassifier(cfg Config) (*Classifier, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("classifier: base URL is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Classifier{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
	}, nil
}

// Predict returns the churn verdict for the given features.
func (c *Classifier) Predict(ctx context.Context, features domain.FeatureVector) (domain.Prediction, error) {
	var resp predictResponse
	if err := c.post(ctx, "/predict", features, &resp); err != nil {
		return domain.Prediction{}, err
	}
	if resp.Probability < 0 || resp.Probability > 1 {
		return domain.Prediction{}, fmt.Errorf("%w: probability %f out of range",
			domain.ErrClassifierUnavailable, resp.Probability)
	}
	return domain.Prediction{Churn: resp.Churn, Probability: resp.Probability}, nil
}

// Explain returns the feature contributions for the given features,
// in the order the service ranked them.
func (c *Classifier) Explain(ctx context.Context, features domain.FeatureVector) ([]domain.FeatureContribution, error) {
	var resp explainResponse
	if err := c.post(ctx, "/explain", features, &resp); err != nil {
		return nil, err
	}

	out := make([]domain.FeatureContribution, len(resp.Contributions))
	for i, fc := range resp.Contributions {
		out[i] = domain.FeatureContribution{
			Feature:      fc.Feature,
			Contribution: fc.Contribution,
			Value:        fc.Value,
		}
	}
	return out, nil
}

func (c *Classifier) post(ctx context.Context, path string, features domain.FeatureVector, out any) error {
	jsonBody, err := json.Marshal(predictRequest{Features: features})
	if err != nil {
		return fmt.Errorf("classifier: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("classifier: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrClassifierUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status %d: %s", domain.ErrClassifierUnavailable, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: malformed response: %v", domain.ErrClassifierUnavailable, err)
	}
	return nil
}

// Ping validates the service is reachable.
func (c *Classifier) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", http.NoBody)
	if err != nil {
		return fmt.Errorf("classifier: failed to create ping request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: ping failed: %v", domain.ErrClassifierUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: service returned status %d", domain.ErrClassifierUnavailable, resp.StatusCode)
	}
	return nil
}

// Close releases resources.
func (c *Classifier) Close() error {
	return nil
}
