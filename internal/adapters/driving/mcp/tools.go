package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/churnlens/churnlens-cli/internal/core/domain"
)

// defaultTopK is the retrieval depth when a tool call omits top_k.
const defaultTopK = 5

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer over the indexed customers"`
	TopK     int    `json:"top_k,omitempty" jsonschema:"number of documents to retrieve (default 5)"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer   string `json:"answer"`
	Context  string `json:"context"`
	Degraded bool   `json:"degraded"`
}

// RetrieveInput is the input schema for the retrieve tool.
type RetrieveInput struct {
	Question string `json:"question" jsonschema:"the question to match against customer documents"`
	TopK     int    `json:"top_k,omitempty" jsonschema:"number of documents to retrieve (default 5)"`
}

// RetrieveOutput is the output schema for the retrieve tool.
type RetrieveOutput struct {
	Hits  []HitOutput `json:"hits"`
	Count int         `json:"count"`
}

// HitOutput represents a single retrieved document.
type HitOutput struct {
	Position int     `json:"position"`
	Score    float64 `json:"score"`
	Text     string  `json:"text"`
}

// InsightInput is the input schema for the predict and explain tools.
type InsightInput struct {
	Features map[string]float64 `json:"features" jsonschema:"the customer's feature values by name"`
}

// PredictOutput is the output schema for the predict tool.
type PredictOutput struct {
	Churn       bool    `json:"churn"`
	Probability float64 `json:"probability"`
}

// ExplainOutput is the output schema for the explain tool.
type ExplainOutput struct {
	Contributions []ContributionOutput `json:"contributions"`
}

// ContributionOutput represents one feature contribution.
type ContributionOutput struct {
	Feature      string  `json:"feature"`
	Contribution float64 `json:"contribution"`
	Value        float64 `json:"value"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question about the indexed customers using retrieval-augmented generation",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "retrieve",
		Description: "Retrieve the customer documents most similar to a question",
	}, s.handleRetrieve)

	if s.ports.Insight != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "predict_churn",
			Description: "Predict whether a customer will churn from their feature values",
		}, s.handlePredict)

		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "explain_churn",
			Description: "Explain a churn prediction as ranked feature contributions",
		}, s.handleExplain)
	}
}

// handleAsk handles the ask tool invocation. When answer generation is
// unavailable the retrieved context is still returned, flagged as
// degraded.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	k := input.TopK
	if k <= 0 {
		k = defaultTopK
	}

	result, err := s.ports.Query.Ask(ctx, input.Question, k)
	if err != nil {
		if errors.Is(err, domain.ErrAnswerUnavailable) {
			return nil, AskOutput{Context: result.Context, Degraded: true}, nil
		}
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{Answer: result.Answer, Context: result.Context}, nil
}

// handleRetrieve handles the retrieve tool invocation.
func (s *Server) handleRetrieve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RetrieveInput,
) (*mcp.CallToolResult, RetrieveOutput, error) {
	k := input.TopK
	if k <= 0 {
		k = defaultTopK
	}

	hits, err := s.ports.Query.Retrieve(ctx, input.Question, k)
	if err != nil {
		return nil, RetrieveOutput{}, err
	}

	output := RetrieveOutput{
		Hits:  make([]HitOutput, len(hits)),
		Count: len(hits),
	}
	for i := range hits {
		output.Hits[i] = HitOutput{
			Position: hits[i].Position,
			Score:    hits[i].Score,
			Text:     hits[i].Document.Text,
		}
	}

	return nil, output, nil
}

// handlePredict handles the predict_churn tool invocation.
func (s *Server) handlePredict(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input InsightInput,
) (*mcp.CallToolResult, PredictOutput, error) {
	prediction, err := s.ports.Insight.Predict(ctx, domain.FeatureVector(input.Features))
	if err != nil {
		return nil, PredictOutput{}, err
	}

	return nil, PredictOutput{
		Churn:       prediction.Churn,
		Probability: prediction.Probability,
	}, nil
}

// handleExplain handles the explain_churn tool invocation.
func (s *Server) handleExplain(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input InsightInput,
) (*mcp.CallToolResult, ExplainOutput, error) {
	contributions, err := s.ports.Insight.Explain(ctx, domain.FeatureVector(input.Features))
	if err != nil {
		return nil, ExplainOutput{}, err
	}

	output := ExplainOutput{
		Contributions: make([]ContributionOutput, len(contributions)),
	}
	for i := range contributions {
		output.Contributions[i] = ContributionOutput{
			Feature:      contributions[i].Feature,
			Contribution: contributions[i].Contribution,
			Value:        contributions[i].Value,
		}
	}

	return nil, output, nil
}
