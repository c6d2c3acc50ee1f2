package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnswerPrompt_WithContext(t *testing.T) {
	got := AnswerPrompt("why churn?", "doc A\ndoc B")
	assert.Equal(t, "Question: why churn?\nContext: doc A\ndoc B\nAnswer in a concise way:", got)
}

func TestAnswerPrompt_EmptyContext(t *testing.T) {
	got := AnswerPrompt("why churn?", "")
	assert.Equal(t, "Question: why churn?\nAnswer in a concise way:", got)
}
