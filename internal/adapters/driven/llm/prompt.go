// Package llm holds the prompt layout shared by the answer-generation
// adapters. Every provider receives the same question/context framing,
// so switching providers changes the model, not the task.
package llm

import "fmt"

// AnswerPrompt renders the retrieval-augmented prompt for a question
// and its retrieved context.
func AnswerPrompt(question, retrieved string) string {
	if retrieved == "" {
		return fmt.Sprintf("Question: %s\nAnswer in a concise way:", question)
	}
	return fmt.Sprintf("Question: %s\nContext: %s\nAnswer in a concise way:", question, retrieved)
}
