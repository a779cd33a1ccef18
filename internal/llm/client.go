// SPDX-License-Identifier: Apache-2.0

// Package llm defines the language-model client contract and the Groq
// implementation used for parameter extraction and summarization.
package llm

import "context"

// Client is the interface for LLM interactions. Both the parameter
// extractor and the summarizer depend only on this, so tests run against a
// fake without live network access.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
