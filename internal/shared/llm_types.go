package shared

import (
	"time"
)

// TokenUsage tracks the tokens consumed by a request.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Model            string
}

// CallMeta holds operational metadata for one generation call.
type CallMeta struct {
	Operation string // "meal-plan", "regeneration", "shopping-list"
	Usage     TokenUsage
	Latency   time.Duration
}
