package match

import (
	"testing"

	"github.com/poiesic/verity/core"
	"github.com/stretchr/testify/assert"
)

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		question string
		want     core.Intent
	}{
		{"What is SSO?", core.IntentDefinition},
		{"Define idempotency", core.IntentDefinition},
		{"What does TLS stand for?", core.IntentDefinition},
		{"How do I reset my password?", core.IntentHowTo},
		{"How to configure the VPN client", core.IntentHowTo},
		{"Walk me through the release process", core.IntentHowTo},
		{"The build fails with a linker error", core.IntentTroubleshooting},
		{"Printer not working after the update", core.IntentTroubleshooting},
		{"App crashes on startup", core.IntentTroubleshooting},
		{"Postgres vs MySQL for analytics workloads", core.IntentComparison},
		{"What is the difference between TCP and UDP?", core.IntentComparison},
		{"Which is best for structured logging?", core.IntentRecommendation},
		{"Recommend a code review tool", core.IntentRecommendation},
		{"Why is the deploy pipeline slow?", core.IntentExplanation},
		{"Explain the caching layer", core.IntentExplanation},
		{"List all supported regions", core.IntentListing},
		{"What are the on-call rotations?", core.IntentListing},
		// No cue matches; falls back to explanation
		{"Tell me about the storage layer", core.IntentExplanation},
		{"", core.IntentExplanation},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyIntent(tt.question))
		})
	}
}

func TestClassifyIntentPriority(t *testing.T) {
	// Comparison cues outrank definition cues even when both appear
	assert.Equal(t, core.IntentComparison,
		ClassifyIntent("What is the difference between a VPN and a proxy?"))

	// How-to cues outrank troubleshooting cues
	assert.Equal(t, core.IntentHowTo,
		ClassifyIntent("How do I fix my monitor setup?"))
}

func TestClassifyIntentDeterministic(t *testing.T) {
	question := "How do I rotate my API keys?"
	first := ClassifyIntent(question)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ClassifyIntent(question))
	}
}
