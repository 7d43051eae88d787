package match

import (
	"strings"

	"github.com/poiesic/verity/core"
)

// intentCues maps each intent to the lexical cues that signal it. Groups are
// scanned in order and the first cue contained in the question decides the
// label, so more specific intents come first: "what is the difference
// between" must classify as comparison, not definition.
var intentCues = []struct {
	label core.Intent
	cues  []string
}{
	{core.IntentComparison, []string{
		" vs ", " vs.", "versus", "difference between", "compared to",
		"compare", "better than", "or should i use",
	}},
	{core.IntentHowTo, []string{
		"how to", "how do i", "how do you", "how can i", "how should i",
		"steps to", "guide to", "walk me through", "set up", "setup",
	}},
	{core.IntentTroubleshooting, []string{
		"not working", "doesn't work", "does not work", "error", "fails",
		"failed", "failing", "broken", "won't", "wont", "fix", "troubleshoot",
		"crash", "stuck",
	}},
	{core.IntentRecommendation, []string{
		"recommend", "suggest", "best way", "best practice", "which is best",
		"should i", "which one", "worth using",
	}},
	{core.IntentListing, []string{
		"list of", "list all", "list the", "what are the", "examples of",
		"enumerate", "name some", "what options",
	}},
	{core.IntentDefinition, []string{
		"what is", "what's", "what does", "what do you mean", "define",
		"definition of", "meaning of", "stand for", "stands for",
	}},
	{core.IntentExplanation, []string{
		"why", "explain", "how does", "how did", "how come", "what happens",
	}},
}

// ClassifyIntent maps a question to one of the seven intent labels by
// scanning lexical cues in a fixed priority order. Questions matching no cue
// classify as explanation. The classification is a pure function of the
// question text.
func ClassifyIntent(question string) core.Intent {
	q := strings.ToLower(question)
	for _, group := range intentCues {
		for _, cue := range group.cues {
			if strings.Contains(q, cue) {
				return group.label
			}
		}
	}
	return core.IntentExplanation
}
