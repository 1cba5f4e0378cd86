package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Seebrasse345/mp-statement-writer/internal/models"
)

func TestComposeInitialIncludesInputsVerbatim(t *testing.T) {
	out := ComposeInitial(Input{
		RawText:  "Funding increased by £2m",
		Context:  "local bypass project",
		Audience: "residents",
		Tone:     "Optimistic/Positive",
	})

	assert.Contains(t, out, "# MP STATEMENT REWRITING TASK")
	assert.Contains(t, out, "Funding increased by £2m")
	assert.Contains(t, out, "local bypass project")
	assert.Contains(t, out, "residents")
	assert.Contains(t, out, "## REQUIRED TONE: Optimistic/Positive")
	assert.Contains(t, out, "opportunities, solutions and positive outcomes")
	assert.Contains(t, out, "## TRANSFORMATION GUIDELINES:")
	assert.Contains(t, out, "## OUTPUT REQUIREMENTS:")
	assert.Contains(t, out, "150-300 words")
	assert.Contains(t, out, "## REWRITTEN STATEMENT:")
}

func TestComposeInitialOmitsEmptyExampleSections(t *testing.T) {
	out := ComposeInitial(Input{RawText: "raw", Tone: "Neutral/Balanced"})
	assert.NotContains(t, out, "EXAMPLES TO EMULATE")
	assert.NotContains(t, out, "EXAMPLES TO AVOID")
}

func TestComposeInitialRendersExamples(t *testing.T) {
	out := ComposeInitial(Input{
		RawText: "raw",
		Tone:    "Neutral/Balanced",
		Emulate: []models.Example{
			{Text: "good one", Tone: "Empathetic/Caring"},
			{Text: "good two"},
		},
		Avoid: []models.Example{
			{Text: "bad one"},
		},
	})

	assert.Contains(t, out, "## EXAMPLES TO EMULATE")
	assert.Contains(t, out, "### Example 1 (Tone: Empathetic/Caring):\n\"good one\"")
	assert.Contains(t, out, "### Example 2 :\n\"good two\"")
	assert.Contains(t, out, "## EXAMPLES TO AVOID")
	assert.Contains(t, out, "### Bad Example 1:\n\"bad one\"")
	// Emulate block precedes the avoid block.
	assert.Less(t, strings.Index(out, "EXAMPLES TO EMULATE"), strings.Index(out, "EXAMPLES TO AVOID"))
}

func TestComposeInitialUnknownToneUsesFallback(t *testing.T) {
	out := ComposeInitial(Input{RawText: "raw", Tone: "Sarcastic"})
	assert.Contains(t, out, DefaultToneDirective)
}

func TestComposeRegenerationLabelsPreviousAttemptFirst(t *testing.T) {
	out := ComposeRegeneration(Input{
		RawText:  "raw",
		Audience: "parents",
		Tone:     "Neutral/Balanced",
		Avoid: []models.Example{
			{Text: "X", Topic: "Previous attempt for parents", Tone: "Neutral/Balanced", PreviousAttempt: true},
			{Text: "other rejected"},
		},
	})

	assert.Contains(t, out, "(SECOND ATTEMPT)")
	assert.Contains(t, out, "SIGNIFICANTLY DIFFERENT APPROACH")
	require.Contains(t, out, "### Your Previous Attempt:\n\"X\"")
	assert.Contains(t, out, "### Bad Example 2:\n\"other rejected\"")
	assert.NotContains(t, out, "### Bad Example 1:")
	// The previous attempt always renders before any other avoid example.
	assert.Less(t, strings.Index(out, "Your Previous Attempt"), strings.Index(out, "Bad Example 2"))

	assert.Contains(t, out, "It didn't fully capture the MP's personal voice")
	assert.Contains(t, out, "The local context wasn't sufficiently incorporated")
	assert.Contains(t, out, "It may have used generic political language")
	assert.Contains(t, out, "The tone wasn't quite right for the audience")

	assert.Contains(t, out, "## TRANSFORMATION REQUIREMENTS:")
	assert.Contains(t, out, "distinctly different from your previous attempt")
}

func TestComposeRegenerationWithoutAvoidList(t *testing.T) {
	out := ComposeRegeneration(Input{RawText: "raw", Tone: "Neutral/Balanced"})
	assert.NotContains(t, out, "EXAMPLES TO AVOID")
	assert.Contains(t, out, "## REWRITTEN STATEMENT:")
}
