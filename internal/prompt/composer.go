package prompt

import (
	"fmt"
	"strings"

	"github.com/Seebrasse345/mp-statement-writer/internal/models"
)

// Input collects everything a composer needs to render a prompt. Raw text,
// context and audience are interpolated verbatim; validation is the
// caller's job, not the composer's.
type Input struct {
	RawText  string
	Context  string
	Audience string
	Tone     string
	Emulate  []models.Example
	Avoid    []models.Example
}

// ComposeInitial renders the first-pass instruction document.
func ComposeInitial(in Input) string {
	var b strings.Builder

	b.WriteString("# MP STATEMENT REWRITING TASK\n\n")
	b.WriteString("## OBJECTIVE:\n")
	b.WriteString("Transform the government statement below into a personalized communication from the MP that feels authentic, locally relevant, and engaging to the specified audience. The rewritten statement should sound like it comes directly from the MP, incorporating their voice and style while addressing the specific context and audience needs.\n\n")

	writeSharedHeader(&b, in)
	writeEmulateBlock(&b, in.Emulate)
	writeAvoidBlock(&b, in.Avoid)

	b.WriteString("## TRANSFORMATION GUIDELINES:\n\n")
	b.WriteString("1. **Authentic Voice**:\n")
	b.WriteString("   - Use first-person perspective (\"I\", \"my\", \"our constituency\")\n")
	b.WriteString("   - Maintain the MP's conversational style shown in the examples\n")
	b.WriteString("   - Avoid bureaucratic language and generic political phrases\n\n")
	b.WriteString("2. **Local Relevance**:\n")
	b.WriteString("   - Incorporate specific local context provided\n")
	b.WriteString("   - Reference constituency concerns where appropriate\n")
	b.WriteString("   - Make national announcements feel relevant to local constituents\n\n")
	b.WriteString("3. **Audience Awareness**:\n")
	b.WriteString("   - Tailor vocabulary and examples to resonate with the target audience\n")
	b.WriteString("   - Address specific concerns this audience might have\n")
	b.WriteString("   - Use appropriate level of detail and explanation\n\n")
	b.WriteString("4. **Personal Connection**:\n")
	b.WriteString("   - Include the MP's personal commitment to the issue\n")
	b.WriteString("   - Reference relevant past work on similar issues when appropriate\n")
	b.WriteString("   - Show understanding of constituent needs\n\n")
	b.WriteString("5. **Clear Communication**:\n")
	b.WriteString("   - Maintain clarity on key facts and figures from the original statement\n")
	b.WriteString("   - Structure with clear paragraphs and logical flow\n")
	b.WriteString("   - Avoid overly complex sentences or jargon\n\n")

	b.WriteString("## OUTPUT REQUIREMENTS:\n")
	b.WriteString("- Produce a complete, polished statement ready for publication\n")
	b.WriteString("- Length should be appropriate to the complexity of the topic (typically 150-300 words)\n")
	b.WriteString("- Balance faithfulness to the original information with personalization\n")
	b.WriteString("- Do not include any explanatory notes, only provide the rewritten statement\n\n")
	b.WriteString("## REWRITTEN STATEMENT:\n")

	return b.String()
}

// ComposeRegeneration renders the second-attempt instruction document. The
// first avoid entry is expected to be the operator's rejected draft and is
// labeled as the model's own previous attempt.
func ComposeRegeneration(in Input) string {
	var b strings.Builder

	b.WriteString("# MP STATEMENT REWRITING TASK (SECOND ATTEMPT)\n\n")
	b.WriteString("## OBJECTIVE:\n")
	b.WriteString("Transform the government statement below into a personalized communication from the MP. Your previous attempt was not approved, so this version needs to take a SIGNIFICANTLY DIFFERENT APPROACH while still maintaining the MP's authentic voice.\n\n")

	writeSharedHeader(&b, in)
	writeEmulateBlock(&b, in.Emulate)
	writeRegenerationAvoidBlock(&b, in.Avoid)

	b.WriteString("## TRANSFORMATION REQUIREMENTS:\n\n")
	b.WriteString("1. **TAKE A COMPLETELY DIFFERENT APPROACH** from your previous attempt:\n")
	b.WriteString("   - Use a different structure and opening\n")
	b.WriteString("   - Emphasize different aspects of the information\n")
	b.WriteString("   - Find a fresh angle or framing for the message\n")
	b.WriteString("   - Avoid repeating phrases, examples, or analogies from the rejected version\n\n")
	b.WriteString("2. **Stronger Local Connection**:\n")
	b.WriteString("   - More explicitly incorporate the local context provided\n")
	b.WriteString("   - Make stronger connections to constituency-specific issues\n")
	b.WriteString("   - Add more geographical or community-specific references\n")
	b.WriteString("   - Show how national policies directly impact this specific constituency\n\n")
	b.WriteString("3. **More Authentic Voice**:\n")
	b.WriteString("   - Use more natural, conversational language\n")
	b.WriteString("   - Include more personal commitment (\"I am committed to...\" \"I've been working on...\")\n")
	b.WriteString("   - Avoid political clichés and generic phrases\n")
	b.WriteString("   - Make it sound like a real person speaking, not a press release\n\n")
	b.WriteString("4. **Better Audience Targeting**:\n")
	b.WriteString("   - Address the specific needs and concerns of this audience more directly\n")
	b.WriteString("   - Use language, examples, and references that will resonate with them\n")
	b.WriteString("   - Adjust complexity and detail level to match audience expectations\n")
	b.WriteString("   - Include specific benefits or impacts relevant to this audience\n\n")
	b.WriteString("5. **More Compelling Structure**:\n")
	b.WriteString("   - Create a stronger opening that immediately engages\n")
	b.WriteString("   - Ensure a logical flow with clear transitions\n")
	b.WriteString("   - Include a more memorable conclusion with clear next steps\n")
	b.WriteString("   - Break up dense information into more digestible parts\n\n")

	b.WriteString("## OUTPUT REQUIREMENTS:\n")
	b.WriteString("- Produce a complete, polished statement ready for publication\n")
	b.WriteString("- Length should be appropriate to the complexity of the topic (typically 150-300 words)\n")
	b.WriteString("- Ensure this version is distinctly different from your previous attempt\n")
	b.WriteString("- Do not include any explanatory notes, only provide the rewritten statement\n\n")
	b.WriteString("## REWRITTEN STATEMENT:\n")

	return b.String()
}

func writeSharedHeader(b *strings.Builder, in Input) {
	fmt.Fprintf(b, "## RAW GOVERNMENT STATEMENT: %s\n\n", in.RawText)
	fmt.Fprintf(b, "## LOCAL CONTEXT:\n%s\n\n", in.Context)
	fmt.Fprintf(b, "## TARGET AUDIENCE:\n%s\n\n", in.Audience)
	fmt.Fprintf(b, "## REQUIRED TONE: %s\n%s\n\n", in.Tone, ToneDirective(in.Tone))
}

func writeEmulateBlock(b *strings.Builder, emulate []models.Example) {
	if len(emulate) == 0 {
		return
	}
	b.WriteString("## EXAMPLES TO EMULATE (these showcase the MP's voice and style):\n\n")
	for i, example := range emulate {
		fmt.Fprintf(b, "### Example %d ", i+1)
		if example.Tone != "" {
			fmt.Fprintf(b, "(Tone: %s)", example.Tone)
		}
		fmt.Fprintf(b, ":\n\"%s\"\n\n", example.Text)
	}
}

func writeAvoidBlock(b *strings.Builder, avoid []models.Example) {
	if len(avoid) == 0 {
		return
	}
	b.WriteString("## EXAMPLES TO AVOID (these were rejected or don't reflect the MP's voice well):\n\n")
	for i, example := range avoid {
		fmt.Fprintf(b, "### Bad Example %d:\n\"%s\"\n\n", i+1, example.Text)
		b.WriteString("Problem: This example doesn't fully capture the MP's voice, uses generic language, or lacks personal connection.\n\n")
	}
}

func writeRegenerationAvoidBlock(b *strings.Builder, avoid []models.Example) {
	if len(avoid) == 0 {
		return
	}
	b.WriteString("## EXAMPLES TO AVOID (especially the first one which was your previous attempt):\n\n")
	for i, example := range avoid {
		if i == 0 && example.PreviousAttempt {
			fmt.Fprintf(b, "### Your Previous Attempt:\n\"%s\"\n\n", example.Text)
			b.WriteString("Problems with this version:\n")
			b.WriteString("- It didn't fully capture the MP's personal voice\n")
			b.WriteString("- The local context wasn't sufficiently incorporated\n")
			b.WriteString("- It may have used generic political language\n")
			b.WriteString("- The tone wasn't quite right for the audience\n\n")
			continue
		}
		fmt.Fprintf(b, "### Bad Example %d:\n\"%s\"\n\n", i+1, example.Text)
		b.WriteString("Problem: This example doesn't effectively represent the MP's voice or connect with constituents.\n\n")
	}
}
