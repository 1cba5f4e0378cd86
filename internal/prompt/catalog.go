// Package prompt renders the instruction documents sent to the completion
// model. Everything in it is pure text assembly; editing the templates here
// changes the model's behavior.
package prompt

import "sort"

// System personas supplied alongside the composed prompts.
const (
	SystemPersona = "You are a skilled political communication specialist who helps transform official government statements into personalized MP communications."

	RefreshSystemPersona = "You are a skilled political communication specialist who excels at creative reframing and finding fresh approaches to political messaging."
)

// DefaultToneDirective is used when the requested tone is not in the catalog.
const DefaultToneDirective = "Use a natural, conversational tone that feels personal and authentic."

var toneDirectives = map[string]string{
	"Neutral/Balanced": `Strike a moderate, even-handed tone that acknowledges different perspectives.
- Use measured language that avoids strong emotional appeals
- Present information in a fair and objective manner
- Acknowledge complexity without taking strong positions
- Use balanced phrasing like "on one hand... on the other hand"
- Convey thoughtfulness and consideration of multiple viewpoints`,

	"Empathetic/Caring": `Express genuine concern and understanding for constituents' feelings and experiences.
- Use warm, compassionate language that validates emotions
- Acknowledge difficulties people may be experiencing
- Include phrases like "I understand that..." or "I know many of you are feeling..."
- Demonstrate that you're listening and that constituent concerns matter
- Balance empathy with hope and solutions`,

	"Authoritative/Confident": `Project strength, expertise and decisiveness.
- Use clear, direct statements without hedging language
- Emphasize concrete actions and solutions
- Include phrases that demonstrate leadership and conviction
- Maintain a formal, professional tone
- Reference expertise, experience, or past achievements where relevant`,

	"Optimistic/Positive": `Focus on opportunities, solutions and positive outcomes.
- Emphasize progress, improvements, and future benefits
- Use uplifting language and hopeful framing
- Highlight what's working well and potential for positive change
- Include forward-looking statements and vision
- Balance optimism with realism to maintain credibility`,

	"Concerned/Serious": `Convey appropriate gravity for serious issues while maintaining constructive engagement.
- Use language that acknowledges the seriousness of challenges
- Express appropriate concern without alarming unnecessarily
- Demonstrate that you're taking the issue seriously
- Balance concern with determination to address problems
- Avoid minimizing genuine problems`,

	"Conversational/Friendly": `Adopt an approachable, personal tone as if speaking directly to constituents.
- Use relaxed, everyday language rather than formal political speech
- Include occasional contractions and more casual phrasing
- Write as if having a one-to-one conversation
- Create a sense of personal connection and accessibility
- Maintain professionalism while being personable`,

	"Formal/Professional": `Maintain a dignified, traditional political communication style.
- Use more formal language and structured sentences
- Maintain appropriate distance and decorum
- Avoid colloquialisms and overly casual expressions
- Project statesmanship and institutional respect
- Focus on precision of language and clarity of message`,

	"Urgent/Call to Action": `Convey immediacy and encourage specific responses or engagement.
- Use language that emphasizes timeliness and importance
- Include clear calls to action where appropriate
- Create a sense of momentum and necessary response
- Use slightly more dynamic and energetic language
- Balance urgency with reassurance to avoid causing anxiety`,
}

// ToneDirective returns the writing-style directive for a tone label. Any
// label outside the catalog falls back to the generic directive.
func ToneDirective(tone string) string {
	if directive, ok := toneDirectives[tone]; ok {
		return directive
	}
	return DefaultToneDirective
}

// Tones lists the catalog's labels for UI pickers.
func Tones() []string {
	labels := make([]string, 0, len(toneDirectives))
	for label := range toneDirectives {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
