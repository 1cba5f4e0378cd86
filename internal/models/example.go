package models

// Example is a sampled prior text injected into a prompt, either as a style
// reference to emulate or as a negative reference to avoid.
type Example struct {
	Text  string `json:"text"`
	Topic string `json:"topic,omitempty"`
	Tone  string `json:"tone,omitempty"`

	// PreviousAttempt marks the immediately preceding rejected draft in a
	// regeneration avoid list. The composer labels it "Your Previous
	// Attempt" instead of a numbered bad example.
	PreviousAttempt bool `json:"previous_attempt,omitempty"`
}
