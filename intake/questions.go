// Package intake holds the fixed question set asked to qualified candidates
// and tracks their progress through it.
package intake

import "fmt"

// Question is one step of the intake conversation.
type Question struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// CompletionMessage closes the conversation after the last answer.
const CompletionMessage = "That's everything I need for now. Our team will review your profile and reach out " +
	"when we have opportunities that match. Thanks for joining the Taurean network."

var questions = []Question{
	{Key: "current_situation", Text: "What's your current role, and what's prompting you to explore new opportunities?"},
	{Key: "pe_exposure", Text: "Have you worked directly with private equity firms before, either at a fund or within a portfolio company? Tell me about that experience."},
	{Key: "value_creation", Text: "When you step into a new organization, how do you typically approach the first 100 days? What do you prioritize?"},
	{Key: "functional_expertise", Text: "What would you say is your core functional superpower? Where do you create the most impact?"},
	{Key: "ideal_role", Text: "Describe your ideal next role. What would make you excited to get out of bed every day?"},
	{Key: "fund_preferences", Text: "Are there specific fund sizes, industries, or investment stages you're most drawn to?"},
	{Key: "geography", Text: "What's your geographic flexibility? Open to relocation, or does location matter?"},
	{Key: "compensation", Text: "To make sure we're aligned on expectations, what's your target total compensation range?"},
	{Key: "timeline", Text: "How soon are you realistically looking to make a move?"},
	{Key: "anything_else", Text: "Is there anything else you'd like us to know that would help us find the right fit for you?"},
}

// Questions returns a copy of the ordered question set.
func Questions() []Question {
	out := make([]Question, len(questions))
	copy(out, questions)
	return out
}

// Lookup returns the question with key and its position in the set.
func Lookup(key string) (Question, int, bool) {
	for i, q := range questions {
		if q.Key == key {
			return q, i, true
		}
	}
	return Question{}, -1, false
}

// Greeting opens the conversation, addressing the candidate by first name when known.
func Greeting(firstName string) string {
	name := ""
	if firstName != "" {
		name = ", " + firstName
	}
	return fmt.Sprintf("Thanks for taking the time%s. I'm going to ask you a few questions to better understand "+
		"your background and what you're looking for. This helps us match you with the right opportunities. "+
		"Ready to begin?", name)
}
