package ai

import "strings"

// mockContent returns deterministic offline output for the task category
// inferred from the prompt text. It keeps the whole system demoable and
// testable without a live key or network access.
func mockContent(prompt string) string {
	switch {
	case strings.Contains(prompt, "summaries") || strings.Contains(prompt, "summary"):
		return `{
  "short": "This video provides a comprehensive overview of the subject, focusing on core principles and practical applications.",
  "medium": "The speaker explores the history, current state, and future trends of the topic. Key takeaways include the importance of foundational knowledge, modern toolsets, and continuous learning in the field.",
  "detailed": "In this session, the instructor breaks down complex concepts into digestible segments. Section 1 covers the historical context and initial breakthroughs. Section 2 deep dives into current industry standards and provides several real-world case studies. The overall message is one of cautious optimism and a call to action for deeper study."
}`
	case strings.Contains(prompt, "topics"):
		return `[
  { "topic": "Introduction", "start": 0, "end": 120, "keyInsight": "Setting the stage and defining core terminology." },
  { "topic": "Advanced Concepts", "start": 121, "end": 450, "keyInsight": "Explaining the relationship between different system components." },
  { "topic": "Summary & FAQ", "start": 451, "end": 600, "keyInsight": "Final wrap-up and answering common trainee questions." }
]`
	case strings.Contains(prompt, "questions"):
		return `[
  { "type": "mcq", "difficulty": "medium", "text": "What is the primary goal discussed in the introduction?", "options": ["Option A", "Option B", "Option C", "Option D"], "correctOptionIndex": 1, "answerExplanation": "The speaker explicitly mentions that Option B is the priority.", "timestampSeconds": 45 },
  { "type": "open-ended", "difficulty": "hard", "text": "Explain the workflow shown in the second segment.", "answerExplanation": "The workflow involves a 3-step synchronization process.", "timestampSeconds": 210 }
]`
	// Checked before "ambiguous": a clarify prompt mentions the
	// ambiguous segment it is resolving.
	case strings.Contains(prompt, "Clarify"):
		return `{
  "clarificationText": "This segment refers to the synchronization between variables and the user interface. It ensures that changes in the data are reflected instantly on the screen.",
  "definition": "Synchronization: The process of making two or more things work in unison or at the same time.",
  "examples": ["Using React state to update a counter", "Cloud storage syncing files between devices"]
}`
	case strings.Contains(prompt, "ambiguous"):
		return `[
  { "snippet": "the relationship between different system components", "reason": "The term 'system components' is abstract and could benefit from specific examples.", "timestampSeconds": 125 },
  { "snippet": "a 3-step synchronization process", "reason": "A visual explanation or step-by-step breakdown of these three steps would be helpful.", "timestampSeconds": 215 }
]`
	default:
		return `{
  "answer": "This is a simulated AI response. The API key provided was rejected or is invalid. Please verify your key in the .env file.",
  "clarificationText": "Mock clarification active.",
  "definition": "Simulated term.",
  "examples": ["Example 1", "Example 2"]
}`
	}
}
