package summarize

import "strings"

// SystemPrompt sets the model's role.
const SystemPrompt = "You are a professional content summarizer. You create clear, well-structured summaries with proper formatting."

const instructions = `Please create a comprehensive summary of the following text.

REQUIREMENTS:
1. Detect the language of the input and write the summary in the SAME language
2. Use this EXACT structure with markdown formatting:

## Executive Summary
[2-3 sentences providing a high-level overview of the main topic and key message]

## Key Highlights
[4-6 bullet points with the most important insights, each 1-2 sentences]

## Action Items
[2-4 bullet points listing concrete next steps or recommendations, if applicable]

FORMATTING RULES:
- Use ## for section headers
- Use - for bullet points
- Use **bold** for key terms
- Keep bullet points concise but informative
- If there are no clear action items, you may omit that section
- Do not add any other sections
- Write in a professional, clear style

Text to summarize:
`

// UserPrompt embeds text in the summary instructions.
func UserPrompt(text string) string {
	var b strings.Builder
	b.Grow(len(instructions) + len(text))
	b.WriteString(instructions)
	b.WriteString(text)
	return b.String()
}
