package gateway

import "strings"

const analysisPromptTemplate = `
You are an advanced AI debugging assistant.

Given this code or error message:

{{message}}

Your tasks:

1. Identify ALL bugs
2. Explain WHY each bug happens
3. Provide the FIXED code in ` + "```code```" + ` block
4. Provide an OPTIMIZED version in another ` + "```code```" + ` block (if possible)
5. Provide time + space complexity analysis
6. Give recommendations for improvement

Return output in a clean, readable structure.
`

// AnalysisPrompt embeds message, unchanged, into the code-analysis template.
func AnalysisPrompt(message string) string {
	before, after, _ := strings.Cut(analysisPromptTemplate, "{{message}}")
	return before + message + after
}
