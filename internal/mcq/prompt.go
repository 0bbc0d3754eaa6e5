package mcq

import (
	"fmt"
	"strings"

	"github.com/edubot/edubot/internal/locale"
)

const systemPrompt = `You are an examiner preparing practice questions for Sri Lankan G.C.E. Advanced Level Political Science students.

Rules:
- Write one multiple-choice question on the A/L Political Science syllabus.
- Give exactly four options labelled A, B, C and D. Exactly one is correct.
- Write the same question three times: in English, in Sinhala and in Tamil.
- Follow the output format exactly. Do not add any text before, between or after the blocks.
- Keep the labels "Q1.", "A.", "B.", "C.", "D.", "Answer:" and "Explanation:" in English in every block.
- The answer line contains only the letter.`

// BuildPrompt returns the system prompt and user message asking the model
// for one question bundle.
func BuildPrompt() (system, user string) {
	var b strings.Builder
	b.WriteString("Generate one new question. Use this format for each language, separated by a line containing only ---:\n\n")
	for i, lang := range locale.All {
		if i > 0 {
			b.WriteString("---\n")
		}
		fmt.Fprintf(&b, "# Language: %s\n", lang.Name())
		b.WriteString("Q1. <question text>\n")
		b.WriteString("A. <option>\nB. <option>\nC. <option>\nD. <option>\n")
		b.WriteString("Answer: <A|B|C|D>\n")
		b.WriteString("Explanation: <one or two sentences>\n")
	}
	return systemPrompt, b.String()
}
