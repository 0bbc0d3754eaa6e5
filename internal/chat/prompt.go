package chat

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/edubot/edubot/internal/llm"
	"github.com/edubot/edubot/internal/locale"
	"github.com/edubot/edubot/internal/store"
)

// contextTurns is how many history messages explanation and quick-action
// prompts see.
const contextTurns = 5

func persona(lang locale.Language) string {
	switch lang {
	case locale.Sinhala:
		return "Act like a Sinhala Political Science teacher for A/L students in Sri Lanka. Answer in simple Sinhala."
	case locale.Tamil:
		return "Act like a Tamil Political Science teacher for A/L students in Sri Lanka. Answer in simple Tamil."
	default:
		return "Act like a friendly Political Science teacher for A/L students in Sri Lanka. Answer in simple English."
	}
}

func languageLock(lang locale.Language) string {
	return fmt.Sprintf("Always reply only in %s, even if the student writes in another language.", lang.Name())
}

const formattingRules = `Formatting:
- Keep answers short and clear, suitable for a 17-19 year old student.
- Use short paragraphs or bullet points. Do not use tables.
- Stay within the Sri Lankan A/L Political Science syllabus. Politely decline unrelated requests.`

func generalSystem(guidance string, lang locale.Language) string {
	parts := []string{}
	if guidance != "" {
		parts = append(parts, "Reference material:\n"+guidance)
	}
	parts = append(parts, persona(lang), formattingRules, languageLock(lang))
	return strings.Join(parts, "\n\n")
}

func explanationSystem(lang locale.Language, question string) string {
	return strings.Join([]string{
		persona(lang),
		fmt.Sprintf("You previously asked the student:\n%q\n\nThe student did not understand it. "+
			"Explain what the question means, then give the answer with a short, simple explanation.", question),
		languageLock(lang),
	}, "\n\n")
}

func learnSystem(lang locale.Language, topic *string) string {
	lesson := "The student wants to learn a Political Science topic. Ask which topic they want, " +
		"and suggest three syllabus topics they could choose from."
	if topic != nil {
		lesson = fmt.Sprintf("The student wants to learn about %q. Teach it as a short lesson: "+
			"a definition, the key points, and one Sri Lankan example. End by asking a short question "+
			"to check understanding.", *topic)
	}
	return strings.Join([]string{persona(lang), lesson, formattingRules, languageLock(lang)}, "\n\n")
}

func randomSystem(lang locale.Language) string {
	return strings.Join([]string{
		persona(lang),
		"Ask the student one random short-answer question from the A/L Political Science syllabus. " +
			"Ask only the question and end it with a question mark. Do not give the answer.",
		languageLock(lang),
	}, "\n\n")
}

// window returns the last n messages of history. Leading bot messages are
// dropped since some providers require the first message to be from the user.
func window(history []store.Message, n int) []store.Message {
	if n > 0 && len(history) > n {
		history = history[len(history)-n:]
	}
	return lo.DropWhile(history, func(m store.Message) bool {
		return m.Role == store.RoleBot
	})
}

// toLLM converts history plus the current user text into gateway messages.
func toLLM(history []store.Message, current string) []llm.Message {
	msgs := lo.Map(history, func(m store.Message, _ int) llm.Message {
		role := llm.RoleUser
		if m.Role == store.RoleBot {
			role = llm.RoleAssistant
		}
		return llm.Message{Role: role, Content: m.Text}
	})
	return append(msgs, llm.Message{Role: llm.RoleUser, Content: current})
}
