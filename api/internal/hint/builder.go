package hint

import (
	"strings"
)

// DefaultSystemInstruction sets Cipher's persona, the no-direct-answers policy and the tone of every hint.
const DefaultSystemInstruction = `You are 'Cipher', a friendly and knowledgeable AI security expert helping a student escape a digital room controlled by a hacker.
Your goal is to provide adaptive hints for cryptography challenges.
RULES:
1. NEVER give the direct answer to the challenge.
2. Be supportive, slightly mysterious, and encouraging.
3. Use simple analogies for complex concepts (like locked boxes or secret handshakes).
4. If the user is stuck, guide them through the logic step-by-step.
5. Keep responses concise (under 3 sentences).
6. Use a hacker/cyber-punk aesthetic in your tone.`

const levelCompleteClause = "The student has just solved this challenge. Congratulate them warmly and briefly explain why the concept they used matters in real-world security. You may now discuss the answer openly."

const defaultTemperature float32 = 0.7

type Builder struct {
	SystemInstruction string
	Temperature       float32
}

func NewBuilder(systemInstruction string, temperature float32) *Builder {
	if strings.TrimSpace(systemInstruction) == "" {
		systemInstruction = DefaultSystemInstruction
	}
	if temperature <= 0 {
		temperature = defaultTemperature
	}
	return &Builder{
		SystemInstruction: strings.TrimSpace(systemInstruction),
		Temperature:       temperature,
	}
}

// Build converts the history to provider turns and appends the final user turn.
// The instruction block is folded into that turn instead of systemInstruction
// because v1 endpoints reject the field.
func (b *Builder) Build(levelContext, userMessage string, history []Message, isLevelComplete bool) Payload {
	contents := make([]Content, 0, len(history)+1)
	for _, m := range history {
		contents = append(contents, Content{
			Role:  providerRole(m.Role),
			Parts: []Part{{Text: m.Content}},
		})
	}

	ctxBlock := strings.TrimSpace(levelContext)
	if isLevelComplete {
		ctxBlock += "\n" + levelCompleteClause
	}

	var sb strings.Builder
	sb.WriteString(b.SystemInstruction)
	sb.WriteString("\n\nCONTEXT: ")
	sb.WriteString(ctxBlock)
	sb.WriteString("\n\nUSER QUESTION: ")
	sb.WriteString(strings.TrimSpace(userMessage))

	contents = append(contents, Content{
		Role:  string(RoleUser),
		Parts: []Part{{Text: sb.String()}},
	})

	t := b.Temperature
	return Payload{
		Contents:         contents,
		GenerationConfig: &GenerationConfig{Temperature: &t},
	}
}

func providerRole(r Role) string {
	if r == RoleAssistant {
		return roleModel
	}
	return string(r)
}
