package script

import (
	"fmt"
	"strings"

	"synthetic-radio-host/internal/article"
)

// Style selects the code-switched register of the generated conversation.
type Style string

const (
	StyleHinglish Style = "hinglish"
	StyleTanglish Style = "tanglish"
)

// maxPromptChars bounds how much article text is embedded in the prompt,
// to keep provider cost and latency predictable.
const maxPromptChars = 1500

// Persona fixes the two speakers and the stylistic rules used to steer
// script generation. It is static configuration, not derived from input.
type Persona struct {
	SpeakerA string
	SpeakerB string
	Style    Style
}

// DefaultPersona matches the canonical two-host radio segment.
func DefaultPersona() Persona {
	return Persona{
		SpeakerA: "Person A",
		SpeakerB: "Person B",
		Style:    StyleHinglish,
	}
}

// SystemPrompt returns the system message fixing the scriptwriter role.
func (p Persona) SystemPrompt() string {
	language := "Hinglish (Hindi-English mix)"
	if p.Style == StyleTanglish {
		language = "Tanglish (Tamil-English mix)"
	}
	return fmt.Sprintf("You are an expert at creating natural, conversational scripts in %s for radio shows.", language)
}

// BuildPrompt renders the deterministic prompt template around the article
// text. The article is truncated to maxPromptChars before embedding.
func (p Persona) BuildPrompt(articleText string) string {
	articleText = article.Truncate(articleText, maxPromptChars)

	var language, fillers, example string
	if p.Style == StyleTanglish {
		language = "TANGLISH - naturally mix Tamil and English words (like real Tamil conversations)"
		fillers = `   - Occasional: "appadiya", "seri", "correct", "exactly"
   - Rare thinking: "let me think", "paathu"
   - Very rare laughter: [laughs] (only if genuinely funny)`
		example = fmt.Sprintf(`%s: "I read about Mumbai Indians - they won 5 IPL titles, which is the most by any team."
%s: "Correct! And Rohit Sharma has been their captain since 2013. The team's strategy has been really interesting."`, p.SpeakerA, p.SpeakerB)
	} else {
		language = "HINGLISH - naturally mix Hindi and English words (like real Indian conversations)"
		fillers = `   - Occasional: "achcha", "haan", "exactly", "sahi hai"
   - Rare thinking: "let me think", "dekho"
   - Very rare: "yaar" (only once or twice), "arre" (rarely)
   - Very rare laughter: [laughs] (only if genuinely funny)`
		example = fmt.Sprintf(`%s: "Mumbai Indians have won 5 IPL titles, which is the most by any team in the league."
%s: "Haan, and Rohit Sharma has been their captain since 2013. Their strategy has been really interesting."`, p.SpeakerA, p.SpeakerB)
	}

	sections := []string{
		"You are creating a natural, informative conversational script for a 2-minute radio show segment.",
		fmt.Sprintf("TOPIC: %s...", articleText),
		fmt.Sprintf(`REQUIREMENTS:
1. Create a DEEP, INFORMATIVE conversation between two friends: %s and %s
2. Use %s
3. Make it informative and engaging - discuss key facts, details, and insights from the article
4. Include MINIMAL natural speech patterns (use sparingly, maximum 2-3 times total):
%s
5. Focus on CONTENT: Share specific details, numbers, facts, and insights from the article
6. Make it DEEPER: Don't just summarize - discuss implications, interesting aspects, comparisons
7. Duration: Approximately 2 minutes when spoken (aim for 350-450 words total)
8. Format: Mark each speaker clearly as "%s:" or "%s:"
9. Make it engaging, informative, and conversational - like two knowledgeable friends discussing`,
			p.SpeakerA, p.SpeakerB, language, fillers, p.SpeakerA, p.SpeakerB),
		fmt.Sprintf("EXAMPLE OF GOOD STYLE (informative, minimal fillers):\n%s", example),
		"Now create a similar 2-minute INFORMATIVE conversation script about the topic above:",
	}

	return strings.Join(sections, "\n\n")
}
