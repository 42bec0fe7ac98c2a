package evaluation

import "strings"

const (
	SpeakerUser  = "Usuario"
	SpeakerAgent = "Agente"

	turnSeparator = "\n\n"
)

// Turn is one transcript entry. Providers have used message, text and
// content for the utterance; the first non-empty one wins.
type Turn struct {
	Role    string  `json:"role"`
	Message *string `json:"message"`
	Text    *string `json:"text"`
	Content *string `json:"content"`
}

func (t Turn) Utterance() string {
	for _, p := range []*string{t.Message, t.Text, t.Content} {
		if p != nil && *p != "" {
			return *p
		}
	}
	return ""
}

func (t Turn) Speaker() string {
	if t.Role == "user" {
		return SpeakerUser
	}
	return SpeakerAgent
}

// BuildTranscript renders turns as "<Speaker>: <utterance>" blocks.
func BuildTranscript(turns []Turn) string {
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		lines = append(lines, t.Speaker()+": "+t.Utterance())
	}
	return strings.Join(lines, turnSeparator)
}
