package evaluation

import (
	"fmt"
	"strings"
)

// PostCallTranscription is the only webhook event type that is scored.
const PostCallTranscription = "post_call_transcription"

// WebhookEvent is the voice platform's callback body. Only the fields the
// pipeline reads are declared; the raw body is stored separately.
type WebhookEvent struct {
	Type string       `json:"type"`
	Data *WebhookData `json:"data"`
}

type WebhookData struct {
	ConversationID   string          `json:"conversation_id"`
	Transcript       []Turn          `json:"transcript"`
	InitiationClient *InitiationData `json:"conversation_initiation_client_data"`
}

type InitiationData struct {
	DynamicVariables map[string]any `json:"dynamic_variables"`
}

// Context returns the resume and job description the agent was started
// with, or empty strings when they were not sent.
func (d *WebhookData) Context() (resume, jobDescription string) {
	if d == nil || d.InitiationClient == nil {
		return "", ""
	}
	vars := d.InitiationClient.DynamicVariables
	resume = firstString(vars, "resume", "cv")
	jobDescription = firstString(vars, "job_description")
	return resume, jobDescription
}

func firstString(vars map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := vars[k]
		if !ok || v == nil {
			continue
		}
		var s string
		switch t := v.(type) {
		case string:
			s = t
		default:
			s = fmt.Sprint(t)
		}
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}
