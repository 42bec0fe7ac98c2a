package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/option"

	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
)

// Observer receives one call per finished request.
type Observer interface {
	ObserveLLMRequest(provider, model, status string, dur time.Duration, inputTokens, outputTokens int)
}

type Config struct {
	ProjectID       string
	Location        string
	Model           string
	CredentialsFile string
	Temperature     *float32
}

// Client generates schema-constrained JSON with Gemini on Vertex AI.
type Client struct {
	log      *logger.Logger
	gc       *genai.Client
	model    string
	temp     *float32
	observer Observer
}

func NewClient(ctx context.Context, log *logger.Logger, cfg Config, observer Observer) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	project := strings.TrimSpace(cfg.ProjectID)
	if project == "" {
		return nil, fmt.Errorf("missing GEMINI_PROJECT_ID")
	}
	location := strings.TrimSpace(cfg.Location)
	if location == "" {
		location = "us-central1"
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gemini-2.0-flash"
	}

	var opts []option.ClientOption
	if f := strings.TrimSpace(cfg.CredentialsFile); f != "" {
		opts = append(opts, option.WithCredentialsFile(f))
	}
	gc, err := genai.NewClient(ctx, project, location, opts...)
	if err != nil {
		return nil, fmt.Errorf("vertexai client: %w", err)
	}

	return &Client{
		log:      log.With("service", "GeminiClient", "model", model),
		gc:       gc,
		model:    model,
		temp:     cfg.Temperature,
		observer: observer,
	}, nil
}

func (c *Client) Model() string { return c.model }

func (c *Client) Close() error {
	if c == nil || c.gc == nil {
		return nil
	}
	return c.gc.Close()
}

// GenerateJSON mirrors the OpenAI client's contract: schema is a JSON-Schema
// map, converted to the Vertex schema type.
func (c *Client) GenerateJSON(ctx context.Context, system string, user string, schemaName string, schema map[string]any) (map[string]any, error) {
	if schema == nil {
		return nil, errors.New("schema required")
	}
	rs, err := ToSchema(schema)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", schemaName, err)
	}

	m := c.gc.GenerativeModel(c.model)
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	m.ResponseMIMEType = "application/json"
	m.ResponseSchema = rs
	if c.temp != nil {
		m.SetTemperature(*c.temp)
	}

	start := time.Now()
	resp, err := m.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		c.observe("error", time.Since(start), nil)
		return nil, fmt.Errorf("gemini generate: %w", err)
	}
	c.observe("ok", time.Since(start), resp.UsageMetadata)

	text := responseText(resp)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("gemini returned no text")
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil, fmt.Errorf("failed to parse model JSON: %w", err)
	}
	return obj, nil
}

func (c *Client) observe(status string, dur time.Duration, usage *genai.UsageMetadata) {
	if c.observer == nil {
		return
	}
	var in, out int
	if usage != nil {
		in = int(usage.PromptTokenCount)
		out = int(usage.CandidatesTokenCount)
	}
	c.observer.ObserveLLMRequest("gemini", c.model, status, dur, in, out)
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, p := range cand.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
		if b.Len() > 0 {
			break
		}
	}
	return b.String()
}
