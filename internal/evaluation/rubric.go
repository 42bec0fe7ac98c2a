package evaluation

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	types "github.com/interviewlab/interviewlab-backend/internal/domain"
)

// RubricPathEnv points at a YAML file that replaces the embedded rubric.
const RubricPathEnv = "RUBRIC_YAML"

// Criterion keys are fixed by the result table's columns.
const (
	KeyClarity         = "claridad"
	KeyProfessionalism = "profesionalismo"
	KeyTechnical       = "tecnica"
	KeyInterest        = "interes"
	KeyExamples        = "ejemplos"
	KeyOverall         = "resultado"
)

var CriterionKeys = []string{KeyClarity, KeyProfessionalism, KeyTechnical, KeyInterest, KeyExamples}

//go:embed rubric.yaml
var defaultRubricYAML []byte

type Criterion struct {
	Key         string `yaml:"key"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type yamlRubric struct {
	Version    int         `yaml:"version"`
	SchemaName string      `yaml:"schema_name"`
	Criteria   []Criterion `yaml:"criteria"`
	Overall    Criterion   `yaml:"overall"`
	System     string      `yaml:"system"`
	User       string      `yaml:"user"`
}

// Rubric is the compiled scoring prompt and its response schema.
type Rubric struct {
	Version    int
	SchemaName string
	Criteria   []Criterion
	Overall    Criterion

	system *template.Template
	user   *template.Template
}

// PromptInput is the per-interview context rendered into the user prompt.
type PromptInput struct {
	Transcript     string
	Resume         string
	JobDescription string
}

type systemData struct {
	Criteria     []Criterion
	Overall      Criterion
	CriterionMin int
	CriterionMax int
	Unscored     int
	OverallMin   int
	OverallMax   int
}

// LoadRubric reads the rubric from path, or the embedded default when path
// is empty.
func LoadRubric(path string) (*Rubric, error) {
	raw := defaultRubricYAML
	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read rubric %s: %w", path, err)
		}
		raw = b
	}
	return ParseRubric(raw)
}

// DefaultRubric panics if the embedded rubric is invalid.
func DefaultRubric() *Rubric {
	r, err := ParseRubric(defaultRubricYAML)
	if err != nil {
		panic(err)
	}
	return r
}

func ParseRubric(raw []byte) (*Rubric, error) {
	var y yamlRubric
	if err := yaml.Unmarshal(raw, &y); err != nil {
		return nil, fmt.Errorf("decode rubric: %w", err)
	}
	if y.Version <= 0 {
		return nil, errors.New("rubric: invalid version")
	}
	if strings.TrimSpace(y.SchemaName) == "" {
		return nil, errors.New("rubric: missing schema_name")
	}
	if len(y.Criteria) != len(CriterionKeys) {
		return nil, fmt.Errorf("rubric: expected %d criteria, got %d", len(CriterionKeys), len(y.Criteria))
	}
	seen := map[string]bool{}
	for _, c := range y.Criteria {
		seen[c.Key] = true
	}
	for _, k := range CriterionKeys {
		if !seen[k] {
			return nil, fmt.Errorf("rubric: missing criterion %q", k)
		}
	}
	if y.Overall.Key != KeyOverall {
		return nil, fmt.Errorf("rubric: overall key must be %q", KeyOverall)
	}

	sysT, err := template.New("system").Option("missingkey=zero").Parse(y.System)
	if err != nil {
		return nil, fmt.Errorf("rubric system template: %w", err)
	}
	userT, err := template.New("user").Option("missingkey=zero").Parse(y.User)
	if err != nil {
		return nil, fmt.Errorf("rubric user template: %w", err)
	}
	return &Rubric{
		Version:    y.Version,
		SchemaName: y.SchemaName,
		Criteria:   y.Criteria,
		Overall:    y.Overall,
		system:     sysT,
		user:       userT,
	}, nil
}

// Render returns the system and user prompts for one interview.
func (r *Rubric) Render(in PromptInput) (string, string, error) {
	var sys, usr bytes.Buffer
	if err := r.system.Execute(&sys, systemData{
		Criteria:     r.Criteria,
		Overall:      r.Overall,
		CriterionMin: types.CriterionMin,
		CriterionMax: types.CriterionMax,
		Unscored:     types.CriterionUnscored,
		OverallMin:   types.OverallMin,
		OverallMax:   types.OverallMax,
	}); err != nil {
		return "", "", fmt.Errorf("render system prompt: %w", err)
	}
	if err := r.user.Execute(&usr, in); err != nil {
		return "", "", fmt.Errorf("render user prompt: %w", err)
	}
	return strings.TrimSpace(sys.String()), strings.TrimSpace(usr.String()), nil
}

// Schema is the strict JSON schema every scoring response must satisfy.
func (r *Rubric) Schema() map[string]any {
	props := map[string]any{}
	required := make([]any, 0, len(r.Criteria)+1)
	for _, c := range r.Criteria {
		props[c.Key] = gradeSchema(c.Description, types.CriterionUnscored, types.CriterionMax)
		required = append(required, c.Key)
	}
	props[r.Overall.Key] = gradeSchema(r.Overall.Description, types.OverallMin, types.OverallMax)
	required = append(required, r.Overall.Key)

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             required,
		"properties":           props,
	}
}

func gradeSchema(desc string, min, max int) map[string]any {
	return map[string]any{
		"type":                 "object",
		"description":          desc,
		"additionalProperties": false,
		"required":             []any{"nota", "razon"},
		"properties": map[string]any{
			"nota":  map[string]any{"type": "integer", "description": fmt.Sprintf("Entero entre %d y %d.", min, max)},
			"razon": map[string]any{"type": "string"},
		},
	}
}
