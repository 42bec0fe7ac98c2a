package evaluation

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func strp(s string) *string { return &s }

func TestBuildTranscript(t *testing.T) {
	cases := []struct {
		name  string
		turns []Turn
		want  string
	}{
		{name: "empty", turns: nil, want: ""},
		{
			name: "roles_and_separator",
			turns: []Turn{
				{Role: "agent", Message: strp("Hola, cuéntame de ti.")},
				{Role: "user", Message: strp("Soy desarrollador.")},
			},
			want: "Agente: Hola, cuéntame de ti.\n\nUsuario: Soy desarrollador.",
		},
		{
			name:  "falls_back_to_text",
			turns: []Turn{{Role: "user", Message: strp(""), Text: strp("desde text")}},
			want:  "Usuario: desde text",
		},
		{
			name:  "falls_back_to_content",
			turns: []Turn{{Role: "user", Content: strp("desde content")}},
			want:  "Usuario: desde content",
		},
		{
			name:  "nothing_present",
			turns: []Turn{{Role: "tool"}},
			want:  "Agente: ",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BuildTranscript(tc.turns); got != tc.want {
				t.Fatalf("BuildTranscript()=%q, want %q", got, tc.want)
			}
		})
	}
}

func TestTurnDecodesNullMessage(t *testing.T) {
	var turns []Turn
	raw := `[{"role":"user","message":null,"text":"hola"}]`
	if err := json.Unmarshal([]byte(raw), &turns); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := BuildTranscript(turns); got != "Usuario: hola" {
		t.Fatalf("got %q", got)
	}
}

func TestWebhookDataContext(t *testing.T) {
	var ev WebhookEvent
	raw := `{"type":"post_call_transcription","data":{"conversation_id":"c1","conversation_initiation_client_data":{"dynamic_variables":{"cv":"mi cv","resume":"  ","job_description":"backend"}}}}`
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	resume, job := ev.Data.Context()
	if resume != "mi cv" || job != "backend" {
		t.Fatalf("got resume=%q job=%q", resume, job)
	}

	var nilData *WebhookData
	if r, j := nilData.Context(); r != "" || j != "" {
		t.Fatalf("expected empty context for nil data")
	}
}

func validResponse() map[string]any {
	grade := func(n float64, r string) map[string]any { return map[string]any{"nota": n, "razon": r} }
	return map[string]any{
		KeyClarity:         grade(8, "claro"),
		KeyProfessionalism: grade(9, "cortés"),
		KeyTechnical:       grade(0, "no se hicieron preguntas técnicas"),
		KeyInterest:        grade(7, "motivado"),
		KeyExamples:        grade(6, "algunos ejemplos"),
		KeyOverall:         grade(72, "buen ajuste"),
	}
}

func TestParseScorecard(t *testing.T) {
	sc, err := ParseScorecard(validResponse())
	if err != nil {
		t.Fatalf("ParseScorecard: %v", err)
	}
	if sc.Criteria[KeyTechnical].Nota != 0 || sc.Overall.Nota != 72 {
		t.Fatalf("unexpected scorecard %+v", sc)
	}

	id := uuid.New()
	res := sc.Result(id)
	if res.InterviewID != id || res.TechnicalScore != 0 || res.ClarityScore != 8 || res.OverallReason != "buen ajuste" {
		t.Fatalf("unexpected result %+v", res)
	}
	view := ViewOf(res)
	if len(view.Criteria) != 5 || view.Criteria[KeyTechnical].Nota != 0 {
		t.Fatalf("unexpected view %+v", view)
	}
}

func TestParseScorecardRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(m map[string]any)
	}{
		{name: "missing_criterion", mutate: func(m map[string]any) { delete(m, KeyExamples) }},
		{name: "missing_overall", mutate: func(m map[string]any) { delete(m, KeyOverall) }},
		{name: "fractional", mutate: func(m map[string]any) { m[KeyClarity] = map[string]any{"nota": 7.5, "razon": "x"} }},
		{name: "above_range", mutate: func(m map[string]any) { m[KeyClarity] = map[string]any{"nota": 11.0, "razon": "x"} }},
		{name: "negative", mutate: func(m map[string]any) { m[KeyInterest] = map[string]any{"nota": -1.0, "razon": "x"} }},
		{name: "overall_above_range", mutate: func(m map[string]any) { m[KeyOverall] = map[string]any{"nota": 101.0, "razon": "x"} }},
		{name: "zero_without_reason", mutate: func(m map[string]any) { m[KeyTechnical] = map[string]any{"nota": 0.0, "razon": " "} }},
		{name: "string_note", mutate: func(m map[string]any) { m[KeyClarity] = map[string]any{"nota": "8", "razon": "x"} }},
		{name: "not_object", mutate: func(m map[string]any) { m[KeyClarity] = "8" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := validResponse()
			tc.mutate(m)
			if _, err := ParseScorecard(m); !errors.Is(err, ErrInvalidScorecard) {
				t.Fatalf("expected ErrInvalidScorecard, got %v", err)
			}
		})
	}
}

func TestDefaultRubric(t *testing.T) {
	r := DefaultRubric()
	if r.SchemaName == "" || len(r.Criteria) != 5 {
		t.Fatalf("unexpected rubric %+v", r)
	}

	schema := r.Schema()
	props, _ := schema["properties"].(map[string]any)
	for _, k := range append(append([]string{}, CriterionKeys...), KeyOverall) {
		if _, ok := props[k]; !ok {
			t.Fatalf("schema missing %s", k)
		}
	}
	if req, _ := schema["required"].([]any); len(req) != 6 {
		t.Fatalf("expected 6 required keys, got %v", schema["required"])
	}

	sys, usr, err := r.Render(PromptInput{Transcript: "Usuario: hola", Resume: "cv", JobDescription: "puesto"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, k := range CriterionKeys {
		if !strings.Contains(sys, k) {
			t.Fatalf("system prompt missing criterion %s", k)
		}
	}
	if !strings.Contains(usr, "Usuario: hola") || !strings.Contains(usr, "puesto") {
		t.Fatalf("user prompt missing context: %s", usr)
	}

	_, usr, err = r.Render(PromptInput{})
	if err != nil {
		t.Fatalf("Render empty: %v", err)
	}
	if !strings.Contains(usr, "(no proporcionada)") {
		t.Fatalf("expected placeholder for missing job description: %s", usr)
	}
}

func TestParseRubricValidation(t *testing.T) {
	cases := map[string]string{
		"bad_yaml":        "version: [",
		"no_version":      "schema_name: x",
		"missing_crit":    "version: 1\nschema_name: x\ncriteria:\n  - key: claridad\n",
		"wrong_overall":   "version: 1\nschema_name: x\ncriteria:\n  - key: claridad\n  - key: profesionalismo\n  - key: tecnica\n  - key: interes\n  - key: ejemplos\noverall:\n  key: total\n",
		"duplicate_crits": "version: 1\nschema_name: x\ncriteria:\n  - key: claridad\n  - key: claridad\n  - key: tecnica\n  - key: interes\n  - key: ejemplos\noverall:\n  key: resultado\n",
	}
	for name, raw := range cases {
		if _, err := ParseRubric([]byte(raw)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	if _, err := LoadRubric("/nonexistent/rubric.yaml"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
