package evaluation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	types "github.com/interviewlab/interviewlab-backend/internal/domain"
)

var ErrInvalidScorecard = errors.New("invalid scorecard")

type Grade struct {
	Nota  int    `json:"nota"`
	Razon string `json:"razon"`
}

// Scorecard is a validated scoring response.
type Scorecard struct {
	Criteria map[string]Grade
	Overall  Grade
}

// ParseScorecard validates a decoded model response: every criterion and the
// overall grade present, integer notes in range, and a reason whenever a note
// is zero.
func ParseScorecard(obj map[string]any) (*Scorecard, error) {
	if obj == nil {
		return nil, fmt.Errorf("%w: empty response", ErrInvalidScorecard)
	}
	sc := &Scorecard{Criteria: make(map[string]Grade, len(CriterionKeys))}
	for _, key := range CriterionKeys {
		g, err := parseGrade(obj, key, types.CriterionUnscored, types.CriterionMax)
		if err != nil {
			return nil, err
		}
		sc.Criteria[key] = g
	}
	g, err := parseGrade(obj, KeyOverall, types.OverallMin, types.OverallMax)
	if err != nil {
		return nil, err
	}
	sc.Overall = g
	return sc, nil
}

func parseGrade(obj map[string]any, key string, min, max int) (Grade, error) {
	raw, ok := obj[key].(map[string]any)
	if !ok {
		return Grade{}, fmt.Errorf("%w: %s missing or not an object", ErrInvalidScorecard, key)
	}
	nota, ok := asInt(raw["nota"])
	if !ok {
		return Grade{}, fmt.Errorf("%w: %s.nota is not an integer", ErrInvalidScorecard, key)
	}
	if nota < min || nota > max {
		return Grade{}, fmt.Errorf("%w: %s.nota %d outside [%d, %d]", ErrInvalidScorecard, key, nota, min, max)
	}
	razon, ok := raw["razon"].(string)
	if !ok {
		return Grade{}, fmt.Errorf("%w: %s.razon is not a string", ErrInvalidScorecard, key)
	}
	razon = strings.TrimSpace(razon)
	if nota == 0 && razon == "" {
		return Grade{}, fmt.Errorf("%w: %s scored 0 without a reason", ErrInvalidScorecard, key)
	}
	return Grade{Nota: nota, Razon: razon}, nil
}

func asInt(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		if t != math.Trunc(t) || math.IsInf(t, 0) {
			return 0, false
		}
		return int(t), true
	case int:
		return t, true
	case int64:
		return int(t), true
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

// Result maps the scorecard onto the persisted row for interviewID.
func (s *Scorecard) Result(interviewID uuid.UUID) *types.InterviewResult {
	c := s.Criteria
	return &types.InterviewResult{
		InterviewID:           interviewID,
		ClarityScore:          c[KeyClarity].Nota,
		ClarityReason:         c[KeyClarity].Razon,
		ProfessionalismScore:  c[KeyProfessionalism].Nota,
		ProfessionalismReason: c[KeyProfessionalism].Razon,
		TechnicalScore:        c[KeyTechnical].Nota,
		TechnicalReason:       c[KeyTechnical].Razon,
		InterestScore:         c[KeyInterest].Nota,
		InterestReason:        c[KeyInterest].Razon,
		ExamplesScore:         c[KeyExamples].Nota,
		ExamplesReason:        c[KeyExamples].Razon,
		OverallScore:          s.Overall.Nota,
		OverallReason:         s.Overall.Razon,
	}
}

// ResultView is the read model returned to the student.
type ResultView struct {
	InterviewID uuid.UUID        `json:"interview_id"`
	Criteria    map[string]Grade `json:"criterios"`
	Overall     Grade            `json:"resultado"`
	UpdatedAt   string           `json:"updated_at"`
}

func ViewOf(r *types.InterviewResult) ResultView {
	return ResultView{
		InterviewID: r.InterviewID,
		Criteria: map[string]Grade{
			KeyClarity:         {Nota: r.ClarityScore, Razon: r.ClarityReason},
			KeyProfessionalism: {Nota: r.ProfessionalismScore, Razon: r.ProfessionalismReason},
			KeyTechnical:       {Nota: r.TechnicalScore, Razon: r.TechnicalReason},
			KeyInterest:        {Nota: r.InterestScore, Razon: r.InterestReason},
			KeyExamples:        {Nota: r.ExamplesScore, Razon: r.ExamplesReason},
		},
		Overall:   Grade{Nota: r.OverallScore, Razon: r.OverallReason},
		UpdatedAt: r.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
