package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanLength(t *testing.T) {
	tests := []struct {
		name        string
		inputTokens int
		maxLength   int
		want        Plan
	}{
		{"tiny input", 10, 130, Plan{MaxNewTokens: 30, MinLength: 20}},
		{"just below first band", 79, 130, Plan{MaxNewTokens: 30, MinLength: 20}},
		{"first band edge", 80, 130, Plan{MaxNewTokens: 40, MinLength: 20}},
		{"second band", 149, 130, Plan{MaxNewTokens: 40, MinLength: 20}},
		{"third band", 150, 130, Plan{MaxNewTokens: 70, MinLength: 23}},
		{"fourth band", 250, 130, Plan{MaxNewTokens: 110, MinLength: 36}},
		{"fourth band upper", 349, 130, Plan{MaxNewTokens: 110, MinLength: 36}},
		{"long input uses max", 350, 130, Plan{MaxNewTokens: 130, MinLength: 43}},
		{"long input with larger max", 2000, 200, Plan{MaxNewTokens: 200, MinLength: 66}},
		{"band capped by max", 300, 60, Plan{MaxNewTokens: 60, MinLength: 20}},
		{"small max", 10, 20, Plan{MaxNewTokens: 20, MinLength: 20}},
		{"minimum never exceeds target", 10, 12, Plan{MaxNewTokens: 12, MinLength: 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlanLength(tt.inputTokens, tt.maxLength))
		})
	}
}

func TestClamp(t *testing.T) {
	s := DefaultSettings()

	tests := []struct {
		name string
		req  Request
		want Params
	}{
		{"missing values use defaults", Request{}, Params{MaxLength: 130, NumBeams: 4}},
		{"in range kept", Request{MaxLength: 60, NumBeams: 2}, Params{MaxLength: 60, NumBeams: 2}},
		{"bounds inclusive", Request{MaxLength: 20, NumBeams: 6}, Params{MaxLength: 20, NumBeams: 6}},
		{"upper bounds inclusive", Request{MaxLength: 200, NumBeams: 1}, Params{MaxLength: 200, NumBeams: 1}},
		{"too many beams replaced", Request{MaxLength: 50, NumBeams: 7}, Params{MaxLength: 50, NumBeams: 4}},
		{"negative beams replaced", Request{MaxLength: 50, NumBeams: -1}, Params{MaxLength: 50, NumBeams: 4}},
		{"short max replaced", Request{MaxLength: 19, NumBeams: 3}, Params{MaxLength: 130, NumBeams: 3}},
		{"long max replaced", Request{MaxLength: 201, NumBeams: 3}, Params{MaxLength: 130, NumBeams: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Clamp(tt.req))
		})
	}
}

func TestGenerationParams(t *testing.T) {
	s := DefaultSettings()
	p := s.GenerationParams(Plan{MaxNewTokens: 70, MinLength: 23}, Params{MaxLength: 130, NumBeams: 5})

	assert.Equal(t, 70, p.MaxNewTokens)
	assert.Equal(t, 23, p.MinLength)
	assert.Equal(t, 5, p.NumBeams)
	assert.Equal(t, 2, p.NoRepeatNgramSize)
	assert.InDelta(t, 1.3, p.RepetitionPenalty, 1e-9)
	assert.InDelta(t, 0.8, p.LengthPenalty, 1e-9)
	assert.False(t, p.EarlyStopping)
}
