package summary

import "github.com/janhq/jan-summarizer/internal/domain/model"

const (
	MinMaxLength = 20
	MaxMaxLength = 200
	MinNumBeams  = 1
	MaxNumBeams  = 6

	// MinSummaryLength is the floor applied to the planned minimum length.
	MinSummaryLength = 20
)

// Settings carries the generation constants applied to every request.
type Settings struct {
	DefaultMaxLength   int
	DefaultNumBeams    int
	InputPrefix        string
	InputMaxTokens     int
	NoRepeatNgramSize  int
	RepetitionPenalty  float64
	LengthPenalty      float64
	EarlyStopping      bool
	MaxInputCharacters int
}

// DefaultSettings mirrors the values the pretrained summarizer was tuned with.
func DefaultSettings() Settings {
	return Settings{
		DefaultMaxLength:  130,
		DefaultNumBeams:   4,
		InputPrefix:       "summarize: ",
		InputMaxTokens:    512,
		NoRepeatNgramSize: 2,
		RepetitionPenalty: 1.3,
		LengthPenalty:     0.8,
		EarlyStopping:     false,
	}
}

// Params are the effective per-request generation knobs after clamping.
type Params struct {
	MaxLength int
	NumBeams  int
}

// Clamp replaces out-of-range values with the defaults. Values are replaced
// rather than saturated: a num_beams of 9 becomes the default, not 6.
func (s Settings) Clamp(req Request) Params {
	params := Params{MaxLength: req.MaxLength, NumBeams: req.NumBeams}
	if params.NumBeams < MinNumBeams || params.NumBeams > MaxNumBeams {
		params.NumBeams = s.DefaultNumBeams
	}
	if params.MaxLength < MinMaxLength || params.MaxLength > MaxMaxLength {
		params.MaxLength = s.DefaultMaxLength
	}
	return params
}

// Plan is the output length target derived from the input size.
type Plan struct {
	MaxNewTokens int
	MinLength    int
}

type lengthBand struct {
	below  int
	target int
}

var lengthBands = []lengthBand{
	{below: 80, target: 30},
	{below: 150, target: 40},
	{below: 250, target: 70},
	{below: 350, target: 110},
}

// PlanLength maps the input token count to a target output length bounded by
// maxLength. Inputs of 350 tokens or more get maxLength itself.
func PlanLength(inputTokens, maxLength int) Plan {
	out := maxLength
	for _, band := range lengthBands {
		if inputTokens < band.below {
			out = min(band.target, maxLength)
			break
		}
	}

	minLength := max(MinSummaryLength, out/3)
	if minLength > out {
		minLength = out
	}
	return Plan{MaxNewTokens: out, MinLength: minLength}
}

// GenerationParams combines a plan with the fixed decoding settings.
func (s Settings) GenerationParams(plan Plan, params Params) model.GenerationParams {
	return model.GenerationParams{
		MaxNewTokens:      plan.MaxNewTokens,
		MinLength:         plan.MinLength,
		NumBeams:          params.NumBeams,
		NoRepeatNgramSize: s.NoRepeatNgramSize,
		RepetitionPenalty: s.RepetitionPenalty,
		LengthPenalty:     s.LengthPenalty,
		EarlyStopping:     s.EarlyStopping,
	}
}
