package requests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/janhq/jan-summarizer/internal/domain/summary"
)

// IntParam accepts a JSON number or a numeric string, as browser forms often send "130".
type IntParam int

func (p *IntParam) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = 0
		return nil
	}

	raw := string(data)
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
		if raw == "" {
			*p = 0
			return nil
		}
	}

	var f float64
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		return fmt.Errorf("invalid integer %s", string(data))
	}
	*p = IntParam(int(f))
	return nil
}

// SummarizeRequest is the body of both summarize routes.
type SummarizeRequest struct {
	Text      string   `json:"text" example:"Alice: the deploy failed again. Bob: I will roll back and open an incident."`
	MaxLength IntParam `json:"max_length,omitempty" swaggertype:"integer" example:"130"`
	NumBeams  IntParam `json:"num_beams,omitempty" swaggertype:"integer" example:"4"`
}

// ToDomain converts the body into a service request.
func (r SummarizeRequest) ToDomain() summary.Request {
	return summary.Request{
		Text:      r.Text,
		MaxLength: int(r.MaxLength),
		NumBeams:  int(r.NumBeams),
	}
}

// ListSummariesQuery holds query parameters for history listing.
type ListSummariesQuery struct {
	Limit int `form:"limit" validate:"omitempty,min=1,max=100"`
}

// SummaryIDParam is the path parameter of a single summary.
type SummaryIDParam struct {
	ID string `uri:"id" validate:"required,uuid"`
}
