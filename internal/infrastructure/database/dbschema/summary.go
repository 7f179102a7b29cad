package dbschema

import (
	"time"

	"gorm.io/gorm"

	"github.com/janhq/jan-summarizer/internal/domain/summary"
)

// BaseModel mirrors gorm.Model with a bigint primary key.
type BaseModel struct {
	ID        uint           `gorm:"primarykey"`
	CreatedAt time.Time      `gorm:"index:idx_summaries_created_at"`
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// Summary is the database row for a generated summary.
type Summary struct {
	BaseModel
	PublicID     string `gorm:"type:varchar(50);uniqueIndex;not null"`
	Summary      string `gorm:"type:text;not null"`
	InputLength  int    `gorm:"not null"`
	OutputLength int    `gorm:"not null"`
	InputTokens  int    `gorm:"not null"`
	MaxLength    int    `gorm:"not null"`
	NumBeams     int    `gorm:"not null"`
	MaxNewTokens int    `gorm:"not null"`
	MinLength    int    `gorm:"not null"`
	ModelName    string `gorm:"type:varchar(255);not null;default:''"`
	InputHash    string `gorm:"type:varchar(64);index;not null"`
	InputPreview string `gorm:"type:text;not null;default:''"`
	DurationMs   int64  `gorm:"not null;default:0"`
}

// NewSchemaSummary converts a domain summary into a row.
func NewSchemaSummary(s summary.Summary) *Summary {
	return &Summary{
		BaseModel: BaseModel{
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.CreatedAt,
		},
		PublicID:     s.ID,
		Summary:      s.Text,
		InputLength:  s.InputLength,
		OutputLength: s.OutputLength,
		InputTokens:  s.InputTokens,
		MaxLength:    s.MaxLength,
		NumBeams:     s.NumBeams,
		MaxNewTokens: s.MaxNewTokens,
		MinLength:    s.MinLength,
		ModelName:    s.ModelName,
		InputHash:    s.InputHash,
		InputPreview: s.InputPreview,
		DurationMs:   s.Duration.Milliseconds(),
	}
}

// EtoD converts the row back into a domain summary.
func (s *Summary) EtoD() summary.Summary {
	return summary.Summary{
		ID:           s.PublicID,
		Text:         s.Summary,
		InputLength:  s.InputLength,
		OutputLength: s.OutputLength,
		InputTokens:  s.InputTokens,
		MaxLength:    s.MaxLength,
		NumBeams:     s.NumBeams,
		MaxNewTokens: s.MaxNewTokens,
		MinLength:    s.MinLength,
		ModelName:    s.ModelName,
		InputHash:    s.InputHash,
		InputPreview: s.InputPreview,
		Duration:     time.Duration(s.DurationMs) * time.Millisecond,
		CreatedAt:    s.CreatedAt,
	}
}
