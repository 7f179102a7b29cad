package summaryrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/janhq/jan-summarizer/internal/domain/summary"
	"github.com/janhq/jan-summarizer/internal/infrastructure/database/dbschema"
	"github.com/janhq/jan-summarizer/internal/utils/platformerrors"
)

type SummaryGormRepository struct {
	db *gorm.DB
}

var _ summary.Repository = (*SummaryGormRepository)(nil)

func NewSummaryGormRepository(db *gorm.DB) summary.Repository {
	return &SummaryGormRepository{db: db}
}

// Save implements summary.Repository.
func (repo *SummaryGormRepository) Save(ctx context.Context, s summary.Summary) error {
	row := dbschema.NewSchemaSummary(s)
	if err := repo.db.WithContext(ctx).Create(row).Error; err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to save summary")
	}
	return nil
}

// Get implements summary.Repository.
func (repo *SummaryGormRepository) Get(ctx context.Context, id string) (summary.Summary, error) {
	var row dbschema.Summary
	err := repo.db.WithContext(ctx).
		Where("public_id = ?", id).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return summary.Summary{}, summary.ErrNotFound
		}
		return summary.Summary{}, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to find summary")
	}
	return row.EtoD(), nil
}

// ListRecent implements summary.Repository.
func (repo *SummaryGormRepository) ListRecent(ctx context.Context, limit int) ([]summary.Summary, error) {
	query := repo.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []dbschema.Summary
	if err := query.Find(&rows).Error; err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to list summaries")
	}

	result := make([]summary.Summary, len(rows))
	for i := range rows {
		result[i] = rows[i].EtoD()
	}
	return result, nil
}
