package repos

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/aamoria/wellness-api/journey"
	"github.com/aamoria/wellness-api/logger"
	"github.com/aamoria/wellness-api/models"
)

// JourneyRepo stores journey documents. It implements journey.DocumentStore.
type JourneyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewJourneyRepo(db *gorm.DB, baseLog *logger.Logger) *JourneyRepo {
	return &JourneyRepo{db: db, log: baseLog.With("repo", "JourneyRepo")}
}

func (r *JourneyRepo) FindBySlug(ctx context.Context, slug string) (*models.Journey, error) {
	var j models.Journey
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&j).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, journey.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *JourneyRepo) List(ctx context.Context) ([]models.Journey, error) {
	var journeys []models.Journey
	if err := r.db.WithContext(ctx).Order("slug").Find(&journeys).Error; err != nil {
		return nil, err
	}
	if journeys == nil {
		journeys = []models.Journey{}
	}
	return journeys, nil
}

func (r *JourneyRepo) Create(ctx context.Context, j *models.Journey) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Journey{}).Where("slug = ?", j.Slug).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return journey.ErrExists
	}
	if err := r.db.WithContext(ctx).Create(j).Error; err != nil {
		if isUniqueViolation(err) {
			return journey.ErrExists
		}
		return err
	}
	return nil
}

// Save rewrites content and settings when the row still has j.Version.
func (r *JourneyRepo) Save(ctx context.Context, j *models.Journey) error {
	res := r.db.WithContext(ctx).
		Model(&models.Journey{}).
		Where("slug = ? AND version = ?", j.Slug, j.Version).
		Updates(map[string]any{
			"content":          j.Content,
			"product_settings": j.ProductSettings,
			"version":          j.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		r.log.Debug("Conditional journey save matched no row", "slug", j.Slug, "version", j.Version)
		return journey.ErrStale
	}
	j.Version++
	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
