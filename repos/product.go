package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aamoria/wellness-api/journey"
	"github.com/aamoria/wellness-api/logger"
	"github.com/aamoria/wellness-api/models"
)

// ProductRepo is the flat product table. It implements journey.MirrorStore.
type ProductRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) *ProductRepo {
	return &ProductRepo{db: db, log: baseLog.With("repo", "ProductRepo")}
}

func (r *ProductRepo) Upsert(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "description", "price", "images", "updated_at"}),
	}).Create(p).Error
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return journey.ErrNotFound
	}
	return nil
}

// FirstCategory returns the category with the lowest id.
func (r *ProductRepo) FirstCategory(ctx context.Context) (*models.Category, error) {
	var c models.Category
	err := r.db.WithContext(ctx).Order("id").First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, journey.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, journey.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// EnsureCategory creates the category identified by slug if it is missing.
func (r *ProductRepo) EnsureCategory(ctx context.Context, slug, name string) (*models.Category, error) {
	c := models.Category{Slug: slug, Name: name}
	err := r.db.WithContext(ctx).Where(models.Category{Slug: slug}).FirstOrCreate(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}
