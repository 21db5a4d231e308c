package repos

import (
	"context"
	"errors"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"

	"github.com/aamoria/wellness-api/journey"
	"github.com/aamoria/wellness-api/logger"
	"github.com/aamoria/wellness-api/models"
)

type QuizRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizRepo(db *gorm.DB, baseLog *logger.Logger) *QuizRepo {
	return &QuizRepo{db: db, log: baseLog.With("repo", "QuizRepo")}
}

// List returns questions in quiz order.
func (r *QuizRepo) List(ctx context.Context) ([]models.QuizQuestion, error) {
	var questions []models.QuizQuestion
	if err := r.db.WithContext(ctx).Order("position").Order("id").Find(&questions).Error; err != nil {
		return nil, err
	}
	if questions == nil {
		questions = []models.QuizQuestion{}
	}
	return questions, nil
}

// Create assigns a public id when the question has none.
func (r *QuizRepo) Create(ctx context.Context, q *models.QuizQuestion) error {
	if q.PublicID == "" {
		publicID, err := gonanoid.New()
		if err != nil {
			return err
		}
		q.PublicID = publicID
	}
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *QuizRepo) GetByPublicID(ctx context.Context, publicID string) (*models.QuizQuestion, error) {
	var q models.QuizQuestion
	err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&q).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, journey.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuizRepo) Update(ctx context.Context, q *models.QuizQuestion) error {
	return r.db.WithContext(ctx).
		Model(&models.QuizQuestion{}).
		Where("public_id = ?", q.PublicID).
		Updates(map[string]any{
			"text":         q.Text,
			"position":     q.Position,
			"multi_select": q.MultiSelect,
			"answers":      q.Answers,
		}).Error
}

func (r *QuizRepo) Delete(ctx context.Context, publicID string) error {
	res := r.db.WithContext(ctx).Where("public_id = ?", publicID).Delete(&models.QuizQuestion{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return journey.ErrNotFound
	}
	return nil
}

// DeleteAll hard-deletes every question, used when reseeding the quiz.
func (r *QuizRepo) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).
		Unscoped().Delete(&models.QuizQuestion{}).Error
}
