package handlers

import (
	"context"
	"net/http"

	"github.com/aamoria/wellness-api/journey"
	"github.com/aamoria/wellness-api/logger"
	"github.com/aamoria/wellness-api/models"
	"github.com/aamoria/wellness-api/quiz"
)

// QuizStore persists quiz questions.
type QuizStore interface {
	List(ctx context.Context) ([]models.QuizQuestion, error)
	Create(ctx context.Context, q *models.QuizQuestion) error
	GetByPublicID(ctx context.Context, publicID string) (*models.QuizQuestion, error)
	Update(ctx context.Context, q *models.QuizQuestion) error
	Delete(ctx context.Context, publicID string) error
}

type Handler struct {
	Journeys  *journey.Service
	Quiz      QuizStore
	Weighting quiz.Weighting
	log       *logger.Logger
}

func New(journeys *journey.Service, quizStore QuizStore, weighting quiz.Weighting, baseLog *logger.Logger) *Handler {
	return &Handler{
		Journeys:  journeys,
		Quiz:      quizStore,
		Weighting: weighting,
		log:       baseLog.With("handler", "Handler"),
	}
}

// Register mounts every route on mux. Admin routes are wrapped with requireAdmin.
func (h *Handler) Register(mux *http.ServeMux, requireAdmin func(http.HandlerFunc) http.HandlerFunc) {
	// Journeys
	mux.HandleFunc("GET /api/journeys", h.ListJourneys)
	mux.HandleFunc("GET /api/journeys/{slug}", h.GetJourney)
	mux.HandleFunc("POST /api/admin/journeys", requireAdmin(h.CreateJourney))
	mux.HandleFunc("POST /api/admin/journeys/{slug}/products", requireAdmin(h.AddJourneyProduct))
	mux.HandleFunc("PUT /api/admin/journeys/{slug}/products/{productID}", requireAdmin(h.UpdateJourneyProduct))
	mux.HandleFunc("DELETE /api/admin/journeys/{slug}/products/{productID}", requireAdmin(h.DeleteJourneyProduct))
	mux.HandleFunc("PUT /api/admin/journeys/{slug}/settings/{productID}", requireAdmin(h.SetProductWaitlist))

	// Quiz
	mux.HandleFunc("GET /api/quiz/questions", h.GetQuizQuestions)
	mux.HandleFunc("POST /api/quiz/score", h.ScoreQuiz)
	mux.HandleFunc("POST /api/admin/quiz/questions", requireAdmin(h.CreateQuizQuestion))
	mux.HandleFunc("PUT /api/admin/quiz/questions/{questionID}", requireAdmin(h.UpdateQuizQuestion))
	mux.HandleFunc("DELETE /api/admin/quiz/questions/{questionID}", requireAdmin(h.DeleteQuizQuestion))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}
