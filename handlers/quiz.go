package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aamoria/wellness-api/apierr"
	"github.com/aamoria/wellness-api/journey"
	"github.com/aamoria/wellness-api/models"
	"github.com/aamoria/wellness-api/quiz"
	"github.com/aamoria/wellness-api/response"
)

type questionRequest struct {
	Text        string              `json:"text"`
	Order       int                 `json:"order"`
	MultiSelect bool                `json:"multiSelect"`
	Answers     []models.QuizAnswer `json:"answers"`
}

// toModel validates the payload and stores answers in the canonical vocabulary.
func (q questionRequest) toModel() (*models.QuizQuestion, error) {
	if strings.TrimSpace(q.Text) == "" {
		return nil, apierr.Validation("question text is required")
	}
	if len(q.Answers) == 0 {
		return nil, apierr.Validation("question needs at least one answer")
	}
	answers := make([]models.QuizAnswer, 0, len(q.Answers))
	for i, raw := range q.Answers {
		a, err := quiz.NewAnswer(raw.Text, raw.Chakra, raw.State, raw.Weight)
		if err != nil {
			return nil, apierr.Validation("answer %d: %v", i, err)
		}
		answers = append(answers, models.QuizAnswer{Text: a.Text, Chakra: string(a.Chakra), State: string(a.State), Weight: a.Weight})
	}
	return &models.QuizQuestion{Text: q.Text, Position: q.Order, MultiSelect: q.MultiSelect, Answers: answers}, nil
}

// ToQuizQuestions converts stored questions for the scoring engine.
func ToQuizQuestions(stored []models.QuizQuestion) []quiz.Question {
	out := make([]quiz.Question, 0, len(stored))
	for _, sq := range stored {
		q := quiz.Question{ID: sq.PublicID, Text: sq.Text, Order: sq.Position, MultiSelect: sq.MultiSelect}
		for _, a := range sq.Answers {
			state, err := quiz.ParseState(a.State)
			if err != nil {
				state = quiz.State(a.State)
			}
			q.Answers = append(q.Answers, quiz.Answer{Text: a.Text, Chakra: quiz.Chakra(a.Chakra), State: state, Weight: a.Weight})
		}
		out = append(out, q)
	}
	return out
}

func storeError(op string, err error) error {
	if errors.Is(err, journey.ErrNotFound) {
		return apierr.NotFound("quiz question not found")
	}
	return apierr.Dependency(op, err)
}

// GET /api/quiz/questions
func (h *Handler) GetQuizQuestions(w http.ResponseWriter, r *http.Request) {
	stored, err := h.Quiz.List(r.Context())
	if err != nil {
		h.log.Error("GetQuizQuestions: failed", "error", err)
		response.Error(w, storeError("list quiz questions", err))
		return
	}
	response.OK(w, ToQuizQuestions(stored))
}

// POST /api/quiz/score
func (h *Handler) ScoreQuiz(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Answers [][]int `json:"answers"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, err)
		return
	}
	stored, err := h.Quiz.List(r.Context())
	if err != nil {
		response.Error(w, storeError("list quiz questions", err))
		return
	}
	questions := ToQuizQuestions(stored)
	if err := quiz.Validate(questions, req.Answers); err != nil {
		response.Error(w, apierr.Validation("%v", err))
		return
	}
	response.OK(w, quiz.Score(questions, req.Answers, quiz.WithWeighting(h.Weighting)))
}

// POST /api/admin/quiz/questions
func (h *Handler) CreateQuizQuestion(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, err)
		return
	}
	q, err := req.toModel()
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.Quiz.Create(r.Context(), q); err != nil {
		h.log.Error("CreateQuizQuestion: failed", "error", err)
		response.Error(w, storeError("create quiz question", err))
		return
	}
	h.log.Info("CreateQuizQuestion: created", "question_id", q.PublicID)
	response.JSON(w, http.StatusCreated, ToQuizQuestions([]models.QuizQuestion{*q})[0])
}

// PUT /api/admin/quiz/questions/{questionID}
func (h *Handler) UpdateQuizQuestion(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("questionID")
	var req questionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, err)
		return
	}
	q, err := req.toModel()
	if err != nil {
		response.Error(w, err)
		return
	}
	if _, err := h.Quiz.GetByPublicID(r.Context(), questionID); err != nil {
		response.Error(w, storeError("load quiz question", err))
		return
	}
	q.PublicID = questionID
	if err := h.Quiz.Update(r.Context(), q); err != nil {
		response.Error(w, storeError("update quiz question", err))
		return
	}
	response.OK(w, ToQuizQuestions([]models.QuizQuestion{*q})[0])
}

// DELETE /api/admin/quiz/questions/{questionID}
func (h *Handler) DeleteQuizQuestion(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("questionID")
	if err := h.Quiz.Delete(r.Context(), questionID); err != nil {
		response.Error(w, storeError("delete quiz question", err))
		return
	}
	h.log.Info("DeleteQuizQuestion: deleted", "question_id", questionID)
	w.WriteHeader(http.StatusNoContent)
}
