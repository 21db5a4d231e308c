// Package seed loads the bundled catalog and quiz data into a database.
package seed

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/aamoria/wellness-api/apierr"
	"github.com/aamoria/wellness-api/journey"
	"github.com/aamoria/wellness-api/logger"
	"github.com/aamoria/wellness-api/models"
	"github.com/aamoria/wellness-api/quiz"
)

//go:embed data/*.yaml
var dataFS embed.FS

const actor = "seed"

type Category struct {
	Slug string `yaml:"slug"`
	Name string `yaml:"name"`
}

type Answer struct {
	Text   string  `yaml:"text"`
	Chakra string  `yaml:"chakra"`
	State  string  `yaml:"state"`
	Weight float64 `yaml:"weight"`
}

type Question struct {
	Text        string   `yaml:"text"`
	Order       int      `yaml:"order"`
	MultiSelect bool     `yaml:"multiSelect"`
	Answers     []Answer `yaml:"answers"`
}

type Variant struct {
	Color string `yaml:"color"`
	Name  string `yaml:"name"`
	Image string `yaml:"image"`
}

type Product struct {
	ID                  string            `yaml:"id"`
	Name                string            `yaml:"name"`
	Description         string            `yaml:"description"`
	SpecificDescription string            `yaml:"specificDescription"`
	Price               string            `yaml:"price"`
	Ethos               string            `yaml:"ethos"`
	WhatItsFor          string            `yaml:"whatItsFor"`
	Features            []string          `yaml:"features"`
	Images              []string          `yaml:"images"`
	Step                int               `yaml:"step"`
	Specifications      map[string]string `yaml:"specifications"`
	DesignBreakdown     string            `yaml:"designBreakdown"`
	CareInstructions    string            `yaml:"careInstructions"`
	IdealFor            string            `yaml:"idealFor"`
	Variants            []Variant         `yaml:"variants"`
}

func (p Product) model() models.JourneyProduct {
	jp := models.JourneyProduct{
		ID:                  p.ID,
		Name:                p.Name,
		Description:         p.Description,
		SpecificDescription: p.SpecificDescription,
		Price:               p.Price,
		Ethos:               p.Ethos,
		WhatItsFor:          p.WhatItsFor,
		Features:            p.Features,
		Images:              p.Images,
		Step:                p.Step,
		Specifications:      p.Specifications,
		DesignBreakdown:     p.DesignBreakdown,
		CareInstructions:    p.CareInstructions,
		IdealFor:            p.IdealFor,
	}
	for _, v := range p.Variants {
		jp.Variants = append(jp.Variants, models.Variant{Color: v.Color, Name: v.Name, Image: v.Image})
	}
	return jp
}

type Journey struct {
	Slug          string    `yaml:"slug"`
	Name          string    `yaml:"name"`
	Description   string    `yaml:"description"`
	SoulLuxury    []Product `yaml:"soul-luxury"`
	EnergyCurious []Product `yaml:"energy-curious"`
	Waitlist      []string  `yaml:"waitlist"`
}

type Data struct {
	Categories []Category `yaml:"categories"`
	Questions  []Question `yaml:"questions"`
	Journeys   []Journey  `yaml:"journeys"`
}

func (d *Data) merge(other Data) {
	d.Categories = append(d.Categories, other.Categories...)
	d.Questions = append(d.Questions, other.Questions...)
	d.Journeys = append(d.Journeys, other.Journeys...)
}

// Load reads every bundled data file.
func Load() (*Data, error) {
	return LoadFS(dataFS, "data/*.yaml")
}

// LoadFS reads and merges the YAML files matching pattern in fsys.
func LoadFS(fsys fs.FS, pattern string) (*Data, error) {
	names, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, err
	}
	var data Data
	for _, name := range names {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, err
		}
		part, err := Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		data.merge(*part)
	}
	return &data, nil
}

// Parse decodes one data file and checks its quiz answers.
func Parse(raw []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	for i, q := range d.Questions {
		if _, err := q.answers(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return &d, nil
}

// answers converts to the stored form using the canonical state names.
func (q Question) answers() ([]models.QuizAnswer, error) {
	out := make([]models.QuizAnswer, 0, len(q.Answers))
	for _, raw := range q.Answers {
		a, err := quiz.NewAnswer(raw.Text, raw.Chakra, raw.State, raw.Weight)
		if err != nil {
			return nil, err
		}
		out = append(out, models.QuizAnswer{Text: a.Text, Chakra: string(a.Chakra), State: string(a.State), Weight: a.Weight})
	}
	return out, nil
}

type CategoryStore interface {
	EnsureCategory(ctx context.Context, slug, name string) (*models.Category, error)
}

type QuestionStore interface {
	List(ctx context.Context) ([]models.QuizQuestion, error)
	Create(ctx context.Context, q *models.QuizQuestion) error
	DeleteAll(ctx context.Context) error
}

type Seeder struct {
	Categories CategoryStore
	Questions  QuestionStore
	Journeys   *journey.Service
	log        *logger.Logger
}

func NewSeeder(categories CategoryStore, questions QuestionStore, journeys *journey.Service, baseLog *logger.Logger) *Seeder {
	return &Seeder{
		Categories: categories,
		Questions:  questions,
		Journeys:   journeys,
		log:        baseLog.With("component", "Seeder"),
	}
}

type Options struct {
	// ResetQuiz replaces stored questions instead of leaving a non-empty quiz alone.
	ResetQuiz bool
}

// Apply writes data. Running it twice leaves the same state as running it once.
func (s *Seeder) Apply(ctx context.Context, data *Data, opts Options) error {
	for _, c := range data.Categories {
		if _, err := s.Categories.EnsureCategory(ctx, c.Slug, c.Name); err != nil {
			return fmt.Errorf("category %s: %w", c.Slug, err)
		}
	}
	if err := s.applyQuestions(ctx, data.Questions, opts); err != nil {
		return err
	}
	for _, j := range data.Journeys {
		if err := s.applyJourney(ctx, j); err != nil {
			return fmt.Errorf("journey %s: %w", j.Slug, err)
		}
	}
	s.log.Info("Seed applied",
		"categories", len(data.Categories),
		"questions", len(data.Questions),
		"journeys", len(data.Journeys),
	)
	return nil
}

func (s *Seeder) applyQuestions(ctx context.Context, questions []Question, opts Options) error {
	if opts.ResetQuiz {
		if err := s.Questions.DeleteAll(ctx); err != nil {
			return fmt.Errorf("reset quiz: %w", err)
		}
	} else {
		existing, err := s.Questions.List(ctx)
		if err != nil {
			return fmt.Errorf("list quiz questions: %w", err)
		}
		if len(existing) > 0 {
			s.log.Info("Quiz already seeded, skipping", "questions", len(existing))
			return nil
		}
	}
	for i, q := range questions {
		answers, err := q.answers()
		if err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
		row := &models.QuizQuestion{Text: q.Text, Position: q.Order, MultiSelect: q.MultiSelect, Answers: answers}
		if err := s.Questions.Create(ctx, row); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return nil
}

func (s *Seeder) applyJourney(ctx context.Context, j Journey) error {
	_, err := s.Journeys.CreateJourney(ctx, j.Slug, j.Name, j.Description)
	if err != nil && !apierr.Is(err, apierr.CodeConflict) {
		return err
	}
	for _, group := range []struct {
		clientType models.ClientType
		products   []Product
	}{
		{models.SoulLuxury, j.SoulLuxury},
		{models.EnergyCurious, j.EnergyCurious},
	} {
		for _, p := range group.products {
			if err := s.upsertProduct(ctx, j.Slug, group.clientType, p.model()); err != nil {
				return fmt.Errorf("product %s: %w", p.ID, err)
			}
		}
	}
	for _, id := range j.Waitlist {
		if _, err := s.Journeys.SetWaitlistFlag(ctx, j.Slug, id, true, actor); err != nil {
			return fmt.Errorf("waitlist %s: %w", id, err)
		}
	}
	return nil
}

func (s *Seeder) upsertProduct(ctx context.Context, slug string, clientType models.ClientType, p models.JourneyProduct) error {
	_, err := s.Journeys.AddProduct(ctx, slug, clientType, p)
	if apierr.Is(err, apierr.CodeConflict) {
		_, err = s.Journeys.UpdateProduct(ctx, slug, clientType, p.ID, p)
	}
	return err
}
