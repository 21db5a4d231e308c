package models

type JourneyProduct struct {
	ID                  string            `json:"id" validate:"required,max=120"`
	Name                string            `json:"name" validate:"required,max=200"`
	Description         string            `json:"description,omitempty"`
	SpecificDescription string            `json:"specificDescription,omitempty"`
	Price               string            `json:"price,omitempty" validate:"max=40"`
	Ethos               string            `json:"ethos,omitempty"`
	WhatItsFor          string            `json:"whatItsFor,omitempty"`
	Features            []string          `json:"features,omitempty"`
	Images              []string          `json:"images,omitempty" validate:"dive,required"`
	Step                int               `json:"step" validate:"gte=0"`
	Specifications      map[string]string `json:"specifications,omitempty"`
	DesignBreakdown     string            `json:"designBreakdown,omitempty"`
	CareInstructions    string            `json:"careInstructions,omitempty"`
	IdealFor            string            `json:"idealFor,omitempty"`
	Variants            []Variant         `json:"variants,omitempty" validate:"dive"`
}

type Variant struct {
	Color string `json:"color" validate:"required"`
	Name  string `json:"name" validate:"required"`
	Image string `json:"image,omitempty"`
}
