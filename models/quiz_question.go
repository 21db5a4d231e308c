package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuizQuestion is an admin-managed question of the chakra quiz.
type QuizQuestion struct {
	gorm.Model
	PublicID    string                          `gorm:"size:100;uniqueIndex" json:"id"`
	Text        string                          `gorm:"not null;size:500" json:"text"`
	Position    int                             `gorm:"not null;default:0;index" json:"order"`
	MultiSelect bool                            `gorm:"default:false" json:"multiSelect"`
	Answers     datatypes.JSONSlice[QuizAnswer] `json:"answers"`
}

type QuizAnswer struct {
	Text   string  `json:"text"`
	Chakra string  `json:"chakra"`
	State  string  `json:"state"`
	Weight float64 `json:"weight"`
}
