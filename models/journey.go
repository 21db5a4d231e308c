package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ClientType is the persona axis that splits a journey's catalog in two.
type ClientType string

const (
	SoulLuxury    ClientType = "soul-luxury"
	EnergyCurious ClientType = "energy-curious"
)

var ClientTypes = []ClientType{SoulLuxury, EnergyCurious}

func (c ClientType) Valid() bool {
	return c == SoulLuxury || c == EnergyCurious
}

// Short is the id infix used for generated product ids ("sl" or "ec").
func (c ClientType) Short() string {
	if c == SoulLuxury {
		return "sl"
	}
	return "ec"
}

// Journey bundles the two product catalogs for one chakra journey. The whole
// catalog lives in a single JSON column and is rewritten on every edit;
// Version guards those rewrites.
type Journey struct {
	gorm.Model
	Slug            string                              `gorm:"not null;size:100;uniqueIndex" json:"slug"`
	Name            string                              `gorm:"not null;size:200" json:"name"`
	Description     string                              `gorm:"type:text" json:"description"`
	Content         datatypes.JSONType[JourneyContent]  `gorm:"not null" json:"content"`
	ProductSettings datatypes.JSONType[ProductSettings] `gorm:"not null" json:"productSettings"`
	Version         int                                 `gorm:"not null;default:1" json:"version"`
}

type JourneyContent struct {
	SoulLuxury    []JourneyProduct `json:"soul-luxury"`
	EnergyCurious []JourneyProduct `json:"energy-curious"`
}

// Products returns a copy of the catalog for clientType.
func (c JourneyContent) Products(clientType ClientType) []JourneyProduct {
	var src []JourneyProduct
	switch clientType {
	case SoulLuxury:
		src = c.SoulLuxury
	case EnergyCurious:
		src = c.EnergyCurious
	}
	return append([]JourneyProduct{}, src...)
}

func (c *JourneyContent) SetProducts(clientType ClientType, products []JourneyProduct) {
	if products == nil {
		products = []JourneyProduct{}
	}
	switch clientType {
	case SoulLuxury:
		c.SoulLuxury = products
	case EnergyCurious:
		c.EnergyCurious = products
	}
}

// Normalized replaces nil catalogs with empty ones so they encode as [].
func (c JourneyContent) Normalized() JourneyContent {
	if c.SoulLuxury == nil {
		c.SoulLuxury = []JourneyProduct{}
	}
	if c.EnergyCurious == nil {
		c.EnergyCurious = []JourneyProduct{}
	}
	return c
}

// Contains reports whether productID exists in either catalog.
func (c JourneyContent) Contains(productID string) bool {
	for _, list := range [][]JourneyProduct{c.SoulLuxury, c.EnergyCurious} {
		for _, p := range list {
			if p.ID == productID {
				return true
			}
		}
	}
	return false
}

type ProductSetting struct {
	IsWaitlist bool      `json:"isWaitlist"`
	UpdatedAt  time.Time `json:"updatedAt"`
	UpdatedBy  string    `json:"updatedBy"`
}

// ProductSettings is keyed by product id, independent of client type.
type ProductSettings map[string]ProductSetting
