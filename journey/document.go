package journey

import (
	"github.com/aamoria/wellness-api/models"
	"gorm.io/datatypes"
)

func datatypesJSON(c models.JourneyContent) datatypes.JSONType[models.JourneyContent] {
	return datatypes.NewJSONType(c.Normalized())
}

func datatypesSettings(s models.ProductSettings) datatypes.JSONType[models.ProductSettings] {
	if s == nil {
		s = models.ProductSettings{}
	}
	return datatypes.NewJSONType(s)
}

// NewJourney returns an unsaved journey with empty catalogs and settings.
func NewJourney(slug, name, description string) *models.Journey {
	return &models.Journey{
		Slug:            slug,
		Name:            name,
		Description:     description,
		Content:         datatypesJSON(models.JourneyContent{}),
		ProductSettings: datatypesSettings(nil),
		Version:         1,
	}
}
