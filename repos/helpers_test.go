package repos

import (
	"gorm.io/datatypes"

	"github.com/aamoria/wellness-api/models"
)

func datatypesContent(c models.JourneyContent) datatypes.JSONType[models.JourneyContent] {
	return datatypes.NewJSONType(c.Normalized())
}
