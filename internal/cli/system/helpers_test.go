package system

import "github.com/julianstephens/habitual/internal/models"

func habitNamed(title string) models.Habit {
	return models.Habit{Title: title, Frequency: models.FrequencyDaily}
}
