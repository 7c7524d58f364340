package exercises

// DefaultMedia is the media reference assigned to custom exercises.
const DefaultMedia = "images/placeholder.jpg"

// Definition holds the catalog metadata of one exercise.
// The exercise name is the key of the Store mapping, not a field,
// matching the persisted document shape.
type Definition struct {
	Description string `json:"description"`
	Media       string `json:"media"`
	MuscleGroup string `json:"muscleGroup"`
	IsCustom    bool   `json:"isCustom,omitempty"`
	IsDeleted   bool   `json:"isDeleted,omitempty"`
}

// Store maps exercise name to its definition.
type Store map[string]Definition

func NewCustomDefinition(description, muscleGroup string) Definition {
	return Definition{
		Description: description,
		Media:       DefaultMedia,
		MuscleGroup: muscleGroup,
		IsCustom:    true,
	}
}
