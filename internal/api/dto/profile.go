package dto

type ProfileDTO struct {
	Name        string   `json:"name" binding:"required" validate:"min=1,max=100"`
	Industry    string   `json:"industry" validate:"max=100"`
	Tone        string   `json:"tone" validate:"max=100"`
	Description string   `json:"description" validate:"max=1000"`
	Keywords    []string `json:"keywords" validate:"max=20,dive,max=50"`
}
