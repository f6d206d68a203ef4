package request

type CreateTourRequest struct {
	Name         string  `json:"name" validate:"required,min=3,max=100"`
	Summary      string  `json:"summary" validate:"required,max=500"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	ImageCover   string  `json:"image_cover" validate:"required,max=255"`
	Price        int64   `json:"price" validate:"required,min=1"`
	DurationDays int     `json:"duration_days" validate:"required,min=1"`
	MaxGroupSize int     `json:"max_group_size" validate:"required,min=1"`
	Difficulty   string  `json:"difficulty" validate:"required,oneof=easy medium difficult"`
}

type UpdateTourRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=3,max=100"`
	Summary      *string `json:"summary,omitempty" validate:"omitempty,max=500"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	ImageCover   *string `json:"image_cover,omitempty" validate:"omitempty,max=255"`
	Price        *int64  `json:"price,omitempty" validate:"omitempty,min=1"`
	DurationDays *int    `json:"duration_days,omitempty" validate:"omitempty,min=1"`
	MaxGroupSize *int    `json:"max_group_size,omitempty" validate:"omitempty,min=1"`
	Difficulty   *string `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium difficult"`
}
