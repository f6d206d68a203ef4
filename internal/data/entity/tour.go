package entity

type TourDifficulty string

const (
	DifficultyEasy      TourDifficulty = "easy"
	DifficultyMedium    TourDifficulty = "medium"
	DifficultyDifficult TourDifficulty = "difficult"
)

// Tour price is stored in minor currency units (cents).
type Tour struct {
	Base
	Name            string         `db:"name"`
	Slug            string         `db:"slug"`
	Summary         string         `db:"summary"`
	Description     *string        `db:"description"`
	ImageCover      string         `db:"image_cover"`
	Price           int64          `db:"price"`
	DurationDays    int            `db:"duration_days"`
	MaxGroupSize    int            `db:"max_group_size"`
	Difficulty      TourDifficulty `db:"difficulty"`
	RatingsAverage  float64        `db:"ratings_average"`
	RatingsQuantity int64          `db:"ratings_quantity"`
}
