package entity

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the day key used as the sole partition key for all per-day
// collections.
const DateLayout = "2006-01-02"

// MealStatus is the three-valued health signal attached to a meal.
type MealStatus string

const (
	StatusGood      MealStatus = "good"
	StatusModerate  MealStatus = "moderate"
	StatusException MealStatus = "exception"
)

// Goal is the user's stated objective. It picks the base factor of the
// calorie-goal formula.
type Goal string

const (
	GoalReduce   Goal = "reduce"
	GoalMaintain Goal = "maintain"
	GoalGain     Goal = "gain"
)

// ActivityLevel carries a fixed metabolic multiplier used by the calorie
// goal formula.
type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "sedentary"
	ActivityLight     ActivityLevel = "light"
	ActivityModerate  ActivityLevel = "moderate"
	ActivityIntense   ActivityLevel = "intense"
)

// Meal slots. Entries without an explicit slot land in SlotSnack.
const (
	SlotBreakfast = "breakfast"
	SlotLunch     = "lunch"
	SlotDinner    = "dinner"
	SlotSnack     = "snack"
)

type User struct {
	ID                 uuid.UUID     `json:"id"`
	Name               string        `json:"name"`
	PasswordHash       string        `json:"-"`
	BirthDate          string        `json:"birth_date,omitempty"`
	Gender             string        `json:"gender,omitempty"`
	WeightKG           float64       `json:"weight_kg,omitempty"`
	HeightCM           float64       `json:"height_cm,omitempty"`
	Goal               Goal          `json:"goal,omitempty"`
	ActivityLevel      ActivityLevel `json:"activity_level,omitempty"`
	CalorieGoal        int           `json:"calorie_goal"`
	OnboardingComplete bool          `json:"onboarding_complete"`
}

// FoodItem is a single line of a per-ingredient breakdown. Produced only by
// the response parser, immutable afterwards.
type FoodItem struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Calories int    `json:"calories"`
}

type MealRecord struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"-"`
	Date        string     `json:"date"`
	Slot        string     `json:"slot"`
	Description string     `json:"description"`
	Feedback    string     `json:"feedback"`
	Status      MealStatus `json:"status"`
	Calories    int        `json:"calories"`
	Items       []FoodItem `json:"items"`
	CreatedAt   time.Time  `json:"created_at"`
}

type ExerciseRecord struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"-"`
	Date           string    `json:"date"`
	Description    string    `json:"description"`
	CaloriesBurned int       `json:"calories_burned"`
	CreatedAt      time.Time `json:"created_at"`
}

// WeightLog holds at most one entry per date. A new weight for an existing
// date replaces the previous one.
type WeightLog struct {
	Date     string  `json:"date"`
	WeightKG float64 `json:"weight_kg"`
}

// DailyStat is the per-date counters row, created lazily on first write.
// A new date key starts every counter at zero, which is also what resets
// the daily AI quota.
type DailyStat struct {
	Date           string `json:"date"`
	WaterGlasses   int    `json:"water_glasses"`
	Tip            string `json:"tip,omitempty"`
	AIInteractions int    `json:"ai_interactions"`
}

type ChatMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}
