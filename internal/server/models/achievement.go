package models

// Achievement catalog keys. The catalog rows are seeded by migration; only
// the keys are referenced from code.
const (
	AchievementFirstGrip = "first_grip"
	AchievementStreak7   = "streak_7"
	AchievementSteps25   = "steps_25"
	AchievementTech5     = "tech_5"
)

type Achievement struct {
	ID  int64
	Key string
}
