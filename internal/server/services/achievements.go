package services

import (
	"context"
	"fmt"
	"time"

	"gripgate/internal/common"
	"gripgate/internal/dbx"
	"gripgate/internal/server/models"
)

// Achievement thresholds over the user's aggregate progress.
const (
	thresholdFirstGrip = 1
	thresholdStreak    = 7
	thresholdSteps     = 25
	thresholdTech      = 5
)

// evaluateAchievements reads the aggregate counts, derives which threshold
// achievements are newly met, and appends the unlocks in one batch. Already
// held achievements are skipped, so granting stays idempotent.
func (s *GatingService) evaluateAchievements(ctx context.Context, tx dbx.DBTX, userID string) (int, error) {
	progressRepo := s.repos.Progress(tx)

	total, err := progressRepo.CountForUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: count progress: %v", common.ErrorInternal, err)
	}

	days, err := progressRepo.CompletionDays(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: completion days: %v", common.ErrorInternal, err)
	}
	streak := currentStreak(days)

	techniques, err := progressRepo.CountCompletedTechniques(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: count techniques: %v", common.ErrorInternal, err)
	}

	achRepo := s.repos.Achievements(tx)

	catalog, err := achRepo.Catalog(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: achievement catalog: %v", common.ErrorInternal, err)
	}
	idByKey := make(map[string]int64, len(catalog))
	for _, a := range catalog {
		idByKey[a.Key] = a.ID
	}

	held, err := achRepo.HeldIDs(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: held achievements: %v", common.ErrorInternal, err)
	}

	var toUnlock []int64
	add := func(key string, met bool) {
		if !met {
			return
		}
		id, ok := idByKey[key]
		if !ok {
			return
		}
		if _, have := held[id]; have {
			return
		}
		toUnlock = append(toUnlock, id)
	}

	add(models.AchievementFirstGrip, total >= thresholdFirstGrip)
	add(models.AchievementStreak7, streak >= thresholdStreak)
	add(models.AchievementSteps25, total >= thresholdSteps)
	add(models.AchievementTech5, techniques >= thresholdTech)

	if len(toUnlock) == 0 {
		return 0, nil
	}

	unlocked, err := achRepo.Unlock(ctx, userID, toUnlock)
	if err != nil {
		return 0, fmt.Errorf("%w: unlock achievements: %v", common.ErrorInternal, err)
	}

	return unlocked, nil
}

// currentStreak counts the run of consecutive days ending at the most recent
// completion day. Days must be distinct dates in descending order, which is
// the CompletionDays contract. Evaluation runs right after a completion, so
// the most recent day is always "today" for the purpose of the streak.
func currentStreak(days []time.Time) int {
	if len(days) == 0 {
		return 0
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		if days[i-1].Sub(days[i]) == 24*time.Hour {
			streak++
			continue
		}
		break
	}

	return streak
}
