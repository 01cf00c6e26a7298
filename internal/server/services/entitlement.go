package services

import (
	"context"
	"errors"
	"fmt"

	"gripgate/internal/common"
	"gripgate/internal/server/models"
)

// entitled reports whether the user holds paid access right now: entitlement
// premium/pro, or an unexpired trial. A missing profile row means free tier —
// absence never grants access. Expired trials are plain free, no separate
// error.
func (s *GatingService) entitled(ctx context.Context, userID string) (bool, error) {
	profile, err := s.repos.Profiles(s.db).GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: profile lookup: %v", common.ErrorInternal, err)
	}

	switch profile.Entitlement {
	case models.EntitlementPremium, models.EntitlementPro:
		return true, nil
	case models.EntitlementTrial:
		return profile.TrialEndAt != nil && profile.TrialEndAt.After(s.now()), nil
	default:
		return false, nil
	}
}
