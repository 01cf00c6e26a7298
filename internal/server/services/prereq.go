package services

import (
	"context"
	"errors"
	"fmt"

	"gripgate/internal/common"
)

// checkPrerequisite enforces strictly sequential unlocking within a
// (technique, variant) track: step idx requires a completion record for step
// idx-1 of the same track. The first step has no prerequisite.
//
// A missing predecessor row is a data-integrity problem, but the user-facing
// outcome is the same locked step, so it maps to ErrPrerequisiteMissing too.
func (s *GatingService) checkPrerequisite(ctx context.Context, userID, techniqueID, variant string, idx int) error {
	if idx == 0 {
		return nil
	}

	prev, err := s.repos.Steps(s.db).GetByTrackIdx(ctx, techniqueID, variant, idx-1)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrPrerequisiteMissing
		}
		return fmt.Errorf("%w: prerequisite lookup: %v", common.ErrorInternal, err)
	}

	done, err := s.repos.Progress(s.db).Exists(ctx, userID, prev.ID)
	if err != nil {
		return fmt.Errorf("%w: prerequisite progress check: %v", common.ErrorInternal, err)
	}
	if !done {
		return common.ErrPrerequisiteMissing
	}

	return nil
}
