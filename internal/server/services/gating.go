// Package services contains server-side business logic. This file implements
// GatingService, the decision engine behind the two public operations:
// CheckAccess (tier visibility) and CompleteStep (gated, idempotent
// completion recording with achievement evaluation).
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gripgate/internal/common"
	"gripgate/internal/dbx"
	"gripgate/internal/server/repositories/repomanager"
	"time"
)

// Reason classifies a CheckAccess verdict for the client.
type Reason string

const (
	ReasonFree            Reason = "free"
	ReasonPremium         Reason = "premium"
	ReasonPremiumRequired Reason = "premiumRequired"
)

// freeStepLimit is the freemium boundary: steps with idx <= freeStepLimit
// (the first two of a track) are visible and completable on the free tier.
const freeStepLimit = 1

// AccessDecision is the CheckAccess verdict.
type AccessDecision struct {
	Allowed bool
	Reason  Reason
}

// CompletionResult reports the outcome of CompleteStep. Idempotent is true
// when the completion already existed and the call was a no-op repeat;
// Unlocked counts achievements newly granted by this call.
type CompletionResult struct {
	Idempotent bool
	Unlocked   int
}

// GatingService composes step lookup, the prerequisite checker, the
// entitlement evaluator and the completion recorder into single verdicts.
// Both rule sets share the same helpers so the two operations cannot drift.
type GatingService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
	now   func() time.Time
}

func NewGatingService(db *sql.DB, m repomanager.RepositoryManager) *GatingService {
	return &GatingService{db: db, repos: m, now: time.Now}
}

// CheckAccess answers "is this step's tier visible to the user". It ignores
// prerequisites on purpose: sequence gating applies only to completion.
//
// Returns common.ErrorNotFound for unknown steps; store faults surface as
// wrapped errors and deny the request upstream (fail closed).
func (s *GatingService) CheckAccess(ctx context.Context, userID, stepID string) (*AccessDecision, error) {
	step, err := s.repos.Steps(s.db).GetByID(ctx, stepID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: step lookup: %v", common.ErrorInternal, err)
	}

	if step.Idx <= freeStepLimit {
		return &AccessDecision{Allowed: true, Reason: ReasonFree}, nil
	}

	entitled, err := s.entitled(ctx, userID)
	if err != nil {
		return nil, err
	}
	if entitled {
		return &AccessDecision{Allowed: true, Reason: ReasonPremium}, nil
	}

	return &AccessDecision{Allowed: false, Reason: ReasonPremiumRequired}, nil
}

// CompleteStep runs the strictly ordered gate chain and records the
// completion. Checks short-circuit on the first failure:
//
//  1. step lookup            -> common.ErrorNotFound
//  2. prerequisite           -> common.ErrPrerequisiteMissing
//  3. entitlement (idx >= 2) -> common.ErrPaymentRequired
//
// Prerequisite precedes entitlement so a step locked by sequence reads as
// "complete the prior step", not "pay", even when both conditions fail.
// Recording and achievement unlocking run in one transaction.
func (s *GatingService) CompleteStep(ctx context.Context, userID, stepID string) (*CompletionResult, error) {
	step, err := s.repos.Steps(s.db).GetByID(ctx, stepID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: step lookup: %v", common.ErrorInternal, err)
	}

	if err := s.checkPrerequisite(ctx, userID, step.TechniqueID, step.Variant, step.Idx); err != nil {
		return nil, err
	}

	if step.Idx > freeStepLimit {
		entitled, err := s.entitled(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !entitled {
			return nil, common.ErrPaymentRequired
		}
	}

	result := &CompletionResult{}
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		inserted, err := s.repos.Progress(tx).Upsert(ctx, userID, stepID)
		if err != nil {
			return fmt.Errorf("%w: record completion: %v", common.ErrorInternal, err)
		}
		result.Idempotent = !inserted

		// A repeated completion changes no aggregates, so thresholds
		// cannot newly be met; skip re-evaluation entirely.
		if !inserted {
			return nil
		}

		unlocked, err := s.evaluateAchievements(ctx, tx, userID)
		if err != nil {
			return err
		}
		result.Unlocked = unlocked
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
