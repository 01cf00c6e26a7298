package models

import "time"

// Entitlement tiers as stored in user_profile. Written by the billing
// system; read-only here.
const (
	EntitlementFree    = "free"
	EntitlementTrial   = "trial"
	EntitlementPremium = "premium"
	EntitlementPro     = "pro"
)

type UserProfile struct {
	UserID      string
	Entitlement string
	TrialEndAt  *time.Time
}
