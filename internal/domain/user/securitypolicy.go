package user

import "time"

// SecurityPolicy bundles the credential rules that operations tune per
// deployment. Aggregate methods take it as an argument so the domain stays
// free of configuration plumbing.
type SecurityPolicy struct {
	MaxFailedLogins      int
	LockoutDuration      time.Duration
	VerificationTokenTTL time.Duration
	ResetTokenTTL        time.Duration
}

func DefaultSecurityPolicy() *SecurityPolicy {
	return &SecurityPolicy{
		MaxFailedLogins:      5,
		LockoutDuration:      30 * time.Minute,
		VerificationTokenTTL: 24 * time.Hour,
		ResetTokenTTL:        30 * time.Minute,
	}
}
