package service

import (
	"context"

	"github.com/google/uuid"
)

// EntitlementChecker gates feedback and preference generation. The default
// deployment has no plans or quotas, so the allow-all checker is wired; a
// billing integration can swap in a real one.
type EntitlementChecker interface {
	CanGeneratePreference(ctx context.Context, userId uuid.UUID) error
	CanSubmitFeedback(ctx context.Context, userId uuid.UUID) error
}

type allowAllChecker struct{}

func NewAllowAllChecker() EntitlementChecker {
	return allowAllChecker{}
}

func (allowAllChecker) CanGeneratePreference(ctx context.Context, userId uuid.UUID) error {
	return nil
}

func (allowAllChecker) CanSubmitFeedback(ctx context.Context, userId uuid.UUID) error {
	return nil
}
