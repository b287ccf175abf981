package auth

import (
	"context"

	"bodybalance/internal/domain/service"

	"github.com/pkg/errors"
)

// DisabledVerifier rejects every login. It backs fully offline deployments
// where no Firebase project is configured and sync stays off.
type DisabledVerifier struct{}

// NewDisabledVerifier is the constructor for DisabledVerifier.
func NewDisabledVerifier() *DisabledVerifier {
	return &DisabledVerifier{}
}

// Verify always fails.
func (*DisabledVerifier) Verify(_ context.Context, _ string) (service.Identity, error) {
	return service.Identity{}, errors.New("sync is disabled: no firebase project configured")
}
