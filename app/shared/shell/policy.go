package shell

import (
	"context"
	"errors"

	"github.com/mikietechie/sapp-library/app/shared/core"
	"github.com/mikietechie/sapp-library/lendingstore"
)

// PolicyLoader is the part of the store that holds the lending policy.
type PolicyLoader interface {
	LoadPolicySettings(ctx context.Context) (lendingstore.PolicySettings, error)
}

// LoadPolicy loads the policy in effect for one command. A missing settings row yields core.NoPolicy.
func LoadPolicy(ctx context.Context, store PolicyLoader) (core.Policy, error) {
	settings, err := store.LoadPolicySettings(ctx)

	switch {
	case err == nil:
		return core.PolicyFrom(settings), nil
	case errors.Is(err, lendingstore.ErrPolicySettingsNotFound):
		return core.NoPolicy(), nil
	default:
		return core.Policy{}, err
	}
}
