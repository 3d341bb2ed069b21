package resolver

import (
	"context"
	"fmt"

	domain "github.com/oshokin/variant-resolver/internal/domain/variant"
	"github.com/oshokin/variant-resolver/internal/repository/credentials"
)

// Policy tunes how resolution treats optional inputs.
type Policy struct {
	// RequireSigning makes an unsigned release a failure instead of a valid outcome.
	RequireSigning bool
}

// Resolve produces the descriptor for one build invocation.
//
// The credentials source is consulted at most once and only for variants that
// can be signed. A missing source yields an unsigned descriptor; a source that
// exists but is incomplete fails with *variant.MalformedCredentialsError.
func Resolve(
	ctx context.Context,
	v domain.Variant,
	static domain.StaticConfig,
	source credentials.Source,
	policy Policy,
) (*domain.Descriptor, error) {
	if err := static.Sdk.Validate(); err != nil {
		return nil, err
	}

	optimization, err := static.Policies.For(v)
	if err != nil {
		return nil, err
	}

	signing, err := resolveSigning(ctx, v, source)
	if err != nil {
		return nil, err
	}

	if v.CanSign() && signing == nil && policy.RequireSigning {
		return nil, domain.ErrUnsignedRelease
	}

	return &domain.Descriptor{
		Identity:     static.Identity,
		Sdk:          static.Sdk,
		Variant:      v,
		Signing:      signing,
		Optimization: optimization,
		Toolchain:    static.Toolchain.Clone(),
	}, nil
}

// resolveSigning looks up credentials for variants that carry them.
func resolveSigning(
	ctx context.Context,
	v domain.Variant,
	source credentials.Source,
) (*domain.SigningCredentials, error) {
	if !v.CanSign() || source == nil {
		return nil, nil //nolint:nilnil // No credentials is a valid outcome.
	}

	creds, found, err := source.TryLoad(ctx)
	if err != nil {
		return nil, fmt.Errorf("load signing credentials: %w", err)
	}

	if !found {
		return nil, nil //nolint:nilnil // No credentials is a valid outcome.
	}

	return creds.Clone(), nil
}
