package sync

import (
	"context"
	"errors"

	"mkostiv/fitjournal/internal/domain"
)

// ErrNoRemoteBundle is returned by Pull when the provider has never
// been pushed to.
var ErrNoRemoteBundle = errors.New("no bundle stored at sync provider")

// Provider is the opaque external collaborator that stores and returns
// the export bundle. The engine never inspects how it does so.
type Provider interface {
	// Push uploads the bundle, replacing whatever the provider held.
	Push(ctx context.Context, bundle *domain.Bundle) error

	// Pull downloads the last pushed bundle.
	Pull(ctx context.Context) (*domain.Bundle, error)
}
