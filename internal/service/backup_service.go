package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"mkostiv/fitjournal/internal/domain"
	"mkostiv/fitjournal/internal/repository"
	"mkostiv/fitjournal/internal/sync"
)

// --- Error Definitions ---
var (
	ErrBundleInvalid     = errors.New("backup bundle is invalid")
	ErrBundleUnsupported = errors.New("backup bundle version is not supported")
	ErrSyncUnavailable   = errors.New("no sync provider configured")
)

// BackupService builds export bundles and performs the atomic replace
// import, locally or through the external sync provider.
type BackupService interface {
	Export(ctx context.Context) (*domain.Bundle, error)
	Import(ctx context.Context, bundle *domain.Bundle) error

	PushToSync(ctx context.Context) error
	PullFromSync(ctx context.Context) error
}

type backupService struct {
	store    repository.BundleStore
	provider sync.Provider // nil when sync is not configured
}

// NewBackupService creates a new instance of backupService. provider
// may be nil; the sync endpoints then report ErrSyncUnavailable.
func NewBackupService(store repository.BundleStore, provider sync.Provider) BackupService {
	return &backupService{store: store, provider: provider}
}

// Export reads all four record kinds into one bundle.
func (s *backupService) Export(ctx context.Context) (*domain.Bundle, error) {
	return s.store.Snapshot(ctx)
}

// ValidateBundle rejects structurally broken or too-old bundles before
// any mutation happens.
func ValidateBundle(bundle *domain.Bundle) error {
	if bundle == nil {
		return fmt.Errorf("%w: empty document", ErrBundleInvalid)
	}
	if bundle.Version == 0 {
		return fmt.Errorf("%w: missing version", ErrBundleInvalid)
	}
	if bundle.Version < domain.MinBundleVersion {
		return fmt.Errorf("%w: version %d, minimum %d", ErrBundleUnsupported, bundle.Version, domain.MinBundleVersion)
	}
	if bundle.ExportedAt.IsZero() {
		return fmt.Errorf("%w: missing exportedAt", ErrBundleInvalid)
	}
	if bundle.Programs == nil {
		return fmt.Errorf("%w: missing programs", ErrBundleInvalid)
	}
	if bundle.Journals == nil {
		return fmt.Errorf("%w: missing journals", ErrBundleInvalid)
	}
	for i := range bundle.Journals {
		if _, err := time.Parse(domain.DateLayout, bundle.Journals[i].Date); err != nil {
			return fmt.Errorf("%w: journal %d has invalid date %q", ErrBundleInvalid, i, bundle.Journals[i].Date)
		}
	}
	return nil
}

// Import validates the bundle, then replaces the entire store contents
// in one transaction. On any failure the prior state stays intact.
func (s *backupService) Import(ctx context.Context, bundle *domain.Bundle) error {
	if err := ValidateBundle(bundle); err != nil {
		return err
	}
	if err := s.store.Replace(ctx, bundle); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"journals": len(bundle.Journals),
		"programs": len(bundle.Programs),
		"goals":    len(bundle.Goals),
	}).Info("backup imported")
	return nil
}

// PushToSync exports the store and uploads the bundle to the provider.
func (s *backupService) PushToSync(ctx context.Context) error {
	if s.provider == nil {
		return ErrSyncUnavailable
	}
	bundle, err := s.Export(ctx)
	if err != nil {
		return err
	}
	return s.provider.Push(ctx, bundle)
}

// PullFromSync downloads the provider's bundle and runs the same
// validated replace import.
func (s *backupService) PullFromSync(ctx context.Context) error {
	if s.provider == nil {
		return ErrSyncUnavailable
	}
	bundle, err := s.provider.Pull(ctx)
	if err != nil {
		return err
	}
	return s.Import(ctx, bundle)
}
