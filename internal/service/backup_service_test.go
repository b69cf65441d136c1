package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mkostiv/fitjournal/internal/domain"
	"mkostiv/fitjournal/internal/service"
	"mkostiv/fitjournal/internal/sync"
)

func validBundle() *domain.Bundle {
	return &domain.Bundle{
		Version:    domain.BundleVersion,
		ExportedAt: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
		Programs:   []domain.Program{},
		Journals: []domain.Journal{
			{Date: "2026-08-29", Daily: &domain.DailyMetrics{Weight: fptr(74.5)}},
		},
	}
}

func TestImportReplacesStore(t *testing.T) {
	store := &fakeBundleStore{}
	svc := service.NewBackupService(store, nil)

	bundle := validBundle()
	require.NoError(t, svc.Import(context.Background(), bundle))
	assert.Equal(t, 1, store.replaceCalls)
	assert.Equal(t, bundle, store.replaced)
}

func TestImportRejectsInvalidBundleWithoutMutation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*domain.Bundle)
		want   error
	}{
		{"missing version", func(b *domain.Bundle) { b.Version = 0 }, service.ErrBundleInvalid},
		{"missing exportedAt", func(b *domain.Bundle) { b.ExportedAt = time.Time{} }, service.ErrBundleInvalid},
		{"nil programs", func(b *domain.Bundle) { b.Programs = nil }, service.ErrBundleInvalid},
		{"nil journals", func(b *domain.Bundle) { b.Journals = nil }, service.ErrBundleInvalid},
		{"bad journal date", func(b *domain.Bundle) { b.Journals[0].Date = "29/08/2026" }, service.ErrBundleInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeBundleStore{}
			svc := service.NewBackupService(store, nil)

			bundle := validBundle()
			tc.mutate(bundle)

			err := svc.Import(context.Background(), bundle)
			assert.ErrorIs(t, err, tc.want)
			assert.Zero(t, store.replaceCalls)
		})
	}
}

func TestImportRejectsNilBundle(t *testing.T) {
	store := &fakeBundleStore{}
	svc := service.NewBackupService(store, nil)

	err := svc.Import(context.Background(), nil)
	assert.ErrorIs(t, err, service.ErrBundleInvalid)
	assert.Zero(t, store.replaceCalls)
}

func TestValidateBundleAcceptsOlderSupportedVersion(t *testing.T) {
	bundle := validBundle()
	bundle.Version = domain.MinBundleVersion
	assert.NoError(t, service.ValidateBundle(bundle))
}

func TestExportReturnsSnapshot(t *testing.T) {
	snapshot := validBundle()
	store := &fakeBundleStore{snapshot: snapshot}
	svc := service.NewBackupService(store, nil)

	bundle, err := svc.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, snapshot, bundle)
}

// fakeSyncProvider is an in-memory stand-in for the S3 provider.
type fakeSyncProvider struct {
	stored *domain.Bundle
	err    error
}

func (p *fakeSyncProvider) Push(ctx context.Context, bundle *domain.Bundle) error {
	if p.err != nil {
		return p.err
	}
	p.stored = bundle
	return nil
}

func (p *fakeSyncProvider) Pull(ctx context.Context) (*domain.Bundle, error) {
	if p.err != nil {
		return nil, p.err
	}
	if p.stored == nil {
		return nil, sync.ErrNoRemoteBundle
	}
	return p.stored, nil
}

func TestSyncEndpointsWithoutProvider(t *testing.T) {
	svc := service.NewBackupService(&fakeBundleStore{}, nil)

	assert.ErrorIs(t, svc.PushToSync(context.Background()), service.ErrSyncUnavailable)
	assert.ErrorIs(t, svc.PullFromSync(context.Background()), service.ErrSyncUnavailable)
}

func TestPushThenPullRoundTrip(t *testing.T) {
	snapshot := validBundle()
	store := &fakeBundleStore{snapshot: snapshot}
	provider := &fakeSyncProvider{}
	svc := service.NewBackupService(store, provider)

	require.NoError(t, svc.PushToSync(context.Background()))
	require.NotNil(t, provider.stored)

	require.NoError(t, svc.PullFromSync(context.Background()))
	assert.Equal(t, 1, store.replaceCalls)
	assert.Equal(t, snapshot, store.replaced)
}

func TestPullWithoutRemoteBundle(t *testing.T) {
	store := &fakeBundleStore{}
	svc := service.NewBackupService(store, &fakeSyncProvider{})

	err := svc.PullFromSync(context.Background())
	assert.ErrorIs(t, err, sync.ErrNoRemoteBundle)
	assert.Zero(t, store.replaceCalls)
}
