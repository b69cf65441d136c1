package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"mkostiv/fitjournal/internal/domain"
	"mkostiv/fitjournal/internal/repository"
)

// mongoBundleStore implements repository.BundleStore over the same
// database the per-kind repositories use.
type mongoBundleStore struct {
	client *mongo.Client
	db     *mongo.Database

	journals repository.JournalRepository
	programs repository.ProgramRepository
	goals    repository.GoalRepository
	profile  repository.ProfileRepository
}

// NewMongoBundleStore creates a bundle store for backup export/import.
func NewMongoBundleStore(client *mongo.Client, db *mongo.Database) repository.BundleStore {
	return &mongoBundleStore{
		client:   client,
		db:       db,
		journals: NewMongoJournalRepository(db),
		programs: NewMongoProgramRepository(db),
		goals:    NewMongoGoalRepository(db),
		profile:  NewMongoProfileRepository(db),
	}
}

// Snapshot reads all four record kinds into one bundle.
func (s *mongoBundleStore) Snapshot(ctx context.Context) (*domain.Bundle, error) {
	journals, err := s.journals.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	programs, err := s.programs.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	goals, err := s.goals.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	profile, err := s.profile.Get(ctx)
	if err != nil && err != repository.ErrNotFound {
		return nil, err
	}

	return &domain.Bundle{
		Version:    domain.BundleVersion,
		ExportedAt: time.Now().UTC(),
		Programs:   programs,
		Journals:   journals,
		Goals:      goals,
		Profile:    profile, // nil when never saved
	}, nil
}

// Replace clears all four collections and bulk-inserts the incoming
// records inside one transaction, so a mid-batch failure can never
// leave a partially cleared store.
func (s *mongoBundleStore) Replace(ctx context.Context, bundle *domain.Bundle) error {
	session, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for _, name := range []string{journalCollectionName, programCollectionName, goalCollectionName, profileCollectionName} {
			if _, err := s.db.Collection(name).DeleteMany(sc, bson.M{}); err != nil {
				return nil, err
			}
		}

		if len(bundle.Journals) > 0 {
			docs := make([]interface{}, len(bundle.Journals))
			for i := range bundle.Journals {
				docs[i] = bundle.Journals[i]
			}
			if _, err := s.db.Collection(journalCollectionName).InsertMany(sc, docs); err != nil {
				return nil, err
			}
		}
		if len(bundle.Programs) > 0 {
			docs := make([]interface{}, len(bundle.Programs))
			for i := range bundle.Programs {
				docs[i] = bundle.Programs[i]
			}
			if _, err := s.db.Collection(programCollectionName).InsertMany(sc, docs); err != nil {
				return nil, err
			}
		}
		if len(bundle.Goals) > 0 {
			docs := make([]interface{}, len(bundle.Goals))
			for i := range bundle.Goals {
				docs[i] = bundle.Goals[i]
			}
			if _, err := s.db.Collection(goalCollectionName).InsertMany(sc, docs); err != nil {
				return nil, err
			}
		}
		if bundle.Profile != nil {
			if _, err := s.db.Collection(profileCollectionName).InsertOne(sc, profileDoc(bundle.Profile)); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return err
}

// profileDoc stamps the fixed singleton key on a copy. The caller's
// bundle stays untouched, which matters because the transaction
// callback may run more than once.
func profileDoc(profile *domain.Profile) domain.Profile {
	doc := *profile
	doc.ID = domain.ProfileKey
	return doc
}
