package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const schemaDocKey = "schema"

type schemaInfo struct {
	ID        string    `bson:"_id"`
	Version   int       `bson:"version"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// A migrationStep is one gated schema change. Every step must be
// idempotent: the version gate can re-apply steps during recovery, so
// running a step against already-migrated data has to be a no-op.
type migrationStep struct {
	version int
	name    string
	run     func(ctx context.Context, db *mongo.Database) error
}

var migrationSteps = []migrationStep{
	{
		version: 1,
		name:    "baseline_indexes",
		run:     migrateBaselineIndexes,
	},
	{
		version: 2,
		name:    "workout_program_defaults",
		run:     migrateWorkoutProgramDefaults,
	},
}

// SchemaVersion is the version a fully migrated store reports.
func SchemaVersion() int {
	return migrationSteps[len(migrationSteps)-1].version
}

// schemaStore reads and stamps the stored schema version. The step
// loop runs against this seam so the gating logic can be exercised
// without a live database.
type schemaStore interface {
	Version(ctx context.Context) (int, error)
	Stamp(ctx context.Context, version int) error
}

// RunMigrations applies every step above the stored schema version, in
// order, stamping the version after each so a crash resumes where it
// left off.
func RunMigrations(ctx context.Context, db *mongo.Database) error {
	return applyMigrations(ctx, &mongoSchemaStore{db: db}, migrationSteps, db)
}

func applyMigrations(ctx context.Context, store schemaStore, steps []migrationStep, db *mongo.Database) error {
	current, err := store.Version(ctx)
	if err != nil {
		return err
	}

	for _, step := range steps {
		if step.version <= current {
			continue
		}
		logrus.WithFields(logrus.Fields{
			"version": step.version,
			"name":    step.name,
		}).Info("applying schema migration")

		if err := step.run(ctx, db); err != nil {
			return err
		}
		if err := store.Stamp(ctx, step.version); err != nil {
			return err
		}
	}
	return nil
}

// mongoSchemaStore keeps the version in a singleton schema_info doc.
type mongoSchemaStore struct {
	db *mongo.Database
}

func (s *mongoSchemaStore) Version(ctx context.Context) (int, error) {
	var info schemaInfo
	err := s.db.Collection(schemaCollectionName).FindOne(ctx, bson.M{"_id": schemaDocKey}).Decode(&info)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, err
	}
	return info.Version, nil
}

func (s *mongoSchemaStore) Stamp(ctx context.Context, version int) error {
	doc := schemaInfo{ID: schemaDocKey, Version: version, UpdatedAt: time.Now().UTC()}

	opts := options.Replace().SetUpsert(true)
	_, err := s.db.Collection(schemaCollectionName).ReplaceOne(ctx, bson.M{"_id": schemaDocKey}, doc, opts)
	return err
}

// migrateBaselineIndexes creates the secondary indexes. CreateMany on
// already-existing indexes is a no-op, so re-running is safe.
func migrateBaselineIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(programCollectionName).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(goalCollectionName).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "metric", Value: 1}}},
		{Keys: bson.D{{Key: "direction", Value: 1}}},
	})
	return err
}

// migrateWorkoutProgramDefaults stamps programId/dayNumber defaults
// onto workout records written before those fields existed. The
// $exists guards mean already-stamped documents never match again.
func migrateWorkoutProgramDefaults(ctx context.Context, db *mongo.Database) error {
	journals := db.Collection(journalCollectionName)

	_, err := journals.UpdateMany(ctx,
		bson.M{"workout": bson.M{"$exists": true}, "workout.programId": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"workout.programId": ""}},
	)
	if err != nil {
		return err
	}

	_, err = journals.UpdateMany(ctx,
		bson.M{"workout": bson.M{"$exists": true}, "workout.dayNumber": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"workout.dayNumber": nil}},
	)
	return err
}
