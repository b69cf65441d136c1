package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mkostiv/fitjournal/internal/repository"
)

const activeProgramKey = "active_program"

type settingDoc struct {
	ID    string `bson:"_id"`
	Value string `bson:"value"`
}

// mongoSettingsRepository keeps single named values outside the main
// record store. Today that is just the active-program pointer.
type mongoSettingsRepository struct {
	collection *mongo.Collection
}

// NewMongoSettingsRepository creates a new Settings repository.
func NewMongoSettingsRepository(db *mongo.Database) repository.SettingsRepository {
	return &mongoSettingsRepository{
		collection: db.Collection(settingsCollectionName),
	}
}

// GetActiveProgram returns the active program id or "" when unset.
func (r *mongoSettingsRepository) GetActiveProgram(ctx context.Context) (string, error) {
	var doc settingDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": activeProgramKey}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", nil
		}
		return "", err
	}
	return doc.Value, nil
}

func (r *mongoSettingsRepository) SetActiveProgram(ctx context.Context, programID string) error {
	doc := settingDoc{ID: activeProgramKey, Value: programID}

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": activeProgramKey}, doc, opts)
	return err
}

func (r *mongoSettingsRepository) ClearActiveProgram(ctx context.Context) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": activeProgramKey})
	return err
}
