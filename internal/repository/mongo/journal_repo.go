package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mkostiv/fitjournal/internal/domain"
	"mkostiv/fitjournal/internal/repository"
)

// mongoJournalRepository implements repository.JournalRepository. The
// journal's calendar date is the document _id, which gives the
// one-entry-per-day invariant for free.
type mongoJournalRepository struct {
	collection *mongo.Collection
}

// NewMongoJournalRepository creates a new Journal repository.
func NewMongoJournalRepository(db *mongo.Database) repository.JournalRepository {
	return &mongoJournalRepository{
		collection: db.Collection(journalCollectionName),
	}
}

// GetAll returns every journal sorted descending by date, the order
// the aggregation engine expects its snapshots in.
func (r *mongoJournalRepository) GetAll(ctx context.Context) ([]domain.Journal, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var journals []domain.Journal
	if err = cursor.All(ctx, &journals); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return journals, nil
}

// GetByDate retrieves a single journal by its date key.
func (r *mongoJournalRepository) GetByDate(ctx context.Context, date string) (*domain.Journal, error) {
	var journal domain.Journal
	err := r.collection.FindOne(ctx, bson.M{"_id": date}).Decode(&journal)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &journal, nil
}

// Create inserts a new journal and fails if the date is taken.
func (r *mongoJournalRepository) Create(ctx context.Context, journal *domain.Journal) error {
	if _, err := time.Parse(domain.DateLayout, journal.Date); err != nil {
		return errors.New("journal requires a valid YYYY-MM-DD date")
	}
	journal.LastModified = time.Now().UTC()

	_, err := r.collection.InsertOne(ctx, journal)
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicateKey
	}
	return err
}

// Put upserts the journal for its date.
func (r *mongoJournalRepository) Put(ctx context.Context, journal *domain.Journal) error {
	if _, err := time.Parse(domain.DateLayout, journal.Date); err != nil {
		return errors.New("journal requires a valid YYYY-MM-DD date")
	}
	journal.LastModified = time.Now().UTC()

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": journal.Date}, journal, opts)
	return err
}

// Update merges partial fields onto an existing journal. Missing
// journal is reported as ErrNotFound so the caller can decide whether
// that matters; the store-level contract treats it as a no-op.
func (r *mongoJournalRepository) Update(ctx context.Context, date string, fields map[string]interface{}) error {
	set := bson.M{"lastModified": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": date}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the journal for a date.
func (r *mongoJournalRepository) Delete(ctx context.Context, date string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": date})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
