package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/Beka01247/restaurant-client/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionCheckoutArchive = "checkout_archive"

type CheckoutArchiveRepository struct {
	collection *mongo.Collection
}

func NewCheckoutArchiveRepository(db *mongo.Database) *CheckoutArchiveRepository {
	return &CheckoutArchiveRepository{
		collection: db.Collection(collectionCheckoutArchive),
	}
}

// Create inserts archive unless a record for the same checkout and outcome
// already exists, so redelivered events do not duplicate rows.
func (r *CheckoutArchiveRepository) Create(ctx context.Context, archive *domain.CheckoutArchive) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if archive.ID.IsZero() {
		archive.ID = primitive.NewObjectID()
	}
	if archive.ArchivedAt.IsZero() {
		archive.ArchivedAt = time.Now()
	}

	filter := bson.M{"checkout_id": archive.CheckoutID, "outcome": archive.Outcome}
	update := bson.M{"$setOnInsert": archive}
	opts := options.Update().SetUpsert(true)

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to archive checkout: %w", err)
	}

	return nil
}

func (r *CheckoutArchiveRepository) List(ctx context.Context, limit int) ([]domain.CheckoutArchive, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "archived_at", Value: -1}}).SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkout archive: %w", err)
	}
	defer cursor.Close(ctx)

	archives := []domain.CheckoutArchive{}
	if err := cursor.All(ctx, &archives); err != nil {
		return nil, fmt.Errorf("failed to decode checkout archive: %w", err)
	}

	return archives, nil
}
