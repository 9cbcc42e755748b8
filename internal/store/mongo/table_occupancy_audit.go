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

const collectionOccupancyAudit = "table_occupancy_audit"

type TableOccupancyAuditRepository struct {
	collection *mongo.Collection
}

func NewTableOccupancyAuditRepository(db *mongo.Database) *TableOccupancyAuditRepository {
	return &TableOccupancyAuditRepository{
		collection: db.Collection(collectionOccupancyAudit),
	}
}

func (r *TableOccupancyAuditRepository) Create(ctx context.Context, audit *domain.TableOccupancyAudit) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if audit.ID.IsZero() {
		audit.ID = primitive.NewObjectID()
	}
	if audit.Timestamp.IsZero() {
		audit.Timestamp = time.Now()
	}

	if _, err := r.collection.InsertOne(ctx, audit); err != nil {
		return fmt.Errorf("failed to create table occupancy audit: %w", err)
	}

	return nil
}

func (r *TableOccupancyAuditRepository) GetByTableNumber(ctx context.Context, number int, limit int) ([]domain.TableOccupancyAudit, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"table_number": number}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get table occupancy audits: %w", err)
	}
	defer cursor.Close(ctx)

	audits := []domain.TableOccupancyAudit{}
	if err := cursor.All(ctx, &audits); err != nil {
		return nil, fmt.Errorf("failed to decode table occupancy audits: %w", err)
	}

	return audits, nil
}
