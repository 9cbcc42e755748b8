package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/Beka01247/restaurant-client/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestTableOccupancyAuditRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create fills id and timestamp", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewTableOccupancyAuditRepository(mt.DB)

		audit := &domain.TableOccupancyAudit{TableNumber: 3, EventType: domain.EventTableOccupied, NewUsername: "budi"}
		if err := repo.Create(context.Background(), audit); err != nil {
			t.Fatal(err)
		}
		if audit.ID.IsZero() || audit.Timestamp.IsZero() {
			t.Errorf("audit = %+v", audit)
		}
	})

	mt.Run("history by table number", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + collectionOccupancyAudit
		at := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
		first := mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "table_number", Value: 3},
			{Key: "event_type", Value: domain.EventTableReleased},
			{Key: "old_username", Value: "budi"},
			{Key: "timestamp", Value: at},
		})
		end := mtest.CreateCursorResponse(0, ns, mtest.NextBatch)
		mt.AddMockResponses(first, end)

		repo := NewTableOccupancyAuditRepository(mt.DB)
		history, err := repo.GetByTableNumber(context.Background(), 3, 10)
		if err != nil {
			t.Fatal(err)
		}
		if len(history) != 1 || history[0].OldUsername != "budi" || !history[0].Timestamp.Equal(at) {
			t.Errorf("history = %+v", history)
		}
	})
}

func TestCheckoutArchiveRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create upserts", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 0}))
		repo := NewCheckoutArchiveRepository(mt.DB)

		archive := &domain.CheckoutArchive{CheckoutID: "31", Outcome: domain.EventCheckoutProcessed}
		if err := repo.Create(context.Background(), archive); err != nil {
			t.Fatal(err)
		}
		if archive.ArchivedAt.IsZero() {
			t.Error("archived_at not defaulted")
		}
	})

	mt.Run("write error surfaces", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}))
		repo := NewCheckoutArchiveRepository(mt.DB)

		if err := repo.Create(context.Background(), &domain.CheckoutArchive{CheckoutID: "31"}); err == nil {
			t.Error("expected error")
		}
	})
}
