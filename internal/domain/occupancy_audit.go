package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TableOccupancyAudit struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TableID     int64              `bson:"table_id" json:"table_id"`
	TableNumber int                `bson:"table_number" json:"table_number"`
	EventType   string             `bson:"event_type" json:"event_type"`
	OldUsername string             `bson:"old_username" json:"old_username"`
	NewUsername string             `bson:"new_username" json:"new_username"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
}
