package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CheckoutArchive is the record kept for a checkout once it leaves the
// pending queue, processed or cancelled.
type CheckoutArchive struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CheckoutID string             `bson:"checkout_id" json:"checkout_id"`
	CartID     string             `bson:"cart_id" json:"cart_id"`
	UserID     string             `bson:"user_id" json:"user_id"`
	Outcome    string             `bson:"outcome" json:"outcome"`
	TotalPrice string             `bson:"total_price" json:"total_price"`
	ItemCount  int                `bson:"item_count" json:"item_count"`
	ArchivedAt time.Time          `bson:"archived_at" json:"archived_at"`
}
