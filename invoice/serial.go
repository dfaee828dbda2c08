package invoice

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"

	"munchmate/db"
	"munchmate/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SerialSource reads the highest serial number assigned so far.
// ErrNoInvoices means the collection is empty, not a failure.
type SerialSource interface {
	LatestSerial(ctx context.Context) (int, error)
}

var ErrNoInvoices = errors.New("no invoices yet")

// MongoSerialSource reads the latest serial from the invoices collection.
type MongoSerialSource struct {
	Coll *mongo.Collection
}

func NewMongoSerialSource() *MongoSerialSource {
	return &MongoSerialSource{Coll: db.InvoicesCollection}
}

func (m *MongoSerialSource) LatestSerial(ctx context.Context) (int, error) {
	opts := options.FindOne().SetSort(bson.M{"serialNumber": -1})
	var latest models.Invoice
	err := m.Coll.FindOne(ctx, bson.M{}, opts).Decode(&latest)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, ErrNoInvoices
		}
		return 0, err
	}
	return latest.SerialNumber, nil
}

// NextSerial allocates the next invoice serial: latest+1, 1 for an empty
// collection, and a random four-digit serial when the query itself fails,
// so a checkout never blocks on the allocator. Two concurrent checkouts can
// race and obtain the same serial (read-then-write, no transaction).
func NextSerial(ctx context.Context, src SerialSource) int {
	latest, err := src.LatestSerial(ctx)
	if err != nil {
		if errors.Is(err, ErrNoInvoices) {
			return 1
		}
		log.Println("NextSerial query error:", err)
		return RandomFallbackSerial()
	}
	return latest + 1
}

// FormatInvoiceNumber renders serial n as the user-visible invoice code.
// Zero-padded to four digits; larger serials keep all their digits.
func FormatInvoiceNumber(n int) string {
	return fmt.Sprintf("INV-%04d", n)
}

// FormatOrderNumber renders serial n as the order code shown at payment.
func FormatOrderNumber(n int) string {
	return fmt.Sprintf("ORD-%04d", n)
}

// RandomFallbackSerial produces an out-of-band four-digit serial. It can
// collide with an assigned serial, but the order still gets a printable
// invoice number.
func RandomFallbackSerial() int {
	return 1000 + rand.Intn(9000)
}
