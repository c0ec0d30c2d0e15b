package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/clinic_calendar/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	bookingsCollection = "bookings"
	countersCollection = "counters"
	bookingsCounterID  = "bookings"
)

// MongoBookingRepository хранит записи в MongoDB.
// Целочисленные id выдаёт коллекция counters.
type MongoBookingRepository struct {
	db       *mongo.Database
	bookings *mongo.Collection
	counters *mongo.Collection
}

// NewMongoBookingRepository создаёт репозиторий и индексы коллекции
func NewMongoBookingRepository(ctx context.Context, db *mongo.Database) (*MongoBookingRepository, error) {
	r := &MongoBookingRepository{
		db:       db,
		bookings: db.Collection(bookingsCollection),
		counters: db.Collection(countersCollection),
	}

	_, err := r.bookings.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: 1}}},
		{
			Keys:    bson.D{{Key: "date", Value: 1}, {Key: "worker", Value: 1}, {Key: "time", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uq_bookings_slot"),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create booking indexes: %w", err)
	}

	return r, nil
}

func (r *MongoBookingRepository) nextID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}

	err := r.counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": bookingsCounterID},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next booking id: %w", err)
	}

	return counter.Seq, nil
}

func (r *MongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	id, err := r.nextID(ctx)
	if err != nil {
		return err
	}

	booking.ID = id
	booking.CreatedAt = time.Now().UTC()

	if _, err := r.bookings.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

func (r *MongoBookingRepository) Exists(ctx context.Context, date time.Time, worker, slot string) (bool, error) {
	filter := bson.M{"date": date, "worker": worker, "time": slot}

	count, err := r.bookings.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("check booking slot: %w", err)
	}

	return count > 0, nil
}

func (r *MongoBookingRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*model.Booking, error) {
	filter := bson.M{"date": bson.M{"$gte": from, "$lte": to}}
	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: 1},
		{Key: "worker", Value: 1},
		{Key: "time", Value: 1},
	})

	cursor, err := r.bookings.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	var bookings []*model.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}

	// mongo отдаёт даты в локальной зоне драйвера
	for _, b := range bookings {
		b.Date = b.Date.UTC()
	}

	return bookings, nil
}

func (r *MongoBookingRepository) Delete(ctx context.Context, id int64) (*model.Booking, error) {
	var booking model.Booking

	err := r.bookings.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("delete booking: %w", err)
	}

	booking.Date = booking.Date.UTC()
	return &booking, nil
}

func (r *MongoBookingRepository) Ping(ctx context.Context) error {
	return r.db.Client().Ping(ctx, nil)
}
