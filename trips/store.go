package trips

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tripcraft/db"
	"tripcraft/models"
	"tripcraft/utils"
)

var (
	// ErrNotConfigured means the document store was never initialized,
	// typically a missing MONGODB_URI. Distinct from a lookup miss.
	ErrNotConfigured = errors.New("trip store is not configured")
	ErrNotFound      = errors.New("trip not found")
)

// MongoStore persists saved trips in the trips collection.
type MongoStore struct{}

func NewStore() *MongoStore {
	return &MongoStore{}
}

func collection() (*mongo.Collection, error) {
	if db.TripsCollection == nil {
		return nil, ErrNotConfigured
	}
	return db.TripsCollection, nil
}

// Create stores a trip for its owner and returns the assigned id.
func (s *MongoStore) Create(ctx context.Context, ownerID string, data *models.ItineraryData) (string, error) {
	coll, err := collection()
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	trip := models.SavedTrip{
		TripID:            utils.GetUUID(),
		UserID:            ownerID,
		Destination:       data.Destination,
		TripLength:        data.TripLength,
		Budget:            data.Budget,
		TripType:          data.TripType,
		Party:             data.Party,
		Interests:         data.Interests,
		SelectedPlaces:    data.SelectedPlaces,
		ResultsByCategory: data.ResultsByCategory,
		Itinerary:         data.Itinerary,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := coll.InsertOne(ctx, trip); err != nil {
		return "", fmt.Errorf("insert trip: %w", err)
	}
	return trip.TripID, nil
}

// ListByOwner returns the owner's trips, newest first.
func (s *MongoStore) ListByOwner(ctx context.Context, ownerID string) ([]models.SavedTrip, error) {
	coll, err := collection()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := coll.Find(ctx, bson.M{"user_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer cursor.Close(ctx)

	var trips []models.SavedTrip
	if err := cursor.All(ctx, &trips); err != nil {
		return nil, fmt.Errorf("decode trips: %w", err)
	}
	if trips == nil {
		trips = []models.SavedTrip{}
	}
	return trips, nil
}

// GetByID fetches one trip; ErrNotFound when the id does not exist.
func (s *MongoStore) GetByID(ctx context.Context, tripID string) (*models.SavedTrip, error) {
	coll, err := collection()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var trip models.SavedTrip
	err = coll.FindOne(ctx, bson.M{"tripid": tripID}).Decode(&trip)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get trip: %w", err)
	}
	return &trip, nil
}

// Delete removes a trip permanently.
func (s *MongoStore) Delete(ctx context.Context, tripID string) error {
	coll, err := collection()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := coll.DeleteOne(ctx, bson.M{"tripid": tripID})
	if err != nil {
		return fmt.Errorf("delete trip: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
