package db

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	Client          *mongo.Client
	UserCollection  *mongo.Collection
	TripsCollection *mongo.Collection
)

// Init connects to MongoDB and binds the collections. The server still comes
// up when this fails; store operations surface a configuration error instead
// so the rest of the pipeline keeps working without persistence.
func Init(ctx context.Context) error {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		return fmt.Errorf("MONGODB_URI is not set")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongo ping: %w", err)
	}

	name := os.Getenv("MONGODB_DB")
	if name == "" {
		name = "tripcraft"
	}

	Client = client
	UserCollection = client.Database(name).Collection("users")
	TripsCollection = client.Database(name).Collection("trips")
	return nil
}
