package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const DatabaseName = "tourbooking"

var MongoClient *mongo.Client

// ConnectMongoDB dials the cluster named by mongoUri, pings it, and stores
// the client in MongoClient for the collection helpers.
func ConnectMongoDB(mongoUri string) (*mongo.Client, error) {
	if mongoUri == "" {
		return nil, fmt.Errorf("MONGODB_URI env not set")
	}

	serverAPIOptions := options.ServerAPI(options.ServerAPIVersion1)
	clientOptions := options.Client().
		ApplyURI(mongoUri).
		SetServerAPIOptions(serverAPIOptions)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	MongoClient = client
	return client, nil
}

// Collection returns a handle into the service database.
func Collection(name string) *mongo.Collection {
	return MongoClient.Database(DatabaseName).Collection(name)
}
