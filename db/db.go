package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection     *mongo.Collection
	ProfilesCollection *mongo.Collection
	MenuCollection     *mongo.Collection
	InvoicesCollection *mongo.Collection
	Client             *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	ClientOptions := options.Client().ApplyURI(uri)
	Client, err = mongo.Connect(context.TODO(), ClientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "munchdb"
	}

	UserCollection = Client.Database(dbName).Collection("users")
	ProfilesCollection = Client.Database(dbName).Collection("userProfiles")
	MenuCollection = Client.Database(dbName).Collection("menu")
	InvoicesCollection = Client.Database(dbName).Collection("invoices")
}
