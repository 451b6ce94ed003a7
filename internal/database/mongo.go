// internal/database/mongo.go
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/javajoker/storefront-backend/internal/config"
)

// MongoDB groups the document collections used when carts live in MongoDB.
type MongoDB struct {
	Client *mongo.Client
	Carts  *mongo.Collection
}

func ConnectMongo(ctx context.Context, cfg config.MongoConfig) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(cfg.Database)
	logrus.WithField("database", cfg.Database).Info("MongoDB connection established")
	return &MongoDB{
		Client: client,
		Carts:  db.Collection("carts"),
	}, nil
}

func (m *MongoDB) Close(ctx context.Context) {
	if err := m.Client.Disconnect(ctx); err != nil {
		logrus.WithError(err).Error("Error closing mongodb connection")
	}
}
