// internal/services/mongo_cart_store.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/javajoker/storefront-backend/internal/cart"
)

// MongoCartStore keeps one document per user in a MongoDB collection.
type MongoCartStore struct {
	collection *mongo.Collection
}

type cartDocument struct {
	UserID    string             `bson:"user_id"`
	Items     []cartItemDocument `bson:"items"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

type cartItemDocument struct {
	ProductID string               `bson:"product_id"`
	Name      string               `bson:"name"`
	Price     primitive.Decimal128 `bson:"price"`
	Quantity  int                  `bson:"quantity"`
	Image     string               `bson:"image,omitempty"`
}

func NewMongoCartStore(collection *mongo.Collection) *MongoCartStore {
	return &MongoCartStore{collection: collection}
}

// EnsureIndexes creates the unique user_id index.
func (s *MongoCartStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *MongoCartStore) Get(ctx context.Context, userID uuid.UUID) ([]cart.Item, error) {
	var doc cartDocument
	err := s.collection.FindOne(ctx, bson.M{"user_id": userID.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		_, err := s.collection.UpdateOne(ctx,
			bson.M{"user_id": userID.String()},
			bson.M{"$setOnInsert": bson.M{"items": bson.A{}, "updated_at": time.Now()}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return nil, err
		}
		return []cart.Item{}, nil
	}
	if err != nil {
		return nil, err
	}
	return fromCartDocuments(doc.Items)
}

func (s *MongoCartStore) Replace(ctx context.Context, userID uuid.UUID, items []cart.Item) error {
	docs, err := toCartDocuments(items)
	if err != nil {
		return err
	}
	_, err = s.collection.UpdateOne(ctx,
		bson.M{"user_id": userID.String()},
		bson.M{"$set": bson.M{"items": docs, "updated_at": time.Now()}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (s *MongoCartStore) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.Replace(ctx, userID, nil)
}

func toCartDocuments(items []cart.Item) ([]cartItemDocument, error) {
	docs := make([]cartItemDocument, 0, len(items))
	for _, item := range items {
		price, err := primitive.ParseDecimal128(item.Price.String())
		if err != nil {
			return nil, fmt.Errorf("invalid price for %s: %w", item.ProductID, err)
		}
		docs = append(docs, cartItemDocument{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     price,
			Quantity:  item.Quantity,
			Image:     item.Image,
		})
	}
	return docs, nil
}

func fromCartDocuments(docs []cartItemDocument) ([]cart.Item, error) {
	items := make([]cart.Item, 0, len(docs))
	for _, doc := range docs {
		price, err := decimal.NewFromString(doc.Price.String())
		if err != nil {
			return nil, fmt.Errorf("invalid stored price for %s: %w", doc.ProductID, err)
		}
		items = append(items, cart.Item{
			ProductID: doc.ProductID,
			Name:      doc.Name,
			Price:     price,
			Quantity:  doc.Quantity,
			Image:     doc.Image,
		})
	}
	return items, nil
}
