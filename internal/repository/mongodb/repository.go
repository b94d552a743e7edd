package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/kitchen/internal/repository/slots"
)

const defaultCollection = "kitchen_slots"

// slotDocument is the stored shape of one slot; the payload stays JSON text.
type slotDocument struct {
	Slot      string    `bson:"_id"`
	Payload   string    `bson:"payload"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoDBRepository implements slots.Store on a MongoDB collection.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

var _ slots.Store = (*MongoDBRepository)(nil)

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: defaultCollection,
	}, nil
}

func (r *MongoDBRepository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}

// Load fetches the payload stored for slot.
func (r *MongoDBRepository) Load(ctx context.Context, slot slots.Slot) ([]byte, error) {
	var doc slotDocument
	err := r.collection().FindOne(ctx, bson.M{"_id": string(slot)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, slots.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load slot %s: %w", slot, err)
	}
	return []byte(doc.Payload), nil
}

// Save replaces the slot document, creating it when missing.
func (r *MongoDBRepository) Save(ctx context.Context, slot slots.Slot, payload []byte) error {
	doc := slotDocument{Slot: string(slot), Payload: string(payload), UpdatedAt: time.Now().UTC()}
	_, err := r.collection().ReplaceOne(ctx, bson.M{"_id": doc.Slot}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save slot %s: %w", slot, err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func newWithClient(client *mongo.Client, dbName string) *MongoDBRepository {
	return &MongoDBRepository{client: client, dbName: dbName, collName: defaultCollection}
}
