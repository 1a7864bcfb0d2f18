package repository

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/address-parser/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoRepository is the persistent Repository implementation. Grounded on
// app/services/mongo_cache_service.go's index-creation and BSON-document
// handling style; the index choice and collection layout are new (postal
// records rather than cached address-parse results).
type MongoRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewMongoRepository creates the postal_records collection handle and its
// supporting indexes. The indexes are created only here; Replace drops the
// collection, and with it these indexes, and does not recreate them.
func NewMongoRepository(db *mongo.Database, logger *zap.Logger) (*MongoRepository, error) {
	collection := db.Collection("postal_records")

	indexModels := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "postal_code", Value: 1}, {Key: "town", Value: 1}, {Key: "town_kana", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "postal_code", Value: 1}},
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		logger.Warn("failed to create indexes for postal_records", zap.Error(err))
	}

	return &MongoRepository{db: db, collection: collection, logger: logger}, nil
}

// Replace drops the existing dataset and inserts records in its place. The
// dataset is small enough (≈130k rows for the full utf_ken_all file) that a
// drop-and-bulk-insert is preferable to a diff, matching how the ingestion
// usecase this repository serves is specified (SPEC_FULL.md §11.5/§12).
func (r *MongoRepository) Replace(ctx context.Context, records []model.PostalRecord) error {
	if err := r.collection.Drop(ctx); err != nil {
		return fmt.Errorf("failed to drop postal_records before replace: %w", err)
	}

	if len(records) == 0 {
		return nil
	}

	const batchSize = 1000
	docs := make([]interface{}, 0, batchSize)
	for i, rec := range records {
		docs = append(docs, rec)
		if len(docs) == batchSize || i == len(records)-1 {
			if _, err := r.collection.InsertMany(ctx, docs); err != nil {
				return fmt.Errorf("failed to insert postal_records batch: %w", err)
			}
			docs = docs[:0]
		}
	}

	r.logger.Info("replaced postal_records dataset", zap.Int("count", len(records)))
	return nil
}

// Search returns records whose postal code starts with req.PostalCodePrefix,
// paginated via an opaque token that encodes the last-seen document's _id.
func (r *MongoRepository) Search(ctx context.Context, req SearchRequest) (SearchResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = DefaultSearchPageSize
	}

	filter := bson.M{}
	if req.PostalCodePrefix != "" {
		filter["postal_code"] = bson.M{"$regex": "^" + req.PostalCodePrefix}
	}

	if req.PageToken != "" {
		lastID, err := decodePageToken(req.PageToken)
		if err != nil {
			return SearchResponse{}, err
		}
		filter["_id"] = bson.M{"$gt": lastID}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(pageSize) + 1)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("failed to search postal_records: %w", err)
	}
	defer cursor.Close(ctx)

	type doc struct {
		ID primitive.ObjectID `bson:"_id"`
		model.PostalRecord `bson:",inline"`
	}

	var docs []doc
	if err := cursor.All(ctx, &docs); err != nil {
		return SearchResponse{}, fmt.Errorf("failed to decode postal_records: %w", err)
	}

	resp := SearchResponse{}
	hasNext := len(docs) > pageSize
	if hasNext {
		docs = docs[:pageSize]
	}
	resp.Records = make([]model.PostalRecord, 0, len(docs))
	for _, d := range docs {
		resp.Records = append(resp.Records, d.PostalRecord)
	}
	if hasNext {
		resp.NextPageToken = encodePageToken(docs[len(docs)-1].ID)
	}
	return resp, nil
}

// Count returns the total number of stored records.
func (r *MongoRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count postal_records: %w", err)
	}
	return count, nil
}

func encodePageToken(id primitive.ObjectID) string {
	return base64.RawURLEncoding.EncodeToString([]byte(id.Hex()))
}

func decodePageToken(token string) (primitive.ObjectID, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %v", ErrInvalidPageToken, err)
	}
	id, err := primitive.ObjectIDFromHex(string(raw))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %v", ErrInvalidPageToken, err)
	}
	return id, nil
}
