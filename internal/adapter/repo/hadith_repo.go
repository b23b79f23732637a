package repo

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"server/internal/domain"
)

// HadithRepositoryMongo implements domain.HadithRepository on MongoDB.
type HadithRepositoryMongo struct {
	col *mongo.Collection
}

// NewHadithRepository creates a new hadith repo.
func NewHadithRepository(db *mongo.Database) *HadithRepositoryMongo {
	return &HadithRepositoryMongo{col: db.Collection(hadithCollection)}
}

// Insert adds a new hadith entry.
func (r *HadithRepositoryMongo) Insert(ctx context.Context, hadith *domain.Hadith) error {
	res, err := r.col.InsertOne(ctx, hadith)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		hadith.ID = oid
	}
	return nil
}

// Search returns one page of entries matching term plus the total match
// count. A blank term matches everything.
func (r *HadithRepositoryMongo) Search(ctx context.Context, term string, page, limit int64) ([]domain.Hadith, int64, error) {
	filter := bson.M{}
	if term != "" {
		filter["text"] = primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var items []domain.Hadith
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// All returns every entry, most recent first.
func (r *HadithRepositoryMongo) All(ctx context.Context) ([]domain.Hadith, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []domain.Hadith
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Update applies a sparse $set to one entry.
func (r *HadithRepositoryMongo) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (int64, int64, error) {
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return 0, 0, err
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

// Delete removes one entry by ID.
func (r *HadithRepositoryMongo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
