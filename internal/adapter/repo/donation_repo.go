package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"server/internal/domain"
)

// DonationRepositoryMongo implements domain.DonationRepository on MongoDB.
type DonationRepositoryMongo struct {
	col *mongo.Collection
}

// NewDonationRepository creates a new donation repo.
func NewDonationRepository(db *mongo.Database) *DonationRepositoryMongo {
	return &DonationRepositoryMongo{col: db.Collection(donationCollection)}
}

// Insert adds a new donation record.
func (r *DonationRepositoryMongo) Insert(ctx context.Context, donation *domain.Donation) error {
	res, err := r.col.InsertOne(ctx, donation)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		donation.ID = oid
	}
	return nil
}

// List returns all donations matching filter, most recent first.
func (r *DonationRepositoryMongo) List(ctx context.Context, filter bson.M) ([]domain.Donation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []domain.Donation
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Update applies a sparse $set to one donation.
func (r *DonationRepositoryMongo) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (int64, int64, error) {
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return 0, 0, err
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

// Delete removes one donation by ID and reports how many were deleted.
func (r *DonationRepositoryMongo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DistinctCategories returns the distinct income categories in use.
func (r *DonationRepositoryMongo) DistinctCategories(ctx context.Context) ([]string, error) {
	raw, err := r.col.Distinct(ctx, "incomeCategory", bson.M{})
	if err != nil {
		return nil, err
	}
	categories := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			categories = append(categories, s)
		}
	}
	return categories, nil
}
