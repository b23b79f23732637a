package repo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"server/internal/domain"
)

// DonorRepositoryMongo implements domain.DonorRepository on MongoDB.
type DonorRepositoryMongo struct {
	col *mongo.Collection
}

// NewDonorRepository creates a new donor repo.
func NewDonorRepository(db *mongo.Database) *DonorRepositoryMongo {
	return &DonorRepositoryMongo{col: db.Collection(donorCollection)}
}

// EnsureIndexes creates the unique donorId index that backs ID assignment.
func (r *DonorRepositoryMongo) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "donorId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// MaxDonorID returns the highest assigned donor ID, 0 when the collection is
// empty.
func (r *DonorRepositoryMongo) MaxDonorID(ctx context.Context) (int64, error) {
	opts := options.FindOne().
		SetSort(bson.D{{Key: "donorId", Value: -1}}).
		SetProjection(bson.M{"donorId": 1})
	var doc struct {
		DonorID int64 `bson:"donorId"`
	}
	err := r.col.FindOne(ctx, bson.M{}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return doc.DonorID, nil
}

// Insert adds a new donor record.
func (r *DonorRepositoryMongo) Insert(ctx context.Context, donor *domain.Donor) error {
	res, err := r.col.InsertOne(ctx, donor)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrDuplicateDonorID
	}
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		donor.ID = oid
	}
	return nil
}

// IncrementBalance atomically adds amount to the donor's running total.
func (r *DonorRepositoryMongo) IncrementBalance(ctx context.Context, donorID int64, amount float64) (int64, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"donorId": donorID},
		bson.M{"$inc": bson.M{"donateAmount": amount}})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (r *DonorRepositoryMongo) GetByDonorID(ctx context.Context, donorID int64) (*domain.Donor, error) {
	var donor domain.Donor
	err := r.col.FindOne(ctx, bson.M{"donorId": donorID}).Decode(&donor)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &donor, nil
}
