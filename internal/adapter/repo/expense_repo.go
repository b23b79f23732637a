package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"server/internal/domain"
)

// ExpenseRepositoryMongo implements domain.ExpenseRepository on MongoDB.
type ExpenseRepositoryMongo struct {
	col *mongo.Collection
}

// NewExpenseRepository creates a new expense repo.
func NewExpenseRepository(db *mongo.Database) *ExpenseRepositoryMongo {
	return &ExpenseRepositoryMongo{col: db.Collection(expenseCollection)}
}

// Insert adds a new expense record.
func (r *ExpenseRepositoryMongo) Insert(ctx context.Context, expense *domain.Expense) error {
	res, err := r.col.InsertOne(ctx, expense)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		expense.ID = oid
	}
	return nil
}

// List returns all expenses matching filter, most recent first.
func (r *ExpenseRepositoryMongo) List(ctx context.Context, filter bson.M) ([]domain.Expense, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []domain.Expense
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Update applies a sparse $set to one expense.
func (r *ExpenseRepositoryMongo) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (int64, int64, error) {
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return 0, 0, err
	}
	return res.MatchedCount, res.ModifiedCount, nil
}
