package repo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"server/internal/domain"
)

// ReferenceDataRepositoryMongo implements domain.ReferenceDataRepository, one
// collection per reference dimension.
type ReferenceDataRepositoryMongo struct {
	db *mongo.Database
}

// NewReferenceDataRepository creates a new reference-data repo.
func NewReferenceDataRepository(db *mongo.Database) *ReferenceDataRepositoryMongo {
	return &ReferenceDataRepositoryMongo{db: db}
}

// EnsureValue registers value under dim. The upsert keyed on the value itself
// makes first-use registration atomic: concurrent submissions of the same new
// value settle on a single document. Blank values are legitimate and stored
// verbatim.
func (r *ReferenceDataRepositoryMongo) EnsureValue(ctx context.Context, dim domain.RefDimension, value string) error {
	name, ok := refCollections[dim]
	if !ok {
		return fmt.Errorf("unknown reference dimension %q", dim)
	}
	_, err := r.db.Collection(name).UpdateOne(ctx,
		bson.M{"value": value},
		bson.M{"$setOnInsert": bson.M{"value": value}},
		options.Update().SetUpsert(true))
	return err
}

// Values returns every registered value for dim.
func (r *ReferenceDataRepositoryMongo) Values(ctx context.Context, dim domain.RefDimension) ([]string, error) {
	name, ok := refCollections[dim]
	if !ok {
		return nil, fmt.Errorf("unknown reference dimension %q", dim)
	}
	cur, err := r.db.Collection(name).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []domain.ReferenceValue
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	values := make([]string, 0, len(docs))
	for _, d := range docs {
		values = append(values, d.Value)
	}
	return values, nil
}
