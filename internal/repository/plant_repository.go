package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"plantstore/internal/domain"
)

// PlantRepository is the persistent plant collection. Listings are
// sorted newest-first by creation date.
type PlantRepository interface {
	Create(ctx context.Context, plant *domain.Plant) (*domain.Plant, error)
	FindByID(ctx context.Context, id string) (*domain.Plant, error)
	Update(ctx context.Context, id string, upd domain.PlantUpdate) (*domain.Plant, error)
	DeleteByID(ctx context.Context, id string) (*domain.Plant, error)
	DeleteByName(ctx context.Context, name string) (*domain.Plant, error)
	ListAll(ctx context.Context) ([]domain.Plant, error)
}

type plantRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func NewPlantRepository(db *mongo.Database, log *zap.Logger) PlantRepository {
	return &plantRepository{
		coll: db.Collection("plants"),
		log:  log,
	}
}

func (r *plantRepository) Create(ctx context.Context, plant *domain.Plant) (*domain.Plant, error) {
	res, err := r.coll.InsertOne(ctx, plant)
	if err != nil {
		r.log.Error("Failed to insert plant", zap.String("name", plant.Name), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrStore, err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		plant.ID = oid
	}

	return plant, nil
}

func (r *plantRepository) FindByID(ctx context.Context, id string) (*domain.Plant, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	var plant domain.Plant
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&plant)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStore, err)
	}

	return &plant, nil
}

// Update applies only the fields present in upd and returns the
// post-update document. Constraints are re-validated before the write.
func (r *plantRepository) Update(ctx context.Context, id string, upd domain.PlantUpdate) (*domain.Plant, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	if err := upd.Validate(); err != nil {
		return nil, err
	}

	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Price != nil {
		set["price"] = *upd.Price
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.Rating != nil {
		set["rating"] = *upd.Rating
	}
	if upd.StockQuantity != nil {
		set["stockQuantity"] = *upd.StockQuantity
	}
	if upd.Popular != nil {
		set["popular"] = *upd.Popular
	}
	if upd.Care != nil {
		set["care"] = *upd.Care
	}
	if upd.Images != nil {
		set["images"] = upd.Images
	}

	// Mongo rejects an empty $set; an update carrying nothing is a read.
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var plant domain.Plant
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&plant)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to update plant", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrStore, err)
	}

	return &plant, nil
}

// DeleteByID removes a plant and returns the deleted document so the
// caller knows which images to clean up.
func (r *plantRepository) DeleteByID(ctx context.Context, id string) (*domain.Plant, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return r.deleteOne(ctx, bson.M{"_id": oid})
}

// DeleteByName is the fallback addressing mode for callers supplying
// something that is not a well-formed store id: it matches the
// human-assigned alternate id field or the exact name. With duplicate
// names the store's first match wins.
func (r *plantRepository) DeleteByName(ctx context.Context, name string) (*domain.Plant, error) {
	filter := bson.M{"$or": []bson.M{
		{"id": name},
		{"name": name},
	}}
	return r.deleteOne(ctx, filter)
}

func (r *plantRepository) deleteOne(ctx context.Context, filter bson.M) (*domain.Plant, error) {
	var plant domain.Plant
	err := r.coll.FindOneAndDelete(ctx, filter).Decode(&plant)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to delete plant", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrStore, err)
	}

	return &plant, nil
}

func (r *plantRepository) ListAll(ctx context.Context) ([]domain.Plant, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStore, err)
	}
	defer cursor.Close(ctx)

	plants := []domain.Plant{}
	if err := cursor.All(ctx, &plants); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStore, err)
	}

	return plants, nil
}
