package repository

import (
	"context"
	"errors"
	"fmt"

	"walkin/pkg/config"
	mongox "walkin/pkg/db/mongo"
	"walkin/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Parties"
)

// PartyRepository is the identity store the resolver wraps. Email is the
// natural key and is expected to be normalized by the caller.
type PartyRepository interface {
	FindByID(ctx context.Context, id string) (*model.Party, error)
	FindByEmail(ctx context.Context, email string) (*model.Party, error)
	// FindOrCreate returns the party stored under party.Email, inserting
	// party if there is none. An existing record is returned unchanged.
	FindOrCreate(ctx context.Context, party *model.Party) (*model.Party, error)
}

type mongoPartyRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoPartyRepository(cfg *config.Config) PartyRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoPartyRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoPartyRepository) FindByID(ctx context.Context, id string) (*model.Party, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidID, id)
	}

	ctx, cancel := mongox.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	return r.findOne(ctx, bson.M{"_id": objectID})
}

func (r *mongoPartyRepository) FindByEmail(ctx context.Context, email string) (*model.Party, error) {
	ctx, cancel := mongox.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoPartyRepository) findOne(ctx context.Context, filter bson.M) (*model.Party, error) {
	var party model.Party
	if err := r.collection.FindOne(ctx, filter).Decode(&party); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find party: %w", err)
	}
	return &party, nil
}

// FindOrCreate upserts with $setOnInsert so a repeat booking never rewrites
// the stored name or phone. Two first-time upserts for the same email can
// race; the loser hits the unique email index and reads the winner's record.
func (r *mongoPartyRepository) FindOrCreate(ctx context.Context, party *model.Party) (*model.Party, error) {
	ctx, cancel := mongox.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	insert := bson.M{
		"first_name": party.FirstName,
		"last_name":  party.LastName,
		"email":      party.Email,
		"created_at": mongox.Now(),
	}
	if party.Phone != "" {
		insert["phone"] = party.Phone
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored model.Party
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"email": party.Email}, bson.M{"$setOnInsert": insert}, opts).Decode(&stored)
	switch {
	case err == nil:
		return &stored, nil
	case mongo.IsDuplicateKeyError(err):
		return r.findOne(ctx, bson.M{"email": party.Email})
	default:
		return nil, fmt.Errorf("failed to upsert party: %w", err)
	}
}
