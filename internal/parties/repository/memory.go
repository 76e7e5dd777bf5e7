package repository

import (
	"context"
	"fmt"
	"sync"

	mongox "walkin/pkg/db/mongo"
	"walkin/pkg/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memoryPartyRepository struct {
	mu      sync.RWMutex
	byID    map[string]*model.Party
	byEmail map[string]string
}

func NewMemoryPartyRepository() PartyRepository {
	return &memoryPartyRepository{
		byID:    make(map[string]*model.Party),
		byEmail: make(map[string]string),
	}
}

func (r *memoryPartyRepository) FindByID(ctx context.Context, id string) (*model.Party, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidID, id)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	party, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *party
	return &c, nil
}

func (r *memoryPartyRepository) FindByEmail(ctx context.Context, email string) (*model.Party, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	c := *r.byID[id]
	return &c, nil
}

func (r *memoryPartyRepository) FindOrCreate(ctx context.Context, party *model.Party) (*model.Party, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.byEmail[party.Email]; ok {
		c := *r.byID[id]
		return &c, nil
	}

	stored := *party
	stored.ID = primitive.NewObjectID().Hex()
	stored.CreatedAt = mongox.Now()
	r.byID[stored.ID] = &stored
	r.byEmail[stored.Email] = stored.ID

	c := stored
	return &c, nil
}
