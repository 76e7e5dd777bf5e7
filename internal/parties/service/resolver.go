package service

import (
	"context"
	"fmt"

	"walkin/internal/parties/repository"
	"walkin/pkg/config"
	"walkin/pkg/model"
	"walkin/pkg/sanitizer"

	lru "github.com/hashicorp/golang-lru/v2"
)

// PartyResolver maps a booking's contact details to a stable party.
type PartyResolver interface {
	// Resolve returns the party registered under info.Email, creating it
	// from info when absent. Existing parties are never updated.
	Resolve(ctx context.Context, info *model.UserInfo) (*model.Party, error)
	GetByID(ctx context.Context, id string) (*model.Party, error)
}

type partyResolver struct {
	repo  repository.PartyRepository
	cfg   *config.Config
	cache *lru.Cache[string, *model.Party]
}

// NewPartyResolver caches resolved parties by normalized email. A
// non-positive cfg.PartyCacheSize disables the cache.
func NewPartyResolver(repo repository.PartyRepository, cfg *config.Config) (PartyResolver, error) {
	r := &partyResolver{repo: repo, cfg: cfg}

	if cfg.PartyCacheSize > 0 {
		cache, err := lru.New[string, *model.Party](cfg.PartyCacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create party cache: %w", err)
		}
		r.cache = cache
	}
	return r, nil
}

func (r *partyResolver) Resolve(ctx context.Context, info *model.UserInfo) (*model.Party, error) {
	candidate := r.sanitize(info)

	if party, ok := r.cached(candidate.Email); ok {
		r.cfg.Log.Debug("Party resolved from cache",
			"party_id", party.ID,
		)
		return party, nil
	}

	party, err := r.repo.FindOrCreate(ctx, candidate)
	if err != nil {
		r.cfg.Log.Error("Failed to resolve party",
			"error", err,
		)
		return nil, fmt.Errorf("failed to resolve party: %w", err)
	}

	if r.cache != nil {
		r.cache.Add(party.Email, party)
	}
	stored := *party
	return &stored, nil
}

func (r *partyResolver) GetByID(ctx context.Context, id string) (*model.Party, error) {
	return r.repo.FindByID(ctx, id)
}

func (r *partyResolver) cached(email string) (*model.Party, bool) {
	if r.cache == nil {
		return nil, false
	}
	party, ok := r.cache.Get(email)
	if !ok {
		return nil, false
	}
	c := *party
	return &c, true
}

func (r *partyResolver) sanitize(info *model.UserInfo) *model.Party {
	return &model.Party{
		FirstName: sanitizer.NormalizeName(info.FirstName),
		LastName:  sanitizer.NormalizeName(info.LastName),
		Email:     sanitizer.NormalizeEmail(info.Email),
		Phone:     sanitizer.NormalizePhone(info.Phone, r.cfg.DefaultPhoneRegion),
	}
}
