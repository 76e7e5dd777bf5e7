package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"walkin/pkg/model"
)

func TestMemoryPartyRepository_FindOrCreate(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPartyRepository()

	first, err := repo.FindOrCreate(ctx, &model.Party{
		FirstName: "Maria",
		LastName:  "Santos",
		Email:     "maria@example.com",
		Phone:     "+639171234567",
	})
	if err != nil {
		t.Fatalf("FindOrCreate: %v", err)
	}
	if first.ID == "" || first.CreatedAt.IsZero() {
		t.Fatalf("created party missing identity: %+v", first)
	}

	second, err := repo.FindOrCreate(ctx, &model.Party{
		FirstName: "Mary",
		LastName:  "Cruz",
		Email:     "maria@example.com",
	})
	if err != nil {
		t.Fatalf("FindOrCreate (repeat): %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("repeat email created a new party: %s != %s", second.ID, first.ID)
	}
	if second.FirstName != "Maria" || second.LastName != "Santos" || second.Phone != "+639171234567" {
		t.Errorf("existing party was modified: %+v", second)
	}

	byEmail, err := repo.FindByEmail(ctx, "maria@example.com")
	if err != nil || byEmail.ID != first.ID {
		t.Errorf("FindByEmail = %+v, %v", byEmail, err)
	}
	byID, err := repo.FindByID(ctx, first.ID)
	if err != nil || byID.Email != "maria@example.com" {
		t.Errorf("FindByID = %+v, %v", byID, err)
	}
}

func TestMemoryPartyRepository_Lookups(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPartyRepository()

	tests := []struct {
		name    string
		lookup  func() error
		wantErr error
	}{
		{
			name: "unknown email",
			lookup: func() error {
				_, err := repo.FindByEmail(ctx, "nobody@example.com")
				return err
			},
			wantErr: ErrNotFound,
		},
		{
			name: "unknown id",
			lookup: func() error {
				_, err := repo.FindByID(ctx, "65f0c0ffee0000000000abcd")
				return err
			},
			wantErr: ErrNotFound,
		},
		{
			name: "malformed id",
			lookup: func() error {
				_, err := repo.FindByID(ctx, "abc")
				return err
			},
			wantErr: ErrInvalidID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.lookup(); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMemoryPartyRepository_ConcurrentFindOrCreate(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPartyRepository()

	const n = 10
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			party, err := repo.FindOrCreate(ctx, &model.Party{
				FirstName: "Jose",
				LastName:  "Rizal",
				Email:     "jose@example.com",
			})
			if err != nil {
				t.Errorf("FindOrCreate: %v", err)
				return
			}
			ids <- party.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]struct{})
	for id := range ids {
		seen[id] = struct{}{}
	}
	if len(seen) != 1 {
		t.Errorf("concurrent resolution produced %d parties, want 1", len(seen))
	}
}
