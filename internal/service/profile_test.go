package service

import (
	"context"
	"errors"
	"testing"

	"SkiBuddy/internal/model"
	pkgerrors "SkiBuddy/pkg/errors"
)

type memProfileCache struct {
	entries map[string]*model.Profile
	getErr  error
	sets    int
}

func (m *memProfileCache) Get(_ context.Context, id string) (*model.Profile, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	p, ok := m.entries[id]
	return p, ok, nil
}

func (m *memProfileCache) Set(_ context.Context, id string, p *model.Profile) error {
	m.entries[id] = p
	m.sets++
	return nil
}

func TestGetMineFillsCache(t *testing.T) {
	repo := &fakeProfiles{existing: map[string]*model.Profile{"42": {ID: "42", Name: "Alex"}}}
	c := &memProfileCache{entries: map[string]*model.Profile{}}
	svc := NewProfileService(repo, c)
	ctx := context.Background()

	p, err := svc.GetMine(ctx, "42")
	if err != nil || p.Name != "Alex" {
		t.Fatalf("first read %+v %v", p, err)
	}
	if c.entries["42"] == nil {
		t.Fatal("cache not filled")
	}

	delete(repo.existing, "42")
	p, err = svc.GetMine(ctx, "42")
	if err != nil || p.Name != "Alex" {
		t.Fatalf("cached read %+v %v", p, err)
	}
}

func TestGetMineNotFoundCachesEmpty(t *testing.T) {
	c := &memProfileCache{entries: map[string]*model.Profile{}}
	svc := NewProfileService(&fakeProfiles{}, c)

	if _, err := svc.GetMine(context.Background(), "1"); !errors.Is(err, pkgerrors.ProfileNotFound) {
		t.Fatalf("got %v", err)
	}
	if p, ok := c.entries["1"]; !ok || p != nil {
		t.Fatal("empty value should be cached")
	}
	if _, err := svc.GetMine(context.Background(), "1"); !errors.Is(err, pkgerrors.ProfileNotFound) {
		t.Fatalf("empty hit: %v", err)
	}
}

func TestGetMineCacheErrorFallsBack(t *testing.T) {
	repo := &fakeProfiles{existing: map[string]*model.Profile{"42": {ID: "42"}}}
	c := &memProfileCache{entries: map[string]*model.Profile{}, getErr: errors.New("breaker open")}
	svc := NewProfileService(repo, c)

	if _, err := svc.GetMine(context.Background(), "42"); err != nil {
		t.Fatalf("should fall back to database: %v", err)
	}
}
