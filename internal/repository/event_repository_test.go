package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/vestbyenif/volunteer-api/internal/model"
)

func createEvent(t *testing.T, repo *FamilyRepo, name, date string) *model.Event {
	t.Helper()
	ev := validEvent(name)
	ev.EventDate = date
	if _, err := repo.Create(context.Background(), ev); err != nil {
		t.Fatalf("create event %q: %v", name, err)
	}
	return ev
}

func TestListOrdersByDate(t *testing.T) {
	db := newTestDB(t)
	reg := NewFamilyRegistry(db)
	families := NewFamilyRepo(db, reg)
	events := NewEventRepo(db, reg)

	createEvent(t, families, "Autumn Cup", "2025-10-04")
	createEvent(t, families, "Spring Show", "2025-05-17")
	createEvent(t, families, "Summer Games", "2025-07-01")

	got, err := events.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("List returned %d events, want 3", len(got))
	}
	want := []string{"Spring Show", "Summer Games", "Autumn Cup"}
	for i, name := range want {
		if got[i].FriendlyName != name {
			t.Fatalf("List order = [%s %s %s], want %v",
				got[0].FriendlyName, got[1].FriendlyName, got[2].FriendlyName, want)
		}
	}
}

// A provisioned trio without a metadata row (interrupted provisioning)
// must not break the listing.
func TestListSkipsSeedlessFamily(t *testing.T) {
	db := newTestDB(t)
	reg := NewFamilyRegistry(db)
	families := NewFamilyRepo(db, reg)
	provisionFamily(t, db, 1) // tables only, no seed row

	createEvent(t, families, "Spring Show", "2025-05-17")

	got, err := NewEventRepo(db, reg).List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].FriendlyName != "Spring Show" {
		t.Fatalf("List = %+v, want only Spring Show", got)
	}
}

func TestFindBySlugAcrossFamilies(t *testing.T) {
	db := newTestDB(t)
	reg := NewFamilyRegistry(db)
	families := NewFamilyRepo(db, reg)
	events := NewEventRepo(db, reg)
	ctx := context.Background()

	createEvent(t, families, "Spring Show", "2025-05-17")
	want := createEvent(t, families, "Summer Games", "2025-07-01")

	got, err := events.FindBySlug(ctx, "summer-games")
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if got.ID != want.ID || got.Family != 2 {
		t.Fatalf("FindBySlug = %+v, want id %s in family 2", got, want.ID)
	}

	if _, err := events.FindBySlug(ctx, "no-such-event"); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("missing slug: got %v, want ErrEventNotFound", err)
	}
}

func TestUpdateKeepsSlug(t *testing.T) {
	db := newTestDB(t)
	reg := NewFamilyRegistry(db)
	families := NewFamilyRepo(db, reg)
	events := NewEventRepo(db, reg)
	ctx := context.Background()

	ev := createEvent(t, families, "Spring Show", "2025-05-17")
	ev.FriendlyName = "Spring Show (New Venue)"
	ev.Address = "New Hall 2"
	if err := events.Update(ctx, ev); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := events.FindBySlug(ctx, "spring-show")
	if err != nil {
		t.Fatalf("original slug stopped resolving: %v", err)
	}
	if got.FriendlyName != "Spring Show (New Venue)" || got.Address != "New Hall 2" {
		t.Fatalf("update not applied: %+v", got)
	}
}

func TestToggleHidden(t *testing.T) {
	db := newTestDB(t)
	reg := NewFamilyRegistry(db)
	families := NewFamilyRepo(db, reg)
	events := NewEventRepo(db, reg)
	ctx := context.Background()

	ev := createEvent(t, families, "Spring Show", "2025-05-17")

	hidden, err := events.ToggleHidden(ctx, ev.Family, ev.ID)
	if err != nil {
		t.Fatalf("ToggleHidden: %v", err)
	}
	if !hidden {
		t.Fatal("first toggle should hide the event")
	}
	hidden, err = events.ToggleHidden(ctx, ev.Family, ev.ID)
	if err != nil {
		t.Fatalf("second ToggleHidden: %v", err)
	}
	if hidden {
		t.Fatal("second toggle should restore visibility")
	}

	if _, err := events.ToggleHidden(ctx, ev.Family, "missing-id"); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("toggle on missing row = %v, want ErrEventNotFound", err)
	}
}
