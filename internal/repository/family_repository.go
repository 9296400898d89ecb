package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vestbyenif/volunteer-api/internal/database"
	"github.com/vestbyenif/volunteer-api/internal/family"
	"github.com/vestbyenif/volunteer-api/internal/model"
	"github.com/vestbyenif/volunteer-api/internal/slug"
)

// FamilyRepo provisions and drops event families.  Provisioning issues
// three CREATE TABLE statements through the dialect; DDL is not
// transactional on any supported backend, so a mid-sequence failure
// leaves the earlier tables in place and the returned ProvisionError
// names the statement that failed.
type FamilyRepo struct {
	db       *database.DB
	registry *FamilyRegistry
}

// NewFamilyRepo returns a FamilyRepo bound to the given database and
// registry.
func NewFamilyRepo(db *database.DB, registry *FamilyRegistry) *FamilyRepo {
	return &FamilyRepo{db: db, registry: registry}
}

// Create provisions a new event family and seeds its event metadata row.
// All descriptive fields of ev must be non-empty and ImageURL must
// already point at an uploaded image; violations return a
// ValidationError before anything is written.  On success the event's
// ID, Slug and Family fields are populated and the new suffix returned.
//
// A slug collision with an existing event returns ErrSlugTaken before
// any table is created.
func (r *FamilyRepo) Create(ctx context.Context, ev *model.Event) (int, error) {
	for _, f := range []struct{ name, value string }{
		{"friendly_name", ev.FriendlyName},
		{"event_date", ev.EventDate},
		{"event_description", ev.Description},
		{"event_longdescription", ev.LongDescription},
		{"address", ev.Address},
		{"image_url", ev.ImageURL},
	} {
		if strings.TrimSpace(f.value) == "" {
			return 0, &ValidationError{Field: f.name}
		}
	}

	// Slugs are unique across families, but each table only constrains
	// its own rows, so the cross-family check has to happen up front
	// before any table is created.
	ev.Slug = slug.Make(ev.FriendlyName)
	taken, err := r.slugExists(ctx, ev.Slug)
	if err != nil {
		return 0, err
	}
	if taken {
		return 0, ErrSlugTaken
	}

	n, err := r.registry.NextSuffix(ctx)
	if err != nil {
		return 0, fmt.Errorf("compute next family suffix: %w", err)
	}
	ts := family.ForSuffix(n)

	tables := []string{ts.Events(), ts.TimeSlots(), ts.Signups()}
	for i, stmt := range r.db.Dialect.CreateFamilyStatements(ts) {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return 0, &ProvisionError{Table: tables[i], Err: err}
		}
	}

	ev.ID = uuid.NewString()
	ev.Family = n
	const q = `INSERT INTO %s (id, friendly_name, slug, event_date, image_url,
		event_description, event_longdescription, address, is_hidden, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0)`
	_, err = r.db.ExecContext(ctx, fmt.Sprintf(q, ts.Events()),
		ev.ID, ev.FriendlyName, ev.Slug, ev.EventDate, ev.ImageURL,
		ev.Description, ev.LongDescription, ev.Address, false)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return 0, ErrSlugTaken
		}
		return 0, &ProvisionError{Table: ts.Events(), Err: err}
	}
	return n, nil
}

// slugExists scans every provisioned family for the given slug.
func (r *FamilyRepo) slugExists(ctx context.Context, s string) (bool, error) {
	suffixes, err := r.registry.ListFamilies(ctx)
	if err != nil {
		return false, err
	}
	for _, n := range suffixes {
		var id string
		q := fmt.Sprintf(`SELECT id FROM %s WHERE slug = ?`, family.ForSuffix(n).Events())
		err := r.db.QueryRowContext(ctx, q, s).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// Drop removes a family's three tables: signups first, then time slots,
// then events, children before parent.  The cascade constraints would
// tolerate other orders, but dropping referencing tables first never
// depends on them.  Irreversible; callers are expected to have obtained
// explicit confirmation.
func (r *FamilyRepo) Drop(ctx context.Context, n int) error {
	ok, err := r.registry.Exists(ctx, n)
	if err != nil {
		return err
	}
	if !ok {
		return ErrFamilyNotFound
	}
	ts := family.ForSuffix(n)
	for _, table := range []string{ts.Signups(), ts.TimeSlots(), ts.Events()} {
		if _, err := r.db.ExecContext(ctx, database.DropTableSQL(table)); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}
