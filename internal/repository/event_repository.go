package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/vestbyenif/volunteer-api/internal/database"
	"github.com/vestbyenif/volunteer-api/internal/family"
	"github.com/vestbyenif/volunteer-api/internal/model"
)

// EventRepo reads and mutates the event metadata row of each family.
// Event and task rows share the events{N} table; the metadata row is the
// one carrying a friendly name and slug, and there is exactly one per
// provisioned family.
type EventRepo struct {
	db       *database.DB
	registry *FamilyRegistry
}

// NewEventRepo returns an EventRepo bound to the given database and
// registry.
func NewEventRepo(db *database.DB, registry *FamilyRegistry) *EventRepo {
	return &EventRepo{db: db, registry: registry}
}

const eventColumns = `id, friendly_name, slug, event_date, image_url,
	event_description, event_longdescription, address, is_hidden, sort_order`

func scanEvent(row *sql.Row, n int) (*model.Event, error) {
	var ev model.Event
	var name, slugCol, date, img, desc, long, addr text
	if err := row.Scan(&ev.ID, &name, &slugCol, &date, &img, &desc, &long, &addr,
		&ev.IsHidden, &ev.SortOrder); err != nil {
		return nil, err
	}
	ev.Family = n
	ev.FriendlyName = string(name)
	ev.Slug = string(slugCol)
	ev.EventDate = string(date)
	ev.ImageURL = string(img)
	ev.Description = string(desc)
	ev.LongDescription = string(long)
	ev.Address = string(addr)
	return &ev, nil
}

// GetByFamily returns family n's event metadata row, or ErrEventNotFound
// when the family has none (stray tables without a seed row).
func (r *EventRepo) GetByFamily(ctx context.Context, n int) (*model.Event, error) {
	q := fmt.Sprintf(`SELECT %s FROM %s WHERE friendly_name IS NOT NULL AND friendly_name <> ''`,
		eventColumns, family.ForSuffix(n).Events())
	ev, err := scanEvent(r.db.QueryRowContext(ctx, q), n)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	return ev, err
}

// List returns the event of every family, ordered by event date.
// Families whose events table holds no metadata row are skipped rather
// than reported, so a half-provisioned family never breaks the listing.
func (r *EventRepo) List(ctx context.Context) ([]model.Event, error) {
	suffixes, err := r.registry.ListFamilies(ctx)
	if err != nil {
		return nil, err
	}
	events := make([]model.Event, 0, len(suffixes))
	for _, n := range suffixes {
		ev, err := r.GetByFamily(ctx, n)
		if errors.Is(err, ErrEventNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		events = append(events, *ev)
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].EventDate < events[j].EventDate
	})
	return events, nil
}

// FindBySlug searches every family for the event with the given slug.
// Routing uses this for /events/:slug, where the family is unknown.
func (r *EventRepo) FindBySlug(ctx context.Context, s string) (*model.Event, error) {
	suffixes, err := r.registry.ListFamilies(ctx)
	if err != nil {
		return nil, err
	}
	for _, n := range suffixes {
		q := fmt.Sprintf(`SELECT %s FROM %s WHERE slug = ?`, eventColumns, family.ForSuffix(n).Events())
		ev, err := scanEvent(r.db.QueryRowContext(ctx, q, s), n)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return ev, nil
	}
	return nil, ErrEventNotFound
}

// FindByID searches every family for the event with the given id.  Admin
// edits address events by id and must locate the family first.
func (r *EventRepo) FindByID(ctx context.Context, id string) (*model.Event, error) {
	suffixes, err := r.registry.ListFamilies(ctx)
	if err != nil {
		return nil, err
	}
	for _, n := range suffixes {
		q := fmt.Sprintf(`SELECT %s FROM %s WHERE id = ? AND friendly_name IS NOT NULL AND friendly_name <> ''`,
			eventColumns, family.ForSuffix(n).Events())
		ev, err := scanEvent(r.db.QueryRowContext(ctx, q, id), n)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return ev, nil
	}
	return nil, ErrEventNotFound
}

// Update rewrites the descriptive fields of an event in place.  The slug
// is deliberately left untouched: published URLs keep working even after
// an event is renamed.
func (r *EventRepo) Update(ctx context.Context, ev *model.Event) error {
	q := fmt.Sprintf(`UPDATE %s SET friendly_name = ?, event_date = ?, image_url = ?,
		event_description = ?, event_longdescription = ?, address = ? WHERE id = ?`,
		family.ForSuffix(ev.Family).Events())
	res, err := r.db.ExecContext(ctx, q,
		ev.FriendlyName, ev.EventDate, ev.ImageURL, ev.Description, ev.LongDescription,
		ev.Address, ev.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrEventNotFound
	}
	return nil
}

// ToggleHidden flips the visibility flag of any row in family n's events
// table (event metadata or task) and returns the new value.  Toggling
// twice restores the original state.
func (r *EventRepo) ToggleHidden(ctx context.Context, n int, id string) (bool, error) {
	table := family.ForSuffix(n).Events()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var hidden bool
	err = tx.QueryRowContext(ctx, fmt.Sprintf(`SELECT is_hidden FROM %s WHERE id = ?`, table), id).Scan(&hidden)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrEventNotFound
	}
	if err != nil {
		return false, err
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`UPDATE %s SET is_hidden = ? WHERE id = ?`, table), !hidden, id); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	committed = true
	return !hidden, nil
}
