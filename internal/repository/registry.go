package repository

import (
	"context"
	"sort"

	"github.com/vestbyenif/volunteer-api/internal/database"
	"github.com/vestbyenif/volunteer-api/internal/family"
)

// FamilyRegistry discovers existing event families by scanning the data
// store's table catalog for names matching the events prefix.  It is the
// only component that looks at the catalog; everything else receives a
// suffix and trusts it.
type FamilyRegistry struct {
	db *database.DB
}

// NewFamilyRegistry returns a registry bound to the given database.
func NewFamilyRegistry(db *database.DB) *FamilyRegistry { return &FamilyRegistry{db: db} }

// ListFamilies returns the suffixes of all event families present in the
// store, ascending.  A legacy unsuffixed events table counts as family 1;
// if an explicit events1 exists as well the two collapse into one entry.
// An empty store yields an empty slice, not an error.
func (r *FamilyRegistry) ListFamilies(ctx context.Context) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, r.db.Dialect.ListTablesQuery())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seen := make(map[int]struct{})
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		if n, ok := family.ParseEventsTable(name); ok {
			seen[n] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	suffixes := make([]int, 0, len(seen))
	for n := range seen {
		suffixes = append(suffixes, n)
	}
	sort.Ints(suffixes)
	return suffixes, nil
}

// NextSuffix computes the suffix the provisioner should allocate: one
// past the highest existing suffix, or 1 for an empty store.  Gaps from
// deleted families are never reused, so a dropped family's suffix stays
// retired.
func (r *FamilyRegistry) NextSuffix(ctx context.Context) (int, error) {
	suffixes, err := r.ListFamilies(ctx)
	if err != nil {
		return 0, err
	}
	if len(suffixes) == 0 {
		return 1, nil
	}
	return suffixes[len(suffixes)-1] + 1, nil
}

// Exists reports whether family n is present in the catalog.
func (r *FamilyRegistry) Exists(ctx context.Context, n int) (bool, error) {
	suffixes, err := r.ListFamilies(ctx)
	if err != nil {
		return false, err
	}
	for _, s := range suffixes {
		if s == n {
			return true, nil
		}
	}
	return false, nil
}
