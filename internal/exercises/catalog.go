package exercises

import (
	"context"
	"sort"
	"strings"

	"github.com/3reps/liftlog/internal/telemetry/tracing"
)

type customRepo interface {
	GetCustom(ctx context.Context) Store
	GetDeleted(ctx context.Context) Store
	Merged(ctx context.Context, builtIn Store) Store
	SaveCustom(ctx context.Context, name, description, muscleGroup string) error
	DeleteCustom(ctx context.Context, name string) error
}

// Catalog is the read side of the exercise collection: the built-in
// table merged with the user's custom exercises, minus the tombstones.
type Catalog struct {
	builtIn Store
	repo    customRepo
}

func NewCatalog(builtIn Store, repo customRepo) *Catalog {
	return &Catalog{
		builtIn: builtIn,
		repo:    repo,
	}
}

// All returns every currently usable exercise, keyed by name.
// Tombstoned custom exercises are filtered out.
func (c *Catalog) All(ctx context.Context) Store {
	ctx, span := tracing.GlobalTracer.Start(ctx, "catalog.exercises.all")
	defer span.End()

	merged := c.repo.Merged(ctx, c.builtIn)
	visible := make(Store, len(merged))
	for name, def := range merged {
		if def.IsDeleted {
			continue
		}
		visible[name] = def
	}
	return visible
}

func (c *Catalog) Get(ctx context.Context, name string) (Definition, bool) {
	def, ok := c.All(ctx)[name]
	return def, ok
}

// Groups returns the visible exercise names per muscle group,
// each group sorted alphabetically.
func (c *Catalog) Groups(ctx context.Context) map[string][]string {
	ctx, span := tracing.GlobalTracer.Start(ctx, "catalog.exercises.groups")
	defer span.End()

	groups := make(map[string][]string)
	for name, def := range c.All(ctx) {
		groups[def.MuscleGroup] = append(groups[def.MuscleGroup], name)
	}
	for _, names := range groups {
		sort.Strings(names)
	}
	return groups
}

// Search returns the visible exercises whose name contains the query,
// case-insensitively. An empty query returns everything.
func (c *Catalog) Search(ctx context.Context, query string) Store {
	ctx, span := tracing.GlobalTracer.Start(ctx, "catalog.exercises.search")
	defer span.End()

	all := c.All(ctx)
	if query == "" {
		return all
	}

	query = strings.ToLower(query)
	found := make(Store)
	for name, def := range all {
		if strings.Contains(strings.ToLower(name), query) {
			found[name] = def
		}
	}
	return found
}
