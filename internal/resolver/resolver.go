// Package resolver turns paths of human-readable names into verified
// chains of entities, one parent-scoped store lookup per step.
package resolver

import (
	"context"

	"github.com/pkg/errors"

	"github.com/HttpRafa/Bibliothek/internal/database"
	"github.com/HttpRafa/Bibliothek/internal/models"
	"github.com/HttpRafa/Bibliothek/internal/validation"
)

// Resolver chains grammar validation with store lookups. Every lookup
// below the root is keyed by the already-resolved parent's internal
// id, so a name can never match under the wrong parent. Failure at any
// step short-circuits with the typed error for that step; callers
// never see partial state. The resolver re-validates names itself, it
// does not trust the routing layer.
type Resolver struct {
	store database.Store
}

// New returns a Resolver reading from store.
func New(store database.Store) *Resolver {
	return &Resolver{store: store}
}

// Project resolves a project by name.
func (r *Resolver) Project(ctx context.Context, name string) (*models.Project, error) {
	if !validation.ProjectName(name) {
		return nil, ErrProjectNotFound
	}
	project, err := r.store.ProjectByName(ctx, name)
	if err != nil {
		return nil, notFound(err, ErrProjectNotFound)
	}
	return project, nil
}

// Version resolves a version by name under an already-resolved project.
func (r *Resolver) Version(ctx context.Context, project *models.Project, name string) (*models.Version, error) {
	if !validation.VersionName(name) {
		return nil, ErrVersionNotFound
	}
	version, err := r.store.VersionByProjectAndName(ctx, project.ID, name)
	if err != nil {
		return nil, notFound(err, ErrVersionNotFound)
	}
	return version, nil
}

// Build resolves a build by number under an already-resolved version.
func (r *Resolver) Build(ctx context.Context, project *models.Project, version *models.Version, number int) (*models.Build, error) {
	if number < 0 {
		return nil, ErrBuildNotFound
	}
	build, err := r.store.BuildByProjectAndVersionAndNumber(ctx, project.ID, version.ID, number)
	if err != nil {
		return nil, notFound(err, ErrBuildNotFound)
	}
	return build, nil
}

// Group resolves a group by name under an already-resolved project.
// Group names are free-form stored names compared exactly, so no
// grammar check applies.
func (r *Resolver) Group(ctx context.Context, project *models.Project, name string) (*models.Group, error) {
	group, err := r.store.GroupByProjectAndName(ctx, project.ID, name)
	if err != nil {
		return nil, notFound(err, ErrGroupNotFound)
	}
	return group, nil
}

// Projects lists all projects in store order.
func (r *Resolver) Projects(ctx context.Context) ([]models.Project, error) {
	return r.store.Projects(ctx)
}

// Groups lists a project's groups, oldest first.
func (r *Resolver) Groups(ctx context.Context, project *models.Project) ([]models.Group, error) {
	groups, err := r.store.GroupsByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	models.SortGroups(groups)
	return groups, nil
}

// Versions lists a project's versions, oldest first.
func (r *Resolver) Versions(ctx context.Context, project *models.Project) ([]models.Version, error) {
	versions, err := r.store.VersionsByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	models.SortVersions(versions)
	return versions, nil
}

// VersionsInGroup lists the versions tagged to a group, oldest first.
func (r *Resolver) VersionsInGroup(ctx context.Context, project *models.Project, group *models.Group) ([]models.Version, error) {
	versions, err := r.store.VersionsByProjectAndGroup(ctx, project.ID, group.ID)
	if err != nil {
		return nil, err
	}
	models.SortVersions(versions)
	return versions, nil
}

// Builds lists a version's builds in natural number order, as the
// store returns them.
func (r *Resolver) Builds(ctx context.Context, project *models.Project, version *models.Version) ([]models.Build, error) {
	return r.store.BuildsByProjectAndVersion(ctx, project.ID, version.ID)
}

func notFound(err error, kind *Error) error {
	if errors.Is(err, database.ErrNotFound) {
		return kind
	}
	return err
}
