// Package database defines the narrow lookup contract the service
// reads the hierarchy through, plus its two implementations: a
// postgres store for production and an in-memory store for tests and
// local development.
package database

import (
	"context"

	"github.com/pkg/errors"

	"github.com/HttpRafa/Bibliothek/internal/models"
)

// ErrNotFound is the store-level miss. The resolver translates it into
// the per-entity error kinds; nothing else should leak it to clients.
var ErrNotFound = errors.New("record not found")

// Store is the read contract over the Project -> Version -> Build
// hierarchy. Every lookup below the root is scoped by the parent's
// internal id, never by a name chain, so equal names under different
// parents can never cross-match. Builds are always returned in
// ascending number order.
type Store interface {
	Projects(ctx context.Context) ([]models.Project, error)
	ProjectByName(ctx context.Context, name string) (*models.Project, error)

	GroupsByProject(ctx context.Context, projectID uint) ([]models.Group, error)
	GroupByProjectAndName(ctx context.Context, projectID uint, name string) (*models.Group, error)

	VersionsByProject(ctx context.Context, projectID uint) ([]models.Version, error)
	VersionsByProjectAndGroup(ctx context.Context, projectID, groupID uint) ([]models.Version, error)
	VersionByProjectAndName(ctx context.Context, projectID uint, name string) (*models.Version, error)

	BuildsByProjectAndVersion(ctx context.Context, projectID, versionID uint) ([]models.Build, error)
	BuildByProjectAndVersionAndNumber(ctx context.Context, projectID, versionID uint, number int) (*models.Build, error)
}

// WriteStore is the ingestion-side extension used only by the
// insertbuild tool. The serving path depends on Store alone and stays
// read-only.
type WriteStore interface {
	Store

	CreateProject(ctx context.Context, project *models.Project) error
	CreateGroup(ctx context.Context, group *models.Group) error
	CreateVersion(ctx context.Context, version *models.Version) error
	CreateBuild(ctx context.Context, build *models.Build) error
}
