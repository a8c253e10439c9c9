package database

import (
	"context"
	"sort"
	"sync/atomic"

	memdb "github.com/hashicorp/go-memdb"

	"github.com/HttpRafa/Bibliothek/internal/models"
)

var schema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		"projects": {
			Name: "projects",
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.UintFieldIndex{Field: "ID"},
				},
				"name": {
					Name:    "name",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "Name"},
				},
			},
		},
		"groups": {
			Name: "groups",
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.UintFieldIndex{Field: "ID"},
				},
				"project": {
					Name:    "project",
					Indexer: &memdb.UintFieldIndex{Field: "ProjectID"},
				},
				"project_name": {
					Name:   "project_name",
					Unique: true,
					Indexer: &memdb.CompoundIndex{
						Indexes: []memdb.Indexer{
							&memdb.UintFieldIndex{Field: "ProjectID"},
							&memdb.StringFieldIndex{Field: "Name"},
						},
					},
				},
			},
		},
		"versions": {
			Name: "versions",
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.UintFieldIndex{Field: "ID"},
				},
				"project": {
					Name:    "project",
					Indexer: &memdb.UintFieldIndex{Field: "ProjectID"},
				},
				"project_name": {
					Name:   "project_name",
					Unique: true,
					Indexer: &memdb.CompoundIndex{
						Indexes: []memdb.Indexer{
							&memdb.UintFieldIndex{Field: "ProjectID"},
							&memdb.StringFieldIndex{Field: "Name"},
						},
					},
				},
			},
		},
		"builds": {
			Name: "builds",
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.UintFieldIndex{Field: "ID"},
				},
				"project_version": {
					Name: "project_version",
					Indexer: &memdb.CompoundIndex{
						Indexes: []memdb.Indexer{
							&memdb.UintFieldIndex{Field: "ProjectID"},
							&memdb.UintFieldIndex{Field: "VersionID"},
						},
					},
				},
			},
		},
	},
}

// MemoryStore keeps the whole hierarchy in a go-memdb instance. It is
// the fixture store for tests and the backing store in local dev mode;
// it implements the same contract as the postgres store.
type MemoryStore struct {
	db     *memdb.MemDB
	nextID uint64
}

// NewMemoryStore returns an empty ready-to-use MemoryStore.
func NewMemoryStore() (*MemoryStore, error) {
	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, err
	}
	return &MemoryStore{db: db}, nil
}

func (m *MemoryStore) Projects(ctx context.Context) ([]models.Project, error) {
	txn := m.db.Txn(false)
	it, err := txn.Get("projects", "id")
	if err != nil {
		return nil, err
	}
	var projects []models.Project
	for raw := it.Next(); raw != nil; raw = it.Next() {
		projects = append(projects, *raw.(*models.Project))
	}
	return projects, nil
}

func (m *MemoryStore) ProjectByName(ctx context.Context, name string) (*models.Project, error) {
	txn := m.db.Txn(false)
	raw, err := txn.First("projects", "name", name)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, ErrNotFound
	}
	project := *raw.(*models.Project)
	return &project, nil
}

func (m *MemoryStore) GroupsByProject(ctx context.Context, projectID uint) ([]models.Group, error) {
	txn := m.db.Txn(false)
	it, err := txn.Get("groups", "project", projectID)
	if err != nil {
		return nil, err
	}
	var groups []models.Group
	for raw := it.Next(); raw != nil; raw = it.Next() {
		groups = append(groups, *raw.(*models.Group))
	}
	return groups, nil
}

func (m *MemoryStore) GroupByProjectAndName(ctx context.Context, projectID uint, name string) (*models.Group, error) {
	txn := m.db.Txn(false)
	raw, err := txn.First("groups", "project_name", projectID, name)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, ErrNotFound
	}
	group := *raw.(*models.Group)
	return &group, nil
}

func (m *MemoryStore) VersionsByProject(ctx context.Context, projectID uint) ([]models.Version, error) {
	txn := m.db.Txn(false)
	it, err := txn.Get("versions", "project", projectID)
	if err != nil {
		return nil, err
	}
	var versions []models.Version
	for raw := it.Next(); raw != nil; raw = it.Next() {
		versions = append(versions, *raw.(*models.Version))
	}
	return versions, nil
}

func (m *MemoryStore) VersionsByProjectAndGroup(ctx context.Context, projectID, groupID uint) ([]models.Version, error) {
	txn := m.db.Txn(false)
	it, err := txn.Get("versions", "project", projectID)
	if err != nil {
		return nil, err
	}
	var versions []models.Version
	for raw := it.Next(); raw != nil; raw = it.Next() {
		version := raw.(*models.Version)
		if version.GroupID != nil && *version.GroupID == groupID {
			versions = append(versions, *version)
		}
	}
	return versions, nil
}

func (m *MemoryStore) VersionByProjectAndName(ctx context.Context, projectID uint, name string) (*models.Version, error) {
	txn := m.db.Txn(false)
	raw, err := txn.First("versions", "project_name", projectID, name)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, ErrNotFound
	}
	version := *raw.(*models.Version)
	return &version, nil
}

func (m *MemoryStore) BuildsByProjectAndVersion(ctx context.Context, projectID, versionID uint) ([]models.Build, error) {
	txn := m.db.Txn(false)
	it, err := txn.Get("builds", "project_version", projectID, versionID)
	if err != nil {
		return nil, err
	}
	var builds []models.Build
	for raw := it.Next(); raw != nil; raw = it.Next() {
		builds = append(builds, *raw.(*models.Build))
	}
	sort.Slice(builds, func(i, j int) bool { return builds[i].Number < builds[j].Number })
	return builds, nil
}

func (m *MemoryStore) BuildByProjectAndVersionAndNumber(ctx context.Context, projectID, versionID uint, number int) (*models.Build, error) {
	txn := m.db.Txn(false)
	it, err := txn.Get("builds", "project_version", projectID, versionID)
	if err != nil {
		return nil, err
	}
	for raw := it.Next(); raw != nil; raw = it.Next() {
		build := raw.(*models.Build)
		if build.Number == number {
			copied := *build
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) CreateProject(ctx context.Context, project *models.Project) error {
	project.ID = m.allocID()
	return m.insert("projects", project)
}

func (m *MemoryStore) CreateGroup(ctx context.Context, group *models.Group) error {
	group.ID = m.allocID()
	return m.insert("groups", group)
}

func (m *MemoryStore) CreateVersion(ctx context.Context, version *models.Version) error {
	version.ID = m.allocID()
	return m.insert("versions", version)
}

func (m *MemoryStore) CreateBuild(ctx context.Context, build *models.Build) error {
	build.ID = m.allocID()
	return m.insert("builds", build)
}

func (m *MemoryStore) insert(table string, obj any) error {
	txn := m.db.Txn(true)
	defer txn.Abort()
	if err := txn.Insert(table, obj); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

func (m *MemoryStore) allocID() uint {
	return uint(atomic.AddUint64(&m.nextID, 1))
}
