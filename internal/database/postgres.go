package database

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/HttpRafa/Bibliothek/internal/models"
)

// PostgresStore backs the hierarchy with a postgres database.
type PostgresStore struct {
	db *gorm.DB
}

// Connect opens a postgres-backed store from a DSN.
func Connect(dsn string) (*PostgresStore, error) {
	if dsn == "" {
		return nil, errors.New("empty DSN")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(60 * time.Minute)

	return &PostgresStore{db: db}, nil
}

// AutoMigrate creates or updates the hierarchy tables.
func (s *PostgresStore) AutoMigrate() error {
	return s.db.AutoMigrate(
		&models.Project{},
		&models.Group{},
		&models.Version{},
		&models.Build{},
	)
}

func (s *PostgresStore) Projects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := s.db.WithContext(ctx).Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *PostgresStore) ProjectByName(ctx context.Context, name string) (*models.Project, error) {
	var project models.Project
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&project).Error
	if err != nil {
		return nil, translate(err)
	}
	return &project, nil
}

func (s *PostgresStore) GroupsByProject(ctx context.Context, projectID uint) ([]models.Group, error) {
	var groups []models.Group
	if err := s.db.WithContext(ctx).Where("project_id = ?", projectID).Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func (s *PostgresStore) GroupByProjectAndName(ctx context.Context, projectID uint, name string) (*models.Group, error) {
	var group models.Group
	err := s.db.WithContext(ctx).Where("project_id = ? AND name = ?", projectID, name).First(&group).Error
	if err != nil {
		return nil, translate(err)
	}
	return &group, nil
}

func (s *PostgresStore) VersionsByProject(ctx context.Context, projectID uint) ([]models.Version, error) {
	var versions []models.Version
	if err := s.db.WithContext(ctx).Where("project_id = ?", projectID).Find(&versions).Error; err != nil {
		return nil, err
	}
	return versions, nil
}

func (s *PostgresStore) VersionsByProjectAndGroup(ctx context.Context, projectID, groupID uint) ([]models.Version, error) {
	var versions []models.Version
	if err := s.db.WithContext(ctx).Where("project_id = ? AND group_id = ?", projectID, groupID).Find(&versions).Error; err != nil {
		return nil, err
	}
	return versions, nil
}

func (s *PostgresStore) VersionByProjectAndName(ctx context.Context, projectID uint, name string) (*models.Version, error) {
	var version models.Version
	err := s.db.WithContext(ctx).Where("project_id = ? AND name = ?", projectID, name).First(&version).Error
	if err != nil {
		return nil, translate(err)
	}
	return &version, nil
}

func (s *PostgresStore) BuildsByProjectAndVersion(ctx context.Context, projectID, versionID uint) ([]models.Build, error) {
	var builds []models.Build
	err := s.db.WithContext(ctx).
		Where("project_id = ? AND version_id = ?", projectID, versionID).
		Order("number asc").
		Find(&builds).Error
	if err != nil {
		return nil, err
	}
	return builds, nil
}

func (s *PostgresStore) BuildByProjectAndVersionAndNumber(ctx context.Context, projectID, versionID uint, number int) (*models.Build, error) {
	var build models.Build
	err := s.db.WithContext(ctx).
		Where("project_id = ? AND version_id = ? AND number = ?", projectID, versionID, number).
		First(&build).Error
	if err != nil {
		return nil, translate(err)
	}
	return &build, nil
}

func (s *PostgresStore) CreateProject(ctx context.Context, project *models.Project) error {
	return s.db.WithContext(ctx).Create(project).Error
}

func (s *PostgresStore) CreateGroup(ctx context.Context, group *models.Group) error {
	return s.db.WithContext(ctx).Create(group).Error
}

func (s *PostgresStore) CreateVersion(ctx context.Context, version *models.Version) error {
	return s.db.WithContext(ctx).Create(version).Error
}

func (s *PostgresStore) CreateBuild(ctx context.Context, build *models.Build) error {
	return s.db.WithContext(ctx).Create(build).Error
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
