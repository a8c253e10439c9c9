package resolver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HttpRafa/Bibliothek/internal/database"
	"github.com/HttpRafa/Bibliothek/internal/models"
)

type fixture struct {
	resolver *Resolver
	store    *database.MemoryStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := database.NewMemoryStore()
	require.NoError(t, err)
	ctx := context.Background()
	base := time.Date(2023, 6, 12, 19, 0, 0, 0, time.UTC)

	paper := &models.Project{Name: "paper", FriendlyName: "Paper"}
	require.NoError(t, store.CreateProject(ctx, paper))
	velocity := &models.Project{Name: "velocity", FriendlyName: "Velocity"}
	require.NoError(t, store.CreateProject(ctx, velocity))

	group := &models.Group{ProjectID: paper.ID, Name: "1.20", Timestamp: base}
	require.NoError(t, store.CreateGroup(ctx, group))

	// inserted newest first to prove listing reorders by timestamp
	newer := &models.Version{ProjectID: paper.ID, GroupID: &group.ID, Name: "1.20.1", Timestamp: base.Add(2 * time.Hour)}
	require.NoError(t, store.CreateVersion(ctx, newer))
	older := &models.Version{ProjectID: paper.ID, Name: "1.0", Timestamp: base}
	require.NoError(t, store.CreateVersion(ctx, older))
	other := &models.Version{ProjectID: velocity.ID, Name: "1.0", Timestamp: base.Add(time.Hour)}
	require.NoError(t, store.CreateVersion(ctx, other))

	require.NoError(t, store.CreateBuild(ctx, &models.Build{
		ProjectID:   paper.ID,
		VersionID:   older.ID,
		Number:      5,
		Timestamp:   base,
		Channel:     models.ChannelDefault,
		DisplayMode: models.DisplayPromote,
		Downloads: models.DownloadMap{
			"application": {Name: "paper-1.0.jar", SHA256: "aa"},
		},
	}))

	return &fixture{resolver: New(store), store: store}
}

func TestResolveProject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	project, err := f.resolver.Project(ctx, "paper")
	require.NoError(t, err)
	assert.Equal(t, "Paper", project.FriendlyName)

	_, err = f.resolver.Project(ctx, "unknown")
	assert.ErrorIs(t, err, ErrProjectNotFound)

	// grammar rejection happens before any lookup
	_, err = f.resolver.Project(ctx, "Paper!")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestResolveVersionScopedToProject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	paper, err := f.resolver.Project(ctx, "paper")
	require.NoError(t, err)
	velocity, err := f.resolver.Project(ctx, "velocity")
	require.NoError(t, err)

	fromPaper, err := f.resolver.Version(ctx, paper, "1.0")
	require.NoError(t, err)
	fromVelocity, err := f.resolver.Version(ctx, velocity, "1.0")
	require.NoError(t, err)
	assert.NotEqual(t, fromPaper.ID, fromVelocity.ID)

	_, err = f.resolver.Version(ctx, velocity, "1.20.1")
	assert.ErrorIs(t, err, ErrVersionNotFound)
}

func TestResolveBuild(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	paper, err := f.resolver.Project(ctx, "paper")
	require.NoError(t, err)
	version, err := f.resolver.Version(ctx, paper, "1.0")
	require.NoError(t, err)

	build, err := f.resolver.Build(ctx, paper, version, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, build.Number)
	assert.Equal(t, models.ChannelDefault, build.Channel)

	_, err = f.resolver.Build(ctx, paper, version, 6)
	assert.ErrorIs(t, err, ErrBuildNotFound)
	_, err = f.resolver.Build(ctx, paper, version, -1)
	assert.ErrorIs(t, err, ErrBuildNotFound)
}

func TestResolveGroup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	paper, err := f.resolver.Project(ctx, "paper")
	require.NoError(t, err)

	group, err := f.resolver.Group(ctx, paper, "1.20")
	require.NoError(t, err)
	assert.Equal(t, "1.20", group.Name)

	_, err = f.resolver.Group(ctx, paper, "1.19")
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestVersionListingOrderedOldestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	paper, err := f.resolver.Project(ctx, "paper")
	require.NoError(t, err)
	versions, err := f.resolver.Versions(ctx, paper)
	require.NoError(t, err)

	names := make([]string, 0, len(versions))
	for _, version := range versions {
		names = append(names, version.Name)
	}
	assert.Equal(t, []string{"1.0", "1.20.1"}, names)
}

func TestVersionsInGroup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	paper, err := f.resolver.Project(ctx, "paper")
	require.NoError(t, err)
	group, err := f.resolver.Group(ctx, paper, "1.20")
	require.NoError(t, err)

	versions, err := f.resolver.VersionsInGroup(ctx, paper, group)
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Equal(t, "1.20.1", versions[0].Name)
}

func TestErrorKindsAreDistinct(t *testing.T) {
	kinds := []*Error{ErrProjectNotFound, ErrVersionNotFound, ErrBuildNotFound, ErrGroupNotFound, ErrDownloadNotFound}
	seen := map[string]bool{}
	for _, kind := range kinds {
		assert.False(t, seen[kind.Message], "duplicate message %q", kind.Message)
		seen[kind.Message] = true
		assert.Equal(t, 404, kind.Status)
	}
}

func TestDownloadFailedHidesCause(t *testing.T) {
	cause := assert.AnError
	err := DownloadFailed(cause)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.Status)
	assert.Equal(t, "An internal error occurred while serving your download.", apiErr.Message)
	assert.ErrorIs(t, err, cause)
}
