package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/HttpRafa/Bibliothek/internal/models"
	"github.com/HttpRafa/Bibliothek/internal/validation"
)

type buildsResponse struct {
	ProjectID   string         `json:"project_id"`
	ProjectName string         `json:"project_name"`
	Version     string         `json:"version"`
	Builds      []buildSummary `json:"builds"`
}

type buildSummary struct {
	Build       int                `json:"build"`
	Timestamp   time.Time          `json:"timestamp"`
	Channel     models.Channel     `json:"channel"`
	DisplayMode models.DisplayMode `json:"displayMode"`
	Changes     models.ChangeList  `json:"changes"`
	Downloads   models.DownloadMap `json:"downloads"`
}

func summarize(build models.Build) buildSummary {
	changes := build.Changes
	if changes == nil {
		changes = models.ChangeList{}
	}
	downloads := build.Downloads
	if downloads == nil {
		downloads = models.DownloadMap{}
	}
	return buildSummary{
		Build:       build.Number,
		Timestamp:   build.Timestamp,
		Channel:     build.Channel,
		DisplayMode: build.DisplayMode,
		Changes:     changes,
		Downloads:   downloads,
	}
}

// Builds handles GET /v1/projects/:project/versions/:version/builds.
func (a *API) Builds(c *fiber.Ctx) error {
	projectName := c.Params("project")
	versionName := c.Params("version")
	if !validation.ProjectName(projectName) || !validation.VersionName(versionName) {
		return fiber.ErrNotFound
	}
	ctx := c.UserContext()

	project, err := a.Resolver.Project(ctx, projectName)
	if err != nil {
		return err
	}
	version, err := a.Resolver.Version(ctx, project, versionName)
	if err != nil {
		return err
	}
	builds, err := a.Resolver.Builds(ctx, project, version)
	if err != nil {
		return err
	}

	summaries := make([]buildSummary, 0, len(builds))
	for _, build := range builds {
		summaries = append(summaries, summarize(build))
	}

	return a.cached(c, buildsResponse{
		ProjectID:   project.Name,
		ProjectName: project.FriendlyName,
		Version:     version.Name,
		Builds:      summaries,
	})
}
