package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/HttpRafa/Bibliothek/internal/models"
	"github.com/HttpRafa/Bibliothek/internal/validation"
)

type buildResponse struct {
	ProjectID   string             `json:"project_id"`
	ProjectName string             `json:"project_name"`
	Version     string             `json:"version"`
	Build       int                `json:"build"`
	Timestamp   time.Time          `json:"timestamp"`
	Channel     models.Channel     `json:"channel"`
	DisplayMode models.DisplayMode `json:"displayMode"`
	Changes     models.ChangeList  `json:"changes"`
	Downloads   models.DownloadMap `json:"downloads"`
}

// Build handles GET /v1/projects/:project/versions/:version/builds/:build.
func (a *API) Build(c *fiber.Ctx) error {
	projectName := c.Params("project")
	versionName := c.Params("version")
	buildParam := c.Params("build")
	if !validation.ProjectName(projectName) || !validation.VersionName(versionName) || !validation.BuildNumber(buildParam) {
		return fiber.ErrNotFound
	}
	number, err := strconv.Atoi(buildParam)
	if err != nil {
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
	build, err := a.Resolver.Build(ctx, project, version, number)
	if err != nil {
		return err
	}

	summary := summarize(*build)
	return a.cached(c, buildResponse{
		ProjectID:   project.Name,
		ProjectName: project.FriendlyName,
		Version:     version.Name,
		Build:       summary.Build,
		Timestamp:   summary.Timestamp,
		Channel:     summary.Channel,
		DisplayMode: summary.DisplayMode,
		Changes:     summary.Changes,
		Downloads:   summary.Downloads,
	})
}
