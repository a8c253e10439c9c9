package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/HttpRafa/Bibliothek/internal/validation"
)

type versionResponse struct {
	ProjectID   string `json:"project_id"`
	ProjectName string `json:"project_name"`
	Version     string `json:"version"`
	Builds      []int  `json:"builds"`
}

// Version handles GET /v1/projects/:project/versions/:version.
func (a *API) Version(c *fiber.Ctx) error {
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

	numbers := make([]int, 0, len(builds))
	for _, build := range builds {
		numbers = append(numbers, build.Number)
	}

	return a.cached(c, versionResponse{
		ProjectID:   project.Name,
		ProjectName: project.FriendlyName,
		Version:     version.Name,
		Builds:      numbers,
	})
}
