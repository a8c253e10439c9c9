package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/HttpRafa/Bibliothek/internal/validation"
)

type groupResponse struct {
	ProjectID   string   `json:"project_id"`
	ProjectName string   `json:"project_name"`
	Group       string   `json:"group"`
	Versions    []string `json:"versions"`
}

// Group handles GET /v1/projects/:project/group/:group.
func (a *API) Group(c *fiber.Ctx) error {
	projectName := c.Params("project")
	if !validation.ProjectName(projectName) {
		return fiber.ErrNotFound
	}
	ctx := c.UserContext()

	project, err := a.Resolver.Project(ctx, projectName)
	if err != nil {
		return err
	}
	group, err := a.Resolver.Group(ctx, project, c.Params("group"))
	if err != nil {
		return err
	}
	versions, err := a.Resolver.VersionsInGroup(ctx, project, group)
	if err != nil {
		return err
	}

	versionNames := make([]string, 0, len(versions))
	for _, version := range versions {
		versionNames = append(versionNames, version.Name)
	}

	return a.cached(c, groupResponse{
		ProjectID:   project.Name,
		ProjectName: project.FriendlyName,
		Group:       group.Name,
		Versions:    versionNames,
	})
}
