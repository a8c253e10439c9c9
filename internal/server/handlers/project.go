package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/HttpRafa/Bibliothek/internal/validation"
)

type projectResponse struct {
	ProjectID   string   `json:"project_id"`
	ProjectName string   `json:"project_name"`
	Groups      []string `json:"groups"`
	Versions    []string `json:"versions"`
}

// Project handles GET /v1/projects/:project.
func (a *API) Project(c *fiber.Ctx) error {
	projectName := c.Params("project")
	if !validation.ProjectName(projectName) {
		return fiber.ErrNotFound
	}
	ctx := c.UserContext()

	project, err := a.Resolver.Project(ctx, projectName)
	if err != nil {
		return err
	}
	groups, err := a.Resolver.Groups(ctx, project)
	if err != nil {
		return err
	}
	versions, err := a.Resolver.Versions(ctx, project)
	if err != nil {
		return err
	}

	groupNames := make([]string, 0, len(groups))
	for _, group := range groups {
		groupNames = append(groupNames, group.Name)
	}
	versionNames := make([]string, 0, len(versions))
	for _, version := range versions {
		versionNames = append(versionNames, version.Name)
	}

	return a.cached(c, projectResponse{
		ProjectID:   project.Name,
		ProjectName: project.FriendlyName,
		Groups:      groupNames,
		Versions:    versionNames,
	})
}
