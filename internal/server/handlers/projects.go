package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type projectsResponse struct {
	Projects []string `json:"projects"`
}

// Projects handles GET /v1/projects.
func (a *API) Projects(c *fiber.Ctx) error {
	projects, err := a.Resolver.Projects(c.UserContext())
	if err != nil {
		return err
	}
	names := make([]string, 0, len(projects))
	for _, project := range projects {
		names = append(names, project.Name)
	}
	return a.cached(c, projectsResponse{Projects: names})
}
