package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/HttpRafa/Bibliothek/internal/validation"
)

// Download handles
// GET /v1/projects/:project/versions/:version/builds/:build/downloads/:download.
// On success the artifact is streamed as an attachment with its blob
// mtime as Last-Modified and the shared cache policy.
func (a *API) Download(c *fiber.Ctx) error {
	projectName := c.Params("project")
	versionName := c.Params("version")
	buildParam := c.Params("build")
	downloadName := c.Params("download")
	if !validation.ProjectName(projectName) ||
		!validation.VersionName(versionName) ||
		!validation.BuildNumber(buildParam) ||
		!validation.DownloadName(downloadName) {
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

	artifact, err := a.Locator.Open(ctx, project, version, build, downloadName)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderCacheControl, a.Cache)
	c.Set(fiber.HeaderContentType, artifact.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, artifact.Name))
	c.Set(fiber.HeaderLastModified, artifact.LastModified.UTC().Format(http.TimeFormat))
	// fasthttp closes the stream once the response is written, even
	// when the connection dies mid-transfer.
	return c.SendStream(artifact.Content, int(artifact.Size))
}
