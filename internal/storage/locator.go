package storage

import (
	"context"
	"io"
	"os"
	"time"

	yall "yall.in"
	"yall.in/colour"

	"github.com/HttpRafa/Bibliothek/internal/models"
	"github.com/HttpRafa/Bibliothek/internal/resolver"
)

// JavaArchive is the content type every artifact is served with.
const JavaArchive = "application/java-archive"

func logFrom(ctx context.Context) *yall.Logger {
	if logger := yall.FromContext(ctx); logger != nil {
		return logger
	}
	return yall.New(colour.New(io.Discard, yall.Error))
}

// Artifact is an opened blob plus the transfer metadata for it. The
// caller owns Content and must close it once the transfer finishes.
type Artifact struct {
	Name         string
	SHA256       string
	Size         int64
	LastModified time.Time
	ContentType  string
	Content      io.ReadCloser
}

// Locator maps resolved downloads onto blobs under a filesystem root.
type Locator struct {
	Root string
}

// NewLocator returns a Locator serving blobs from root.
func NewLocator(root string) *Locator {
	return &Locator{Root: root}
}

// Open finds the download entry declared under name in the resolved
// build and opens its blob. A build without a matching entry yields
// ErrDownloadNotFound; everything else that goes wrong, including a
// metadata record whose blob is missing on disk, is wrapped as a
// download failure so internal detail never reaches the client.
func (l *Locator) Open(ctx context.Context, project *models.Project, version *models.Version, build *models.Build, name string) (*Artifact, error) {
	logger := logFrom(ctx).
		WithField("project", project.Name).
		WithField("version", version.Name).
		WithField("build", build.Number).
		WithField("download", name)

	download, ok := build.Downloads.ByName(name)
	if !ok {
		return nil, resolver.ErrDownloadNotFound
	}

	path, err := ArtifactPath(l.Root, project.Name, version.Name, build.Number, download.Name)
	if err != nil {
		logger.WithError(err).Error("refused artifact path")
		return nil, resolver.DownloadFailed(err)
	}

	// A transport-level cancellation surfaces as a failure rather
	// than an open file nobody will read.
	if err := ctx.Err(); err != nil {
		return nil, resolver.DownloadFailed(err)
	}

	file, err := os.Open(path)
	if err != nil {
		logger.WithError(err).Error("error opening artifact")
		return nil, resolver.DownloadFailed(err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		logger.WithError(err).Error("error stating artifact")
		return nil, resolver.DownloadFailed(err)
	}

	return &Artifact{
		Name:         download.Name,
		SHA256:       download.SHA256,
		Size:         info.Size(),
		LastModified: info.ModTime(),
		ContentType:  JavaArchive,
		Content:      file,
	}, nil
}
