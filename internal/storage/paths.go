// Package storage derives on-disk artifact paths and opens blobs for
// transfer. Artifacts live under
// <root>/<project>/<version>/<build-number>/<download-name>; the path
// is built from display names, not internal ids, to match the layout
// the ingestion side writes.
package storage

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ArtifactPath joins the storage root with the name segments of a
// resolved download. Each segment is checked against traversal even
// though the name grammar already forbids separators; a segment that
// could escape the root is refused outright.
func ArtifactPath(root, project, version string, build int, download string) (string, error) {
	segments := []string{project, version, strconv.Itoa(build), download}
	for _, segment := range segments {
		if err := checkSegment(segment); err != nil {
			return "", err
		}
	}
	return filepath.Join(root, project, version, strconv.Itoa(build), download), nil
}

func checkSegment(segment string) error {
	if segment == "" || segment == "." || segment == ".." {
		return errors.Errorf("invalid path segment %q", segment)
	}
	if strings.ContainsAny(segment, `/\`) {
		return errors.Errorf("path separator in segment %q", segment)
	}
	return nil
}
