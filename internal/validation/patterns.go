// Package validation holds the identifier grammar enforced at every
// hierarchy boundary. A name that fails its pattern is rejected before
// any store lookup runs.
package validation

import "regexp"

var (
	projectName  = regexp.MustCompile(`^[a-z]+$`)
	versionName  = regexp.MustCompile(`^[0-9.]+-?(?:pre|SNAPSHOT)?(?:[0-9.]+)?$`)
	buildNumber  = regexp.MustCompile(`^\d+$`)
	downloadName = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
)

// ProjectName reports whether s is a valid project name: lowercase
// ASCII letters, one or more.
func ProjectName(s string) bool {
	return projectName.MatchString(s)
}

// VersionName reports whether s is a valid version name: digits and
// dots, an optional dash, an optional "pre" or "SNAPSHOT" marker, and
// optional trailing digits/dots.
func VersionName(s string) bool {
	return versionName.MatchString(s)
}

// BuildNumber reports whether s is a valid build number: decimal
// digits only.
func BuildNumber(s string) bool {
	return buildNumber.MatchString(s)
}

// DownloadName reports whether s is a valid download name:
// alphanumerics plus '.', '_' and '-'. The grammar has no path
// separators, so a valid name can never traverse directories.
func DownloadName(s string) bool {
	return downloadName.MatchString(s)
}
