package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectName(t *testing.T) {
	tests := map[string]bool{
		"paper":     true,
		"a":         true,
		"waterfall": true,
		"Paper":     false,
		"paper2":    false,
		"pa-per":    false,
		"":          false,
		"pa/per":    false,
	}
	for name, want := range tests {
		assert.Equal(t, want, ProjectName(name), "project name %q", name)
	}
}

func TestVersionName(t *testing.T) {
	tests := map[string]bool{
		"1.0":           true,
		"1.20.1":        true,
		"1.20.1-pre":    true,
		"1.20-SNAPSHOT": true,
		"1.20.1-pre1":   true,
		"1.20.1-pre1.2": true,
		"1.20.1-rc1":    false,
		"v1.0":          false,
		"":              false,
		"1.0/..":        false,
	}
	for name, want := range tests {
		assert.Equal(t, want, VersionName(name), "version name %q", name)
	}
}

func TestBuildNumber(t *testing.T) {
	tests := map[string]bool{
		"5":   true,
		"0":   true,
		"123": true,
		"-1":  false,
		"1a":  false,
		"":    false,
		"1.0": false,
	}
	for number, want := range tests {
		assert.Equal(t, want, BuildNumber(number), "build number %q", number)
	}
}

func TestDownloadName(t *testing.T) {
	tests := map[string]bool{
		"example-1.0.jar": true,
		"paper_123.jar":   true,
		"a":               true,
		"":                false,
		"../secret":       false,
		"a/b.jar":         false,
		`a\b.jar`:         false,
		"name with space": false,
	}
	for name, want := range tests {
		assert.Equal(t, want, DownloadName(name), "download name %q", name)
	}
}
