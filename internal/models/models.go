package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// Channel marks which release channel a build was published on.
type Channel string

const (
	ChannelDefault      Channel = "default"
	ChannelExperimental Channel = "experimental"
)

// ParseChannel maps a user-supplied channel string to a known Channel.
func ParseChannel(s string) (Channel, error) {
	switch Channel(s) {
	case ChannelDefault, ChannelExperimental:
		return Channel(s), nil
	}
	return "", fmt.Errorf("unknown channel %q", s)
}

// DisplayMode controls how a build is presented by download pages.
type DisplayMode string

const (
	DisplayHide    DisplayMode = "hide"
	DisplayPromote DisplayMode = "promote"
)

// Project is the root of the hierarchy. The numeric ID is private to the
// store layer; clients only ever see the name and friendly name.
type Project struct {
	ID           uint   `gorm:"primaryKey" json:"-"`
	Name         string `gorm:"size:64;uniqueIndex" json:"name"`
	FriendlyName string `gorm:"size:128" json:"friendlyName"`
}

// Group is an optional bucket of versions within a project, e.g. a
// release line like "1.20".
type Group struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	ProjectID uint      `gorm:"uniqueIndex:uniq_group_name" json:"-"`
	Name      string    `gorm:"size:64;uniqueIndex:uniq_group_name" json:"name"`
	Timestamp time.Time `json:"time"`
}

// Version is a named release line within a project, optionally tagged
// to a group.
type Version struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	ProjectID uint      `gorm:"uniqueIndex:uniq_version_name" json:"-"`
	GroupID   *uint     `gorm:"index" json:"-"`
	Name      string    `gorm:"size:64;uniqueIndex:uniq_version_name" json:"name"`
	Timestamp time.Time `json:"time"`
}

// Build is one numbered build of a version. Number is monotonic per
// version; changes and downloads are stored as JSON documents.
type Build struct {
	ID          uint        `gorm:"primaryKey" json:"-"`
	ProjectID   uint        `gorm:"uniqueIndex:uniq_build_number" json:"-"`
	VersionID   uint        `gorm:"uniqueIndex:uniq_build_number" json:"-"`
	Number      int         `gorm:"uniqueIndex:uniq_build_number" json:"build"`
	Timestamp   time.Time   `json:"timestamp"`
	Channel     Channel     `gorm:"size:16" json:"channel"`
	DisplayMode DisplayMode `gorm:"size:16" json:"displayMode"`
	Changes     ChangeList  `gorm:"type:jsonb" json:"changes"`
	Downloads   DownloadMap `gorm:"type:jsonb" json:"downloads"`
}

// Change is a single commit carried by a build, in commit order.
type Change struct {
	Commit  string `json:"commit"`
	Summary string `json:"summary"`
	Message string `json:"message"`
}

// Download is one named, hash-verified artifact attached to a build.
// The map key it lives under is a logical role ("application"); the
// declared name is what clients request and what the blob is stored as.
type Download struct {
	Name   string `json:"name"`
	SHA256 string `json:"sha256"`
}

// ChangeList persists []Change as a JSON column.
type ChangeList []Change

func (l ChangeList) Value() (driver.Value, error) {
	if l == nil {
		l = ChangeList{}
	}
	return json.Marshal(l)
}

func (l *ChangeList) Scan(value any) error {
	return scanJSON(value, l)
}

// DownloadMap persists the role-key -> Download mapping as a JSON column.
type DownloadMap map[string]Download

func (m DownloadMap) Value() (driver.Value, error) {
	if m == nil {
		m = DownloadMap{}
	}
	return json.Marshal(m)
}

func (m *DownloadMap) Scan(value any) error {
	return scanJSON(value, m)
}

// ByName returns the first download whose declared name equals name.
// Role keys are visited in sorted order so the pick is deterministic
// even when several entries declare the same name.
func (m DownloadMap) ByName(name string) (Download, bool) {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if m[key].Name == name {
			return m[key], true
		}
	}
	return Download{}, false
}

func scanJSON(value any, out any) error {
	if value == nil {
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T as JSON", value)
	}
	return json.Unmarshal(raw, out)
}
