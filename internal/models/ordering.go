package models

import "sort"

// Versions and groups are listed in creation order, oldest first. The
// sorts are stable: entries with equal timestamps keep the order the
// store returned them in, so repeated listings never flap. Builds are
// never sorted here; their number already encodes creation order.

// SortVersions orders versions by creation timestamp, ascending.
func SortVersions(versions []Version) {
	sort.SliceStable(versions, func(i, j int) bool {
		return versions[i].Timestamp.Before(versions[j].Timestamp)
	})
}

// SortGroups orders groups by creation timestamp, ascending.
func SortGroups(groups []Group) {
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Timestamp.Before(groups[j].Timestamp)
	})
}
