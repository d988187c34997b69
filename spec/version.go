package spec

import (
	"sort"
	"strconv"
	"strings"
)

// Version is a parsed semantic version. An unparseable string becomes
// (0,0,0) with the raw string carried as the prerelease tag so it still
// participates in the total order.
type Version struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string
	Raw        string
}

// ParseVersion parses "MAJOR.MINOR.PATCH[-PRERELEASE]".
func ParseVersion(s string) Version {
	v := Version{Raw: s}

	core := s
	if dash := strings.Index(s, "-"); dash >= 0 {
		core = s[:dash]
		v.Prerelease = s[dash+1:]
	}

	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return Version{Prerelease: s, Raw: s}
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{Prerelease: s, Raw: s}
		}
		nums[i] = n
	}
	v.Major, v.Minor, v.Patch = nums[0], nums[1], nums[2]
	return v
}

// Compare orders two versions ascending: negative when v is older than o.
// A prerelease sorts below the same numeric version without one.
func (v Version) Compare(o Version) int {
	if v.Major != o.Major {
		return v.Major - o.Major
	}
	if v.Minor != o.Minor {
		return v.Minor - o.Minor
	}
	if v.Patch != o.Patch {
		return v.Patch - o.Patch
	}
	switch {
	case v.Prerelease == "" && o.Prerelease == "":
		return 0
	case v.Prerelease == "":
		return 1
	case o.Prerelease == "":
		return -1
	}
	return strings.Compare(v.Prerelease, o.Prerelease)
}

// IsStable reports whether the version is a stable release:
// major greater than zero and no prerelease tag.
func (v Version) IsStable() bool {
	return v.Major > 0 && v.Prerelease == ""
}

// IsStable reports whether a version string denotes a stable release.
func IsStable(s string) bool {
	return ParseVersion(s).IsStable()
}

// SortVersionsDescending orders version strings newest first.
func SortVersionsDescending(versions []string) {
	sort.SliceStable(versions, func(i, j int) bool {
		return ParseVersion(versions[i]).Compare(ParseVersion(versions[j])) > 0
	})
}
