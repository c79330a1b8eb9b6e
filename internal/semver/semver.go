package semver

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// ErrInvalidTag indicates a tag that does not match the
// v<major>.<minor>.<patch>[suffix] format.
var ErrInvalidTag = errors.New("invalid tag format")

// ErrPatchOverflow indicates a patch increment that would exceed the
// 32-bit unsigned range.
var ErrPatchOverflow = errors.New("patch version overflow")

var tagPattern = regexp.MustCompile(`^v(\d+)\.(\d+)\.(\d+)([^\s\d]\S*)?$`)

// Tag represents a release tag of the form v<major>.<minor>.<patch>[suffix].
// The suffix, when present, is an arbitrary trailing literal such as "-beta"
// and is carried verbatim through every transformation.
type Tag struct {
	Major  uint32
	Minor  uint32
	Patch  uint32
	Suffix string
}

// Parse parses a tag string such as "v1.2.3" or "v3.4.5-alpha".
func Parse(s string) (Tag, error) {
	m := tagPattern.FindStringSubmatch(s)
	if m == nil {
		return Tag{}, fmt.Errorf("%w: %q", ErrInvalidTag, s)
	}

	major, err := strconv.ParseUint(m[1], 10, 32)
	if err != nil {
		return Tag{}, fmt.Errorf("%w: major component %q", ErrInvalidTag, m[1])
	}
	minor, err := strconv.ParseUint(m[2], 10, 32)
	if err != nil {
		return Tag{}, fmt.Errorf("%w: minor component %q", ErrInvalidTag, m[2])
	}
	patch, err := strconv.ParseUint(m[3], 10, 32)
	if err != nil {
		return Tag{}, fmt.Errorf("%w: patch component %q", ErrInvalidTag, m[3])
	}

	return Tag{
		Major:  uint32(major),
		Minor:  uint32(minor),
		Patch:  uint32(patch),
		Suffix: m[4],
	}, nil
}

// IsValid reports whether s parses as a release tag.
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// String returns the tag in its canonical v<major>.<minor>.<patch>[suffix] form.
func (t Tag) String() string {
	return fmt.Sprintf("v%d.%d.%d%s", t.Major, t.Minor, t.Patch, t.Suffix)
}

// BumpPatch returns a copy of the tag with the patch component incremented
// by one, suffix preserved.
func (t Tag) BumpPatch() (Tag, error) {
	if t.Patch == math.MaxUint32 {
		return Tag{}, fmt.Errorf("%w: %s", ErrPatchOverflow, t)
	}
	t.Patch++
	return t, nil
}

// MinorSeries returns the major.minor pair as a string, e.g. "1.2" for v1.2.3.
func (t Tag) MinorSeries() string {
	return fmt.Sprintf("%d.%d", t.Major, t.Minor)
}
