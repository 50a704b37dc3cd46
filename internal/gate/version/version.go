// Package version implements the strict three-component version identifier
// shared by the release tag, the project manifest, and the package source.
// The form is MAJOR.MINOR.PATCH with no prerelease or build suffix; the
// gate compares versions for structural equality only.
package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/fmi-build-tools/relgate/internal/common/apperrors"
)

// ErrMalformedVersion indicates text that is not a strict x.y.z version.
var ErrMalformedVersion = apperrors.New("malformed version").SetExitCode(1).SetExpandError(true)

// Version is an immutable (major, minor, patch) triple.
type Version struct {
	Major uint64 `json:"major" yaml:"major"`
	Minor uint64 `json:"minor" yaml:"minor"`
	Patch uint64 `json:"patch" yaml:"patch"`
}

// Parse parses a strict dotted-decimal version string. It rejects
// missing or extra components, non-numeric components, leading zeros,
// and any prerelease or build-metadata suffix.
func Parse(text string) (Version, error) {
	if strings.TrimSpace(text) != text || text == "" {
		return Version{}, ErrMalformedVersion.Msg(fmt.Sprintf("malformed version %q", text))
	}
	if strings.Count(text, ".") != 2 {
		return Version{}, ErrMalformedVersion.Msg(fmt.Sprintf("version %q must have exactly three dotted components", text))
	}
	v, err := semver.StrictNewVersion(text)
	if err != nil {
		return Version{}, ErrMalformedVersion.MsgErr(fmt.Sprintf("malformed version %q", text), err)
	}
	if v.Prerelease() != "" || v.Metadata() != "" {
		return Version{}, ErrMalformedVersion.Msg(fmt.Sprintf("version %q must not carry a prerelease or build suffix", text))
	}
	return Version{Major: v.Major(), Minor: v.Minor(), Patch: v.Patch()}, nil
}

// Equal reports whether two versions match component for component.
func Equal(a, b Version) bool {
	return a.Major == b.Major && a.Minor == b.Minor && a.Patch == b.Patch
}

// String returns the canonical dotted-decimal form.
func (v Version) String() string {
	return strconv.FormatUint(v.Major, 10) + "." +
		strconv.FormatUint(v.Minor, 10) + "." +
		strconv.FormatUint(v.Patch, 10)
}
