package source

import (
	"fmt"
	"os"
	"regexp"

	"github.com/fmi-build-tools/relgate/internal/gate/version"
)

// pyprojectVersionRe matches a top-of-line version key in a pyproject.toml.
var pyprojectVersionRe = regexp.MustCompile(`(?m)^\s*version\s*=\s*["']([^"']*)["']`)

// SetManifestVersion returns the manifest content with its single version
// declaration rewritten to v. A bump never creates a declaration: zero or
// multiple existing declarations fail with the reader's own errors.
func SetManifestVersion(path string, format Format, v version.Version) ([]byte, error) {
	re := setupVersionRe
	if format == FormatPyproject {
		re = pyprojectVersionRe
	}
	return rewriteSingle("manifest", path, re, v)
}

// SetPackageVersion returns the package source with its single __version__
// assignment rewritten to v.
func SetPackageVersion(path string, v version.Version) ([]byte, error) {
	return rewriteSingle("package", path, dunderVersionRe, v)
}

// rewriteSingle replaces the value captured by the single match of re,
// preserving everything around it including the quote style.
func rewriteSingle(name, path string, re *regexp.Regexp, v version.Version) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrSourceUnreadable.MsgErr(fmt.Sprintf("cannot read %s %s", name, path), err)
	}
	locs := re.FindAllSubmatchIndex(data, -1)
	switch len(locs) {
	case 0:
		return nil, ErrFieldNotFound.Msg(fmt.Sprintf("%s %s declares no version", name, path))
	case 1:
		// fall through to splice
	default:
		return nil, ErrDuplicateField.Msg(fmt.Sprintf("%s %s declares %d versions", name, path, len(locs)))
	}
	start, end := locs[0][2], locs[0][3]
	out := make([]byte, 0, len(data)+len(v.String()))
	out = append(out, data[:start]...)
	out = append(out, v.String()...)
	out = append(out, data[end:]...)
	return out, nil
}
