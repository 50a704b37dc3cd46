// Package source extracts version declarations from the three inputs of a
// gate evaluation: the release tag, the project manifest, and the package's
// own version-declaration source. Each reader succeeds exactly once per
// invocation or fails with a terminal error; nothing is resolved by guessing.
package source

import (
	"fmt"
	"os"
	"strings"

	"github.com/fmi-build-tools/relgate/internal/common/apperrors"
	"github.com/fmi-build-tools/relgate/internal/gate/version"
	"github.com/tidwall/gjson"
)

// DefaultTagPrefix is the literal every release tag must start with.
const DefaultTagPrefix = "v"

// ParseTag extracts the version from a release tag name. A tag without the
// prefix is not a release tag; the remainder must be a strict x.y.z version.
func ParseTag(tag, prefix string) (version.Version, error) {
	if prefix == "" {
		prefix = DefaultTagPrefix
	}
	if !strings.HasPrefix(tag, prefix) {
		return version.Version{}, ErrNotAReleaseTag.Msg(fmt.Sprintf("tag %q does not start with prefix %q", tag, prefix))
	}
	v, err := version.Parse(strings.TrimPrefix(tag, prefix))
	if err != nil {
		return version.Version{}, withSource(err, fmt.Sprintf("tag %q", tag))
	}
	return v, nil
}

// ResolveTag determines the tag name for this evaluation. An explicit tag
// wins; otherwise the CI event payload named by GITHUB_EVENT_PATH is
// consulted (push ref or release tag name), then the GITHUB_REF variable.
func ResolveTag(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if path := os.Getenv("GITHUB_EVENT_PATH"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", ErrSourceUnreadable.MsgErr(fmt.Sprintf("cannot read event payload %s", path), err)
		}
		if ref := gjson.GetBytes(data, "ref"); ref.Exists() {
			return tagFromRef(ref.String())
		}
		if name := gjson.GetBytes(data, "release.tag_name"); name.Exists() {
			return name.String(), nil
		}
		return "", ErrNotAReleaseTag.Msg(fmt.Sprintf("event payload %s carries no tag reference", path))
	}
	if ref := os.Getenv("GITHUB_REF"); ref != "" {
		return tagFromRef(ref)
	}
	return "", ErrNotAReleaseTag.Msg("no tag given and no CI event context found")
}

// tagFromRef strips the refs/tags/ prefix from a fully qualified ref.
// Any other refs/ form (a branch push, for instance) is not a tag event.
// A bare name is passed through for ParseTag to judge.
func tagFromRef(ref string) (string, error) {
	if tag, ok := strings.CutPrefix(ref, "refs/tags/"); ok {
		return tag, nil
	}
	if strings.HasPrefix(ref, "refs/") {
		return "", ErrNotAReleaseTag.Msg(fmt.Sprintf("ref %q does not point at a tag", ref))
	}
	return ref, nil
}

// withSource prefixes an error with the source it came from while keeping
// the error chain intact for errors.Is.
func withSource(err error, label string) error {
	if appErr, ok := err.(apperrors.Error); ok {
		return appErr.Prefix(label)
	}
	return err
}
