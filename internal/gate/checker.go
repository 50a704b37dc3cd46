package gate

import (
	"fmt"

	"github.com/fmi-build-tools/relgate/internal/gate/version"
)

// Mismatch records one disagreeing pair of sources with both literal
// values, so a rejection can name the offender instead of a bare
// "mismatch".
type Mismatch struct {
	LeftSource  string `json:"left_source" yaml:"left_source"`
	LeftValue   string `json:"left_value" yaml:"left_value"`
	RightSource string `json:"right_source" yaml:"right_source"`
	RightValue  string `json:"right_value" yaml:"right_value"`
}

// String renders the mismatch for the human-readable report.
func (m Mismatch) String() string {
	return fmt.Sprintf("%s declares %s but %s declares %s",
		m.LeftSource, m.LeftValue, m.RightSource, m.RightValue)
}

// CheckConsistency compares the three version declarations pairwise and
// returns every disagreeing pair. An empty result means the release is
// consistent. The comparison is pure; it never touches the filesystem.
func CheckConsistency(tag, manifest, pkg version.Version) []Mismatch {
	type reading struct {
		source string
		v      version.Version
	}
	readings := []reading{
		{source: SourceTag, v: tag},
		{source: SourceManifest, v: manifest},
		{source: SourcePackage, v: pkg},
	}

	var mismatches []Mismatch
	for i := 0; i < len(readings); i++ {
		for j := i + 1; j < len(readings); j++ {
			if version.Equal(readings[i].v, readings[j].v) {
				continue
			}
			mismatches = append(mismatches, Mismatch{
				LeftSource:  readings[i].source,
				LeftValue:   readings[i].v.String(),
				RightSource: readings[j].source,
				RightValue:  readings[j].v.String(),
			})
		}
	}
	return mismatches
}
