package source

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"
	"github.com/fmi-build-tools/relgate/internal/gate/version"
)

// Format identifies how the project manifest declares its version.
type Format string

const (
	// FormatPyproject reads [project] version from a pyproject.toml.
	FormatPyproject Format = "pyproject"
	// FormatSetupPy reads the version keyword argument from a setup.py.
	FormatSetupPy Format = "setuppy"
)

// Declaration is a version declaration read from one source, with the raw
// text preserved for error reporting.
type Declaration struct {
	Name    string          // which source: "manifest" or "package"
	Path    string          // file the declaration was read from
	Raw     string          // literal value as written in the source
	Version version.Version // parsed version
}

// setupVersionRe matches the version keyword argument in a setup.py.
// Anchored to an assignment so substrings like "format_version" never match.
var setupVersionRe = regexp.MustCompile(`(?m)^\s*version\s*=\s*["']([^"']*)["']`)

// DetectFormat infers the manifest format from the file name.
func DetectFormat(path string) Format {
	if filepath.Base(path) == "pyproject.toml" {
		return FormatPyproject
	}
	return FormatSetupPy
}

// ReadManifest extracts the single version declaration from the project
// manifest. Zero declarations fail with ErrFieldNotFound, more than one
// with ErrDuplicateField, an unparsable value with the version error.
func ReadManifest(path string, format Format) (*Declaration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrSourceUnreadable.MsgErr(fmt.Sprintf("cannot read manifest %s", path), err)
	}
	switch format {
	case FormatPyproject:
		return readPyproject(path, data)
	case FormatSetupPy:
		return readSetupPy(path, data)
	default:
		return nil, ErrSourceUnreadable.Msg(fmt.Sprintf("unknown manifest format %q", format))
	}
}

func readPyproject(path string, data []byte) (*Declaration, error) {
	var doc struct {
		Project struct {
			Version *string `toml:"version"`
		} `toml:"project"`
		Tool struct {
			Poetry struct {
				Version *string `toml:"version"`
			} `toml:"poetry"`
		} `toml:"tool"`
	}
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, ErrSourceUnreadable.MsgErr(fmt.Sprintf("cannot parse manifest %s", path), err)
	}

	var raws []string
	if doc.Project.Version != nil {
		raws = append(raws, *doc.Project.Version)
	}
	if doc.Tool.Poetry.Version != nil {
		raws = append(raws, *doc.Tool.Poetry.Version)
	}
	return newDeclaration("manifest", path, raws)
}

func readSetupPy(path string, data []byte) (*Declaration, error) {
	var raws []string
	for _, m := range setupVersionRe.FindAllSubmatch(data, -1) {
		raws = append(raws, string(m[1]))
	}
	return newDeclaration("manifest", path, raws)
}

// newDeclaration enforces the exactly-one rule shared by all file readers
// and parses the surviving raw value.
func newDeclaration(name, path string, raws []string) (*Declaration, error) {
	switch len(raws) {
	case 0:
		return nil, ErrFieldNotFound.Msg(fmt.Sprintf("%s %s declares no version", name, path))
	case 1:
		// fall through to parse
	default:
		return nil, ErrDuplicateField.Msg(fmt.Sprintf("%s %s declares %d versions %v", name, path, len(raws), raws))
	}
	v, err := version.Parse(raws[0])
	if err != nil {
		return nil, withSource(err, fmt.Sprintf("%s %s", name, path))
	}
	return &Declaration{Name: name, Path: path, Raw: raws[0], Version: v}, nil
}
