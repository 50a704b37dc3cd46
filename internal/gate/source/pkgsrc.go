package source

import (
	"fmt"
	"os"
	"regexp"
)

// dunderVersionRe matches a module-level __version__ assignment in the
// package's __init__.py.
var dunderVersionRe = regexp.MustCompile(`(?m)^__version__\s*=\s*["']([^"']*)["']`)

// ReadPackage extracts the single __version__ declaration from the
// package's own version-declaration source. The exactly-one rule and the
// error taxonomy match ReadManifest.
func ReadPackage(path string) (*Declaration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrSourceUnreadable.MsgErr(fmt.Sprintf("cannot read package source %s", path), err)
	}
	var raws []string
	for _, m := range dunderVersionRe.FindAllSubmatch(data, -1) {
		raws = append(raws, string(m[1]))
	}
	return newDeclaration("package", path, raws)
}
