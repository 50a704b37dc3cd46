package source

import (
	"testing"

	"github.com/fmi-build-tools/relgate/internal/gate/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetManifestVersion(t *testing.T) {
	next := version.Version{Major: 0, Minor: 2, Patch: 0}

	t.Run("setup.py", func(t *testing.T) {
		path := writeTemp(t, "setup.py", setupPy)
		out, err := SetManifestVersion(path, FormatSetupPy, next)
		require.NoError(t, err)
		assert.Contains(t, string(out), `version="0.2.0",`)
		assert.NotContains(t, string(out), "0.1.0")
		// the rest of the file is untouched
		assert.Contains(t, string(out), `name="fmi-bd2cmake",`)
	})

	t.Run("pyproject preserves quoting", func(t *testing.T) {
		path := writeTemp(t, "pyproject.toml", pyprojectToml)
		out, err := SetManifestVersion(path, FormatPyproject, next)
		require.NoError(t, err)
		assert.Contains(t, string(out), `version = "0.2.0"`)
	})

	t.Run("refuses when absent", func(t *testing.T) {
		path := writeTemp(t, "setup.py", "setup(name=\"x\")\n")
		_, err := SetManifestVersion(path, FormatSetupPy, next)
		assert.ErrorIs(t, err, ErrFieldNotFound)
	})

	t.Run("refuses duplicates", func(t *testing.T) {
		path := writeTemp(t, "setup.py", "setup(\n    version=\"1.0.0\",\n    version=\"1.0.1\",\n)\n")
		_, err := SetManifestVersion(path, FormatSetupPy, next)
		assert.ErrorIs(t, err, ErrDuplicateField)
	})
}

func TestSetPackageVersion(t *testing.T) {
	next := version.Version{Major: 0, Minor: 2, Patch: 0}

	t.Run("rewrites single assignment", func(t *testing.T) {
		path := writeTemp(t, "__init__.py", initPy)
		out, err := SetPackageVersion(path, next)
		require.NoError(t, err)
		assert.Contains(t, string(out), `__version__ = "0.2.0"`)
	})

	t.Run("preserves single quotes", func(t *testing.T) {
		path := writeTemp(t, "__init__.py", "__version__ = '0.1.0'\n")
		out, err := SetPackageVersion(path, next)
		require.NoError(t, err)
		assert.Equal(t, "__version__ = '0.2.0'\n", string(out))
	})

	t.Run("unreadable source", func(t *testing.T) {
		_, err := SetPackageVersion("does/not/exist.py", next)
		assert.ErrorIs(t, err, ErrSourceUnreadable)
	})
}
