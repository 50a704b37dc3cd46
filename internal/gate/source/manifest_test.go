package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fmi-build-tools/relgate/internal/gate/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const setupPy = `#!/usr/bin/env python3
"""Setup script for fmi-bd2cmake package."""

from setuptools import setup, find_packages

setup(
    name="fmi-bd2cmake",
    version="0.1.0",
    author="FMI Build Tools",
    description="CMakeLists.txt generator that reads buildDescription.xml in FMI source",
    packages=find_packages(),
    python_requires=">=3.6",
)
`

const pyprojectToml = `[build-system]
requires = ["setuptools>=61.0"]
build-backend = "setuptools.build_meta"

[project]
name = "fmi-bd2cmake"
version = "0.1.0"
requires-python = ">=3.6"
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatPyproject, DetectFormat("pyproject.toml"))
	assert.Equal(t, FormatPyproject, DetectFormat("sub/dir/pyproject.toml"))
	assert.Equal(t, FormatSetupPy, DetectFormat("setup.py"))
	assert.Equal(t, FormatSetupPy, DetectFormat("anything.else"))
}

func TestReadManifestSetupPy(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr error
	}{
		{
			name:    "single version kwarg",
			content: setupPy,
			want:    "0.1.0",
		},
		{
			name:    "single-quoted version",
			content: "setup(\n    version='2.4.6',\n)\n",
			want:    "2.4.6",
		},
		{
			name:    "no version kwarg",
			content: "setup(\n    name=\"fmi-bd2cmake\",\n)\n",
			wantErr: ErrFieldNotFound,
		},
		{
			name:    "two version kwargs",
			content: "setup(\n    version=\"1.0.0\",\n    version=\"1.0.1\",\n)\n",
			wantErr: ErrDuplicateField,
		},
		{
			name:    "unparsable version",
			content: "setup(\n    version=\"1.0\",\n)\n",
			wantErr: version.ErrMalformedVersion,
		},
		{
			name:    "version-like names do not count",
			content: "setup(\n    format_version=\"9.9.9\",\n    version=\"1.2.3\",\n)\n",
			want:    "1.2.3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, "setup.py", tt.content)
			decl, err := ReadManifest(path, FormatSetupPy)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "manifest", decl.Name)
			assert.Equal(t, path, decl.Path)
			assert.Equal(t, tt.want, decl.Raw)
			assert.Equal(t, tt.want, decl.Version.String())
		})
	}
}

func TestReadManifestPyproject(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr error
	}{
		{
			name:    "project table version",
			content: pyprojectToml,
			want:    "0.1.0",
		},
		{
			name:    "poetry table version",
			content: "[tool.poetry]\nname = \"fmi-bd2cmake\"\nversion = \"3.1.4\"\n",
			want:    "3.1.4",
		},
		{
			name:    "no version field",
			content: "[project]\nname = \"fmi-bd2cmake\"\n",
			wantErr: ErrFieldNotFound,
		},
		{
			name:    "project and poetry both declare",
			content: "[project]\nversion = \"1.0.0\"\n\n[tool.poetry]\nversion = \"1.0.1\"\n",
			wantErr: ErrDuplicateField,
		},
		{
			name:    "unparsable version",
			content: "[project]\nversion = \"not-a-version\"\n",
			wantErr: version.ErrMalformedVersion,
		},
		{
			name:    "broken toml",
			content: "[project\nversion = \"1.0.0\"\n",
			wantErr: ErrSourceUnreadable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, "pyproject.toml", tt.content)
			decl, err := ReadManifest(path, FormatPyproject)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, decl.Raw)
		})
	}
}

func TestReadManifestUnreadable(t *testing.T) {
	_, err := ReadManifest(filepath.Join(t.TempDir(), "missing.py"), FormatSetupPy)
	assert.ErrorIs(t, err, ErrSourceUnreadable)
}
