package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/fmi-build-tools/relgate/internal/gate/config"
	"github.com/fmi-build-tools/relgate/internal/gate/source"
	"github.com/fmi-build-tools/relgate/internal/gate/version"
	"github.com/spf13/cobra"
)

var bumpDryRun bool

// newBumpCmd creates the bump command: the release checklist's "update the
// version everywhere" step. It rewrites the manifest and the package
// declaration in one shot so the gate has nothing to reject later.
func newBumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bump <version>",
		Short: "Set the version in the manifest and the package source",
		Long: `Bump rewrites the manifest's version field and the package __version__
declaration to the given version. A bump never creates a declaration: the
same errors that reject a gate check (missing or duplicate fields) refuse
a bump. The tag itself is still created by hand afterwards.

Examples:
  # Prepare the 1.3.0 release
  relgate bump 1.3.0

  # Show the rewrites without touching any file
  relgate bump v1.3.0 --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: runBump,
	}
	cmd.Flags().BoolVar(&bumpDryRun, "dry-run", false, "Print the rewrites without writing any file")
	return cmd
}

func runBump(cmd *cobra.Command, args []string) error {
	cfg := config.Config()

	// accept either the bare version or the tag form
	text := strings.TrimPrefix(args[0], cfg.TagPrefix)
	v, err := version.Parse(text)
	if err != nil {
		return err
	}

	manifestOut, err := source.SetManifestVersion(cfg.Manifest.Path, cfg.ManifestFormat(), v)
	if err != nil {
		return err
	}
	packageOut, err := source.SetPackageVersion(cfg.Package.Path, v)
	if err != nil {
		return err
	}

	if bumpDryRun {
		fmt.Printf("would set %s and %s to %s\n", cfg.Manifest.Path, cfg.Package.Path, v)
		return nil
	}

	if err := writeBack(cfg.Manifest.Path, manifestOut); err != nil {
		return err
	}
	if err := writeBack(cfg.Package.Path, packageOut); err != nil {
		return err
	}

	okLabel.Printf("set %s and %s to %s\n", cfg.Manifest.Path, cfg.Package.Path, v)
	return nil
}

// writeBack rewrites a source file in place, keeping its permissions.
func writeBack(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("unable to stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, info.Mode().Perm()); err != nil {
		return fmt.Errorf("unable to write %s: %w", path, err)
	}
	return nil
}
