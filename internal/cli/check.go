package cli

import (
	"github.com/fmi-build-tools/relgate/internal/gate"
	"github.com/fmi-build-tools/relgate/internal/gate/config"
	"github.com/fmi-build-tools/relgate/internal/gate/source"
	"github.com/spf13/cobra"
)

var (
	checkTag    string
	checkOutput string
)

// newCheckCmd creates the check command. It runs exactly one gate
// evaluation and exits 0 only when the release is approved.
func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify that the release tag and all version declarations agree",
		Long: `Check runs the publish gate for one release-tag event. The tag is taken
from --tag, the CI event payload, or GITHUB_REF, in that order. The gate
approves only when the tag version, the manifest version, and the package
__version__ are identical; any disagreement or read failure rejects the
release and exits non-zero.

Examples:
  # Gate the release named by the CI tag event
  relgate check

  # Gate an explicit tag and emit the report as YAML
  relgate check --tag v1.2.3 -o yaml`,
		RunE: runCheck,
	}
	cmd.Flags().StringVar(&checkTag, "tag", "", "Release tag to verify; defaults to the CI event tag")
	cmd.Flags().StringVarP(&checkOutput, "output", "o", "", "Report format: text, json, or yaml")
	return cmd
}

// runCheck handles one gate evaluation from tag resolution to report.
func runCheck(cmd *cobra.Command, args []string) error {
	tag, err := source.ResolveTag(checkTag)
	if err != nil {
		return err
	}

	g := gate.New(config.Config())
	verdict := g.Evaluate(tag)

	if err := renderVerdict(verdict, reportFormat(checkOutput)); err != nil {
		return err
	}
	if !verdict.Approved {
		// the report already names the cause; only the exit signal is left
		return ErrAlreadyHandled
	}
	return nil
}
