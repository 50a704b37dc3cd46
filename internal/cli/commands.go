// Package cli implements the relgate command line interface. The check
// command runs one gate evaluation per invocation and translates the
// verdict into the process exit code consumed by the publish workflow.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/fmi-build-tools/relgate/internal/common/apperrors"
	"github.com/fmi-build-tools/relgate/internal/gate/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	jsonOutput bool
	configFile string
)

var ErrAlreadyHandled = errors.New("already handled")

var okLabel = color.New(color.FgGreen)
var errorLabel = color.New(color.FgRed)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "relgate [command] [flags]",
	Short: "relgate - release gate for the fmi-bd2cmake package",
	Long: `relgate decides whether a tagged release may be published. It proves that
the release tag, the project manifest version, and the package's own
__version__ declaration all agree before the trusted-publish step runs.

Examples:
  # Gate the release named by the CI tag event
  relgate check

  # Gate an explicit tag
  relgate check --tag v1.2.3

  # Update every version declaration before tagging
  relgate bump 1.3.0`,
	PersistentPreRun: preRunHandlePersistents,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	// Set up persistent flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "", "", "Path to gate configuration file to override relgate.toml")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output in JSON format")

	// Add commands
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newBumpCmd())
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SilenceErrors = true // Prevent Cobra from printing the error
	rootCmd.SilenceUsage = true  // Prevent Cobra from printing usage on error

	err := rootCmd.Execute()
	if err != nil {
		if errors.Is(err, ErrAlreadyHandled) {
			os.Exit(1)
		}
		if jsonOutput {
			kv := map[string]string{
				"error": err.Error(),
			}
			printJSON(kv)
		} else {
			errorLabel.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(exitCodeOf(err))
	}
}

// exitCodeOf maps an error to the process exit signal. Gate errors carry
// their own exit code; anything else is a plain failure.
func exitCodeOf(err error) int {
	var appErr apperrors.Error
	if errors.As(err, &appErr) && appErr.ExitCode() > 0 {
		return appErr.ExitCode()
	}
	return 1
}

// preRunHandlePersistents handles persistent flags and configuration loading before command execution
func preRunHandlePersistents(cmd *cobra.Command, args []string) {
	// local CI simulation keeps GITHUB_REF and friends in a .env file
	_ = godotenv.Load()

	isVersion := false
	c := cmd
	for c != nil {
		if c.Name() == "version" {
			isVersion = true
			break
		}
		c = c.Parent()
	}

	if !isVersion {
		if err := config.LoadConfig(configFile); err != nil {
			errorLabel.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

// newVersionCmd creates and returns a new version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of relgate",
		Run: func(cmd *cobra.Command, args []string) {
			if jsonOutput {
				kv := map[string]string{
					"version": getCLIVersion(),
				}
				printJSON(kv)
			} else {
				cmd.Printf("relgate %s\n", getCLIVersion())
			}
		},
	}
}

// printJSON prints the given map as JSON to stdout
func printJSON(data interface{}) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(jsonData))
}

// getCLIVersion returns the current CLI version
func getCLIVersion() string {
	return "v0.1.0"
}
