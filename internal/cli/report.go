package cli

import (
	"fmt"
	"os"

	"github.com/fmi-build-tools/relgate/internal/gate"
	"gopkg.in/yaml.v3"
)

// report output formats
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// reportFormat resolves the effective report format from the -o flag and
// the persistent --json flag.
func reportFormat(flag string) string {
	if flag != "" {
		return flag
	}
	if jsonOutput {
		return formatJSON
	}
	return formatText
}

// renderVerdict prints the gate report to stdout in the requested format.
func renderVerdict(v *gate.Verdict, format string) error {
	switch format {
	case formatJSON:
		printJSON(v)
		return nil
	case formatYAML:
		out, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("unable to render report: %w", err)
		}
		fmt.Print(string(out))
		return nil
	case formatText:
		printTextVerdict(v)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func printTextVerdict(v *gate.Verdict) {
	if v.Approved {
		okLabel.Println("approved: all version declarations agree")
	} else {
		errorLabel.Printf("rejected (%s)\n", v.Cause)
	}

	for _, r := range v.Sources {
		if r.Error != "" {
			fmt.Fprintf(os.Stdout, "  %-8s %s: error: %s\n", r.Source, r.Origin, r.Error)
			continue
		}
		fmt.Fprintf(os.Stdout, "  %-8s %s: %s\n", r.Source, r.Origin, r.Value)
	}

	for _, reason := range v.Reasons {
		fmt.Fprintf(os.Stdout, "  - %s\n", reason)
	}
}
