package commands

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/leapstack-labs/leapseed/internal/engine"
	"github.com/leapstack-labs/leapseed/pkg/infer"
	"github.com/spf13/cobra"
)

// BuildInfo is stamped into the binary at link time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewVersionCommand creates the version command.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Display the leapseed build along with the column rules it applies,
in the order they are tried, and the record formats it can write.`,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "leapseed v%s (commit %s, built %s)\n", info.Version, info.Commit, info.Date)
			_, _ = fmt.Fprintf(w, "%s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			_, _ = fmt.Fprintf(w, "Column rules:   %s\n", strings.Join(infer.Rules(), ", "))
			_, _ = fmt.Fprintf(w, "Record formats: %s, %s\n", engine.FormatJSON, engine.FormatYAML)
		},
	}
}
