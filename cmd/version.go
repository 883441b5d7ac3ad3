package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"

	"github.com/kellen/chronos/internal/catalog"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		v := version
		if tagged := "v" + strings.TrimPrefix(v, "v"); semver.IsValid(tagged) {
			v = semver.Canonical(tagged)
		}
		fmt.Printf("chronos %s (catalog format %s)\n", v, catalog.SupportedMajor)
	},
}
