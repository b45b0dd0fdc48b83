package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/autocore/internal/buildinfo"
)

var (
	versionJSON  bool
	versionShort bool
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the autocore release and build details",
	Long: `Print the autocore release together with the source revision, build time
and Go toolchain. --short prints the bare release, for scripts that gate on it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := buildinfo.GetInfo()
		out := cmd.OutOrStdout()
		switch {
		case versionJSON:
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		case versionShort:
			fmt.Fprintln(out, info.Version)
		default:
			fmt.Fprintln(out, info.String())
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print build details as JSON")
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the release")
	versionCmd.MarkFlagsMutuallyExclusive("json", "short")
	rootCmd.AddCommand(versionCmd)
}
