package cli

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/autocore/internal/coreconf"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored configurations",
	Long: `List every configuration under conf/ with its core, ISA and a content
fingerprint. Files that no longer decode are listed with the decode error.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, _, err := loadAndResolveSettings()
		if err != nil {
			return err
		}
		summaries, err := coreconf.NewStore(resolved.Config.Store.Root).List()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if listJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(listRows(summaries))
		}

		if len(summaries) == 0 {
			fmt.Fprintln(out, "No configurations found.")
			return nil
		}
		fmt.Fprintln(out, renderList(summaries))
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(listCmd)
}

// listRow is the display and JSON form of one stored configuration.
type listRow struct {
	Name        string `json:"name"`
	Core        string `json:"core,omitempty"`
	ISA         string `json:"isa,omitempty"`
	Fingerprint string `json:"fingerprint"`
	Error       string `json:"error,omitempty"`
}

func listRows(summaries []coreconf.Summary) []listRow {
	rows := make([]listRow, 0, len(summaries))
	for _, s := range summaries {
		row := listRow{Name: s.Name, Fingerprint: fmt.Sprintf("%016x", s.Fingerprint)}
		if s.Err != nil {
			row.Error = s.Err.Error()
			rows = append(rows, row)
			continue
		}
		var xlen, ext string
		for _, e := range s.Entries {
			switch e := e.(type) {
			case coreconf.CoreEntry:
				row.Core = string(e.Core)
			case coreconf.ArchEntry:
				xlen = string(e.XLEN)
			case coreconf.ExtEntry:
				ext = e.Ext.String()
			}
		}
		if xlen != "" {
			row.ISA = xlen + ext
		}
		rows = append(rows, row)
	}
	return rows
}

func renderList(summaries []coreconf.Summary) string {
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "CORE", "ISA", "FINGERPRINT", "STATUS")
	for _, r := range listRows(summaries) {
		status := "ok"
		if r.Error != "" {
			status = errStyle.Render(r.Error)
		}
		t.Row(r.Name, r.Core, r.ISA, r.Fingerprint[:8], status)
	}
	return t.Render()
}
