package commands

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/lago-client/internal/constants"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  "Display detailed version information about the Lago CLI",
		RunE: func(cmd *cobra.Command, args []string) error {
			type VersionInfo struct {
				Version       string `json:"version"        yaml:"version"`
				Commit        string `json:"commit"         yaml:"commit"`
				Built         string `json:"built"          yaml:"built"`
				ClientVersion string `json:"client_version" yaml:"client_version"`
			}

			versionInfo := VersionInfo{
				Version:       version,
				Commit:        commit,
				Built:         date,
				ClientVersion: constants.Version,
			}

			return render(cmd, versionInfo, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("Version", version)
				_ = table.Append("Commit", commit)
				_ = table.Append("Built", date)
				_ = table.Append("Client", constants.Version)
			})
		},
	}
}
