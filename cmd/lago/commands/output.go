package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/lago-client/internal/constants"
	"github.com/fivetwenty-io/lago-client/pkg/lago"
)

func validateOutput(format string) error {
	switch format {
	case "", constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
		return nil
	default:
		return fmt.Errorf("%w: %q", constants.ErrInvalidOutputFormat, format)
	}
}

// render writes data as JSON or YAML, or hands a table to fillTable.
func render(cmd *cobra.Command, data interface{}, fillTable func(*tablewriter.Table)) error {
	output := viper.GetString(keyOutput)

	err := validateOutput(output)
	if err != nil {
		return err
	}

	switch output {
	case constants.FormatJSON:
		return writeJSON(cmd, data)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(cmd.OutOrStdout())
		defer func() { _ = encoder.Close() }()

		return encoder.Encode(data)
	default:
		table := tablewriter.NewWriter(cmd.OutOrStdout())
		fillTable(table)

		err := table.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

// renderList prints "No <noun> found" for an empty table.
func renderList[T any](cmd *cobra.Command, items []T, noun string, header []any, row func(T) []any) error {
	if len(items) == 0 && viper.GetString(keyOutput) != constants.FormatJSON &&
		viper.GetString(keyOutput) != constants.FormatYAML {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No %s found\n", noun)

		return nil
	}

	return render(cmd, items, func(table *tablewriter.Table) {
		table.Header(header...)

		for _, item := range items {
			_ = table.Append(row(item)...)
		}
	})
}

// pageFlags are the pagination flags shared by list commands.
type pageFlags struct {
	page    int
	perPage int
	all     bool

	perPageSet func() bool
}

func (p *pageFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.page, "page", 1, "page number")
	cmd.Flags().IntVar(&p.perPage, "per-page", constants.DefaultPageSize, "results per page")
	cmd.Flags().BoolVar(&p.all, "all", false, "fetch all pages")

	p.perPageSet = func() bool { return cmd.Flags().Changed("per-page") }
}

// pageSize is --per-page, except that --all walks pages of LargePageSize
// unless --per-page was given.
func (p *pageFlags) pageSize() int {
	if p.all && (p.perPageSet == nil || !p.perPageSet()) {
		return constants.LargePageSize
	}

	return p.perPage
}

func (p *pageFlags) pagination(page int) lago.Pagination {
	return lago.Pagination{Page: lago.Ptr(page), PerPage: lago.Ptr(p.pageSize())}
}

// list fetches the selected page, or every page with --all.
func list[T any](ctx context.Context, p *pageFlags, fetch lago.PageFunc[T]) ([]T, error) {
	if p.all {
		return lago.CollectAll(ctx, constants.MaxPages, fetch)
	}

	resp, err := fetch(ctx, p.page)
	if err != nil {
		return nil, err
	}

	return resp.Items, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format(constants.DisplayDateFormat)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}

	return formatTime(*t)
}

func formatCents(cents int64, currency string) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	return fmt.Sprintf("%s%d.%02d %s", sign, cents/100, cents%100, currency)
}
