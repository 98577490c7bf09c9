package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"invoiceqa/classifier"
	"invoiceqa/config"
	"invoiceqa/models"
	"invoiceqa/service"
)

type cmdClassify struct {
	global *cmdGlobal

	flagRun bool
}

func (c *cmdClassify) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <question>",
		Short: "Print the SQL a question maps to, optionally running it",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.run,
	}

	cmd.Flags().BoolVar(&c.flagRun, "run", false, "Execute the statement against DATABASE_URL and print the rows")

	return cmd
}

func (c *cmdClassify) run(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")
	match := classifier.Resolve(question)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "rule: %s\n\n%s\n", match.Rule, match.SQL)

	if !c.flagRun {
		return nil
	}

	cfg := config.Load(c.global.flagEnvFile)
	pg, err := service.NewPostgresService(cfg.Database)
	if err != nil {
		return err
	}
	defer pg.Close()

	result, err := pg.Execute(cmd.Context(), match.SQL)
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	renderTable(out, result)
	fmt.Fprintf(out, "Found %d results\n", len(result.Records))
	return nil
}

func renderTable(w io.Writer, result *models.ResultSet) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader(result.Columns)

	for _, rec := range result.Records {
		row := make([]string, 0, rec.Len())
		for pair := rec.Oldest(); pair != nil; pair = pair.Next() {
			row = append(row, formatCell(pair.Value))
		}
		table.Append(row)
	}

	table.Render()
}

func formatCell(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case time.Time:
		return val.Format("2006-01-02")
	case float64:
		return fmt.Sprintf("%.2f", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
