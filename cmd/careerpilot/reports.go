package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/careerpilot/careerpilot/pkg/ui"
)

func newReportsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Manage saved reports",
	}
	cmd.AddCommand(newReportsListCmd(c), newReportsShowCmd(c), newReportsDeleteCmd(c))
	return cmd
}

func newReportsListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved reports, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			d, err := setup(ctx, c.cfg, c.log)
			if err != nil {
				return err
			}
			defer d.Close()
			if err := d.requireSession(ctx); err != nil {
				return err
			}

			list, err := d.reports.List(ctx)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved reports yet.")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tNAME\tCAREERS")
			for _, r := range list {
				titles := make([]string, 0, len(r.Careers))
				for _, rec := range r.Careers {
					titles = append(titles, rec.Title)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, r.Date, r.Name, strings.Join(titles, ", "))
			}
			return w.Flush()
		},
	}
}

func newReportsShowCmd(c *cli) *cobra.Command {
	var width int
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Render a saved report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid report id: %w", err)
			}
			ctx := cmd.Context()
			d, err := setup(ctx, c.cfg, c.log)
			if err != nil {
				return err
			}
			defer d.Close()
			if err := d.requireSession(ctx); err != nil {
				return err
			}

			r, err := d.reports.Get(ctx, id)
			if err != nil {
				return err
			}
			out, err := ui.RenderReport(r, width)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 100, "wrap width")
	return cmd
}

func newReportsDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid report id: %w", err)
			}
			ctx := cmd.Context()
			d, err := setup(ctx, c.cfg, c.log)
			if err != nil {
				return err
			}
			defer d.Close()
			if err := d.requireSession(ctx); err != nil {
				return err
			}

			if err := d.reports.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Report deleted.")
			return nil
		},
	}
}
