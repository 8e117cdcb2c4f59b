package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"aicoder/internal/store"

	"github.com/spf13/cobra"
)

func projectsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"p"},
		Short:   "List and edit projects without the UI",
	}
	cmd.AddCommand(projectsListCmd(opts))
	cmd.AddCommand(projectsAddCmd(opts))
	cmd.AddCommand(projectsRenameCmd(opts))
	cmd.AddCommand(projectsRemoveCmd(opts))
	return cmd
}

func projectsListCmd(opts *rootOptions) *cobra.Command {
	var (
		match  string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects, oldest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer repo.Close()

			projects, err := repo.List(cmd.Context())
			if err != nil {
				return err
			}
			projects, err = store.Filter(projects, match)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(projects)
			}
			if len(projects) == 0 {
				fmt.Fprintln(out, "No projects.")
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDATE\tTITLE")
			for _, p := range projects {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID, p.Date(), p.Title)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&match, "match", "m", "", "only list titles matching this glob (case-insensitive)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func projectsAddCmd(opts *rootOptions) *cobra.Command {
	var tags []string
	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer repo.Close()

			p, err := repo.Add(cmd.Context(), args[0], tags)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p.ID)
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&tags, "tag", "t", nil, "tag the project (repeatable)")
	return cmd
}

func projectsRenameCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID TITLE",
		Short: "Rename a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer repo.Close()
			return repo.Rename(cmd.Context(), args[0], args[1])
		},
	}
}

func projectsRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete a project",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer repo.Close()
			return repo.Delete(cmd.Context(), args[0])
		},
	}
}
