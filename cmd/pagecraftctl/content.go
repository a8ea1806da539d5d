package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pagecraft/internal/client"
)

func newListCmd(a *app) *cobra.Command {
	var mine bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List content, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.api.ListContent(cmd.Context(), mine)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSTATUS\tAUTHOR\tTITLE")
			for _, c := range items {
				author := "-"
				if c.Author != nil {
					author = c.Author.Username
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ID, c.Status, author, c.Title)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&mine, "mine", false, "only my content")
	return cmd
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Print one record as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.api.GetContent(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, c)
		},
	}
}

// contentFlags are the editable fields shared by create and update.
type contentFlags struct {
	title    string
	status   string
	htmlFile string
	cssFile  string
}

func (f *contentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "page title")
	cmd.Flags().StringVar(&f.status, "status", "", "Draft or Published")
	cmd.Flags().StringVar(&f.htmlFile, "html-file", "", "file with the page markup")
	cmd.Flags().StringVar(&f.cssFile, "css-file", "", "file with the page stylesheet")
}

// request builds a request carrying only the flags that were set.
func (f *contentFlags) request(cmd *cobra.Command) (client.ContentRequest, error) {
	var req client.ContentRequest
	if cmd.Flags().Changed("title") {
		req.Title = &f.title
	}
	if cmd.Flags().Changed("status") {
		req.Status = &f.status
	}
	if f.htmlFile != "" {
		data, err := os.ReadFile(f.htmlFile)
		if err != nil {
			return req, fmt.Errorf("read markup: %w", err)
		}
		html := string(data)
		req.GjsHTML = &html
	}
	if f.cssFile != "" {
		data, err := os.ReadFile(f.cssFile)
		if err != nil {
			return req, fmt.Errorf("read stylesheet: %w", err)
		}
		css := string(data)
		req.GjsCSS = &css
	}
	return req, nil
}

func newCreateCmd(a *app) *cobra.Command {
	var f contentFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := f.request(cmd)
			if err != nil {
				return err
			}
			c, err := a.api.CreateContent(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.ID)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var f contentFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := f.request(cmd)
			if err != nil {
				return err
			}
			c, err := a.api.UpdateContent(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s updated at %s\n", c.ID, c.UpdatedAt.Format("2006-01-02 15:04:05"))
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.api.DeleteContent(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted", id)
			return nil
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Download a page as a standalone HTML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, doc, err := a.api.ExportContent(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if name == "" {
				name = args[0] + ".html"
			}
			path := filepath.Join(dir, filepath.Base(name))
			if err := os.WriteFile(path, doc, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "output directory")
	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
