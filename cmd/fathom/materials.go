package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"fathom/internal/bootstrap"
)

func newMaterialsCmd(opts *rootOptions) *cobra.Command {
	materials := &cobra.Command{Use: "materials", Short: "Guides, modules and workbooks"}

	materials.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List materials with their lock state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.MaterialsCLI.List(ctx)
				if err != nil {
					return err
				}
				return emit(cmd, opts, out, func(w io.Writer) {
					_, _ = fmt.Fprintf(w, "%d XP available\n", out.Experience)
					for _, m := range out.Materials {
						state := "open"
						switch {
						case m.Locked && m.Affordable:
							state = fmt.Sprintf("locked, %d XP (affordable)", m.Cost)
						case m.Locked:
							state = fmt.Sprintf("locked, %d XP", m.Cost)
						case m.Owned:
							state = "owned"
						}
						_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.ID, m.Kind, m.Name, state)
					}
				})
			})
		},
	})

	var page int
	var external bool
	open := &cobra.Command{
		Use:   "open <id>",
		Short: "Read a material: one PDF page or the module text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.MaterialsCLI.Open(ctx, args[0], page, external)
				if err != nil {
					return err
				}
				return emit(cmd, opts, out, func(w io.Writer) {
					if out.ExternalLaunched {
						_, _ = fmt.Fprintf(w, "opened externally: %s\n", out.ExternalTarget)
					}
					if out.TotalPages > 0 {
						_, _ = fmt.Fprintf(w, "%s  page %d/%d\n\n", out.Material.Name, out.Page, out.TotalPages)
					}
					_, _ = fmt.Fprintln(w, out.Content)
				})
			})
		},
	}
	open.Flags().IntVar(&page, "page", 1, "pdf page")
	open.Flags().BoolVar(&external, "external", false, "also open the PDF in the desktop viewer")
	materials.AddCommand(open)

	materials.AddCommand(&cobra.Command{
		Use:   "unlock <id>",
		Short: "Spend experience to unlock a material",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.MaterialsCLI.Unlock(ctx, args[0])
				if err != nil {
					return err
				}
				return emit(cmd, opts, out, func(w io.Writer) {
					_, _ = fmt.Fprintf(w, "unlocked %s\n", out.Material.Name)
					printOutcomes(w, out.Outcomes)
				})
			})
		},
	})

	materials.AddCommand(&cobra.Command{
		Use:   "pdfs",
		Short: "List PDFs in the PDF directory, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				files, err := app.MaterialsCLI.PDFs(ctx)
				if err != nil {
					return err
				}
				return emit(cmd, opts, files, func(w io.Writer) {
					if len(files) == 0 {
						_, _ = fmt.Fprintln(w, "no pdfs")
						return
					}
					for _, f := range files {
						_, _ = fmt.Fprintf(w, "%s\t%s\t%d bytes\t%s\n", f.Filename, f.DisplayName, f.Size, f.Modified.Local().Format("2006-01-02 15:04"))
					}
				})
			})
		},
	})

	var category string
	var enabledOnly bool
	modules := &cobra.Command{
		Use:   "modules",
		Short: "List the topic modules, optionally by category or enabled only",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.MaterialsCLI.Modules(ctx, category, enabledOnly)
				if err != nil {
					return err
				}
				return emit(cmd, opts, out, func(w io.Writer) {
					if len(out.Modules) == 0 {
						_, _ = fmt.Fprintln(w, "no modules")
						return
					}
					for _, m := range out.Modules {
						state := "enabled"
						if !m.Enabled {
							state = "coming soon"
						}
						_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.Slug, m.Category, m.Title, state)
					}
				})
			})
		},
	}
	modules.Flags().StringVar(&category, "category", "", "only modules of this category")
	modules.Flags().BoolVar(&enabledOnly, "enabled", false, "hide disabled modules")
	materials.AddCommand(modules)

	materials.AddCommand(&cobra.Command{
		Use:   "module <slug>",
		Short: "Show a module with its materials and mapped markdown sections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.MaterialsCLI.Module(ctx, args[0])
				if err != nil {
					return err
				}
				return emit(cmd, opts, out, func(w io.Writer) {
					if out.Module != nil {
						_, _ = fmt.Fprintf(w, "%s (%s)\n%s\n", out.Module.Title, out.Module.Category, out.Module.Description)
					}
					for _, m := range out.Materials {
						state := "open"
						if m.Locked {
							state = fmt.Sprintf("locked, %d XP", m.Cost)
						}
						_, _ = fmt.Fprintf(w, "  material %s\t%s\n", m.ID, state)
					}
					if out.Module != nil || len(out.Materials) > 0 {
						_, _ = fmt.Fprintln(w)
					}
					_, _ = fmt.Fprintln(w, out.Content)
				})
			})
		},
	})
	return materials
}
