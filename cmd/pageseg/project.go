package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/swdee/go-pageseg/project"
)

func (a *app) projectCmd() *cobra.Command {

	var (
		outDir  string
		level   string
		padding float64
	)

	cmd := &cobra.Command{
		Use:   "project <page.xml>...",
		Short: "Shrink segment outlines onto the hull of their constituents",
		Long: "Replaces the outline of every segment at the given level with " +
			"the joined hull of the segments nested in it, optionally grown " +
			"by a padding, and clipped to the original outline.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {

			params := a.cfg.Project

			if cmd.Flags().Changed("level") {
				params.Level = project.Level(level)
			}

			if cmd.Flags().Changed("padding") {
				params.Padding = padding
			}

			return a.runPages(cmd.Context(), args, func(ctx context.Context, i int) error {
				return a.project(params, args[i], outDir)
			})
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory, the input files are overwritten when empty")
	cmd.Flags().StringVarP(&level, "level", "l", string(project.LevelPage), "hierarchy level: page, table, region or line")
	cmd.Flags().Float64VarP(&padding, "padding", "p", 0, "distance in pixels to grow the hulls by")

	return cmd
}

// project shrinks the segments of a single PAGE file
func (a *app) project(params project.Params, path, outDir string) error {

	f, err := a.loadPage(path)

	if err != nil {
		return err
	}

	p, err := project.New(params, f.log)

	if err != nil {
		return err
	}

	n, err := p.Process(f.page)

	if err != nil {
		return fmt.Errorf("page %s: %w", f.page.ID, err)
	}

	f.log.Infof("Projected %d %s segments", n, params.Level)

	return f.save(outDir)
}
