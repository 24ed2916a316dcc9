package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"neurotree/internal/models"
	"neurotree/pkg/config"
	"neurotree/pkg/ontology"
	"neurotree/pkg/skeleton"
	"neurotree/pkg/tree"
	"neurotree/pkg/visualization"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Summarize the shape of a tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.loadTree(args[0])
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), summarize(args[0], t, a.cfg.Segments.Link))
			return nil
		},
	}
}

// summarize counts node kinds below the sentinel root
func summarize(source string, t *tree.Tree, link bool) models.Summary {
	s := models.Summary{Source: source}
	for id := range t.Traverse(tree.RootID, tree.Depth) {
		if id == tree.RootID {
			continue
		}
		s.Nodes++
		switch {
		case t.IsLeaf(id):
			s.Leaves++
		case t.IsBranch(id):
			s.Branches++
		default:
			s.ChainNodes++
		}
		if d := t.Depth(id); d > s.MaxDepth {
			s.MaxDepth = d
		}
	}
	s.Segments = len(t.FindSegments(link, tree.RootID))
	return s
}

func newLeavesCmd(a *app) *cobra.Command {
	var from int
	cmd := &cobra.Command{
		Use:   "leaves <file>",
		Short: "List leaf nodes in depth traversal order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.loadTree(args[0])
			if err != nil {
				return err
			}
			printIDs(cmd.OutOrStdout(), t.FindLeaves(from))
			return nil
		},
	}
	cmd.Flags().IntVar(&from, "from", tree.RootID, "Start node id")
	return cmd
}

func newBranchesCmd(a *app) *cobra.Command {
	var from int
	cmd := &cobra.Command{
		Use:   "branches <file>",
		Short: "List branch nodes in depth traversal order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.loadTree(args[0])
			if err != nil {
				return err
			}
			printIDs(cmd.OutOrStdout(), t.FindBranches(from))
			return nil
		},
	}
	cmd.Flags().IntVar(&from, "from", tree.RootID, "Start node id")
	return cmd
}

func newPathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "path <file> <id>",
		Short: "Print the ancestry of a node up to the sentinel root",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			t, err := a.loadTree(args[0])
			if err != nil {
				return err
			}
			path := t.PathToRoot(id)
			if path == nil {
				return fmt.Errorf("node %d not found", id)
			}
			fmt.Fprintln(cmd.OutOrStdout(), joinIDs(path, " -> "))
			return nil
		},
	}
}

func newTraverseCmd(a *app) *cobra.Command {
	var from int
	var width bool
	cmd := &cobra.Command{
		Use:   "traverse <file>",
		Short: "Print node ids in traversal order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.loadTree(args[0])
			if err != nil {
				return err
			}
			mode := tree.Depth
			if width {
				mode = tree.Width
			}
			for id := range t.Traverse(from, mode) {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&from, "from", tree.RootID, "Start node id")
	cmd.Flags().BoolVar(&width, "width", false, "Breadth-first instead of depth-first")
	return cmd
}

func newSegmentsCmd(a *app) *cobra.Command {
	var start int
	var link bool
	cmd := &cobra.Command{
		Use:   "segments <file>",
		Short: "Decompose the tree into maximal linear segments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.loadTree(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("link") {
				link = a.cfg.Segments.Link
			}
			segs := t.FindSegments(link, start)
			a.logger.Debug("segments found", slog.Int("count", len(segs)), slog.Bool("link", link))
			for _, seg := range segs {
				fmt.Fprintln(cmd.OutOrStdout(), joinIDs(seg, ","))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&start, "start", tree.RootID, "Start node id")
	cmd.Flags().BoolVar(&link, "link", true, "Prefix each segment with its start node's parent")
	return cmd
}

func newLookupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <file> <id|name|acronym>",
		Short: "Look up a brain region and print its lineage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.loadTree(args[0])
			if err != nil {
				return err
			}
			atlas := ontology.New(t)

			id, err := parseID(args[1])
			if err != nil {
				if id, err = atlas.FindByName(args[1]); err != nil {
					if id, err = atlas.FindByAcronym(args[1]); err != nil {
						return err
					}
				}
			}

			name, ok := atlas.Name(id)
			if !ok {
				return fmt.Errorf("region %d: %w", id, ontology.ErrRegionNotFound)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", titleStyle.Render(name), dimStyle.Render(fmt.Sprintf("(%d)", id)))
			if acr, ok := atlas.Acronym(id); ok {
				fmt.Fprintf(out, "%s %s\n", dimStyle.Render("Acronym:"), acr)
			}
			for i, n := range atlas.Lineage(id) {
				fmt.Fprintf(out, "%*s%s\n", 2*i, "", n)
			}
			return nil
		},
	}
}

func newRenderCmd(a *app) *cobra.Command {
	var out, axis string
	var link bool
	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a traced skeleton to a JPEG or PNG image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.loadTree(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("link") {
				link = a.cfg.Segments.Link
			}
			if axis == "" {
				axis = a.cfg.Render.Axis
			}

			trace := skeleton.New(t)
			lines, err := trace.Polylines(link)
			if err != nil {
				return err
			}
			stats, err := trace.ComputeStats(link)
			if err != nil {
				return err
			}

			r := a.cfg.Render
			viewer := visualization.NewViewer(r.Width, r.Height, r.Margin, axis)
			img, err := viewer.Render(lines)
			if err != nil {
				return err
			}
			if err := visualization.SaveImage(img, out); err != nil {
				return fmt.Errorf("error saving image: %w", err)
			}

			a.logger.Info("trace rendered",
				slog.String("output", out),
				slog.Int("segments", stats.Segments),
				slog.Float64("total_length", stats.TotalLength),
				slog.Float64("mean_length", stats.MeanLength))
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d segments, total length %.2f -> %s\n",
				titleStyle.Render("Rendered"), stats.Segments, stats.TotalLength, out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "trace.png", "Output image path (.png or .jpg)")
	cmd.Flags().StringVar(&axis, "axis", "", "Axis to project away: x, y or z (default from config)")
	cmd.Flags().BoolVar(&link, "link", true, "Share endpoints between adjacent segments")
	return cmd
}

func newInitConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init-config [path]",
		Short: "Write a default configuration file",
		Args:  cobra.MaximumNArgs(1),
		// the config being written may not exist or be valid yet
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configPath
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.CreateDefaultConfigFile(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", path)
			return nil
		},
	}
}
