package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"neurotree/internal/version"
	"neurotree/pkg/config"
	"neurotree/pkg/importer"
	"neurotree/pkg/tree"
)

// app holds the state shared by all subcommands
type app struct {
	configPath string
	separator  string
	header     bool
	columns    []string
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "neurotree",
		Short: "Inspect brain-region ontologies and traced skeletons",
		Long: `neurotree imports parent-indexed records (id,parent_id,fields...) into a tree
and answers structural queries: traversal, leaves, branches, ancestry and the
decomposition into linear segments used to render traces as polylines.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.Version = version.Version
	root.SetVersionTemplate(fmt.Sprintf("neurotree %s\n", version.String()))

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "neurotree.yaml", "Path to YAML config file")
	flags.StringVar(&a.separator, "sep", "", "Field separator (default: sniffed from input)")
	flags.BoolVar(&a.header, "header", false, "Treat the first line as a header (overrides config)")
	flags.StringSliceVar(&a.columns, "columns", nil, "Explicit header columns, id and parent included")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newInfoCmd(a),
		newLeavesCmd(a),
		newBranchesCmd(a),
		newPathCmd(a),
		newTraverseCmd(a),
		newSegmentsCmd(a),
		newLookupCmd(a),
		newRenderCmd(a),
		newInitConfigCmd(a),
	)

	return root
}

// setup loads the config file and applies flag overrides
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("header") {
		cfg.Import.HasHeader = a.header
	}
	if flags.Changed("columns") {
		cfg.Import.Header = a.columns
	}
	if flags.Changed("verbose") {
		cfg.Output.Verbose = a.verbose
	}
	a.cfg = cfg

	level := slog.LevelInfo
	if cfg.Output.Verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)

	return nil
}

// importOptions resolves the import options for text
func (a *app) importOptions(text string) importer.Options {
	sep := a.separator
	if sep == "" {
		sep = a.cfg.Separator()
	}
	if sep == `\t` {
		sep = "\t"
	}
	if sep == "" {
		sep = importer.SniffSeparator(text)
	}

	return importer.Options{
		Separator: sep,
		HasHeader: a.cfg.Import.HasHeader,
		Header:    a.cfg.Import.Header,
		Logger:    a.logger,
	}
}

// loadTree reads and imports a record file
func (a *app) loadTree(path string) (*tree.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	text := string(data)
	opts := a.importOptions(text)

	a.logger.Debug("importing records",
		slog.String("file", path),
		slog.String("separator", fmt.Sprintf("%q", opts.Separator)),
		slog.Bool("header", opts.HasHeader || opts.Header != nil))

	t, err := importer.ImportText(text, opts)
	if err != nil {
		return nil, fmt.Errorf("error importing %s: %w", path, err)
	}
	return t, nil
}

// parseID parses a node id argument
func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid node id %q", s)
	}
	return id, nil
}
