package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/quantmind-br/pkgfile-go/internal/app"
	"github.com/quantmind-br/pkgfile-go/internal/config"
	"github.com/quantmind-br/pkgfile-go/internal/document"
	"github.com/quantmind-br/pkgfile-go/internal/domain"
	"github.com/quantmind-br/pkgfile-go/internal/output"
	"github.com/quantmind-br/pkgfile-go/internal/utils"
	"github.com/quantmind-br/pkgfile-go/pkg/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(exitCode(err))
	}
}

// Exit codes
const (
	exitError       = 1
	exitNotFound    = 2
	exitInvalidJSON = 3
)

// exitCode maps an error to the process exit status so scripts can tell
// a missing manifest from a malformed one
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case domain.IsNotFound(err):
		return exitNotFound
	case domain.IsParseError(err):
		return exitInvalidJSON
	default:
		return exitError
	}
}

// rootOptions holds values of the persistent flags
type rootOptions struct {
	cfgFile string
	verbose bool
	format  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "pkgfile",
		Short: "Edit package.json files without disturbing their formatting",
		Long: `pkgfile reads and rewrites JSON package manifests.

Every write keeps the file's indentation unit and whether it ends with a
newline, so diffs only show the values that actually changed.`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is ~/.pkgfile/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().String("indent", "", "Indent used when a file's indentation cannot be detected")
	rootCmd.PersistentFlags().StringVarP(&opts.format, "output", "o", "text", "Output format (text, json, yaml)")

	_ = viper.BindPFlag("format.default_indent", rootCmd.PersistentFlags().Lookup("indent"))

	rootCmd.AddCommand(
		newGetCmd(opts),
		newSetCmd(opts),
		newUnsetCmd(opts),
		newAddDepCmd(opts),
		newRemoveDepCmd(opts),
		newFmtCmd(opts),
		newStyleCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(opts),
	)
	return rootCmd
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.cfgFile != "" {
		viper.SetConfigFile(utils.ExpandPath(o.cfgFile))
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// setup loads configuration and builds the editor for a command
func (o *rootOptions) setup(cmd *cobra.Command) (*app.Editor, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}

	logger := utils.NewLogger(utils.LoggerOptions{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Output:  cmd.ErrOrStderr(),
		Verbose: o.verbose,
	})

	editor, err := app.NewEditor(app.EditorOptions{
		Config:  cfg,
		Logger:  logger,
		Verbose: o.verbose,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create editor: %w", err)
	}
	return editor, nil
}

func (o *rootOptions) writer(cmd *cobra.Command) (*output.Writer, error) {
	format, err := output.ParseFormat(o.format)
	if err != nil {
		return nil, err
	}
	return output.NewWriter(output.WriterOptions{
		Output: cmd.OutOrStdout(),
		Format: format,
	}), nil
}

func newGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <file> [key.path]",
		Short: "Print a manifest or one of its values",
		Example: `  pkgfile get package.json
  pkgfile get package.json dependencies.react
  pkgfile get package.json scripts -o yaml`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := opts.writer(cmd)
			if err != nil {
				return err
			}
			editor, err := opts.setup(cmd)
			if err != nil {
				return err
			}

			keyPath := ""
			if len(args) == 2 {
				keyPath = args[1]
			}
			v, err := editor.Get(cmd.Context(), utils.ExpandPath(args[0]), keyPath)
			if err != nil {
				return err
			}
			return w.Write(v)
		},
	}
}

func newSetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <file> <key.path> <value>",
		Short: "Set a value, creating intermediate objects",
		Long: `Set a value in the manifest. The value is parsed as JSON; anything that
is not valid JSON is stored as a string.`,
		Example: `  pkgfile set package.json version 1.2.0
  pkgfile set package.json private true
  pkgfile set package.json publishConfig '{"access": "public"}'`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			editor, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			return editor.Set(cmd.Context(), utils.ExpandPath(args[0]), args[1], args[2])
		},
	}
}

func newUnsetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "unset <file> <key.path>",
		Short: "Remove a value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			editor, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			return editor.Unset(cmd.Context(), utils.ExpandPath(args[0]), args[1])
		},
	}
}

func newAddDepCmd(opts *rootOptions) *cobra.Command {
	var dev, peer, optional bool

	cmd := &cobra.Command{
		Use:   "add-dep <file> <name> <version>",
		Short: "Add or update a dependency",
		Long: `Add a dependency or update its version specifier. The specifier must be a
semver range, a dist-tag, a path or a protocol spec such as git+https: or
workspace:.`,
		Example: `  pkgfile add-dep package.json left-pad ^1.3.0
  pkgfile add-dep package.json typescript ~5.4.0 --dev`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			section := app.SectionDependencies
			switch {
			case dev:
				section = app.SectionDevDependencies
			case peer:
				section = app.SectionPeerDependencies
			case optional:
				section = app.SectionOptionalDependencies
			}

			editor, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			return editor.AddDependency(cmd.Context(), utils.ExpandPath(args[0]), section, args[1], args[2])
		},
	}

	cmd.Flags().BoolVarP(&dev, "dev", "D", false, "Add to devDependencies")
	cmd.Flags().BoolVar(&peer, "peer", false, "Add to peerDependencies")
	cmd.Flags().BoolVarP(&optional, "optional", "O", false, "Add to optionalDependencies")
	cmd.MarkFlagsMutuallyExclusive("dev", "peer", "optional")
	return cmd
}

func newRemoveDepCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-dep <file> <name>",
		Short: "Remove a dependency from every dependency section",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			editor, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			sections, err := editor.RemoveDependency(cmd.Context(), utils.ExpandPath(args[0]), args[1])
			if err != nil {
				return err
			}
			for _, s := range sections {
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s from %s\n", args[1], s)
			}
			return nil
		},
	}
}

func newFmtCmd(opts *rootOptions) *cobra.Command {
	var jobs int
	var progress bool

	cmd := &cobra.Command{
		Use:   "fmt <file>...",
		Short: "Rewrite manifests using their dominant indentation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			editor, err := opts.setup(cmd)
			if err != nil {
				return err
			}

			formatOpts := app.FormatAllOptions{Workers: jobs}
			if progress {
				bar := utils.NewProgressBar(len(args), utils.DescFormatting, cmd.ErrOrStderr())
				defer func() { _ = bar.Finish() }()
				formatOpts.OnDone = func(string, error) { _ = bar.Add(1) }
			}
			paths := make([]string, len(args))
			for i, arg := range args {
				paths[i] = utils.ExpandPath(arg)
			}
			return editor.FormatAll(cmd.Context(), paths, formatOpts)
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "Number of files formatted in parallel")
	cmd.Flags().BoolVar(&progress, "progress", false, "Show a progress bar")
	return cmd
}

func newStyleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "style <file>",
		Short: "Show the formatting a write to the file would use",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := opts.writer(cmd)
			if err != nil {
				return err
			}
			editor, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			style, err := editor.Style(cmd.Context(), utils.ExpandPath(args[0]))
			if err != nil {
				return err
			}

			if w.Format() == output.FormatText {
				return w.Write(fmt.Sprintf("indent=%q detected=%t trailing_newline=%t line_ending=%q bom=%t",
					style.Indent, style.IndentDetected, style.TrailingNewline, style.LineEnding, style.BOM))
			}
			return w.Write(document.New().
				Set("indent", style.Indent).
				Set("indent_detected", style.IndentDetected).
				Set("trailing_newline", style.TrailingNewline).
				Set("line_ending", style.LineEnding).
				Set("bom", style.BOM))
		},
	}
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the default config file path",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), config.ConfigFilePath())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := utils.ExpandPath(opts.cfgFile)
			if path == "" {
				if err := config.EnsureConfigDir(); err != nil {
					return err
				}
				path = config.ConfigFilePath()
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	})

	return cmd
}

func newVersionCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format == string(output.FormatText) {
				fmt.Fprintln(cmd.OutOrStdout(), version.Full())
				return nil
			}
			w, err := opts.writer(cmd)
			if err != nil {
				return err
			}
			return w.Write(version.Get())
		},
	}
}
