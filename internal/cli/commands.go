package cli

import (
	"fmt"
	"io/fs"

	"github.com/arthur-debert/conda-which/internal/version"
	"github.com/arthur-debert/conda-which/pkg/cobrax/topics"
	"github.com/arthur-debert/conda-which/pkg/config"
	"github.com/arthur-debert/conda-which/pkg/logging"
	"github.com/arthur-debert/conda-which/pkg/paths"
	"github.com/arthur-debert/conda-which/pkg/registry"
	"github.com/arthur-debert/conda-which/pkg/ui"
	"github.com/arthur-debert/conda-which/pkg/which"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// rootOptions holds the flags of the root command
type rootOptions struct {
	verbosity  int
	unix       bool
	json       bool
	format     string
	color      string
	configFile string

	// Modes that replace path resolution
	listEnvs   bool
	showConfig bool
	configPath bool
	topic      string
}

// session is the state a command run starts from
type session struct {
	paths      paths.Paths
	configFile string
	config     *config.Config
	sources    registry.Sources
}

// NewRootCmd creates and returns the root command. Every positional argument
// is a path: the extra modes are flags, so a file named like one of them is
// still resolved.
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	opts := &rootOptions{}
	help := newTopics()

	rootCmd := &cobra.Command{
		Use:     "conda-which FILE...",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.takesPaths() {
				return cobra.MinimumNArgs(1)(cmd, args)
			}
			if len(args) > 0 {
				return fmt.Errorf(MsgErrModeTakesNoPaths, args[0])
			}
			return nil
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(opts.verbosity, cmd.ErrOrStderr())
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case opts.listEnvs:
				return runListEnvs(cmd, opts)
			case opts.showConfig, opts.configPath:
				return runShowConfig(cmd, opts)
			case opts.topic != "":
				return runTopic(cmd, help, opts.topic)
			default:
				return runWhich(cmd, opts, args)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Output and config flags
	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.BoolVarP(&opts.unix, "unix", "u", false, MsgFlagUnix)
	flags.BoolVar(&opts.json, "json", false, MsgFlagJSON)
	flags.StringVar(&opts.format, "format", "", MsgFlagFormat)
	flags.StringVar(&opts.color, "color", "", MsgFlagColor)
	flags.StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	rootCmd.MarkFlagsMutuallyExclusive("unix", "json", "format")

	// Modes
	modes := rootCmd.Flags()
	modes.BoolVar(&opts.listEnvs, "list-envs", false, MsgFlagListEnvs)
	modes.BoolVar(&opts.showConfig, "show-config", false, MsgFlagShowConfig)
	modes.BoolVar(&opts.configPath, "config-path", false, MsgFlagConfigPath)
	modes.StringVar(&opts.topic, "topic", "", MsgFlagTopic)
	rootCmd.MarkFlagsMutuallyExclusive("list-envs", "show-config", "config-path", "topic")
	if help != nil {
		_ = rootCmd.RegisterFlagCompletionFunc("topic", help.Complete)
	}

	// --version prints the build information
	rootCmd.SetVersionTemplate(fmt.Sprintf(MsgVersionTemplate, version.Commit, version.Date))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = MsgFlagVersion

	// Set custom help template
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	return rootCmd
}

// takesPaths reports whether the run resolves its arguments as paths
func (o *rootOptions) takesPaths() bool {
	return !o.listEnvs && !o.showConfig && !o.configPath && o.topic == ""
}

// newTopics loads the markdown help topics, rendered with glamour
func newTopics() *topics.TopicManager {
	sub, err := fs.Sub(topicsFS, "topics")
	if err != nil {
		log.Debug().Err(err).Msg("Help topics unavailable")
		return nil
	}
	tm, err := topics.New(sub, topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewGlamourRenderer(),
	})
	if err != nil {
		log.Debug().Err(err).Msg("Help topics unavailable")
		return nil
	}
	return tm
}

func runTopic(cmd *cobra.Command, help *topics.TopicManager, name string) error {
	if help == nil {
		return fmt.Errorf(MsgErrNoTopics)
	}
	return help.Show(cmd.OutOrStdout(), name, MsgTopicHint)
}

func runWhich(cmd *cobra.Command, opts *rootOptions, args []string) error {
	s, err := opts.newSession()
	if err != nil {
		return err
	}

	reg, err := s.loadRegistry()
	if err != nil {
		return err
	}

	renderer, err := newRenderer(cmd, s.config)
	if err != nil {
		return err
	}

	resolver := which.New(reg)
	for _, arg := range args {
		res, err := resolver.Which(arg)
		if err != nil {
			// Keep what was already resolved
			_ = renderer.Flush()
			return err
		}
		if err := renderer.RenderResult(res); err != nil {
			return err
		}
	}
	return renderer.Flush()
}

// newSession resolves the path layout and loads the effective configuration,
// with the output flags layered on top. An explicit --config must exist; the
// default location is optional.
func (o *rootOptions) newSession() (*session, error) {
	p, err := paths.New()
	if err != nil {
		return nil, fmt.Errorf(MsgErrInitPaths, err)
	}

	configFile := o.configFile
	required := configFile != ""
	if !required {
		configFile = p.ConfigFile()
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: configFile,
		Required:   required,
		Overrides:  o.overrides(),
	})
	if err != nil {
		return nil, err
	}

	log.Debug().Str("configFile", configFile).Msg("Configuration loaded")

	return &session{
		paths:      p,
		configFile: configFile,
		config:     cfg,
		sources:    registry.Discover(cfg, p),
	}, nil
}

// loadRegistry takes the snapshot of known environments for this run
func (s *session) loadRegistry() (*registry.Registry, error) {
	done := logging.LogOperationStart(log.Logger, "load registry")
	defer done()

	reg, err := registry.NewLoader().Load(s.sources)
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadRegistry, err)
	}

	log.Info().
		Int("count", reg.Len()).
		Strs("environments", reg.Prefixes()).
		Msg("Known conda environments")
	return reg, nil
}

// overrides maps the output flags onto configuration keys. -u and --json
// are shorthands for --format.
func (o *rootOptions) overrides() map[string]interface{} {
	m := map[string]interface{}{}
	switch {
	case o.unix:
		m["output.format"] = "unix"
	case o.json:
		m["output.format"] = "json"
	case o.format != "":
		m["output.format"] = o.format
	}
	if o.color != "" {
		m["output.color"] = o.color
	}
	return m
}

// outputFormat maps the effective output settings to a renderer format
func outputFormat(cfg *config.Config) (ui.Format, error) {
	format, err := ui.ParseFormat(cfg.Output.Format)
	if err != nil {
		return ui.FormatAuto, err
	}
	return ui.ApplyColor(format, cfg.Output.Color), nil
}

func newRenderer(cmd *cobra.Command, cfg *config.Config) (ui.Renderer, error) {
	format, err := outputFormat(cfg)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("format", format.String()).Msg("Output format selected")
	return ui.NewRenderer(format, cmd.OutOrStdout())
}
