package cli

import (
	"embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort = "Find the conda environment and package a file belongs to"

	// Output
	MsgVersionTemplate = "{{.Name}} version {{.Version}}\n  commit: %s\n  built:  %s\n"
	MsgTopicHint       = "conda-which --topic NAME"

	// Error messages
	MsgErrInitPaths        = "failed to initialize paths: %w"
	MsgErrLoadRegistry     = "failed to load known environments: %w"
	MsgErrModeTakesNoPaths = "unexpected argument %q: --list-envs, --show-config, --config-path and --topic take no paths"
	MsgErrNoTopics         = "help topics are not available"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagUnix       = "Machine-readable output, one line per path"
	MsgFlagJSON       = "JSON output"
	MsgFlagFormat     = "Output format (auto, term, text, unix, json)"
	MsgFlagColor      = "Color output (auto, always, never)"
	MsgFlagConfig     = "Config file (default $XDG_CONFIG_HOME/conda-which/config.toml)"
	MsgFlagListEnvs   = "List the known conda environments and exit"
	MsgFlagShowConfig = "Print the effective configuration and exit"
	MsgFlagConfigPath = "Print the config file path and exit"
	MsgFlagTopic      = "Show a help topic (\"topics\" lists them)"
	MsgFlagVersion    = "Print version information"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)

// topicsFS holds the markdown help topics ("conda-which --topic <topic>")
//
//go:embed topics
var topicsFS embed.FS
