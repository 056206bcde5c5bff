// Package agent holds the command line surface of the poller.
package agent

import (
	"github.com/jessevdk/go-flags"

	"github.com/Schera-ole/jmx-telegraf/internal/config"
)

// Options defines command line options.
type Options struct {
	Server     string `short:"s" long:"server" description:"management agent host" default:"127.0.0.1"`
	Port       string `short:"p" long:"port" description:"management agent port" default:"8778"`
	PIDs       string `short:"n" long:"pid" description:"comma separated pids of java processes; the agent URL is read from each process"`
	ConfigFile string `short:"c" long:"config" description:"YAML configuration file" env:"JMX_CONFIG"`
}

// AgentConfig is everything a run needs to start.
type AgentConfig struct {
	Options  *Options
	Settings *config.Config
}

// ParseOptions parses args (without the program name).
func ParseOptions(args []string) (*Options, error) {
	opt := &Options{}
	parser := flags.NewParser(opt, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "jmx-telegraf"

	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}
	return opt, nil
}

// IsHelp reports whether err is the result of -h; its message is the usage text.
func IsHelp(err error) bool {
	return flags.WroteHelp(err)
}

// NewAgentConfig parses args and loads the configuration file they name.
func NewAgentConfig(args []string) (*AgentConfig, error) {
	opt, err := ParseOptions(args)
	if err != nil {
		return nil, err
	}

	settings, err := config.Load(opt.ConfigFile)
	if err != nil {
		return nil, err
	}
	return &AgentConfig{Options: opt, Settings: settings}, nil
}
