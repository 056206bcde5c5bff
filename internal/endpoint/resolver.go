// Package endpoint turns command line targets into agent URLs.
package endpoint

import (
	"context"
	"fmt"
	"net"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
	"go.uber.org/zap"

	internalerrors "github.com/Schera-ole/jmx-telegraf/internal/errors"
	models "github.com/Schera-ole/jmx-telegraf/internal/model"
)

const (
	DefaultHost    = "127.0.0.1"
	DefaultPort    = "8778"
	DefaultContext = "/jolokia"
)

// CommandLineFunc returns the argument vector of a process.
type CommandLineFunc func(ctx context.Context, pid int32) ([]string, error)

// Resolver produces the endpoints of one run.
type Resolver struct {
	cmdline CommandLineFunc
	logger  *zap.SugaredLogger
}

func NewResolver(logger *zap.SugaredLogger) *Resolver {
	return &Resolver{cmdline: processCmdline, logger: logger}
}

// NewResolverWithCommandLine uses cmdline instead of the process table.
func NewResolverWithCommandLine(cmdline CommandLineFunc, logger *zap.SugaredLogger) *Resolver {
	return &Resolver{cmdline: cmdline, logger: logger}
}

func processCmdline(ctx context.Context, pid int32) ([]string, error) {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return nil, err
	}
	return p.CmdlineSliceWithContext(ctx)
}

// URL builds the agent URL for host and port.
func URL(host, port string) string {
	return "http://" + net.JoinHostPort(host, port) + DefaultContext
}

// FromHostPort returns the single endpoint given explicitly on the command line.
func (r *Resolver) FromHostPort(host, port string) []models.Endpoint {
	r.logger.Debug("Retrieve url from command line parameters")
	return []models.Endpoint{{URL: URL(host, port)}}
}

// FromPIDs returns one endpoint per comma separated pid, in order. A pid
// that cannot be resolved yields an absent endpoint and a warning.
func (r *Resolver) FromPIDs(ctx context.Context, pids string) []models.Endpoint {
	r.logger.Debugf("Try to retrieve agent URL from pids %s", pids)

	var endpoints []models.Endpoint
	for _, pid := range strings.Split(pids, ",") {
		pid = strings.TrimSpace(pid)
		url, err := r.fromPID(ctx, pid)
		if err != nil {
			r.logger.Warnw("Cannot retrieve agent URL from pid", "pid", pid, "error", err)
		}
		endpoints = append(endpoints, models.Endpoint{URL: url, PID: pid})
	}
	return endpoints
}

func (r *Resolver) fromPID(ctx context.Context, pid string) (string, error) {
	n, err := strconv.ParseInt(pid, 10, 32)
	if err != nil || n <= 0 {
		return "", fmt.Errorf("%w: invalid pid %q", internalerrors.ErrEndpointUnresolved, pid)
	}

	args, err := r.cmdline(ctx, int32(n))
	if err != nil {
		return "", fmt.Errorf("%w: %w", internalerrors.ErrEndpointUnresolved, err)
	}

	url, ok := AgentURL(args)
	if !ok {
		return "", fmt.Errorf("%w: no jolokia agent in command line", internalerrors.ErrEndpointUnresolved)
	}
	return url, nil
}

// AgentURL finds a -javaagent argument loading the Jolokia agent and
// returns the URL it listens on.
func AgentURL(args []string) (string, bool) {
	for _, arg := range args {
		spec, found := strings.CutPrefix(arg, "-javaagent:")
		if !found {
			continue
		}
		jar, options, _ := strings.Cut(spec, "=")
		if !strings.Contains(strings.ToLower(filepath.Base(jar)), "jolokia") {
			continue
		}
		return agentURL(options), true
	}
	return "", false
}

func agentURL(options string) string {
	host, port, agentContext, protocol := DefaultHost, DefaultPort, DefaultContext, "http"

	for _, opt := range strings.Split(options, ",") {
		key, value, ok := strings.Cut(opt, "=")
		if !ok || value == "" {
			continue
		}
		switch strings.TrimSpace(key) {
		case "host":
			host = value
		case "port":
			port = value
		case "agentContext":
			agentContext = value
		case "protocol":
			protocol = value
		}
	}

	if host == "*" || host == "0.0.0.0" {
		host = DefaultHost
	}
	if !strings.HasPrefix(agentContext, "/") {
		agentContext = "/" + agentContext
	}
	return protocol + "://" + net.JoinHostPort(host, port) + strings.TrimRight(agentContext, "/")
}
