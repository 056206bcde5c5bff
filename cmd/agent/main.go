package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Schera-ole/jmx-telegraf/internal/agent"
	"github.com/Schera-ole/jmx-telegraf/internal/endpoint"
	"github.com/Schera-ole/jmx-telegraf/internal/jmx"
	"github.com/Schera-ole/jmx-telegraf/internal/jolokia"
	"github.com/Schera-ole/jmx-telegraf/internal/logger"
	"github.com/Schera-ole/jmx-telegraf/internal/metriclist"
	"github.com/Schera-ole/jmx-telegraf/internal/repository"
	"github.com/Schera-ole/jmx-telegraf/internal/service"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if agent.IsHelp(err) {
			fmt.Fprintln(os.Stdout, err)
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	agentConfig, err := agent.NewAgentConfig(args)
	if err != nil {
		return err
	}

	log, closeLog, err := logger.New(agentConfig.Settings)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connector := jolokia.NewClient(jolokia.Config{
		Timeout:  agentConfig.Settings.Timeout,
		Username: agentConfig.Settings.Username,
		Password: agentConfig.Settings.Password,
	}, log)

	if err := poll(ctx, agentConfig, connector, endpoint.NewResolver(log), log); err != nil {
		log.Errorw("Run failed", "error", err)
		return err
	}
	return nil
}

// poll performs one run: it loads the metric list, resolves the endpoints and
// writes the output file. The previous output is replaced only when the run
// completes.
func poll(
	ctx context.Context,
	agentConfig *agent.AgentConfig,
	connector jmx.Connector,
	resolver *endpoint.Resolver,
	log *zap.SugaredLogger,
) error {

	settings := agentConfig.Settings

	specs, err := metriclist.Load(settings.MetricList)
	if err != nil {
		return err
	}

	endpoints := agentConfig.Options.Endpoints(ctx, resolver)
	log.Debugw("JMX URL", "endpoints", endpoints)

	storage, err := repository.NewFileStorage(settings.OutputFile)
	if err != nil {
		return err
	}

	poller := service.NewPoller(connector, storage, specs, service.Options{
		Hostname:            settings.Hostname,
		StaticTags:          settings.StaticTags(),
		IndexUnmappedFields: settings.IndexUnmappedFields,
	}, log)

	runErr := poller.Run(ctx, endpoints)
	if runErr == nil {
		runErr = storage.Commit()
	}
	return multierr.Append(runErr, storage.Close())
}
