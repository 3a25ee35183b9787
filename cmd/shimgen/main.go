package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/anoideaopen/introspect/core/logger"
	"github.com/anoideaopen/introspect/core/telemetry"
	"github.com/anoideaopen/introspect/internal/config"
	"github.com/anoideaopen/introspect/internal/shimgen"
	"github.com/anoideaopen/introspect/version"
	"github.com/scott-cotton/cli"
)

func main() {
	cli.MainContext(context.Background(), MainCommand())
}

func MainCommand() *cli.Command {
	cfg := &Config{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}

	return cli.NewCommand("shimgen").
		WithSynopsis("shimgen [opts]").
		WithDescription("Generate the registrations that make unexported methods of a package callable through reflectx.").
		WithOpts(sOpts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return run(cfg, cc, args)
		})
}

type Config struct {
	Dir     string `cli:"name=dir desc='package directory (default: current directory)'"`
	Output  string `cli:"name=o desc='output file, relative to the package directory (default: shims_gen.go)'"`
	Types   string `cli:"name=types desc='comma separated type names to register (default: every type with unexported methods)'"`
	Version bool   `cli:"name=version desc='print build information and exit'"`
}

func run(cfg *Config, cc *cli.Context, args []string) error {
	if cfg.Version {
		bi, err := version.BuildInfo()
		if err != nil {
			return err
		}
		fmt.Fprintln(cc.Out, version.Summary(bi))
		return nil
	}

	if len(args) > 0 {
		return fmt.Errorf("%w: unexpected arguments %q", cli.ErrUsage, args)
	}

	dir := cfg.Dir
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
	}

	var types []string
	for _, name := range strings.Split(cfg.Types, ",") {
		if name = strings.TrimSpace(name); name != "" {
			types = append(types, name)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	shutdown, err := telemetry.InstallTraceProvider(ctx, config.FromEnv().TraceEndpoint, "shimgen")
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Logger().WithError(err).Warn("failed to flush traces")
		}
	}()

	output, err := shimgen.Generate(ctx, shimgen.Config{
		Dir:    dir,
		Output: cfg.Output,
		Types:  types,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cc.Out, "Generated %s\n", output)
	return nil
}
