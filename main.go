package main

import (
	"fmt"
	"os"

	"tasknest-service/config"
	"tasknest-service/server"

	"github.com/spf13/pflag"
	"github.com/umakantv/go-utils/db/migrations"
	"go.uber.org/zap"
)

func main() {
	flags := pflag.NewFlagSet("tasknest", pflag.ContinueOnError)
	commandFlag := flags.String("command", "start", "Command to run (start, create-migration)")
	configFlag := flags.String("config", "", "Path to a YAML config file; environment variables override it")
	nameFlag := flags.String("name", "", "Migration name (alphanum+underscore only)")
	dirFlag := flags.String("dir", "./database/migrations", "Target directory for the new .sql file")

	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	switch *commandFlag {
	case "start":
		start(*configFlag)
	case "create-migration":
		if *nameFlag == "" {
			fmt.Fprintln(os.Stderr, "create-migration requires --name")
			os.Exit(2)
		}
		migrations.CreateMigration(nameFlag, dirFlag)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", *commandFlag)
		fmt.Fprintln(os.Stderr, "Usage: tasknest --command <start|create-migration> [... other options]")
		flags.PrintDefaults()
		os.Exit(2)
	}
}

func start(configPath string) {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	logger, err := server.NewLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "building logger: %v\n", err)
		os.Exit(1)
	}
	zap.ReplaceGlobals(logger)

	server.StartServer(cfg, logger)
}
