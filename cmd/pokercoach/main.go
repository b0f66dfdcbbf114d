package main

import (
	"errors"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/pokerlab/pokercoach/internal/config"
)

// Context is passed to every subcommand
type Context struct {
	Logger *log.Logger
	Config *config.Config
}

type CLI struct {
	Config  string `help:"Path to the HCL config file" default:"pokercoach.hcl"`
	EnvFile string `help:"Env file holding AWS credentials for advice" default:"api-keys"`
	Debug   bool   `short:"d" help:"Enable debug logging"`

	Odds OddsCmd `cmd:"" help:"One-shot Monte Carlo equity for a hand"`
	Rank RankCmd `cmd:"" help:"Evaluate and classify a 5-7 card hand"`
	Play PlayCmd `cmd:"" help:"Interactive staged hand walkthrough with advice"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokercoach"),
		kong.Description("Monte Carlo poker equity simulator and hand coach"))

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if cli.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	// Credentials for the advice backend live in a dotenv file, if present.
	if err := godotenv.Load(cli.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("failed to load env file", "path", cli.EnvFile, "err", err)
	}

	cfg, err := config.Load(cli.Config)
	if err != nil {
		logger.Fatal("failed to load config", "path", cli.Config, "err", err)
	}

	err = ctx.Run(&Context{Logger: logger, Config: cfg})
	ctx.FatalIfErrorf(err)
}
