package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/karstenskyt/osti/internal/logger"
)

func ostiMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Color && cfg.NoColor {
		return fmt.Errorf("%w: -color and -no-color are exclusive", cli.ErrUsage)
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.log = log
	defer log.Sync()

	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	log.Debug("running command", "command", args[0], "args", args[1:])
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}
