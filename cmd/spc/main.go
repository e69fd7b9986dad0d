package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/BTBurke/spc"
	"github.com/BTBurke/spc/pkg/render"
	"github.com/spf13/pflag"
)

func main() {

	args, opts, err := spc.ParseCommandLine()
	if err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			fmt.Printf("Could not parse configuration: %s\n\nUse spc --help for options\n", err)
		}
		os.Exit(1)
	}
	if len(args) > 0 {
		opts = append(opts, spc.Input(args[0]))
	}

	cmd, errs := spc.NewCommand(opts...)
	if len(errs) > 0 {
		fmt.Println("Error in config:")
		for _, e := range errs {
			fmt.Println(e)
		}
		os.Exit(1)
	}
	if cmd.Config.Verbose {
		cmd.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	cmd.SetRenderer(render.New())

	if err := cmd.Exec(); err != nil {
		fmt.Println("Analysis error:", err)
		os.Exit(1)
	}

	os.Exit(0)
}
