package elevutils

import (
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gnel3/elevator-challenge/internal/elevconfig"
)

//go:generate sh -c "printf %s $(git rev-parse HEAD) > githash.txt"
//go:embed githash.txt
var gitHash string

func GetGitHash() string {
	return strings.TrimSpace(gitHash)
}

type CmdArgs struct {
	ConfigPath string
	EnvPath    string
	LogLevel   string //overrides the configured level when set
	Help       bool
	Version    bool
}

// ParseCmdArgs parses args without exiting so it can be tested.
func ParseCmdArgs(args []string, output io.Writer) (CmdArgs, error) {
	var cmdArgs CmdArgs

	flags := flag.NewFlagSet("elevatorsim", flag.ContinueOnError)
	flags.SetOutput(output)
	flags.BoolVar(&cmdArgs.Help, "help", false, "Show Help Window")
	flags.BoolVar(&cmdArgs.Version, "version", false, "Show Version")
	flags.StringVar(&cmdArgs.ConfigPath, "config", elevconfig.DEFAULT_CONFIG_PATH, "Path to the YAML settings file. Skipped when missing")
	flags.StringVar(&cmdArgs.EnvPath, "env", elevconfig.DEFAULT_ENV_PATH, "Path to the .env file. Skipped when missing")
	flags.StringVar(&cmdArgs.LogLevel, "loglevel", "", "Log level (trace, debug, info, warn, error). Defaults to the configured level")

	if err := flags.Parse(args); err != nil {
		return cmdArgs, err
	}
	if flags.NArg() > 0 {
		return cmdArgs, fmt.Errorf("unexpected arguments: %v", flags.Args())
	}

	if cmdArgs.Help {
		fmt.Fprintln(output, "Usage: ./elevatorsim [OPTIONS]")
		fmt.Fprintln(output, "Elevator Challenge Simulator")
		fmt.Fprintln(output)
		fmt.Fprintln(output, "Options:")
		flags.PrintDefaults()
		fmt.Fprintln(output)
		fmt.Fprintln(output, "Environment:")
		fmt.Fprintf(output, "	Every setting can be overridden with %sUPPER_SNAKE_NAME, e.g. %sNUMBER_OF_FLOORS=20\n", elevconfig.ENV_PREFIX, elevconfig.ENV_PREFIX)
	}
	return cmdArgs, nil
}

func ProcessCmdArgs() CmdArgs {
	cmdArgs, err := ParseCmdArgs(os.Args[1:], os.Stdout)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if cmdArgs.Version {
		fmt.Println("Version:", GetGitHash())
		os.Exit(0)
	}
	if cmdArgs.Help {
		os.Exit(0)
	}

	return cmdArgs
}
