package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/heavycoin/heavyminer/pkg/config"
	"github.com/heavycoin/heavyminer/pkg/logging"
)

var cmdMain = &cobra.Command{
	Use:               "heavyminer",
	Short:             "Heavycoin multi-algorithm proof-of-work miner",
	PersistentPreRunE: loadConfig,
	Run:               printUsageAndExit1,
	SilenceUsage:      true,
}

var flagMain struct {
	Config string
}

// v collects the config file, HEAVYMINER_* environment variables and any
// flags bound to it; cfg is the decoded result, valid once a subcommand runs.
var (
	v   = config.NewViper()
	cfg config.Config
)

func init() {
	defaults := config.Default()
	cmdMain.PersistentFlags().StringVarP(&flagMain.Config, "config", "c", "", "Path to a configuration file (toml, yaml or json)")
	cmdMain.PersistentFlags().String("log-level", defaults.Log.Level, "Log level (trace, debug, info, warn, error)")
	cmdMain.PersistentFlags().String("log-format", defaults.Log.Format, "Log format (plain, json)")
	bindFlag(cmdMain, "log.level", "log-level")
	bindFlag(cmdMain, "log.format", "log-format")
}

func main() {
	if err := cmdMain.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	for c := cmd; c != nil; c = c.Parent() {
		for _, b := range flagBindings[c] {
			flag := cmd.Flags().Lookup(b.name)
			if err := v.BindPFlag(b.key, flag); err != nil {
				return err
			}
		}
	}

	var err error
	cfg, err = config.Load(v, flagMain.Config)
	if err != nil {
		return err
	}
	return logging.Setup(cfg.Log.Level, cfg.Log.Format)
}

type flagBinding struct {
	key, name string
}

// Several subcommands define a flag for the same key, so bindings are only
// applied to v for the command that actually runs.
var flagBindings = map[*cobra.Command][]flagBinding{}

// bindFlag makes flag name of cmd override config key.
func bindFlag(cmd *cobra.Command, key, name string) {
	flagBindings[cmd] = append(flagBindings[cmd], flagBinding{key, name})
}

func printUsageAndExit1(cmd *cobra.Command, args []string) {
	_ = cmd.Usage()
	os.Exit(1)
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func check(err error) {
	if err != nil {
		fatalf("%v", err)
	}
}
