package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"campus/energy/config/log"
	"campus/energy/config/toml"
	"campus/energy/src/service"
	"campus/energy/src/tools"
)

func main() {
	pflag.String("data-dir", "", "directory of per-building CSV files (default ./data)")
	pflag.String("output-dir", "", "directory for generated outputs (default ./output)")
	pflag.String("log-level", "", "run log level: debug, info, warn, error")
	pflag.Parse()

	bindFlag("data.dir", "data-dir")
	bindFlag("output.dir", "output-dir")
	bindFlag("log.level", "log-level")
	toml.Reload()

	if err := tools.SafeStart(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	result, err := service.IDashboardService.Run(toml.GetConfig())
	if err != nil {
		log.Logger.Error("pipeline failed", zap.Error(err))
		log.Sync()
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, service.ErrNoValidData) {
			os.Exit(1)
		}
		os.Exit(2)
	}

	fmt.Println("\n" + result.ReportText)
	log.Sync()
}

// bindFlag overrides a config key only when the flag was actually set.
func bindFlag(key, flag string) {
	f := pflag.Lookup(flag)
	if f != nil && f.Changed {
		viper.Set(key, f.Value.String())
	}
}
