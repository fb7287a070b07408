package toml

import (
	"fmt"

	"github.com/spf13/viper"
)

type TomlConfig struct {
	AppName     string
	Environment string
	Log         LogConfig
	Data        DataConfig
	Output      OutputConfig
	Chart       ChartConfig
	Export      ExportConfig
}

type LogConfig struct {
	Level string
}

type DataConfig struct {
	Dir               string
	Pattern           string
	Timestampcolumn   string
	Consumptioncolumn string
}

type OutputConfig struct {
	Dir string
}

type ChartConfig struct {
	Widthcm  float64
	Heightcm float64
}

type ExportConfig struct {
	Xlsx bool
	Pdf  bool
}

var c TomlConfig // c is type TomlConfig

func init() {
	// viper is used as a configuration solution for Go Applications.
	// Every key has a default so the config file is optional.
	viper.SetDefault("appname", "campus-energy-dashboard")
	viper.SetDefault("environment", "production")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("data.dir", "./data")
	viper.SetDefault("data.pattern", "*.csv")
	viper.SetDefault("data.timestampcolumn", "timestamp")
	viper.SetDefault("data.consumptioncolumn", "kwh")
	viper.SetDefault("output.dir", "./output")
	viper.SetDefault("chart.widthcm", 30.0)
	viper.SetDefault("chart.heightcm", 35.0)
	viper.SetDefault("export.xlsx", true)
	viper.SetDefault("export.pdf", true)

	viper.SetConfigName("config")
	viper.SetConfigType("toml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	if err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			fmt.Println(err)
		}
	}
	viper.Unmarshal(&c) // from low level format to object (json) structure
}

func GetConfig() TomlConfig {
	return c
}

// Reload re-unmarshals viper into the config after flag bindings or
// overrides have been applied in main.
func Reload() {
	viper.Unmarshal(&c)
}
