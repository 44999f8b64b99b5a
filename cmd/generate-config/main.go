package main

import (
	"flag"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/phillipc0/PP-CGA-BE-Public/internal/config"
	"gopkg.in/yaml.v2"
)

var envUsage = flag.Bool("env", false, "list the environment overrides instead of the yaml defaults")

func main() {
	flag.Parse()

	cfg := config.DefaultConfig()
	if *envUsage {
		if err := envconfig.Usagef(config.EnvPrefix, &cfg, os.Stdout, envconfig.DefaultTableFormat); err != nil {
			panic(err)
		}

		return
	}

	if err := yaml.NewEncoder(os.Stdout).Encode(cfg); err != nil {
		panic(err)
	}
}
