package main

import (
	"github.com/metalagman/ideagpt/internal/config"
	"github.com/spf13/viper"
)

func loadConfig() (config.Config, error) {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath
	}
	return config.Load(viper.GetViper(), path)
}
