package coremain

import (
	"github.com/pmkol/dlist/mlog"
	"github.com/pmkol/dlist/pkg/scenario"
)

type Config struct {
	Log       mlog.LogConfig    `yaml:"log"`
	Include   []string          `yaml:"include"`
	Scenarios []scenario.Config `yaml:"scenarios"`
	API       APIConfig         `yaml:"api"`
}

type APIConfig struct {
	HTTP string `yaml:"http"`
}
