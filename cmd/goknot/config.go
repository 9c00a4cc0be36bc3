package main

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/plan-systems/klog"
)

// Config carries optional CLI settings read from goknot.toml in the working
// directory. A missing file yields the zero Config; engine defaults apply to
// any field left unset.
type Config struct {
	CatalogPath    string `toml:"catalog_path"`
	BracketCeiling int    `toml:"bracket_ceiling"`

	Print struct {
		Jones bool `toml:"jones"`
		Alex  bool `toml:"alex"`
	} `toml:"print"`
}

const configPathname = "goknot.toml"

func loadConfig() Config {
	var cfg Config

	data, err := os.ReadFile(configPathname)
	if err != nil {
		return cfg
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		klog.Warningf("ignoring %s: %v", configPathname, err)
		return Config{}
	}
	return cfg
}
