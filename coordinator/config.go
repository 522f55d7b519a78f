package coordinator

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// StoragerConfig lists the storage-node addresses the coordinator's ring
// is built from, loaded once at startup. The ring is immutable afterward:
// adding or removing a node requires restarting the coordinator with an
// updated config.
type StoragerConfig struct {
	Storagers    []string `toml:"storagers"`
	VirtualNodes int      `toml:"virtual_nodes"`
}

// LoadStoragerConfig reads a StoragerConfig from a toml file.
func LoadStoragerConfig(path string) (*StoragerConfig, error) {
	var conf StoragerConfig
	if _, err := toml.DecodeFile(path, &conf); err != nil {
		return nil, fmt.Errorf("coordinator: failed to load config: %w", err)
	}
	if len(conf.Storagers) == 0 {
		return nil, fmt.Errorf("coordinator: config %s lists no storagers", path)
	}
	if conf.VirtualNodes <= 0 {
		conf.VirtualNodes = DefaultVirtualNodes
	}
	return &conf, nil
}
