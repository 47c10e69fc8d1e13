package app

import (
	"github.com/vk/keygridgo/internal/registry"
	"github.com/vk/keygridgo/modules/rust"
	"github.com/vk/keygridgo/modules/yaml"
)

// coreModules is the definitive list of all output formats that are
// compiled into the keygridgo binary.
var coreModules = []registry.Module{
	&rust.Module{},
	&yaml.Module{},
}
