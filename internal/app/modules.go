package app

import (
	"github.com/specialistvlad/orfile/internal/registry"
	"github.com/specialistvlad/orfile/modules/arith"
	"github.com/specialistvlad/orfile/modules/resolve"
)

// CoreModules returns the modules compiled into both binaries.
func CoreModules() []registry.Module {
	return []registry.Module{
		&arith.Module{},
		&resolve.Module{},
	}
}
