// Package modules lists the postcard feature modules.
package modules

import (
	module "github.com/louisbranch/postcard/internal/services/postcard/module"
	"github.com/louisbranch/postcard/internal/services/postcard/modules/cards"
	"github.com/louisbranch/postcard/internal/services/postcard/modules/system"
	"github.com/louisbranch/postcard/internal/services/postcard/modules/tutorial"
)

// Default returns the modules served by the postcard service.
func Default() []module.Module {
	return []module.Module{
		system.New(),
		tutorial.New(),
		cards.New(),
	}
}
