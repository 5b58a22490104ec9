package opts

import (
	"github.com/walteh/errmigrate/pkg/config"
	"github.com/walteh/errmigrate/pkg/status"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config   *config.Config
	Reporter *status.Reporter
}
