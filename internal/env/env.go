package env

import (
	"github.com/thatsimonsguy/cc1-hub/internal/config"
)

var Cfg *config.Config
