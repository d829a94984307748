package bootstrap

import (
	"github.com/kbukum/audioviz/config"
)

// Config is the constraint for application configuration types. A struct
// embedding config.ServiceConfig gets GetServiceConfig for free and adds its
// own ApplyDefaults and Validate that call the embedded ones first.
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
