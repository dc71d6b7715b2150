package bootstrap

import (
	"github.com/kbukum/stripefdw/config"
)

// Config is the interface constraint for application configuration types.
// Any struct that embeds config.ServiceConfig (value embedding) satisfies
// it through promoted methods.
//
//	type Config struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Stripe stripe.Config `yaml:"stripe" mapstructure:"stripe"`
//	}
//
//	app, err := bootstrap.NewApp[*Config](&cfg)
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
