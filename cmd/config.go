package cmd

import (
	"sz-init/internal/config"

	"github.com/spf13/viper"
)

// currentOverrides collects flag and config-file values (Flag > Config >
// Default). Empty strings leave the environment value in place.
//
// Config file keys:
//
//	env_file: ./prod.env
//	log:
//	  level: debug
//	database:
//	  driver: pgx
//	engine:
//	  instance_name: sz_init_postgresql
//	  debug_trace: false
//	  skip_prime: false
func currentOverrides() config.Overrides {
	return config.Overrides{
		EnvFile:         viper.GetString("env_file"),
		LogLevel:        viper.GetString("log.level"),
		Driver:          viper.GetString("database.driver"),
		InstanceName:    viper.GetString("engine.instance_name"),
		DebugTrace:      viper.GetBool("engine.debug_trace"),
		SkipEnginePrime: viper.GetBool("engine.skip_prime"),
	}
}
