package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/entrycounter/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP listen address (e.g. ":8080")
//	-H string   database host
//	-P string   database port
//	-U string   database user
//	-W string   database password
//	-n string   database name
//	-l string   log level
//	-strict     treat bootstrap failure as fatal
//
// os.Args is filtered with flagx.FilterArgs first, so -c/-config and any
// unknown flags do not make parsing fail.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:],
		[]string{"-a", "-H", "-P", "-U", "-W", "-n", "-l"},
		"-strict")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ListenAddr, "a", config.ListenAddr, "address and port to run server")
	fs.StringVar(&config.DB.Host, "H", config.DB.Host, "database host")
	fs.StringVar(&config.DB.Port, "P", config.DB.Port, "database port")
	fs.StringVar(&config.DB.User, "U", config.DB.User, "database user")
	fs.StringVar(&config.DB.Password, "W", config.DB.Password, "database password")
	fs.StringVar(&config.DB.Name, "n", config.DB.Name, "database name")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level (trace, debug, info, warn, error, critical)")
	fs.BoolVar(&config.BootstrapStrict, "strict", config.BootstrapStrict, "exit when schema bootstrap fails")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
