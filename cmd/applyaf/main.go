// applyaf applies or removes antenna factor and cable loss corrections on
// spectrum analyzer readings stored as CSV files.
package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/RMahshie/applyaf/internal/logging"
)

func main() {
	_ = logging.Setup("info", os.Stderr)

	if err := newRootCmd(viper.New(), os.Stdout, os.Stderr).Execute(); err != nil {
		log.Error().Err(err).Msg("applyaf failed")
		os.Exit(1)
	}
}
