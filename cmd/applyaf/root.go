package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/RMahshie/applyaf/internal/config"
	"github.com/RMahshie/applyaf/internal/correction"
	"github.com/RMahshie/applyaf/internal/logging"
	"github.com/RMahshie/applyaf/internal/version"
)

// app carries the state shared by all subcommands of one invocation
type app struct {
	v      *viper.Viper
	stdout io.Writer
	stderr io.Writer
	cfg    *config.Config

	// Command line flag variables
	cfgFile    string // Configuration file path
	verbose    bool   // Enable debug logging
	keepMin    bool   // Keep the lowest amplitude for duplicate frequencies
	showCurves bool   // Print interpolated curves next to the result
	output     string // Output file, stdout when empty
	noHeader   bool   // Omit the CSV header row
}

// newRootCmd builds the command tree. Configuration is resolved through v,
// so each call gets an independent set of flags and settings.
func newRootCmd(v *viper.Viper, stdout, stderr io.Writer) *cobra.Command {
	a := &app{v: v, stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:   "applyaf",
		Short: "Apply or remove antenna factor and cable loss corrections",
		Long: `applyaf converts spectrum analyzer readings into incident field values by
adding an antenna factor curve and an optional cable loss curve, or removes
those curves from field values to recover analyzer readings.

Correction curves are linearly interpolated onto the readings' frequencies.
Outside a curve's frequency range its first or last value is used.
Duplicate frequencies keep the highest amplitude unless --keep-min is given.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.initConfig,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	// Persistent flags available to all commands
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "config file; format taken from its extension (default: .env.<ENVIRONMENT> if present)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	pf.BoolVar(&a.keepMin, "keep-min", false, "keep the lowest amplitude for duplicate frequencies (default keeps the highest)")
	pf.Float64("readings-unit", 1, "frequency multiplier for the readings file (1e6 for MHz)")
	pf.Float64("af-unit", 1e6, "frequency multiplier for the antenna factor file")
	pf.Float64("cl-unit", 1e6, "frequency multiplier for the cable loss file")

	// Bind command line flags to configuration keys
	_ = v.BindPFlag("READINGS_UNIT", pf.Lookup("readings-unit"))
	_ = v.BindPFlag("ANTENNA_FACTOR_UNIT", pf.Lookup("af-unit"))
	_ = v.BindPFlag("CABLE_LOSS_UNIT", pf.Lookup("cl-unit"))

	rootCmd.AddCommand(
		a.newCorrectionCmd(correction.DirectionApply),
		a.newCorrectionCmd(correction.DirectionRemove),
		newVersionCmd(stdout),
	)

	return rootCmd
}

// initConfig loads settings from defaults, config file, environment and
// flags, then configures logging.
func (a *app) initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFrom(a.v, a.cfgFile)
	if err != nil {
		return err
	}

	level := cfg.Logging.Level
	if a.verbose {
		level = "debug"
	}
	if err := logging.Setup(level, a.stderr); err != nil {
		return err
	}

	if a.keepMin {
		cfg.Correction.KeepMax = false
	}

	a.cfg = cfg
	return nil
}

func newVersionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// version needs no configuration
		PersistentPreRun: func(cmd *cobra.Command, args []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(stdout, version.GetVersionInfo("applyaf"))
		},
	}
}
