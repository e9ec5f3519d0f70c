package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/RMahshie/applyaf/internal/correction"
	"github.com/RMahshie/applyaf/internal/csvio"
	"github.com/RMahshie/applyaf/pkg/models"
)

func (a *app) newCorrectionCmd(dir correction.Direction) *cobra.Command {
	var short, long string
	switch dir {
	case correction.DirectionApply:
		short = "Convert analyzer readings to incident field"
		long = `Adds the antenna factor and, when given, the cable loss to the readings.

Examples:
  applyaf apply readings.csv antenna_factor.csv
  applyaf apply readings.csv antenna_factor.csv cable_loss.csv --show-curves
  applyaf apply readings.csv af.csv --readings-unit 1e6 --af-unit 1e3 -o field.csv`
	case correction.DirectionRemove:
		short = "Recover analyzer readings from incident field"
		long = `Subtracts the antenna factor and, when given, the cable loss from the field values.

Examples:
  applyaf remove field.csv antenna_factor.csv cable_loss.csv`
	}

	cmd := &cobra.Command{
		Use:   dir.String() + " <readings.csv> <antenna_factor.csv> [cable_loss.csv]",
		Short: short,
		Long:  long,
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCorrection(dir, args)
		},
	}

	cmd.Flags().BoolVar(&a.showCurves, "show-curves", false, "add the interpolated antenna factor and cable loss as extra columns")
	cmd.Flags().StringVarP(&a.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&a.noHeader, "no-header", false, "omit the CSV header row")

	return cmd
}

// runCorrection reads the input files, runs the correction and writes the result
func (a *app) runCorrection(dir correction.Direction, args []string) error {
	start := time.Now()

	// Check every path before reading anything
	for _, path := range args {
		if err := csvio.CheckFile(path); err != nil {
			return err
		}
	}

	readings, err := csvio.ReadFile(args[0], a.cfg.Correction.ReadingsUnit)
	if err != nil {
		return fmt.Errorf("failed to read readings: %w", err)
	}

	antennaFactors, err := csvio.ReadFile(args[1], a.cfg.Correction.AntennaFactorUnit)
	if err != nil {
		return fmt.Errorf("failed to read antenna factor: %w", err)
	}

	var cableLosses *models.Series
	if len(args) == 3 {
		cl, err := csvio.ReadFile(args[2], a.cfg.Correction.CableLossUnit)
		if err != nil {
			return fmt.Errorf("failed to read cable loss: %w", err)
		}
		cableLosses = &cl
	}

	log.Debug().
		Int("readings", len(readings)).
		Int("antenna_factors", len(antennaFactors)).
		Bool("cable_loss", cableLosses != nil).
		Bool("keep_max", a.cfg.Correction.KeepMax).
		Msg("Loaded input files")

	result := correction.Correct(dir, readings, antennaFactors, cableLosses, a.cfg.Correction.KeepMax)

	if err := a.writeResult(result); err != nil {
		return err
	}

	log.Debug().
		Str("direction", dir.String()).
		Int("points", len(result.Field)).
		Dur("elapsed", time.Since(start)).
		Msg("Correction completed")

	return nil
}

func (a *app) writeResult(result correction.Result) (err error) {
	var w io.Writer = a.stdout
	if a.output != "" {
		f, err := os.Create(a.output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("failed to close output file: %w", cerr)
			}
		}()
		w = f
	}

	header := !a.noHeader
	if a.showCurves {
		err = csvio.WriteWithCurves(w, result.Field, result.AntennaFactors, result.CableLosses, header)
	} else {
		err = csvio.Write(w, result.Field, header)
	}
	if err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	if a.output != "" {
		log.Info().Str("file", a.output).Int("points", len(result.Field)).Msg("Wrote corrected series")
	}
	return nil
}
