package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	sndisplay "github.com/snemo/sndisplay_go/pkg"
	"github.com/snemo/sndisplay_go/pkg/redfile"
)

var configuration sndisplay.Configuration

var logger sndisplay.SlogLogger

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout io.Writer, stderr io.Writer) int {
	logger = sndisplay.NewSlogLogger(stdout, stderr)

	var err error
	configuration, err = parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return EXIT_OK
	}
	var missing *ErrMissingArgument
	if errors.As(err, &missing) {
		logger.Error(missing.Error())
		return EXIT_USAGE
	}
	var openErr *sndisplay.ErrOpenFile
	if errors.As(err, &openErr) {
		message := fmt.Errorf("Error reading configuration file: %w", err)
		logger.Error(message.Error())
		return EXIT_FAILURE
	}
	if err != nil {
		logger.Error(err.Error())
		return EXIT_USAGE
	}

	sndisplay.SetConfiguration(configuration)
	sndisplay.SetLogger(logger)
	if configuration.Verbosity > 0 {
		sndisplay.PrintConfiguration(configuration, logger)
	}

	policy, err := sndisplay.ParseMultiGroupPolicy(configuration.MultiGroupPolicy)
	if err != nil {
		logger.Error(err.Error())
		return EXIT_USAGE
	}

	inputs := configuration.Inputs()
	for _, input := range inputs {
		logger.Info(fmt.Sprintf("Opening %s", input), "main")
	}

	reader := redfile.NewReader(inputs)
	logger.Info(fmt.Sprintf("Searching for event %d ...", configuration.Event), "main")
	event, scanned, found, err := sndisplay.FindEvent(reader, configuration.Event)
	if err != nil {
		logger.Error(err.Error())
		return EXIT_FAILURE
	}
	if !found {
		logger.Warn(fmt.Sprintf("=> Event was not found ! (only %d RED in this file)", scanned), "main")
		return EXIT_OK
	}

	cabling, err := loadCabling(int(event.RunID))
	if err != nil {
		logger.Error(err.Error())
		return EXIT_FAILURE
	}

	if configuration.Dump {
		sndisplay.DumpEvent(stdout, event, cabling)
	}

	err = render(event, cabling, policy)
	if err != nil {
		logger.Error(err.Error())
		return EXIT_FAILURE
	}
	return EXIT_OK
}

func loadCabling(runNumber int) (sndisplay.CablingResolver, error) {
	if configuration.NoDB {
		return sndisplay.DirectCabling{}, nil
	}
	dbConn, err := sndisplay.ConnectToDatabase(configuration.User, configuration.Passwd, configuration.Host, configuration.DBName)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	defer dbConn.Close()

	table, err := sndisplay.LoadCablingFromDB(dbConn, runNumber)
	if err != nil {
		return nil, err
	}
	if configuration.Verbosity > 1 {
		logger.Info(fmt.Sprintf("Loaded %d cabling channels for run %d", table.Len(), runNumber), "main")
	}
	return table, nil
}

func render(event sndisplay.EventRecord, cabling sndisplay.CablingResolver, policy sndisplay.MultiGroupPolicy) error {
	palette := sndisplay.NewPalette()
	display, err := sndisplay.NewDemonstrator("Demonstrator", palette)
	if err != nil {
		return err
	}
	display.SetDisplayRange(configuration.DisplayRange())

	builder := sndisplay.OverlayBuilder{Cabling: cabling, Policy: policy}
	stats := builder.Build(event, display)
	if configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("%d calo hits (%d unmapped), %d tracker hits (%d displayed)",
			stats.CaloHits, stats.CaloUnmapped, stats.TrackerHits, stats.TrackerShown), "main")
	}

	display.SetTitle(sndisplay.TriggerTitle(int(event.RunID), event.TriggerIDs))
	applyMasks(display)

	err = display.Draw()
	if err != nil {
		return err
	}

	filename := filepath.Join(configuration.OutputDir, sndisplay.OutputFilename(int(event.RunID), int(event.EventID)))
	err = display.SavePNG(filename)
	if err != nil {
		return err
	}
	logger.Info(fmt.Sprintf("Saved %s", filename), "main")
	return nil
}

// applyMasks greys out the tracker rows outside the requested area or crate.
// An invalid selection is reported and ignored.
func applyMasks(display *sndisplay.Demonstrator) {
	if configuration.Area >= 0 {
		rows, err := sndisplay.CommissioningArea(configuration.Area)
		if err != nil {
			logger.Warn(err.Error(), "main")
		} else {
			display.MaskOutside(rows)
		}
	}
	if configuration.Crate >= 0 {
		rows, err := sndisplay.Crate(configuration.Crate)
		if err != nil {
			logger.Warn(err.Error(), "main")
		} else {
			display.MaskOutside(rows)
		}
	}
}
