package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	sndisplay "github.com/snemo/sndisplay_go/pkg"
)

const (
	EXIT_OK      = 0
	EXIT_USAGE   = 1
	EXIT_FAILURE = 2
)

type inputList []string

func (l *inputList) String() string {
	return strings.Join(*l, ",")
}

func (l *inputList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

type options struct {
	configFilename string
	inputs         inputList
	run            int
	maxEvents      int
	numWorkers     int
	verbosity      int
	policy         string
	interactive    bool
	useDB          bool
}

// Outputs of a scan, besides the console summary.
type scanOutputs struct {
	Snapshot string
	Skim     string
	PNGDir   string
}

func parseArgs(args []string, output io.Writer) (sndisplay.Configuration, scanOutputs, error) {
	var opts options
	var outputs scanOutputs
	fs := flag.NewFlagSet("readred", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&opts.configFilename, "config", "", "Configuration file path")
	fs.Var(&opts.inputs, "i", "RED input file (repeatable)")
	fs.Var(&opts.inputs, "input", "RED input file (repeatable)")
	fs.IntVar(&opts.run, "r", -1, "Run number")
	fs.IntVar(&opts.run, "run", -1, "Run number")
	fs.IntVar(&opts.maxEvents, "X", 0, "Maximum number of events to read (0 reads all)")
	fs.IntVar(&opts.maxEvents, "max-events", 0, "Maximum number of events to read (0 reads all)")
	fs.IntVar(&opts.verbosity, "v", 0, "Verbosity level")
	fs.StringVar(&opts.policy, "policy", "last", "Tracker multi group policy (last, first, cumulative)")
	fs.BoolVar(&opts.interactive, "interactive", false, "Wait for the user after each event")
	fs.BoolVar(&opts.useDB, "db", false, "Resolve the calorimeter channels with the cabling DB")
	fs.StringVar(&outputs.Snapshot, "o", "", "HDF5 file receiving the display content of each event")
	fs.StringVar(&outputs.Skim, "skim", "", "RED file receiving a copy of the events read")
	fs.StringVar(&outputs.PNGDir, "png", "", "Directory receiving one image per event")
	fs.IntVar(&opts.numWorkers, "workers", 1, "Number of goroutines rendering the images")
	fs.Usage = func() {
		fmt.Fprintf(output, "Usage: readred (-r RUN_NUMBER | -i RED_FILE...) [options]\n")
		fs.PrintDefaults()
	}

	err := fs.Parse(args)
	if err != nil {
		return sndisplay.Configuration{}, outputs, err
	}
	if fs.NArg() > 0 {
		return sndisplay.Configuration{}, outputs, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	config, err := sndisplay.LoadConfiguration(opts.configFilename)
	if err != nil {
		return config, outputs, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "i", "input":
			config.FileIn = opts.inputs
		case "r", "run":
			config.Run = opts.run
		case "X", "max-events":
			config.MaxEvents = opts.maxEvents
		case "v":
			config.Verbosity = opts.verbosity
		case "policy":
			config.MultiGroupPolicy = opts.policy
		case "interactive":
			config.Interactive = opts.interactive
		case "db":
			config.NoDB = !opts.useDB
		case "workers":
			config.NumWorkers = opts.numWorkers
		}
	})

	// the overlay categories live in [0,1]
	if config.RangeMin == nil {
		low := 0.0
		config.RangeMin = &low
	}
	if config.RangeMax == nil {
		high := 1.0
		config.RangeMax = &high
	}

	if len(config.Inputs()) == 0 {
		return config, outputs, fmt.Errorf("*** missing run_number (-r/--run RUN_NUMBER) or input file (-i RED_FILE)")
	}
	if config.MaxEvents < 0 {
		return config, outputs, fmt.Errorf("*** invalid number of events %d", config.MaxEvents)
	}
	if outputs.PNGDir != "" && config.NumWorkers < 1 {
		return config, outputs, fmt.Errorf("*** invalid number of workers %d", config.NumWorkers)
	}
	return config, outputs, nil
}
