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

type ErrMissingArgument struct {
	Name  string
	Usage string
}

func (e *ErrMissingArgument) Error() string {
	return fmt.Sprintf("*** missing %s (%s)", e.Name, e.Usage)
}

// inputList collects every -i flag.
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
	event          int
	area           int
	crate          int
	outputDir      string
	policy         string
	verbosity      int
	rangeMin       float64
	rangeMax       float64
	noDump         bool
	useDB          bool
}

// parseArgs loads the configuration file given by -config and overrides
// it with the flags present on the command line.
func parseArgs(args []string, output io.Writer) (sndisplay.Configuration, error) {
	var opts options
	fs := flag.NewFlagSet("showred", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&opts.configFilename, "config", "", "Configuration file path")
	fs.Var(&opts.inputs, "i", "RED input file (repeatable)")
	fs.Var(&opts.inputs, "input", "RED input file (repeatable)")
	fs.IntVar(&opts.run, "r", -1, "Run number")
	fs.IntVar(&opts.run, "run", -1, "Run number")
	fs.IntVar(&opts.event, "e", -1, "Event number")
	fs.IntVar(&opts.event, "event", -1, "Event number")
	fs.IntVar(&opts.area, "a", -1, "Commissioning area to display [0,8)")
	fs.IntVar(&opts.area, "area", -1, "Commissioning area to display [0,8)")
	fs.IntVar(&opts.crate, "c", -1, "Crate to display [0,3)")
	fs.IntVar(&opts.crate, "crate", -1, "Crate to display [0,3)")
	fs.StringVar(&opts.outputDir, "o", ".", "Output directory")
	fs.StringVar(&opts.outputDir, "output-dir", ".", "Output directory")
	fs.StringVar(&opts.policy, "policy", "last", "Tracker multi group policy (last, first, cumulative)")
	fs.IntVar(&opts.verbosity, "v", 0, "Verbosity level")
	fs.Float64Var(&opts.rangeMin, "min", 0, "Lower bound of the colour scale")
	fs.Float64Var(&opts.rangeMax, "max", 1, "Upper bound of the colour scale")
	fs.BoolVar(&opts.noDump, "no-dump", false, "Do not print the event on the console")
	fs.BoolVar(&opts.useDB, "db", false, "Resolve the calorimeter channels with the cabling DB")
	fs.Usage = func() {
		fmt.Fprintf(output, "Usage: showred -e EVENT_NUMBER (-r RUN_NUMBER | -i RED_FILE...) [options]\n")
		fs.PrintDefaults()
	}

	err := fs.Parse(args)
	if err != nil {
		return sndisplay.Configuration{}, err
	}
	if fs.NArg() > 0 {
		return sndisplay.Configuration{}, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	config, err := sndisplay.LoadConfiguration(opts.configFilename)
	if err != nil {
		return config, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "i", "input":
			config.FileIn = opts.inputs
		case "r", "run":
			config.Run = opts.run
		case "e", "event":
			config.Event = opts.event
		case "a", "area":
			config.Area = opts.area
		case "c", "crate":
			config.Crate = opts.crate
		case "o", "output-dir":
			config.OutputDir = opts.outputDir
		case "policy":
			config.MultiGroupPolicy = opts.policy
		case "v":
			config.Verbosity = opts.verbosity
		case "min":
			config.RangeMin = &opts.rangeMin
		case "max":
			config.RangeMax = &opts.rangeMax
		case "no-dump":
			config.Dump = !opts.noDump
		case "db":
			config.NoDB = !opts.useDB
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

	if config.Event < 0 {
		return config, &ErrMissingArgument{Name: "event_number", Usage: "-e/--event EVENT_NUMBER"}
	}
	if len(config.Inputs()) == 0 {
		return config, &ErrMissingArgument{Name: "run_number", Usage: "-r/--run RUN_NUMBER"}
	}
	return config, nil
}
