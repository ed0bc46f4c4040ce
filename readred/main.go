package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	sndisplay "github.com/snemo/sndisplay_go/pkg"
	"github.com/snemo/sndisplay_go/pkg/redfile"
)

var configuration sndisplay.Configuration

var logger sndisplay.SlogLogger

type scanTotals struct {
	Events      int
	CaloHits    int
	TrackerHits int
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	logger = sndisplay.NewSlogLogger(stdout, stderr)

	var outputs scanOutputs
	var err error
	configuration, outputs, err = parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return EXIT_OK
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

	s, err := newScanner(outputs, policy)
	if err != nil {
		logger.Error(err.Error())
		return EXIT_FAILURE
	}

	inputs := configuration.Inputs()
	for _, input := range inputs {
		logger.Info(fmt.Sprintf("Opening %s", input), "main")
	}
	totals, scanErr := s.scan(redfile.NewReader(inputs), bufio.NewReader(stdin), stdout)
	closeErr := s.Close()

	fmt.Fprintf(stdout, "Total number of RED objects       : %d\n", totals.Events)
	fmt.Fprintf(stdout, "Total number of calo hits         : %d\n", totals.CaloHits)
	fmt.Fprintf(stdout, "Total number of tracker hits      : %d\n", totals.TrackerHits)

	if err = errors.Join(scanErr, closeErr); err != nil {
		logger.Error(err.Error())
		return EXIT_FAILURE
	}
	return EXIT_OK
}
