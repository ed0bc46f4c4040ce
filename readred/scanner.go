package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	sndisplay "github.com/snemo/sndisplay_go/pkg"
	"github.com/snemo/sndisplay_go/pkg/redfile"
)

// scanner walks a RED stream and feeds the optional outputs.
type scanner struct {
	policy   sndisplay.MultiGroupPolicy
	display  *sndisplay.Demonstrator
	snapshot *redfile.SnapshotWriter
	skim     *redfile.Writer
	pool     *renderPool
	cabling  map[int32]sndisplay.CablingResolver
}

func newScanner(outputs scanOutputs, policy sndisplay.MultiGroupPolicy) (*scanner, error) {
	var err error
	s := &scanner{
		policy:  policy,
		cabling: make(map[int32]sndisplay.CablingResolver),
	}
	if outputs.Snapshot != "" {
		s.display, err = sndisplay.NewDemonstrator("Demonstrator", sndisplay.NewPalette())
		if err != nil {
			return nil, err
		}
		s.snapshot, err = redfile.NewSnapshotWriter(outputs.Snapshot)
		if err != nil {
			return nil, err
		}
	}
	if outputs.Skim != "" {
		s.skim, err = redfile.NewWriter(outputs.Skim)
		if err != nil {
			return nil, errors.Join(err, s.Close())
		}
	}
	if outputs.PNGDir != "" {
		s.pool = newRenderPool(configuration.NumWorkers, outputs.PNGDir, policy)
	}
	return s, nil
}

func (s *scanner) scan(source sndisplay.EventSource, stdin *bufio.Reader, stdout io.Writer) (scanTotals, error) {
	var totals scanTotals
	for source.HasNext() {
		if configuration.MaxEvents > 0 && totals.Events >= configuration.MaxEvents {
			break
		}
		event, err := source.Next()
		if err != nil {
			return totals, err
		}
		totals.Events++
		totals.CaloHits += len(event.CaloHits)
		totals.TrackerHits += len(event.TrackerHits)

		fmt.Fprintln(stdout, sndisplay.EventSummary(event))

		err = s.process(event, stdout)
		if err != nil {
			return totals, err
		}

		if configuration.Interactive && !waitForUser(stdin, stdout) {
			break
		}
	}
	return totals, nil
}

func (s *scanner) process(event sndisplay.EventRecord, stdout io.Writer) error {
	if s.skim != nil {
		if err := s.skim.WriteEvent(event); err != nil {
			return err
		}
	}
	if s.snapshot == nil && s.pool == nil && configuration.Verbosity <= 1 {
		return nil
	}

	cabling, err := s.resolver(event.RunID)
	if err != nil {
		return err
	}
	if configuration.Verbosity > 1 {
		sndisplay.DumpEvent(stdout, event, cabling)
	}
	if s.pool != nil {
		s.pool.Submit(renderJob{Event: event, Cabling: cabling})
	}
	if s.snapshot == nil {
		return nil
	}

	s.display.Reset()
	builder := sndisplay.OverlayBuilder{Cabling: cabling, Policy: s.policy}
	builder.Build(event, s.display)
	return s.snapshot.WriteSnapshot(event, s.display.Content())
}

// resolver returns the cabling of a run, loading it once.
func (s *scanner) resolver(runID int32) (sndisplay.CablingResolver, error) {
	if cabling, ok := s.cabling[runID]; ok {
		return cabling, nil
	}
	if configuration.NoDB {
		s.cabling[runID] = sndisplay.DirectCabling{}
		return s.cabling[runID], nil
	}

	dbConn, err := sndisplay.ConnectToDatabase(configuration.User, configuration.Passwd, configuration.Host, configuration.DBName)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	defer dbConn.Close()

	table, err := sndisplay.LoadCablingFromDB(dbConn, int(runID))
	if err != nil {
		return nil, err
	}
	s.cabling[runID] = table
	return table, nil
}

func (s *scanner) Close() error {
	var errs []error
	if s.pool != nil {
		rendered, err := s.pool.Wait()
		logger.Info(fmt.Sprintf("%d image(s) rendered", rendered), "main")
		errs = append(errs, err)
	}
	if s.snapshot != nil {
		errs = append(errs, s.snapshot.Close())
	}
	if s.skim != nil {
		errs = append(errs, s.skim.Close())
	}
	return errors.Join(errs...)
}

// waitForUser returns false when the user asks to stop.
func waitForUser(stdin *bufio.Reader, stdout io.Writer) bool {
	fmt.Fprint(stdout, "[Enter] to continue, [q] to quit ")
	line, err := stdin.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	return strings.TrimSpace(line) != "q"
}
