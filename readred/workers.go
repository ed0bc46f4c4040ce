package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	sndisplay "github.com/snemo/sndisplay_go/pkg"
)

type renderJob struct {
	Event   sndisplay.EventRecord
	Cabling sndisplay.CablingResolver
}

type renderResult struct {
	EventID  int32
	Filename string
	Err      error
}

// renderPool renders events to PNG files concurrently. Each worker owns a
// display, the palette is shared.
type renderPool struct {
	jobs      chan renderJob
	results   chan renderResult
	workers   sync.WaitGroup
	collected chan struct{}
	outputDir string
	policy    sndisplay.MultiGroupPolicy
	rendered  int
	errs      []error
}

func newRenderPool(numWorkers int, outputDir string, policy sndisplay.MultiGroupPolicy) *renderPool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	p := &renderPool{
		jobs:      make(chan renderJob, numWorkers),
		results:   make(chan renderResult, numWorkers),
		collected: make(chan struct{}),
		outputDir: outputDir,
		policy:    policy,
	}

	palette := sndisplay.NewPalette()
	palette.Initialize()
	for w := 0; w < numWorkers; w++ {
		p.workers.Add(1)
		go p.worker(w, palette)
	}
	go p.collect()
	return p
}

func (p *renderPool) worker(id int, palette *sndisplay.Palette) {
	defer p.workers.Done()

	display, err := sndisplay.NewDemonstrator(fmt.Sprintf("Demonstrator-%d", id), palette)
	for job := range p.jobs {
		if err != nil {
			p.results <- renderResult{EventID: job.Event.EventID, Err: err}
			continue
		}
		if configuration.Verbosity > 2 {
			logger.Info(fmt.Sprintf("Worker %d processing event %d", id, job.Event.EventID), "workers")
		}
		p.results <- p.render(display, job)
	}
}

func (p *renderPool) render(display *sndisplay.Demonstrator, job renderJob) (result renderResult) {
	result.EventID = job.Event.EventID
	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("recovered from panic rendering event %d: %v", job.Event.EventID, r)
		}
	}()

	display.Reset()
	display.SetDisplayRange(configuration.DisplayRange())
	builder := sndisplay.OverlayBuilder{Cabling: job.Cabling, Policy: p.policy}
	builder.Build(job.Event, display)
	display.SetTitle(sndisplay.TriggerTitle(int(job.Event.RunID), job.Event.TriggerIDs))

	if result.Err = display.Draw(); result.Err != nil {
		return result
	}
	result.Filename = filepath.Join(p.outputDir, sndisplay.OutputFilename(int(job.Event.RunID), int(job.Event.EventID)))
	result.Err = display.SavePNG(result.Filename)
	return result
}

func (p *renderPool) collect() {
	defer close(p.collected)
	for result := range p.results {
		if result.Err != nil {
			message := fmt.Errorf("event %d: %w", result.EventID, result.Err)
			logger.Error(message.Error())
			p.errs = append(p.errs, message)
			continue
		}
		p.rendered++
		if configuration.Verbosity > 0 {
			logger.Info(fmt.Sprintf("Saved %s", result.Filename), "workers")
		}
	}
}

func (p *renderPool) Submit(job renderJob) {
	p.jobs <- job
}

// Wait stops the pool once every submitted event is rendered.
func (p *renderPool) Wait() (int, error) {
	close(p.jobs)
	p.workers.Wait()
	close(p.results)
	<-p.collected
	return p.rendered, errors.Join(p.errs...)
}
