package internal

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rm-hull/voronoi-fragments/internal/raster"
)

var ErrNoFiles = errors.New("no image files found")

// Job processes one input file.
type Job func(path string) error

type Processor struct {
	startTime time.Time
	endTime   time.Time
	poolSize  int
	jobs      chan string
	results   chan error
	files     []string
	job       Job
}

func NewProcessor(files []string, poolSize int, job Job) (*Processor, error) {
	if poolSize < 1 {
		return nil, errors.New("pool size must be at least 1")
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	return &Processor{
		startTime: time.Now(),
		poolSize:  poolSize,
		jobs:      make(chan string),
		results:   make(chan error),
		files:     files,
		job:       job,
	}, nil
}

// ListImages returns the png/jpg/jpeg files directly inside dir, sorted by name.
// skip filters out files that should not be picked up again, e.g. earlier outputs.
func ListImages(dir string, skip func(name string) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !raster.IsImageFile(name) {
			continue
		}
		if skip != nil && skip(name) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFiles, dir)
	}
	return files, nil
}

// Run starts the workers, feeds them every file and collects the failures.
func (p *Processor) Run() []error {
	p.StartWorkers()
	p.DispatchJobs()
	return p.Wait()
}

// DispatchJobs sends files to the jobs channel for processing by workers.
func (p *Processor) DispatchJobs() {
	go func() {
		for _, file := range p.files {
			p.jobs <- file
		}
		close(p.jobs)
	}()
}

func (p *Processor) StartWorkers() {
	log.Printf("Processing %d files with pool size: %d", len(p.files), p.poolSize)

	for i := range p.poolSize {
		go p.worker(i)
	}
}

func (p *Processor) worker(i int) {
	for file := range p.jobs {
		if err := p.job(file); err != nil {
			p.results <- fmt.Errorf("%s: %w", file, err)
			continue
		}
		log.Printf("Worker %d processed %s", i, file)
		p.results <- nil
	}
}

func (p *Processor) Wait() []error {
	errs := make([]error, 0, 10)
	for range p.files {
		if err := <-p.results; err != nil {
			errs = append(errs, err)
		}
	}
	p.endTime = time.Now()
	log.Printf("All files processed in %s (errors=%d)", p.endTime.Sub(p.startTime), len(errs))
	return errs
}
