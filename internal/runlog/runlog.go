// Package runlog writes one CSV row of statistics per generation.
package runlog

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/vovakirdan/tetris-ga/internal/agent"
	"github.com/vovakirdan/tetris-ga/internal/genetic"
)

// Header returns the column names: each fitness followed by its nine
// gene columns.
func Header() []string {
	var h []string
	for _, group := range []string{"avg", "top", "elite"} {
		h = append(h, group+"_fit")
		for i := range len(agent.Genotype{}) {
			h = append(h, fmt.Sprintf("%s_gene_%d", group, i))
		}
	}
	return h
}

// Row formats s in Header order.
func Row(s genetic.Stats) []string {
	row := make([]string, 0, 3*(1+len(agent.Genotype{})))
	add := func(fit float64, gene agent.Genotype) {
		row = append(row, formatFloat(fit))
		for _, w := range gene {
			row = append(row, formatFloat(w))
		}
	}
	add(s.AvgFit, s.AvgGene)
	add(s.TopFit, s.TopGene)
	add(s.EliteFit, s.EliteGene)
	return row
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Writer is a CSV run log. It implements genetic.Recorder.
type Writer struct {
	mu sync.Mutex
	f  *os.File
	w  *csv.Writer
}

// Create truncates path and writes the header row.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("runlog: create %s: %w", path, err)
	}
	w := &Writer{f: f, w: csv.NewWriter(f)}
	if err := w.write(Header()); err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

// Record appends one row and flushes it to disk.
func (w *Writer) Record(_ context.Context, s genetic.Stats) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.write(Row(s))
}

func (w *Writer) write(record []string) error {
	if err := w.w.Write(record); err != nil {
		return fmt.Errorf("runlog: write row: %w", err)
	}
	w.w.Flush()
	if err := w.w.Error(); err != nil {
		return fmt.Errorf("runlog: flush: %w", err)
	}
	return nil
}

// Close flushes and closes the file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.w.Flush()
	if err := w.w.Error(); err != nil {
		w.f.Close()
		return fmt.Errorf("runlog: flush: %w", err)
	}
	return w.f.Close()
}

var _ genetic.Recorder = (*Writer)(nil)
