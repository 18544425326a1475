package stats

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
)

// RunRecord is one row of a generation report.
type RunRecord struct {
	Run          int     `csv:"run"`
	Seed         uint64  `csv:"seed"`
	Requested    int     `csv:"requested"`
	Blades       int     `csv:"blades"`
	Vertices     int     `csv:"vertices"`
	Indices      int     `csv:"indices"`
	DurationMS   float64 `csv:"duration_ms"`
	HeightMean   float64 `csv:"height_mean"`
	HeightStdDev float64 `csv:"height_stddev"`
	ChiSquare    float64 `csv:"radial_chi2"`
	PValue       float64 `csv:"radial_p"`
}

// NewRunRecord fills a record from a summary.
func NewRunRecord(run int, seed uint64, requested int, took time.Duration, s Summary) RunRecord {
	return RunRecord{
		Run:          run,
		Seed:         seed,
		Requested:    requested,
		Blades:       s.Blades,
		Vertices:     s.Vertices,
		Indices:      s.Triangles * 3,
		DurationMS:   float64(took.Microseconds()) / 1000,
		HeightMean:   s.HeightMean,
		HeightStdDev: s.HeightStdDev,
		ChiSquare:    s.Radial.ChiSquare,
		PValue:       s.Radial.PValue,
	}
}

// WriteCSV writes records with a header row.
func WriteCSV(w io.Writer, records []RunRecord) error {
	return gocsv.Marshal(records, w)
}

// SaveCSV writes records to a file, creating parent directories.
func SaveCSV(path string, records []RunRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	if err := WriteCSV(f, records); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}

// ReadCSV parses a report written by WriteCSV.
func ReadCSV(r io.Reader) ([]RunRecord, error) {
	var records []RunRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, err
	}
	return records, nil
}
