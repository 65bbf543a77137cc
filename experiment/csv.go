package experiment

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

var recordHeader = []string{
	"method", "instance", "n", "p", "runs",
	"best_of", "mean_of", "std_of", "worst_of",
	"time_mean_ms", "time_std_ms",
}

var summaryHeader = []string{
	"method", "instances", "dev_avg_pct", "num_best", "score",
}

// WriteRecordsCSV writes one row per record.
func WriteRecordsCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(recordHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Method,
			r.Instance,
			strconv.Itoa(r.N),
			strconv.Itoa(r.P),
			strconv.Itoa(r.Runs),
			ftoa(r.Objective.Best),
			ftoa(r.Objective.Mean),
			ftoa(r.Objective.Std),
			ftoa(r.Objective.Worst),
			ftoa(r.TimeMs.Mean),
			ftoa(r.TimeMs.Std),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

// WriteSummaryCSV writes one row per summary.
func WriteSummaryCSV(w io.Writer, rows []Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(summaryHeader); err != nil {
		return err
	}
	for _, s := range rows {
		row := []string{
			s.Method,
			strconv.Itoa(s.Instances),
			ftoa(s.DevAvg),
			strconv.Itoa(s.NumBest),
			ftoa(s.Score),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

// SaveCSV creates path (and its directory) and fills it with write.
func SaveCSV(path string, write func(io.Writer) error) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err = os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("experiment: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("experiment: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return write(f)
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
