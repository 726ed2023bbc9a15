// Package export persists forecast tables as CSV files.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"weather-fetcher/models"
)

// DefaultPrecision writes temperatures rounded to roundDecimals places with
// trailing zeros trimmed, so 300 K becomes 26.85 and values read back equal
// what was written to within 1e-10.
const DefaultPrecision = -1

const roundDecimals = 10

// ErrWrite is returned when a table cannot be written to disk
var ErrWrite = errors.New("failed to write forecast table")

// Header is the first row of every file written by WriteCSV
var Header = []string{"date", "temperature", "humidity"}

// WriteCSV writes table to path, replacing any existing file and keeping its
// permissions. A non-negative precision writes that many temperature decimals.
func WriteCSV(table *models.Table, path string, precision int) (err error) {
	n := table.Len()
	if n < 0 {
		return fmt.Errorf("%w: columns have unequal length (%d dates, %d temperatures, %d humidity)",
			ErrWrite, len(table.Dates), len(table.Temperatures), len(table.Humidity))
	}

	mode := fs.FileMode(0o644)
	if fi, statErr := os.Stat(path); statErr == nil && fi.Mode().IsRegular() {
		mode = fi.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := csv.NewWriter(tmp)
	if err = w.Write(Header); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	for i := 0; i < n; i++ {
		row := []string{
			table.Dates[i],
			FormatTemperature(table.Temperatures[i], precision),
			strconv.Itoa(table.Humidity[i]),
		}
		if err = w.Write(row); err != nil {
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	if err = tmp.Chmod(mode); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// FormatTemperature renders v with precision decimals, or rounded and trimmed
// when precision is negative
func FormatTemperature(v float64, precision int) string {
	if precision >= 0 {
		return strconv.FormatFloat(v, 'f', precision, 64)
	}
	scale := math.Pow10(roundDecimals)
	if r := math.Round(v*scale) / scale; !math.IsInf(v*scale, 0) {
		v = r
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ReadCSV reads a file produced by WriteCSV back into a table
func ReadCSV(path string) (*models.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(Header)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: missing header", path)
	}
	for i, name := range Header {
		if records[0][i] != name {
			return nil, fmt.Errorf("%s: unexpected header %v", path, records[0])
		}
	}

	table := &models.Table{}
	for line, rec := range records[1:] {
		temperature, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad temperature: %w", path, line+2, err)
		}
		humidity, err := strconv.Atoi(rec[2])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad humidity: %w", path, line+2, err)
		}
		table.Append(rec[0], temperature, humidity)
	}
	return table, nil
}
