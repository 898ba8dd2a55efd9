package cli

import (
	"encoding/csv"
	"os"
	"strconv"

	apperrors "fitkit/internal/errors"
)

// LoadDataFile reads a two-column CSV file of (x, y) samples. A first row
// that does not parse as numbers is treated as a header and skipped.
//
// Parameters:
//   - path: The CSV file path.
//
// Returns:
//   - []float64: The x values.
//   - []float64: The y values, same length as x.
//   - error: A ConfigError describing what could not be read or parsed.
func LoadDataFile(path string) ([]float64, []float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, apperrors.NewConfigError("opening data file: %v", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 2
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, apperrors.NewConfigError("reading data file %q: %v", path, err)
	}
	if len(records) == 0 {
		return nil, nil, apperrors.NewConfigError("data file %q is empty", path)
	}

	start := 0
	if _, err := strconv.ParseFloat(records[0][0], 64); err != nil {
		start = 1 // header row
	}
	if len(records) == start {
		return nil, nil, apperrors.NewConfigError("data file %q has no data rows", path)
	}

	x := make([]float64, 0, len(records)-start)
	y := make([]float64, 0, len(records)-start)
	for i, record := range records[start:] {
		xv, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, nil, apperrors.NewConfigError("row %d: bad x value %q", i+start+1, record[0])
		}
		yv, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, nil, apperrors.NewConfigError("row %d: bad y value %q", i+start+1, record[1])
		}
		x = append(x, xv)
		y = append(y, yv)
	}
	return x, y, nil
}
