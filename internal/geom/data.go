package geom

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/cortexmorph/internal/fault"
)

// LoadScalars reads a per-vertex scalar field: whitespace-separated floats,
// one per vertex. The literal "nan" (any case) is the documented sentinel
// for "no data at this vertex, show as background".
func LoadScalars(path string, n int) ([]float64, error) {
	fields, err := readFields(path)
	if err != nil {
		return nil, err
	}
	if len(fields) != n {
		return nil, fmt.Errorf("%w: %s holds %d values for %d vertices", fault.ErrInvalidArgument, path, len(fields), n)
	}
	out := make([]float64, n)
	for i, tok := range fields {
		if strings.EqualFold(tok, "nan") {
			out[i] = math.NaN()
			continue
		}
		out[i], err = strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: value %d: %w", path, i+1, err)
		}
	}
	return out, nil
}

// LoadParcels reads a per-vertex parcel assignment: whitespace-separated
// integers, one per vertex. Label 0 means unassigned.
func LoadParcels(path string, n int) ([]int, error) {
	fields, err := readFields(path)
	if err != nil {
		return nil, err
	}
	if len(fields) != n {
		return nil, fmt.Errorf("%w: %s holds %d labels for %d vertices", fault.ErrInvalidArgument, path, len(fields), n)
	}
	out := make([]int, n)
	for i, tok := range fields {
		out[i], err = strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("%s: label %d: %w", path, i+1, err)
		}
	}
	return out, nil
}

func readFields(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return strings.Fields(string(data)), nil
}
