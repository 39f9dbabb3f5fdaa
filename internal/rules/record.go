package rules

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/avray/plife/internal/life"
)

// Record is the on-disk rule matrix format shared with external editors.
type Record struct {
	K int         `json:"k"`
	A [][]float64 `json:"a"`
}

// Save writes m to path as a Record.
func Save(path string, m Matrix) error {
	rec := Record{K: m.K(), A: m}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

// Load reads a Record from path and validates it against the live type
// count k. Records whose side disagrees with k are rejected with
// [life.ErrShapeMismatch]. Entries are clamped into [-1,1].
func Load(path string, k int) (Matrix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode matrix record: %w", err)
	}

	m := Matrix(rec.A)
	if rec.K != k || !m.Valid(k) {
		return nil, fmt.Errorf("record is %dx%d, live type count is %d: %w",
			rec.K, len(rec.A), k, life.ErrShapeMismatch)
	}

	m = m.Clone()
	m.Clamp()
	return m, nil
}
