package experiment

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/planning"
)

// Status of a run.
const (
	StatusOK    = "ok"
	StatusEmpty = "empty"
	StatusError = "error"
)

// Record is the outcome of one planner on one scene.
type Record struct {
	ID      string `json:"id"`
	Run     int    `json:"run"`
	Seed    int64  `json:"seed"`
	Planner string `json:"planner"`
	Status  string `json:"status"`

	Goals   int   `json:"goals"`
	Visited []int `json:"visited"`

	Length  float64 `json:"path_length"`
	Cost    float64 `json:"cost"`
	Seconds float64 `json:"planning_seconds"`

	StartedAt  time.Time       `json:"started_at"`
	Parameters planning.Params `json:"parameters"`
	Error      string          `json:"error,omitempty"`
}

// Failed returns the number of goals the tour does not visit.
func (r Record) Failed() int { return r.Goals - len(r.Visited) }

// WriteJSON writes records as an indented JSON array.
func WriteJSON(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if records == nil {
		records = []Record{}
	}
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("experiment: encode records: %w", err)
	}

	return nil
}

// WriteJSONFile writes records to path, replacing it.
func WriteJSONFile(path string, records []Record) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("experiment: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("experiment: close %s: %w", path, cerr)
		}
	}()

	return WriteJSON(f, records)
}

// ReadJSON decodes records written by WriteJSON.
func ReadJSON(r io.Reader) ([]Record, error) {
	var out []Record
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("experiment: decode records: %w", err)
	}

	return out, nil
}
