package solar

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

// ExportConfig configures the CSV ephemeris export.
type ExportConfig struct {
	Filename  string
	Timestamp bool     // append the creation time to the file name
	Bodies    []string // subset of body names; empty exports all
}

// IsUseless returns whether this configuration would export nothing.
func (c ExportConfig) IsUseless() bool {
	return c.Filename == ""
}

// EphemerisWriter streams per-frame body positions to a CSV file with one
// row per frame: the Julian Date followed by x, y, z world coordinates for
// each exported body.
type EphemerisWriter struct {
	f      *os.File
	w      *csv.Writer
	bodies []string
}

// NewEphemerisWriter creates the output file and writes the header row.
func NewEphemerisWriter(conf ExportConfig, sys *System) (*EphemerisWriter, error) {
	if conf.IsUseless() {
		return nil, fmt.Errorf("export config has no file name")
	}
	names := conf.Bodies
	if len(names) == 0 {
		for _, b := range sys.Bodies {
			names = append(names, b.Name)
		}
	} else {
		for _, name := range names {
			if _, _, found := sys.BodyByName(name); !found {
				return nil, fmt.Errorf("cannot export unknown body %q", name)
			}
		}
	}
	filename := fmt.Sprintf("%s/ephemeris-%s.csv", solarConfig().outputDir, conf.Filename)
	if conf.Timestamp {
		t := time.Now()
		filename = fmt.Sprintf("%s/ephemeris-%s-%d-%02d-%02dT%02d.%02d.%02d.csv",
			solarConfig().outputDir, conf.Filename,
			t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
	}
	f, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)
	header := []string{"jd"}
	for _, name := range names {
		header = append(header, name+"_x", name+"_y", name+"_z")
	}
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, err
	}
	return &EphemerisWriter{f: f, w: w, bodies: names}, nil
}

// Write appends one frame's positions.
func (e *EphemerisWriter) Write(jd float64, sys *System) error {
	row := make([]string, 0, 1+3*len(e.bodies))
	row = append(row, strconv.FormatFloat(jd, 'f', -1, 64))
	for _, name := range e.bodies {
		b, _, _ := sys.BodyByName(name)
		for i := 0; i < 3; i++ {
			row = append(row, strconv.FormatFloat(b.Position[i], 'f', -1, 64))
		}
	}
	return e.w.Write(row)
}

// Close flushes and closes the file.
func (e *EphemerisWriter) Close() error {
	e.w.Flush()
	if err := e.w.Error(); err != nil {
		e.f.Close()
		return err
	}
	return e.f.Close()
}
