package solar

import (
	"encoding/csv"
	"os"
	"strconv"
	"testing"

	"github.com/gonum/floats"
)

func TestEphemerisExport(t *testing.T) {
	sys := testSystem(t)
	config.outputDir = t.TempDir()
	sys.Propagate(0, J2000)

	conf := ExportConfig{Filename: "planets", Bodies: []string{"Mercury", "Earth"}}
	w, err := NewEphemerisWriter(conf, sys)
	if err != nil {
		t.Fatalf("NewEphemerisWriter: %s", err)
	}
	if err = w.Write(J2000, sys); err != nil {
		t.Fatalf("Write: %s", err)
	}
	sys.Propagate(1, J2000+1)
	if err = w.Write(J2000+1, sys); err != nil {
		t.Fatalf("Write: %s", err)
	}
	if err = w.Close(); err != nil {
		t.Fatalf("Close: %s", err)
	}

	f, err := os.Open(config.outputDir + "/ephemeris-planets.csv")
	if err != nil {
		t.Fatalf("output file: %s", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading CSV: %s", err)
	}
	if len(rows) != 3 {
		t.Fatalf("%d rows, expected header plus two frames", len(rows))
	}
	header := rows[0]
	want := []string{"jd", "Mercury_x", "Mercury_y", "Mercury_z", "Earth_x", "Earth_y", "Earth_z"}
	if len(header) != len(want) {
		t.Fatalf("header %v", header)
	}
	for i := range want {
		if header[i] != want[i] {
			t.Fatalf("header column %d is %q, expected %q", i, header[i], want[i])
		}
	}
	jd, err := strconv.ParseFloat(rows[1][0], 64)
	if err != nil || jd != J2000 {
		t.Fatalf("first frame JD %q", rows[1][0])
	}
	// Round-tripped coordinates must match the live body positions of the
	// last propagated frame.
	earth, _, _ := sys.BodyByName("Earth")
	for i := 0; i < 3; i++ {
		got, err := strconv.ParseFloat(rows[2][4+i], 64)
		if err != nil {
			t.Fatalf("parsing coordinate: %s", err)
		}
		if !floats.EqualWithinAbs(got, earth.Position[i], 1e-12) {
			t.Fatalf("Earth coordinate %d is %f, expected %f", i, got, earth.Position[i])
		}
	}
}

func TestEphemerisExportAllBodies(t *testing.T) {
	sys := testSystem(t)
	config.outputDir = t.TempDir()

	w, err := NewEphemerisWriter(ExportConfig{Filename: "all"}, sys)
	if err != nil {
		t.Fatalf("NewEphemerisWriter: %s", err)
	}
	if err = w.Close(); err != nil {
		t.Fatalf("Close: %s", err)
	}
	f, err := os.Open(config.outputDir + "/ephemeris-all.csv")
	if err != nil {
		t.Fatalf("output file: %s", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading CSV: %s", err)
	}
	if want := 1 + 3*len(sys.Bodies); len(rows[0]) != want {
		t.Fatalf("%d header columns, expected %d", len(rows[0]), want)
	}
}

func TestEphemerisExportRejects(t *testing.T) {
	sys := testSystem(t)
	config.outputDir = t.TempDir()

	if _, err := NewEphemerisWriter(ExportConfig{}, sys); err == nil {
		t.Fatal("empty config was accepted")
	}
	if _, err := NewEphemerisWriter(ExportConfig{Filename: "x", Bodies: []string{"Vulcan"}}, sys); err == nil {
		t.Fatal("unknown body was accepted")
	}
	if !(ExportConfig{}).IsUseless() {
		t.Fatal("empty config not flagged useless")
	}
}
