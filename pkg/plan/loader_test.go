package plan

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fieldscope/fieldscope-go/pkg/envelope"
)

const validPlanYAML = `
name: warehouse-entrance
description: Entrance corridor, day and night operation
requirement:
  distance: {min: 1, max: 10}
  light: {min: 10, max: 1000}
devices:
  - id: cam1
    distance: {min: 1, max: 5}
    light: {min: 10, max: 1000}
  - id: cam2
    distance: {min: 4, max: 10}
    light: {min: 10, max: 1000}
`

func TestParsePlan(t *testing.T) {
	p, err := ParsePlan([]byte(validPlanYAML))
	if err != nil {
		t.Fatalf("ParsePlan failed: %v", err)
	}

	if p.Name != "warehouse-entrance" {
		t.Errorf("Name = %q, want warehouse-entrance", p.Name)
	}
	if p.Requirement.Distance != (envelope.Interval{Lo: 1, Hi: 10}) {
		t.Errorf("requirement distance = %v, want [1, 10]", p.Requirement.Distance)
	}
	if p.Requirement.Light != (envelope.Interval{Lo: 10, Hi: 1000}) {
		t.Errorf("requirement light = %v, want [10, 1000]", p.Requirement.Light)
	}
	if len(p.Devices) != 2 {
		t.Fatalf("expected 2 devices, got %d", len(p.Devices))
	}
	if p.Devices[0].ID != "cam1" || p.Devices[1].ID != "cam2" {
		t.Errorf("device IDs = %q, %q", p.Devices[0].ID, p.Devices[1].ID)
	}
	if p.Devices[1].Distance != (envelope.Interval{Lo: 4, Hi: 10}) {
		t.Errorf("cam2 distance = %v, want [4, 10]", p.Devices[1].Distance)
	}
}

func TestParsePlanErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{
			name:    "invalid YAML",
			input:   "name: [unclosed",
			wantMsg: "failed to parse YAML",
		},
		{
			name: "missing name",
			input: `
requirement:
  distance: {min: 1, max: 10}
  light: {min: 10, max: 1000}
`,
			wantMsg: "plan name is required",
		},
		{
			name: "missing requirement light",
			input: `
name: p
requirement:
  distance: {min: 1, max: 10}
`,
			wantMsg: "requirement light range is required",
		},
		{
			name: "device without id",
			input: `
name: p
requirement:
  distance: {min: 1, max: 10}
  light: {min: 10, max: 1000}
devices:
  - distance: {min: 1, max: 5}
    light: {min: 10, max: 1000}
`,
			wantMsg: "id is required",
		},
		{
			name: "duplicate device id",
			input: `
name: p
requirement:
  distance: {min: 1, max: 10}
  light: {min: 10, max: 1000}
devices:
  - id: cam1
    distance: {min: 1, max: 5}
    light: {min: 10, max: 1000}
  - id: cam1
    distance: {min: 4, max: 10}
    light: {min: 10, max: 1000}
`,
			wantMsg: `duplicate device id "cam1"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePlan([]byte(tt.input))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParsePlanInvertedBounds(t *testing.T) {
	input := `
name: p
requirement:
  distance: {min: 10, max: 1}
  light: {min: 10, max: 1000}
`
	_, err := ParsePlan([]byte(input))
	if err == nil {
		t.Fatal("expected error for inverted bounds")
	}

	var invalid *envelope.InvalidIntervalError
	if !errors.As(err, &invalid) {
		t.Errorf("expected wrapped *envelope.InvalidIntervalError, got %v", err)
	}
	if invalid.Lo != 10 || invalid.Hi != 1 {
		t.Errorf("error bounds = %v/%v, want 10/1", invalid.Lo, invalid.Hi)
	}
}

func TestParsePlanEmptyDeviceList(t *testing.T) {
	input := `
name: empty
requirement:
  distance: {min: 1, max: 10}
  light: {min: 10, max: 1000}
`
	p, err := ParsePlan([]byte(input))
	if err != nil {
		t.Fatalf("ParsePlan failed: %v", err)
	}
	if len(p.Devices) != 0 {
		t.Errorf("expected empty device list, got %v", p.Devices)
	}
}

func TestLoadPlan(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.yaml")
	if err := os.WriteFile(path, []byte(validPlanYAML), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPlan(path)
	if err != nil {
		t.Fatalf("LoadPlan failed: %v", err)
	}
	if p.Name != "warehouse-entrance" {
		t.Errorf("Name = %q, want warehouse-entrance", p.Name)
	}
}

func TestLoadPlanMissingFile(t *testing.T) {
	_, err := LoadPlan(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}

	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LoadError, got %T", err)
	}
	if le.File == "" {
		t.Error("LoadError.File should carry the path")
	}
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()

	second := strings.Replace(validPlanYAML, "warehouse-entrance", "loading-dock", 1)
	if err := os.WriteFile(filepath.Join(dir, "b-dock.yaml"), []byte(second), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a-entrance.yml"), []byte(validPlanYAML), 0644); err != nil {
		t.Fatal(err)
	}
	// Ignored: wrong extension.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0644); err != nil {
		t.Fatal(err)
	}

	plans, err := LoadDirectory(dir)
	if err != nil {
		t.Fatalf("LoadDirectory failed: %v", err)
	}
	if len(plans) != 2 {
		t.Fatalf("expected 2 plans, got %d", len(plans))
	}
	// Sorted by file name.
	if plans[0].Name != "warehouse-entrance" || plans[1].Name != "loading-dock" {
		t.Errorf("plan order = %q, %q", plans[0].Name, plans[1].Name)
	}
}
