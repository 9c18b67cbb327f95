package plan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fieldscope/fieldscope-go/pkg/envelope"
)

// ParsePlan parses and validates a plan from YAML bytes.
func ParsePlan(data []byte) (*Plan, error) {
	var doc planDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{
			Message: "failed to parse YAML",
			Cause:   err,
		}
	}

	if doc.Name == "" {
		return nil, &LoadError{Message: "plan name is required"}
	}

	distance, err := doc.Requirement.Distance.interval("requirement distance")
	if err != nil {
		return nil, err
	}
	light, err := doc.Requirement.Light.interval("requirement light")
	if err != nil {
		return nil, err
	}

	p := &Plan{
		Name:        doc.Name,
		Description: doc.Description,
		Requirement: envelope.Requirement{Distance: distance, Light: light},
	}

	seen := make(map[string]bool, len(doc.Devices))
	for i, d := range doc.Devices {
		if d.ID == "" {
			return nil, &LoadError{Message: fmt.Sprintf("device %d: id is required", i)}
		}
		if seen[d.ID] {
			return nil, &LoadError{Message: fmt.Sprintf("duplicate device id %q", d.ID)}
		}
		seen[d.ID] = true

		distance, err := d.Distance.interval(fmt.Sprintf("device %q distance", d.ID))
		if err != nil {
			return nil, err
		}
		light, err := d.Light.interval(fmt.Sprintf("device %q light", d.ID))
		if err != nil {
			return nil, err
		}
		p.Devices = append(p.Devices, envelope.Device{ID: d.ID, Distance: distance, Light: light})
	}

	return p, nil
}

// LoadPlan loads a plan from a file.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			File:    path,
			Message: "failed to read file",
			Cause:   err,
		}
	}

	p, err := ParsePlan(data)
	if err != nil {
		if le, ok := err.(*LoadError); ok {
			le.File = path
			return nil, le
		}
		return nil, &LoadError{
			File:    path,
			Message: err.Error(),
		}
	}

	return p, nil
}

// LoadDirectory loads all plans from a directory, sorted by file name.
// Only files with .yaml or .yml extensions are loaded.
func LoadDirectory(dir string) ([]*Plan, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{
			File:    dir,
			Message: "failed to read directory",
			Cause:   err,
		}
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var plans []*Plan
	for _, name := range names {
		p, err := LoadPlan(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}

	return plans, nil
}
