package replay

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/five82/quill/internal/form"
)

// Script is a timed sequence of user edits.
type Script struct {
	// SettleMS is how long to keep running after the last step so
	// outstanding saves and acknowledgments can finish.
	SettleMS int64  `yaml:"settle_ms"`
	Steps    []Step `yaml:"steps"`
}

// Step sets one or more fields at AtMS milliseconds after the start.
type Step struct {
	AtMS   int64   `yaml:"at_ms"`
	Text   *string `yaml:"text,omitempty"`
	Choice *string `yaml:"choice,omitempty"`
	Toggle *bool   `yaml:"toggle,omitempty"`
}

// At returns the step offset.
func (s Step) At() time.Duration {
	return time.Duration(s.AtMS) * time.Millisecond
}

// Settle returns the settle period.
func (s Script) Settle() time.Duration {
	return time.Duration(s.SettleMS) * time.Millisecond
}

// Load reads and validates a script from fsys.
func Load(fsys afero.Fs, path string) (Script, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return Script{}, fmt.Errorf("read script: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML script. Unknown keys are rejected.
func Parse(data []byte) (Script, error) {
	var script Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&script); err != nil {
		if errors.Is(err, io.EOF) {
			return Script{}, errors.New("parse script: empty document")
		}
		return Script{}, fmt.Errorf("parse script: %w", err)
	}
	if err := script.Validate(); err != nil {
		return Script{}, err
	}
	return script, nil
}

// Validate checks step ordering and values.
func (s Script) Validate() error {
	if len(s.Steps) == 0 {
		return errors.New("script has no steps")
	}
	if s.SettleMS < 0 {
		return fmt.Errorf("settle_ms must not be negative, got %d", s.SettleMS)
	}
	var last int64
	for i, step := range s.Steps {
		if step.AtMS < 0 {
			return fmt.Errorf("step %d: at_ms must not be negative, got %d", i+1, step.AtMS)
		}
		if step.AtMS < last {
			return fmt.Errorf("step %d: at_ms %d is before the previous step (%d)", i+1, step.AtMS, last)
		}
		last = step.AtMS
		if step.Text == nil && step.Choice == nil && step.Toggle == nil {
			return fmt.Errorf("step %d: sets no field", i+1)
		}
		if step.Choice != nil && !form.ValidChoice(*step.Choice) {
			return fmt.Errorf("step %d: unknown choice %q", i+1, *step.Choice)
		}
	}
	return nil
}

// apply performs the step's edits on f the way a user would.
func (s Step) apply(f *form.Form) error {
	if s.Text != nil {
		f.SetText(*s.Text)
	}
	if s.Choice != nil {
		if err := f.SetChoice(*s.Choice); err != nil {
			return err
		}
	}
	if s.Toggle != nil {
		f.SetToggle(*s.Toggle)
	}
	return nil
}
