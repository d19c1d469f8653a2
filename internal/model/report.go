package model

import (
	"fmt"
	"time"
)

// Status represents the outcome of a build step.
type Status int

const (
	// Pending indicates the step has not run yet.
	Pending Status = iota
	// Succeeded indicates the external command exited with status 0.
	Succeeded
	// Failed indicates the external command failed to start or exited non-zero.
	Failed
	// Skipped indicates the step was not attempted because an earlier one failed.
	Skipped
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Succeeded:
		return "ok"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// MarshalYAML renders the status by name in build reports.
func (s Status) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// UnmarshalYAML parses a status name written by MarshalYAML.
func (s *Status) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}

	for _, candidate := range []Status{Pending, Succeeded, Failed, Skipped} {
		if candidate.String() == name {
			*s = candidate
			return nil
		}
	}

	return fmt.Errorf("unknown status %q", name)
}

// UnitReport records how one translation unit was built.
type UnitReport struct {
	Source   Path          `yaml:"source"`
	Object   Path          `yaml:"object"`
	Command  string        `yaml:"command"`
	Status   Status        `yaml:"status"`
	Duration time.Duration `yaml:"duration"`
	Output   string        `yaml:"output,omitempty"`
}

// LinkReport records the link step.
type LinkReport struct {
	Binary   Path          `yaml:"binary"`
	Command  string        `yaml:"command,omitempty"`
	Status   Status        `yaml:"status"`
	Duration time.Duration `yaml:"duration"`
	Output   string        `yaml:"output,omitempty"`
}

// BuildReport summarizes a whole build invocation. Units appear in ledger order.
type BuildReport struct {
	Units    []UnitReport  `yaml:"units"`
	Link     LinkReport    `yaml:"link"`
	Replaced bool          `yaml:"replaced"`
	Duration time.Duration `yaml:"duration"`
}

// Failed returns the units whose compile step failed.
func (r *BuildReport) Failed() []UnitReport {
	var failed []UnitReport

	for _, unit := range r.Units {
		if unit.Status == Failed {
			failed = append(failed, unit)
		}
	}

	return failed
}
