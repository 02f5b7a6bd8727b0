package panel

import (
	"errors"
	"fmt"
)

// Channel is one knob in a stage
type Channel struct {
	Label   string `toml:"label" json:"label"`
	Default int    `toml:"default" json:"default"`
}

// Template defines the knobs every stage holds
type Template struct {
	Channels []Channel `toml:"channels" json:"channels"`
}

// DefaultTemplate returns four channels starting dark
func DefaultTemplate() Template {
	return Template{
		Channels: []Channel{
			{Label: "Ch 1"},
			{Label: "Ch 2"},
			{Label: "Ch 3"},
			{Label: "Ch 4"},
		},
	}
}

// Width is the number of values per stage
func (t Template) Width() int {
	return len(t.Channels)
}

// Validate checks the template has channels and in-range defaults
func (t Template) Validate() error {
	if len(t.Channels) == 0 {
		return errors.New("template has no channels")
	}
	for i, ch := range t.Channels {
		if ch.Default < MinValue || ch.Default > MaxValue {
			return fmt.Errorf("channel %d (%s): default %d outside [%d, %d]", i+1, ch.Label, ch.Default, MinValue, MaxValue)
		}
	}
	return nil
}

// Defaults returns a fresh value slice initialized from the template
func (t Template) Defaults() []int {
	values := make([]int, len(t.Channels))
	for i, ch := range t.Channels {
		values[i] = ch.Default
	}
	return values
}

// Stage is one step of a custom pattern. Label is assigned on insertion and
// never renumbered.
type Stage struct {
	Label  string
	Values []int
}

// Draft is a custom pattern being authored
type Draft struct {
	Name     string
	template Template
	stages   []Stage
}

// NewDraft creates a draft holding one fresh stage
func NewDraft(t Template) *Draft {
	d := &Draft{template: t}
	d.AddStage()
	return d
}

// Template returns the stage template
func (d *Draft) Template() Template {
	return d.template
}

// AddStage appends a stage at template defaults and returns its index
func (d *Draft) AddStage() int {
	d.stages = append(d.stages, Stage{
		Label:  fmt.Sprintf("Stage %d", len(d.stages)+1),
		Values: d.template.Defaults(),
	})
	return len(d.stages) - 1
}

// Len returns the number of stages
func (d *Draft) Len() int {
	return len(d.stages)
}

// Stages returns a copy of the stages in order
func (d *Draft) Stages() []Stage {
	out := make([]Stage, len(d.stages))
	for i, s := range d.stages {
		out[i] = Stage{Label: s.Label, Values: append([]int(nil), s.Values...)}
	}
	return out
}

// Value returns the value of one channel, or 0 if out of range
func (d *Draft) Value(stage, ch int) int {
	if !d.inRange(stage, ch) {
		return 0
	}
	return d.stages[stage].Values[ch]
}

// SetValue stores v clamped to [0, 255] and returns the stored value
func (d *Draft) SetValue(stage, ch, v int) (int, error) {
	if !d.inRange(stage, ch) {
		return 0, fmt.Errorf("no channel %d in stage %d", ch+1, stage+1)
	}
	v = Clamp(v)
	d.stages[stage].Values[ch] = v
	return v, nil
}

// Adjust adds delta to a channel value, clamping the result
func (d *Draft) Adjust(stage, ch, delta int) (int, error) {
	return d.SetValue(stage, ch, d.Value(stage, ch)+delta)
}

// Reset discards the name and every stage, then adds one fresh stage
func (d *Draft) Reset() {
	d.Name = ""
	d.stages = nil
	d.AddStage()
}

// Submission snapshots the draft as the save payload
func (d *Draft) Submission() Submission {
	stages := make([][]int, len(d.stages))
	for i, s := range d.stages {
		stages[i] = append([]int(nil), s.Values...)
	}
	return Submission{Name: d.Name, Stages: stages}
}

func (d *Draft) inRange(stage, ch int) bool {
	return stage >= 0 && stage < len(d.stages) && ch >= 0 && ch < len(d.stages[stage].Values)
}

// Submission is the JSON body of POST /save
type Submission struct {
	Name   string  `json:"name"`
	Stages [][]int `json:"stages"`
}

// ErrEmptySubmission is returned when a submission has no stages
var ErrEmptySubmission = errors.New("submission has no stages")

// Validate checks every stage has width values in [0, 255]
func (s Submission) Validate(width int) error {
	if len(s.Stages) == 0 {
		return ErrEmptySubmission
	}
	for i, stage := range s.Stages {
		if len(stage) != width {
			return fmt.Errorf("stage %d: got %d values, want %d", i+1, len(stage), width)
		}
		for j, v := range stage {
			if v < MinValue || v > MaxValue {
				return fmt.Errorf("stage %d channel %d: %d outside [%d, %d]", i+1, j+1, v, MinValue, MaxValue)
			}
		}
	}
	return nil
}
