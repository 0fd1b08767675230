package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/nao1215/hoccrawler/crawler"
	"github.com/nao1215/hoccrawler/hocrange"
	"github.com/nao1215/hoccrawler/quantity"
)

// Predicate types understood by the job file.
const (
	PredicateLimits = "limits"
	PredicateExec   = "exec"
)

// openWords are the spellings accepted for an unbounded stop.
var openWords = []string{"open", "none", "inf", "infinity", "unbounded"}

// RangeConfig describes a range of cover heights.
// Values are quantity strings such as "2", "2.5 ft" or "1m".
type RangeConfig struct {
	// Start is the first height tried. Empty means 1.
	Start string `yaml:"start,omitempty"`

	// Stop is the last height tried. Empty or "open" leaves the range
	// unbounded.
	Stop string `yaml:"stop,omitempty"`

	// Step is the distance between heights. Empty means 1.
	Step string `yaml:"step,omitempty"`

	// Unit is applied to any of start, stop and step given without one.
	Unit string `yaml:"unit,omitempty"`
}

// Args converts the range into positional arguments for hocrange.New.
// It always returns three values; nil marks an omitted one.
func (rc RangeConfig) Args() ([]any, error) {
	unit := quantity.ParseUnit(rc.Unit)
	fields := []struct {
		name  string
		value string
	}{
		{"start", rc.Start},
		{"stop", rc.Stop},
		{"step", rc.Step},
	}

	args := make([]any, 0, len(fields))
	for _, f := range fields {
		v := strings.TrimSpace(f.value)
		switch {
		case v == "" && f.name != "stop" && unit != "":
			// promote the default so a lone unit still tags the range
			def := hocrange.DefaultStart
			if f.name == "step" {
				def = hocrange.DefaultStep
			}
			args = append(args, quantity.New(def, unit))
			continue
		case v == "", f.name == "stop" && IsOpenStop(v):
			args = append(args, nil)
			continue
		}
		q, err := quantity.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("range %s: %w", f.name, err)
		}
		if q, err = q.WithUnit(unit); err != nil {
			return nil, fmt.Errorf("range %s: %w", f.name, err)
		}
		args = append(args, q)
	}
	return args, nil
}

// IsOpenStop reports whether a stop value leaves the range unbounded.
func IsOpenStop(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "" || slices.Contains(openWords, s)
}

// PredicateConfig selects and configures a built-in predicate.
type PredicateConfig struct {
	// Type is "limits" or "exec".
	Type string `yaml:"type,omitempty"`

	// MinCover and MaxCover bound the accepted heights for the limits
	// predicate. Empty sides are open.
	MinCover string `yaml:"minCover,omitempty"`
	MaxCover string `yaml:"maxCover,omitempty"`

	// Exclude lists heights the limits predicate always rejects.
	Exclude []string `yaml:"exclude,omitempty"`

	// MaxGroundwater bounds the groundwater height in flooded crawls.
	MaxGroundwater string `yaml:"maxGroundwater,omitempty"`

	// Command is the program run by the exec predicate.
	Command string `yaml:"command,omitempty"`

	// Args are passed to Command.
	Args []string `yaml:"args,omitempty"`

	// Env adds environment variables for Command.
	Env map[string]string `yaml:"env,omitempty"`

	// RejectExitCode is the exit status that rejects a candidate.
	// Zero means DefaultRejectExitCode.
	RejectExitCode int `yaml:"rejectExitCode,omitempty"`
}

// JobConfig describes one crawl.
type JobConfig struct {
	// Target is "min" or "max", in any letter case.
	Target string `yaml:"target,omitempty"`

	// Flooded sets the groundwater height equal to the cover height.
	Flooded *bool `yaml:"flooded,omitempty"`

	// Forgiveness is the number of consecutive rejections tolerated.
	Forgiveness *int `yaml:"forgiveness,omitempty"`

	// Range is the range of heights to walk.
	Range RangeConfig `yaml:"range,omitempty"`

	// Predicate decides which heights are valid.
	Predicate PredicateConfig `yaml:"predicate,omitempty"`

	// Params are forwarded to the predicate with every candidate.
	Params map[string]string `yaml:"params,omitempty"`
}

// IsFlooded returns the flooded flag, defaulting to false.
func (jc JobConfig) IsFlooded() bool {
	return jc.Flooded != nil && *jc.Flooded
}

// ForgivenessLevel returns the forgiveness level, defaulting to DefaultForgiveness.
func (jc JobConfig) ForgivenessLevel() int {
	if jc.Forgiveness == nil {
		return DefaultForgiveness
	}
	return *jc.Forgiveness
}

// Validate checks the fields that can be checked without running the job.
func (jc JobConfig) Validate() error {
	if strings.TrimSpace(jc.Target) == "" {
		return ErrMissingTarget
	}
	if _, err := crawler.ParseTarget(jc.Target); err != nil {
		return err
	}
	if jc.ForgivenessLevel() < 0 {
		return ErrInvalidForgiveness
	}
	if _, err := jc.Range.Args(); err != nil {
		return err
	}

	switch strings.ToLower(jc.Predicate.Type) {
	case PredicateLimits:
	case PredicateExec:
		if jc.Predicate.Command == "" {
			return ErrMissingCommand
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPredicate, jc.Predicate.Type)
	}
	return nil
}

// CheckBounded rejects a job over an open range that can never end: a zero
// step repeats the start height forever, and a limits predicate with no
// limit on the crawl side never rejects the heights ahead of it.
// Exec predicates are trusted to reject eventually.
func (jc JobConfig) CheckBounded() error {
	if !IsOpenStop(jc.Range.Stop) {
		return nil
	}
	if step := strings.TrimSpace(jc.Range.Step); step != "" {
		if q, err := quantity.Parse(step); err == nil && q.Magnitude() == 0 {
			return fmt.Errorf("%w: zero step", ErrUnboundedCrawl)
		}
	}
	if !strings.EqualFold(jc.Predicate.Type, PredicateLimits) {
		return nil
	}

	target, err := crawler.ParseTarget(jc.Target)
	if err != nil {
		return nil //nolint:nilerr // Validate reports the target error
	}
	if target == crawler.Max && strings.TrimSpace(jc.Predicate.MaxCover) == "" {
		return ErrUnboundedCrawl
	}
	if target == crawler.Min && strings.TrimSpace(jc.Predicate.MinCover) == "" {
		return ErrUnboundedCrawl
	}
	return nil
}

// File represents the structure of the job file.
type File struct {
	// Jobs maps job names to their configuration.
	Jobs map[string]JobConfig `yaml:"jobs,omitempty"`

	// Defaults is merged under every job.
	Defaults JobConfig `yaml:"defaults,omitempty"`
}

// JobNames returns the defined job names in sorted order.
func (cf *File) JobNames() []string {
	return slices.Sorted(maps.Keys(cf.Jobs))
}

// GetJob returns the named job merged over the defaults.
// The boolean is false when the job is not defined.
func (cf *File) GetJob(name string) (JobConfig, bool) {
	job, ok := cf.Jobs[name]
	if !ok {
		return cf.Defaults, false
	}
	return MergeJob(cf.Defaults, job), true
}

// Validate validates every job after merging defaults.
func (cf *File) Validate() error {
	for _, name := range cf.JobNames() {
		job, _ := cf.GetJob(name)
		if err := job.Validate(); err != nil {
			return &JobError{Job: name, Err: err}
		}
	}
	return nil
}

// MergeJob overlays the set fields of override on defaults.
// A predicate with a type replaces the default predicate as a whole.
func MergeJob(defaults, override JobConfig) JobConfig {
	result := defaults

	if override.Target != "" {
		result.Target = override.Target
	}
	if override.Flooded != nil {
		result.Flooded = override.Flooded
	}
	if override.Forgiveness != nil {
		result.Forgiveness = override.Forgiveness
	}

	if override.Range.Start != "" {
		result.Range.Start = override.Range.Start
	}
	if override.Range.Stop != "" {
		result.Range.Stop = override.Range.Stop
	}
	if override.Range.Step != "" {
		result.Range.Step = override.Range.Step
	}
	if override.Range.Unit != "" {
		result.Range.Unit = override.Range.Unit
	}

	if override.Predicate.Type != "" {
		result.Predicate = override.Predicate
	}

	if len(override.Params) > 0 {
		params := make(map[string]string, len(defaults.Params)+len(override.Params))
		maps.Copy(params, defaults.Params)
		maps.Copy(params, override.Params)
		result.Params = params
	}

	return result
}
