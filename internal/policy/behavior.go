package policy

// Tone shapes how the assistant communicates. Formatting is atomic: a
// scope that sets it replaces the inherited list wholesale.
type Tone struct {
	Voice      string   `yaml:"voice,omitempty"`
	Verbosity  string   `yaml:"verbosity,omitempty"`
	Formatting []string `yaml:"formatting,omitempty"`
}

// Persona is a named operating mode. Overriding scopes may set a
// subset of fields; unset fields inherit.
type Persona struct {
	Focus     string `yaml:"focus,omitempty"`
	Verbosity string `yaml:"verbosity,omitempty"`
	Voice     string `yaml:"voice,omitempty"`
}

// BehaviorConfig is one scope's calibration document. Scalars
// overwrite on merge, object-valued fields merge one level deep, and
// lists overwrite wholesale.
type BehaviorConfig struct {
	Role              string             `yaml:"role,omitempty"`
	Tone              *Tone              `yaml:"tone,omitempty"`
	Defaults          map[string]string  `yaml:"defaults,omitempty"`
	ReviewerChecklist []string           `yaml:"reviewer_checklist,omitempty"`
	AskWhenUnsure     []string           `yaml:"ask_when_unsure,omitempty"`
	Personas          map[string]Persona `yaml:"personas,omitempty"`
}

// IsZero reports whether no field of the config is set.
func (b BehaviorConfig) IsZero() bool {
	return b.Role == "" && b.Tone == nil && len(b.Defaults) == 0 &&
		b.ReviewerChecklist == nil && b.AskWhenUnsure == nil && len(b.Personas) == 0
}
