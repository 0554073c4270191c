package resolver

import "egokit/internal/policy"

// mergeBehavior layers overlay on top of base. Scalars overwrite when
// set, tone and personas merge one level deep, lists overwrite
// wholesale, defaults merge key-wise.
func mergeBehavior(base, overlay policy.BehaviorConfig) policy.BehaviorConfig {
	out := base
	if overlay.Role != "" {
		out.Role = overlay.Role
	}
	if overlay.Tone != nil {
		out.Tone = mergeTone(base.Tone, *overlay.Tone)
	}
	if len(overlay.Defaults) > 0 {
		out.Defaults = mergeStringMap(base.Defaults, overlay.Defaults)
	}
	if overlay.ReviewerChecklist != nil {
		out.ReviewerChecklist = cloneList(overlay.ReviewerChecklist)
	}
	if overlay.AskWhenUnsure != nil {
		out.AskWhenUnsure = cloneList(overlay.AskWhenUnsure)
	}
	if len(overlay.Personas) > 0 {
		out.Personas = mergePersonas(base.Personas, overlay.Personas)
	}
	return out
}

func mergeTone(base *policy.Tone, overlay policy.Tone) *policy.Tone {
	var out policy.Tone
	if base != nil {
		out = *base
		out.Formatting = cloneList(base.Formatting)
	}
	if overlay.Voice != "" {
		out.Voice = overlay.Voice
	}
	if overlay.Verbosity != "" {
		out.Verbosity = overlay.Verbosity
	}
	if overlay.Formatting != nil {
		out.Formatting = cloneList(overlay.Formatting)
	}
	return &out
}

func mergePersonas(base, overlay map[string]policy.Persona) map[string]policy.Persona {
	out := make(map[string]policy.Persona, len(base)+len(overlay))
	for name, p := range base {
		out[name] = p
	}
	for name, p := range overlay {
		merged := out[name]
		if p.Focus != "" {
			merged.Focus = p.Focus
		}
		if p.Verbosity != "" {
			merged.Verbosity = p.Verbosity
		}
		if p.Voice != "" {
			merged.Voice = p.Voice
		}
		out[name] = merged
	}
	return out
}

func mergeStringMap(base, overlay map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		out[k] = v
	}
	return out
}

func cloneList(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
