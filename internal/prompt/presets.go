package prompt

// Preset holds reusable constraints and rules for structured prompts.
type Preset struct {
	Constraints []string
	Rules       []string
}

// ApplyPresets prepends preset constraints/rules to a prompt spec.
func ApplyPresets(spec Spec, presets ...Preset) Spec {
	if len(presets) == 0 {
		return spec
	}
	var merged Preset
	for _, p := range presets {
		merged.Constraints = append(merged.Constraints, p.Constraints...)
		merged.Rules = append(merged.Rules, p.Rules...)
	}
	spec.Constraints = append(merged.Constraints, spec.Constraints...)
	spec.Rules = append(merged.Rules, spec.Rules...)
	return spec
}

// PresetStrictJSON enforces strict JSON-only output.
func PresetStrictJSON() Preset {
	return Preset{
		Constraints: []string{
			"Return strict JSON only.",
			"Match the schema exactly; no extra fields.",
			"No markdown, comments, or trailing commas.",
		},
	}
}

// PresetNoPlaceholders forbids filler copy in generated content.
func PresetNoPlaceholders() Preset {
	return Preset{
		Constraints: []string{
			"Never emit placeholder text: no lorem ipsum, no bracketed fill-ins, no 'your text here', no example.com.",
			"Every string must be finished, specific copy a visitor could read as-is.",
		},
	}
}

// PresetConcreteCopy encourages specific, benefit-led writing.
func PresetConcreteCopy() Preset {
	return Preset{
		Rules: []string{
			"Write benefit-first copy grounded in the provided product details; do not invent features the input does not support.",
			"Prefer concrete numbers and outcomes over adjectives.",
		},
	}
}
