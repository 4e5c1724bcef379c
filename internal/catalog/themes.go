package catalog

// ColorStrategy is the visual color contract for a page. Hex values are
// copied verbatim into every generated section's content.
type ColorStrategy struct {
	Mode       string `json:"mode"`
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Text       string `json:"text"`
}

// Typography names the heading and body fonts for a page.
type Typography struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

func colorThemes() map[string]ColorStrategy {
	return map[string]ColorStrategy{
		"dark": {
			Mode:       "dark",
			Primary:    "#6366f1",
			Secondary:  "#8b5cf6",
			Accent:     "#22d3ee",
			Background: "#0b0f19",
			Text:       "#e5e7eb",
		},
		"light": {
			Mode:       "light",
			Primary:    "#2563eb",
			Secondary:  "#7c3aed",
			Accent:     "#f59e0b",
			Background: "#ffffff",
			Text:       "#111827",
		},
		"vibrant": {
			Mode:       "dark",
			Primary:    "#ec4899",
			Secondary:  "#f97316",
			Accent:     "#facc15",
			Background: "#18181b",
			Text:       "#fafafa",
		},
		"minimal": {
			Mode:       "light",
			Primary:    "#111827",
			Secondary:  "#4b5563",
			Accent:     "#2563eb",
			Background: "#f9fafb",
			Text:       "#1f2937",
		},
		"ocean": {
			Mode:       "dark",
			Primary:    "#0ea5e9",
			Secondary:  "#06b6d4",
			Accent:     "#34d399",
			Background: "#082f49",
			Text:       "#e0f2fe",
		},
		"sunset": {
			Mode:       "light",
			Primary:    "#ea580c",
			Secondary:  "#db2777",
			Accent:     "#7c3aed",
			Background: "#fff7ed",
			Text:       "#431407",
		},
	}
}

func fontPairs() map[string]Typography {
	return map[string]Typography{
		"modern":  {Heading: "Inter", Body: "Inter"},
		"classic": {Heading: "Playfair Display", Body: "Source Serif Pro"},
		"bold":    {Heading: "Space Grotesk", Body: "Inter"},
		"elegant": {Heading: "Cormorant Garamond", Body: "Lato"},
		"mono":    {Heading: "JetBrains Mono", Body: "IBM Plex Sans"},
	}
}
