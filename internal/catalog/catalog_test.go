package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchTemplatePatternDirectID(t *testing.T) {
	c := Default()
	p := c.MatchTemplatePattern("saas", nil)
	require.Equal(t, "saas", p.ID)
	require.Len(t, p.SectionFlow, 10)
	require.Equal(t, 10, p.AvgSections)
}

func TestMatchTemplatePatternKeywordFallback(t *testing.T) {
	c := Default()
	p := c.MatchTemplatePattern("general", []string{"photography", "bootcamp"})
	// "bootcamp" is a course industry keyword but patterns are walked in
	// declaration order, so the first industry hit wins.
	require.Equal(t, "course", p.ID)
}

func TestMatchTemplatePatternTotalAndIdempotent(t *testing.T) {
	c := Default()
	inputs := []struct {
		pt string
		kw []string
	}{
		{"", nil},
		{"general", nil},
		{"garbage-type", []string{"nonsense", "xyzzy"}},
		{"ecommerce", []string{"shop"}},
	}
	for _, in := range inputs {
		a := c.MatchTemplatePattern(in.pt, in.kw)
		b := c.MatchTemplatePattern(in.pt, in.kw)
		require.NotEmpty(t, a.ID)
		require.Equal(t, a.ID, b.ID, "pattern match must be idempotent for %q", in.pt)
	}
	// Unknown everything falls back to the first pattern.
	require.Equal(t, "saas", c.MatchTemplatePattern("garbage-type", []string{"xyzzy"}).ID)
}

func TestSelectFrameworkDecisionTable(t *testing.T) {
	cases := []struct {
		productType, urgency, pricePoint string
		want                             Framework
	}{
		{"saas", "medium", "mid", FrameworkAIDA},
		{"saas", "high", "mid", FrameworkPAS},
		{"ecommerce", "low", "budget", FrameworkPAS},
		{"course", "low", "mid", FrameworkBAB},
		{"webinar", "medium", "budget", FrameworkBAB},
		{"coaching", "medium", "mid", FrameworkBAB},
		{"saas", "medium", "premium", FrameworkBAB},
		{"agency", "low", "enterprise", FrameworkBAB},
		{"portfolio", "low", "free", FrameworkAIDA},
	}
	for _, tc := range cases {
		got := SelectFramework(tc.productType, tc.urgency, tc.pricePoint)
		require.Equal(t, tc.want, got, "%s/%s/%s", tc.productType, tc.urgency, tc.pricePoint)
	}
}

func TestThemeLookupDeterministic(t *testing.T) {
	c := Default()
	a := c.Theme("dark")
	b := c.Theme("dark")
	require.Equal(t, a, b)
	require.Equal(t, "#0b0f19", a.Background)

	// Unknown theme falls back to dark.
	require.Equal(t, a, c.Theme("no-such-theme"))
	require.Equal(t, c.FontPairs["modern"], c.FontPair("unknown"))
}

func TestSelectVariantDeterministic(t *testing.T) {
	c := Default()
	a := c.SelectVariant(SectionHero, "bold", "vibrant", FrameworkPAS)
	b := c.SelectVariant(SectionHero, "bold", "vibrant", FrameworkPAS)
	require.Equal(t, a, b)
	require.Equal(t, "gradient-burst", a.Variant)
	require.Equal(t, TierPremium, a.Tier)

	// No candidates for an unknown type yields the default choice.
	d := c.SelectVariant(SectionType("bogus"), "", "", FrameworkAIDA)
	require.Equal(t, "default", d.Variant)
	require.Equal(t, TierStandard, d.Tier)
}

func TestFrameworkGuidance(t *testing.T) {
	defs := frameworkDefinitions()
	aida := defs[FrameworkAIDA]
	g := aida.GuidanceFor(SectionHero, PurposeAttention)
	require.NotEmpty(t, g)

	// A type outside every stage falls back to purpose guidance.
	g = aida.GuidanceFor(SectionLogos, PurposeProof)
	require.Equal(t, aida.PurposeGuidance[PurposeProof], g)
}

func TestRequiresItems(t *testing.T) {
	for _, st := range []SectionType{SectionFeatures, SectionTestimonials, SectionPricing, SectionFAQ, SectionStats, SectionProcess} {
		require.True(t, RequiresItems(st), "%s requires items", st)
	}
	require.False(t, RequiresItems(SectionHero))
	require.False(t, RequiresItems(SectionCTA))
}
