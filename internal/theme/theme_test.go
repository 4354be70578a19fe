package theme

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"termcal/internal/model"
	"termcal/internal/style"
)

func d(y int, m time.Month, day int) civil.Date {
	return civil.Date{Year: y, Month: m, Day: day}
}

func rule(weight int, attrs ...style.Attribute) style.Rule {
	return style.Rule{Attributes: attrs, Weight: weight}
}

func TestResolveJanuary1970(t *testing.T) {
	ref := d(1970, 1, 1)
	styles := Default().Date

	assert.Equal(t, []style.Attribute{style.Bold, style.Underline},
		Resolve(ref, ref, ref, nil, styles, style.VariantLight))
	assert.Equal(t, []style.Attribute{style.Hidden},
		Resolve(d(1969, 12, 29), ref, ref, nil, styles, style.VariantLight))
	assert.Equal(t, []style.Attribute{style.Hidden},
		Resolve(d(1970, 2, 1), ref, ref, nil, styles, style.VariantLight))
	assert.Empty(t, Resolve(d(1970, 1, 15), ref, ref, nil, styles, style.VariantLight))
}

func TestResolveWeightOrder(t *testing.T) {
	red := style.FG(style.Named(style.Red))
	blue := style.FG(style.Named(style.Blue))
	styles := []DateStyle{
		{Properties: []DateProperty{Odd}, Rule: rule(5, blue)},
		{Properties: []DateProperty{Thursday}, Rule: rule(2, red)},
		{Properties: nil, Rule: rule(2, style.Italic)},
	}

	got := Resolve(d(1970, 1, 1), d(1970, 1, 1), d(2000, 1, 1), nil, styles, style.VariantDark)
	assert.Equal(t, []style.Attribute{red, style.Italic, blue}, got)
	assert.Equal(t, blue.Color, *style.Fold(got).Foreground)
}

func TestResolveThemeFilter(t *testing.T) {
	dark := rule(0, style.Bold)
	dark.Filter = style.FilterDark
	light := rule(0, style.Italic)
	light.Filter = style.FilterLight
	styles := []DateStyle{
		{Rule: dark},
		{Rule: light},
		{Rule: rule(0, style.Blink)},
	}
	day := d(2021, 3, 3)

	assert.Equal(t, []style.Attribute{style.Bold, style.Blink},
		Resolve(day, d(2021, 3, 1), day, nil, styles, style.VariantDark))
	assert.Equal(t, []style.Attribute{style.Italic, style.Blink},
		Resolve(day, d(2021, 3, 1), day, nil, styles, style.VariantLight))

	// Event rules are filtered the same way; IsEvent still holds.
	darkEvent := rule(1, style.Reverse)
	darkEvent.Filter = style.FilterDark
	occ := []model.Occurrence{{Date: day, Event: &model.Event{Summary: "x"}, Style: darkEvent}}
	withEvent := []DateStyle{{Properties: []DateProperty{IsEvent}, Rule: rule(0, style.Underline)}}

	assert.Equal(t, []style.Attribute{style.Underline},
		Resolve(day, d(2021, 3, 1), day, occ, withEvent, style.VariantLight))
	assert.Equal(t, []style.Attribute{style.Underline, style.Reverse},
		Resolve(day, d(2021, 3, 1), day, occ, withEvent, style.VariantDark))
}

func TestResolveEventsAndIsEvent(t *testing.T) {
	cyan := style.FG(style.Named(style.Cyan))
	ev := &model.Event{Summary: "x"}
	occ := []model.Occurrence{
		{Date: d(2021, 3, 10), Event: ev, Style: rule(3, style.Underline, cyan)},
		{Date: d(2021, 3, 10), Event: ev, Style: rule(3, style.Underline, cyan)},
		{Date: d(2021, 3, 11), Event: ev, Style: rule(0, style.Reverse)},
	}
	styles := []DateStyle{{Properties: []DateProperty{IsEvent, Wednesday}, Rule: rule(1, style.Bold)}}
	first := d(2021, 3, 1)

	got := Resolve(d(2021, 3, 10), first, first, occ, styles, style.VariantLight)
	assert.Equal(t, []style.Attribute{style.Bold, style.Underline, cyan, style.Underline, cyan}, got)
	assert.Equal(t, style.Fold(got[:3]), style.Fold(got))

	// Thursday: IsEvent holds but Wednesday does not.
	assert.Equal(t, []style.Attribute{style.Reverse},
		Resolve(d(2021, 3, 11), first, first, occ, styles, style.VariantLight))
	assert.Empty(t, Resolve(d(2021, 3, 12), first, first, occ, styles, style.VariantLight))
}

func TestResolveIsPure(t *testing.T) {
	occ := []model.Occurrence{{Date: d(2021, 3, 10), Style: rule(3, style.Dimmed)}}
	styles := Default().Date
	a := Resolve(d(2021, 3, 10), d(2021, 3, 1), d(2021, 3, 10), occ, styles, style.VariantLight)
	b := Resolve(d(2021, 3, 10), d(2021, 3, 1), d(2021, 3, 10), occ, styles, style.VariantLight)
	assert.Equal(t, a, b)
	assert.Equal(t, []style.Attribute{style.Bold, style.Underline, style.Dimmed}, a)

	assert.Empty(t, Resolve(d(2021, 3, 10), d(2021, 3, 1), d(2021, 3, 10), nil, nil, style.VariantLight))
}

func TestResolverMatchesResolve(t *testing.T) {
	occ := []model.Occurrence{
		{Date: d(2021, 2, 28), Style: rule(0, style.FG(style.Fixed(71)))},
		{Date: d(2021, 3, 1), Style: rule(2, style.BG(style.RGB(1, 2, 3)))},
	}
	th := Default()
	th.Date = append(th.Date, DateStyle{Properties: []DateProperty{Sunday}, Rule: rule(0, style.FG(style.Named(style.Red)))})
	ref := d(2021, 3, 1)
	r := NewResolver(th, ref, style.VariantLight, occ)

	for day := d(2021, 2, 22); !day.After(d(2021, 4, 4)); day = day.AddDays(1) {
		assert.Equal(t,
			Resolve(day, ref, ref, occ, th.Date, style.VariantLight),
			r.Cell(day, ref),
			day.String())
	}
	assert.Len(t, r.Occurrences(d(2021, 3, 1)), 1)
	assert.Equal(t, style.VariantLight, r.Variant())
}

func TestOccurrenceStyleFilter(t *testing.T) {
	dark := rule(0, style.Bold)
	dark.Filter = style.FilterDark
	r := NewResolver(Default(), d(2021, 1, 1), style.VariantLight, nil)
	assert.Nil(t, r.OccurrenceStyle(model.Occurrence{Style: dark}))
	assert.Equal(t, []style.Attribute{style.Italic}, r.OccurrenceStyle(model.Occurrence{Style: rule(0, style.Italic)}))
}

func TestPropertyHolds(t *testing.T) {
	first := d(2021, 3, 1)
	ref := d(2021, 3, 15)
	cell := func(day civil.Date) Cell { return Cell{Date: day, MonthFirst: first, Reference: ref} }

	tests := []struct {
		prop DateProperty
		date civil.Date
		want bool
	}{
		{FirstDayOfMonth, first, true},
		{FirstDayOfMonth, d(2021, 3, 2), false},
		{BeforeFirstDayOfMonth, d(2021, 2, 28), true},
		{LastDayOfMonth, d(2021, 3, 31), true},
		{AfterLastDayOfMonth, d(2021, 4, 1), true},
		{AfterLastDayOfMonth, d(2021, 3, 31), false},
		{BeforeCurrentDate, d(2021, 3, 14), true},
		{CurrentDate, ref, true},
		{AfterCurrentDate, d(2021, 3, 16), true},
		{AfterCurrentDate, ref, false},
		{Monday, d(2021, 3, 1), true},
		{Sunday, d(2021, 3, 7), true},
		{Saturday, d(2021, 3, 7), false},
		{Odd, d(2021, 3, 7), true},
		{Even, d(2021, 3, 8), true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.prop.Holds(cell(tt.date), false), "%s %s", tt.prop, tt.date)
	}
	assert.True(t, IsEvent.Holds(cell(ref), true))
	assert.False(t, IsEvent.Holds(cell(ref), false))
	assert.True(t, Satisfies(nil, cell(ref), false))
}

const themeYAML = `date:
  - properties: [CurrentDate]
    stylenames: [Bold, FGRed]
  - properties: [Saturday]
    stylenames:
      - BGFixed: 236
    weight: 2
    styletype: dark
`

func TestLoadTheme(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mine.theme"), []byte(themeYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.theme"), []byte("date: [{properties: [Someday]}]"), 0o644))

	th := Load("mine", dir)
	require.Len(t, th.Date, 2)
	assert.Equal(t, []DateProperty{CurrentDate}, th.Date[0].Properties)
	assert.Equal(t, []style.Attribute{style.Bold, style.FG(style.Named(style.Red))}, th.Date[0].Rule.Attributes)
	assert.Equal(t, 2, th.Date[1].Rule.Weight)
	assert.Equal(t, style.FilterDark, th.Date[1].Rule.Filter)
	assert.Equal(t, []style.Attribute{style.BG(style.Fixed(236))}, th.Date[1].Rule.Attributes)

	assert.Equal(t, Default(), Load("broken", dir))
	assert.Equal(t, Default(), Load("missing", dir))
	assert.Equal(t, Default(), Load("", dir))
}

func TestThemeWriteRoundTrip(t *testing.T) {
	path := Path(t.TempDir(), "default")
	require.NoError(t, Write(path, Default()))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), got)

	var raw map[string]any
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal(data, &raw))
	assert.Contains(t, raw, "date")
}
