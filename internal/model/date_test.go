package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvgen/internal/model"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		input         string
		wantPrecision model.DatePrecision
		wantErr       bool
	}{
		{name: "bare year", input: "2022", wantPrecision: model.PrecisionYear},
		{name: "year month", input: "2022-06", wantPrecision: model.PrecisionMonth},
		{name: "full date", input: "2022-06-15", wantPrecision: model.PrecisionDay},
		{name: "present lowercase", input: "present", wantPrecision: model.PrecisionPresent},
		{name: "present mixed case", input: "Present", wantPrecision: model.PrecisionPresent},
		{name: "free text", input: "Fall 2022", wantPrecision: model.PrecisionText},
		{name: "empty", input: "", wantPrecision: model.PrecisionNone},
		{name: "month thirteen", input: "2022-13", wantErr: true},
		{name: "month zero", input: "2022-00", wantErr: true},
		{name: "day out of range", input: "2022-02-30", wantErr: true},
		{name: "leap day on leap year", input: "2024-02-29", wantPrecision: model.PrecisionDay},
		{name: "leap day on common year", input: "2023-02-29", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			d, err := model.ParseDate("cv.sections.x.1.date", tc.input)
			if tc.wantErr {
				require.Error(t, err)
				var fieldErr *model.FieldError
				require.ErrorAs(t, err, &fieldErr)
				assert.Equal(t, "cv.sections.x.1.date", fieldErr.Path)
				assert.Equal(t, tc.input, fieldErr.Value)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantPrecision, d.Precision)
		})
	}
}

// Parsing then formatting must preserve the input's precision: a year-only
// input never gains a spurious month or day.
func TestDateFormatPreservesPrecision(t *testing.T) {
	t.Parallel()

	loc := model.DefaultLocale()
	tests := []struct {
		input string
		want  string
	}{
		{"2022", "2022"},
		{"2022-06", "June 2022"},
		{"2022-06-15", "June 15, 2022"},
		{"present", "present"},
		{"Summer 2021", "Summer 2021"},
	}
	for _, tc := range tests {
		tc := tc
		d, err := model.ParseDate("date", tc.input)
		require.NoError(t, err)
		assert.Equal(t, tc.want, d.Format(loc), "input %q", tc.input)
	}
}

func TestDateAfter(t *testing.T) {
	t.Parallel()

	parse := func(s string) model.Date {
		d, err := model.ParseDate("date", s)
		require.NoError(t, err)
		return d
	}

	assert.True(t, parse("2022-08-01").After(parse("2022-06-15")))
	assert.False(t, parse("2022-06-15").After(parse("2022-08-01")))

	// year-only compares as the start of that year
	assert.False(t, parse("2022").After(parse("2022-01-01")))
	assert.True(t, parse("2023").After(parse("2022-12-31")))

	// present compares as now, so it is after any past date
	assert.True(t, parse("present").After(parse("2022")))

	// opaque text suppresses comparison entirely
	assert.False(t, parse("Fall 2022").After(parse("2021")))
	assert.False(t, parse("2099").After(parse("Fall 2022")))
}

func TestFormatRange(t *testing.T) {
	t.Parallel()

	loc := model.DefaultLocale()
	parse := func(s string) model.Date {
		d, err := model.ParseDate("date", s)
		require.NoError(t, err)
		return d
	}

	assert.Equal(t, "June 2022 – Aug 2024", model.FormatRange(parse("2022-06"), parse("2024-08"), loc))
	assert.Equal(t, "2022 – present", model.FormatRange(parse("2022"), parse("present"), loc))
	assert.Equal(t, "2022 – present", model.FormatRange(parse("2022"), model.Date{}, loc))
	assert.Equal(t, "", model.FormatRange(model.Date{}, model.Date{}, loc))
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	loc := model.DefaultLocale()
	parse := func(s string) model.Date {
		d, err := model.ParseDate("date", s)
		require.NoError(t, err)
		return d
	}

	assert.Equal(t, "2 years 3 months", model.FormatDuration(parse("2022-06"), parse("2024-08"), loc))
	assert.Equal(t, "2 months", model.FormatDuration(parse("2022-06-15"), parse("2022-08-01"), loc))
	assert.Equal(t, "", model.FormatDuration(parse("Fall 2020"), parse("2022"), loc))
}

func TestLocaleCatalogOverrides(t *testing.T) {
	t.Parallel()

	loc := model.DefaultLocale()
	err := loc.MergeCatalog(map[string]any{
		"present": "heute",
		"month_abbreviations": []any{
			"Jan", "Feb", "März", "Apr", "Mai", "Juni",
			"Juli", "Aug", "Sept", "Okt", "Nov", "Dez",
		},
	})
	require.NoError(t, err)

	d, err := model.ParseDate("date", "2022-03")
	require.NoError(t, err)
	assert.Equal(t, "März 2022", d.Format(loc))

	p, err := model.ParseDate("date", "present")
	require.NoError(t, err)
	assert.Equal(t, "heute", p.Format(loc))
}

func TestLocaleCatalogRejectsUnknownKeys(t *testing.T) {
	t.Parallel()

	loc := model.DefaultLocale()
	err := loc.MergeCatalog(map[string]any{"weekday_names": []any{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locale_catalog.weekday_names")
}
