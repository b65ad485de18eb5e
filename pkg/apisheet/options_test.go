package apisheet

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ukaji3/apisheet-go/pkg/apisheet/layout"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.NoError(t, opts.Validate())
	assert.Equal(t, 10, opts.MaxDepth)
	assert.Equal(t, layout.CompositeExpand, opts.Composites)
	assert.Equal(t, FormatXLSX, opts.EffectiveFormat())
	assert.False(t, opts.ShouldDetectCycles())
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
	}{
		{"zero depth", func(o *Options) { o.MaxDepth = 0 }},
		{"negative separator", func(o *Options) { o.SeparatorRows = -1 }},
		{"negative width", func(o *Options) { o.MinColumnWidth = -3 }},
		{"unknown composites", func(o *Options) { o.Composites = "merge" }},
		{"unknown format", func(o *Options) { o.Format = "csv" }},
		{"bad language", func(o *Options) { o.Language = "not a tag!" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			assert.ErrorIs(t, opts.Validate(), ErrInvalidOptions)
		})
	}
}

func TestShouldDetectCycles(t *testing.T) {
	on, off := true, false
	opts := DefaultOptions()

	opts.DetectCycles = &on
	assert.True(t, opts.ShouldDetectCycles())
	assert.True(t, opts.flattener().DetectCycles)

	opts.DetectCycles = &off
	assert.False(t, opts.ShouldDetectCycles())
}

func TestEffectiveLabels(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, "Yes", opts.EffectiveLabels().Yes)

	opts.Language = "ko-KR"
	opts.OptionalLabel = "선택"
	l := opts.EffectiveLabels()
	assert.Equal(t, "예", l.Yes)
	assert.Equal(t, "선택", l.No)
	assert.Equal(t, "표지", l.IndexSheet)
}

func TestLabelsFor(t *testing.T) {
	assert.Equal(t, layout.EnglishLabels(), LabelsFor(""))
	assert.Equal(t, layout.EnglishLabels(), LabelsFor("en-GB"))
	assert.Equal(t, layout.KoreanLabels(), LabelsFor("ko"))
	assert.Equal(t, layout.EnglishLabels(), LabelsFor("fr"))
	assert.Equal(t, layout.EnglishLabels(), LabelsFor("???"))
}
