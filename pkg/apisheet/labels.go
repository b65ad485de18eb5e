package apisheet

import (
	"golang.org/x/text/language"

	"github.com/ukaji3/apisheet-go/pkg/apisheet/layout"
)

// labelSets are the supported label sets; the first one is the fallback.
var labelSets = []struct {
	tag    language.Tag
	labels func() layout.Labels
}{
	{language.English, layout.EnglishLabels},
	{language.Korean, layout.KoreanLabels},
}

var labelMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(labelSets))
	for i, s := range labelSets {
		tags[i] = s.tag
	}
	return language.NewMatcher(tags)
}()

func parseLanguage(lang string) (language.Tag, error) {
	if lang == "" {
		return language.English, nil
	}
	return language.Parse(lang)
}

// LabelsFor returns the label set best matching lang. Unparsable or
// unsupported languages get the English labels.
func LabelsFor(lang string) layout.Labels {
	tag, err := parseLanguage(lang)
	if err != nil {
		return layout.EnglishLabels()
	}
	_, idx, conf := labelMatcher.Match(tag)
	if conf == language.No {
		idx = 0
	}
	return labelSets[idx].labels()
}
