package video

import (
	"sort"

	"github.com/samber/lo"
	"github.com/ytget/yt-downloader-web/internal/model"
)

const (
	UndeterminedLanguage = "und"
	UnknownLanguageLabel = "Unknown"
	preferredLanguage    = "en"
)

func languageCode(code string) string {
	return lo.CoalesceOrEmpty(code, UndeterminedLanguage)
}

// LanguageOptions lists the distinct audio languages, English first and the
// rest ordered by label
func LanguageOptions(meta *model.VideoMetadata) []model.LanguageOption {
	if meta == nil {
		return []model.LanguageOption{}
	}

	unique := lo.UniqBy(meta.Formats, func(d model.StreamDescriptor) string {
		return languageCode(d.Language)
	})
	options := lo.Map(unique, func(d model.StreamDescriptor, _ int) model.LanguageOption {
		code := languageCode(d.Language)
		label := d.LanguageName
		if label == "" {
			label = lo.Ternary(code == UndeterminedLanguage, UnknownLanguageLabel, code)
		}
		return model.LanguageOption{Code: code, Label: label}
	})

	sort.SliceStable(options, func(i, j int) bool {
		iEnglish, jEnglish := options[i].Code == preferredLanguage, options[j].Code == preferredLanguage
		if iEnglish != jEnglish {
			return iEnglish
		}
		return options[i].Label < options[j].Label
	})
	return options
}
