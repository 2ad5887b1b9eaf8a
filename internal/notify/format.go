package notify

import (
	"sort"
	"strings"
)

// LocalePrefix marks a value that names a localization key.
const LocalePrefix = "#"

var locale = map[string]string{ //nolint:gochecknoglobals // read-only lookup table
	"TF_WeddingRing_ClientMessageBody": `%receiver_name% has accepted %gifter_name%'s "%ring_name%"! Congratulations!`,
	"TF_WeddingRing":                   "Something Special For Someone Special",
}

// Localize resolves "#Key" to its localized text. Unknown keys and values
// without the prefix come back unchanged.
func Localize(s string) string {
	key, ok := strings.CutPrefix(s, LocalePrefix)
	if !ok {
		return s
	}

	if text, found := locale[key]; found {
		return text
	}

	return s
}

// Format localizes content and replaces each %name% placeholder with the
// localized value of replacements[name]. Placeholders are substituted in
// sorted key order.
func Format(content string, replacements map[string]string) string {
	out := Localize(content)

	keys := make([]string, 0, len(replacements))
	for k := range replacements {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		out = strings.ReplaceAll(out, "%"+k+"%", Localize(replacements[k]))
	}

	return out
}
