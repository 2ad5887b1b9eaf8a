package notify

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/multierr"
)

// Filter flags messages matching any pattern of a category.
type Filter struct {
	categories []category
}

type category struct {
	name     string
	patterns []*regexp.Regexp
}

// NewFilter compiles rules, a map of category name to regular expressions.
// Patterns match case-insensitively. Every pattern that fails to compile is
// reported in the returned error.
func NewFilter(rules map[string][]string) (*Filter, error) {
	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}

	sort.Strings(names)

	var (
		f    Filter
		errs error
	)

	for _, name := range names {
		c := category{name: name}

		for _, p := range rules[name] {
			re, err := regexp.Compile("(?i)" + p)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("%w: category %s: %q: %w", ErrInvalidPattern, name, p, err))

				continue
			}

			c.patterns = append(c.patterns, re)
		}

		f.categories = append(f.categories, c)
	}

	if errs != nil {
		return nil, errs
	}

	return &f, nil
}

// Check reports the categories msg matches, comma separated in sorted
// order, each at most once. A nil Filter flags nothing.
func (f *Filter) Check(msg string) (string, bool) {
	if f == nil {
		return "", false
	}

	var matched []string

	for _, c := range f.categories {
		for _, re := range c.patterns {
			if re.MatchString(msg) {
				matched = append(matched, c.name)

				break
			}
		}
	}

	if len(matched) == 0 {
		return "", false
	}

	return strings.Join(matched, ", "), true
}
