package migration

import "sort"

// MemorySource is a Source over an in-memory set of resources, keyed by
// resource identifier. It applies the same naming rules as Bundle.
type MemorySource map[string]string

// Scripts returns the scripts under prefix in resource identifier order.
func (m MemorySource) Scripts(prefix string) ([]Script, error) {
	resources := make([]string, 0, len(m))
	for r := range m {
		resources = append(resources, r)
	}

	sort.Strings(resources)

	var scripts []Script

	seen := make(map[string]struct{}, len(resources))

	for _, r := range resources {
		name, ok := ParseResourceName(prefix, r)
		if !ok {
			continue
		}

		if _, dup := seen[name]; dup {
			continue
		}

		seen[name] = struct{}{}
		scripts = append(scripts, Script{Name: name, Body: m[r], Resource: r})
	}

	return scripts, nil
}
