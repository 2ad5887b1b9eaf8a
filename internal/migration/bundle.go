package migration

import (
	"fmt"
	"io/fs"
	"strings"
)

// Bundle is a Source backed by a file tree, usually an embed.FS compiled into
// the binary. Each file is addressed by a dotted resource identifier built from
// the bundle namespace and its path, so Migrations/Script0001_Init.sql in a
// bundle named "fedibot.store" becomes
// "fedibot.store.Migrations.Script0001_Init.sql".
type Bundle struct {
	fsys      fs.FS
	namespace string
}

// NewBundle returns a Bundle over fsys whose resource identifiers start with namespace.
func NewBundle(fsys fs.FS, namespace string) *Bundle {
	return &Bundle{fsys: fsys, namespace: namespace}
}

// Resources lists every resource identifier in the bundle, in walk order.
func (b *Bundle) Resources() ([]string, error) {
	var resources []string

	err := fs.WalkDir(b.fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		resources = append(resources, b.resourceID(path))

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking migration bundle %s: %w", b.namespace, err)
	}

	return resources, nil
}

// Scripts returns the scripts under prefix. Files that do not match the naming
// convention are skipped. When two files yield the same name the first one in
// walk order is kept.
func (b *Bundle) Scripts(prefix string) ([]Script, error) {
	var scripts []Script

	seen := make(map[string]struct{})

	err := fs.WalkDir(b.fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		resource := b.resourceID(path)

		name, ok := ParseResourceName(prefix, resource)
		if !ok {
			return nil
		}

		if _, dup := seen[name]; dup {
			return nil
		}

		data, err := fs.ReadFile(b.fsys, path)
		if err != nil {
			return fmt.Errorf("reading migration resource %s: %w", resource, err)
		}

		seen[name] = struct{}{}
		scripts = append(scripts, Script{Name: name, Body: string(data), Resource: resource})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discovering migrations under %s: %w", prefix, err)
	}

	return scripts, nil
}

func (b *Bundle) resourceID(path string) string {
	id := strings.ReplaceAll(path, "/", ".")
	if b.namespace == "" {
		return id
	}

	return b.namespace + "." + id
}
