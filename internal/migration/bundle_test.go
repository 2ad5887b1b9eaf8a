package migration_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tffedibot/fedibot/internal/migration"
)

const testPrefix = "bot.data.Migrations"

func TestParseResourceName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		resource string
		wantName string
		wantOK   bool
	}{
		{
			name:     "conventional resource",
			resource: "bot.data.Migrations.Script0001_Init.sql",
			wantName: "0001_Init",
			wantOK:   true,
		},
		{
			name:     "nested category keeps last segment",
			resource: "bot.data.Migrations.Extra.Script2_x.sql",
			wantName: "2_x",
			wantOK:   true,
		},
		{
			name:     "outside prefix",
			resource: "bot.other.Script0001_Init.sql",
		},
		{
			name:     "wrong suffix",
			resource: "bot.data.Migrations.Script0001_Init.txt",
		},
		{
			name:     "missing Script token",
			resource: "bot.data.Migrations.0001_Init.sql",
		},
		{
			name:     "empty name",
			resource: "bot.data.Migrations.Script.sql",
		},
		{
			name:     "lower case token is not the convention",
			resource: "bot.data.Migrations.script0001_Init.sql",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := migration.ParseResourceName(testPrefix, tt.resource)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantName, got)
		})
	}
}

func TestBundle_Scripts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		fsys  fstest.MapFS
		check func(t *testing.T, ss []migration.Script)
	}{
		{
			name: "discovers conventional scripts with full body",
			fsys: fstest.MapFS{
				"Migrations/Script0001_Init.sql":   {Data: []byte("CREATE TABLE a (id INTEGER);\n")},
				"Migrations/Script0002_Second.sql": {Data: []byte("CREATE TABLE b (id INTEGER);")},
			},
			check: func(t *testing.T, ss []migration.Script) {
				t.Helper()
				require.Len(t, ss, 2)
				byName := indexByName(t, ss)
				require.Contains(t, byName, "0001_Init")
				assert.Equal(t, "CREATE TABLE a (id INTEGER);\n", byName["0001_Init"].Body)
				assert.Equal(t, "bot.data.Migrations.Script0001_Init.sql", byName["0001_Init"].Resource)
			},
		},
		{
			name: "non-matching resources are skipped",
			fsys: fstest.MapFS{
				"Migrations/README.md":          {Data: []byte("# readme")},
				"Migrations/notes.sql":          {Data: []byte("SELECT 1;")},
				"Other/Script0001_Elsewhere.sql": {Data: []byte("SELECT 1;")},
				"Migrations/Script0001_Ok.sql":  {Data: []byte("SELECT 1;")},
			},
			check: func(t *testing.T, ss []migration.Script) {
				t.Helper()
				assert.Equal(t, []string{"0001_Ok"}, names(t, ss))
			},
		},
		{
			name: "empty bundle returns no scripts",
			fsys: fstest.MapFS{},
			check: func(t *testing.T, ss []migration.Script) {
				t.Helper()
				assert.Empty(t, ss)
			},
		},
		{
			name: "duplicate names keep the first in walk order",
			fsys: fstest.MapFS{
				"Migrations/A/Script0001_Dup.sql": {Data: []byte("-- first")},
				"Migrations/B/Script0001_Dup.sql": {Data: []byte("-- second")},
			},
			check: func(t *testing.T, ss []migration.Script) {
				t.Helper()
				require.Len(t, ss, 1)
				assert.Equal(t, "-- first", ss[0].Body)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := migration.NewBundle(tt.fsys, "bot.data")

			ss, err := b.Scripts(testPrefix)
			require.NoError(t, err)
			tt.check(t, ss)

			again, err := b.Scripts(testPrefix)
			require.NoError(t, err)
			assert.Equal(t, ss, again, "discovery should be restartable")
		})
	}
}

func TestBundle_Resources(t *testing.T) {
	t.Parallel()

	b := migration.NewBundle(fstest.MapFS{
		"Migrations/Script0001_Init.sql": {Data: []byte("SELECT 1;")},
		"notes.txt":                      {Data: []byte("hi")},
	}, "bot.data")

	resources, err := b.Resources()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"bot.data.Migrations.Script0001_Init.sql",
		"bot.data.notes.txt",
	}, resources)
}

func TestMemorySource_Scripts(t *testing.T) {
	t.Parallel()

	src := migration.MemorySource{
		testPrefix + ".Script2_add_col.sql": "ALTER TABLE t ADD COLUMN c TEXT;",
		testPrefix + ".Script1_init.sql":    "CREATE TABLE t (id INTEGER);",
		testPrefix + ".readme.txt":          "ignored",
		"elsewhere.Script3_other.sql":       "SELECT 1;",
	}

	ss, err := src.Scripts(testPrefix)
	require.NoError(t, err)
	assert.Equal(t, []string{"1_init", "2_add_col"}, names(t, ss))
	assert.Equal(t, "CREATE TABLE t (id INTEGER);", ss[0].Body)
}

func indexByName(t *testing.T, ss []migration.Script) map[string]migration.Script {
	t.Helper()

	index := make(map[string]migration.Script, len(ss))
	for _, s := range ss {
		index[s.Name] = s
	}

	return index
}
