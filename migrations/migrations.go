// Package migrations embeds the SurrealQL schema files applied by the migrate
// command and by test databases.
package migrations

import (
	"embed"
	"io/fs"
	"sort"
	"strings"
)

//go:embed *.surql
var files embed.FS

// Migration is one schema file
type Migration struct {
	Name string
	SQL  string
}

// All returns the embedded migrations in lexical order, skipping seed.surql
func All() ([]Migration, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".surql") && e.Name() != "seed.surql" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	out := make([]Migration, 0, len(names))
	for _, name := range names {
		content, err := files.ReadFile(name)
		if err != nil {
			return nil, err
		}
		out = append(out, Migration{Name: name, SQL: string(content)})
	}
	return out, nil
}

// Seed returns the optional demo event data
func Seed() (string, error) {
	content, err := files.ReadFile("seed.surql")
	if err != nil {
		return "", err
	}
	return string(content), nil
}
