package cli

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/evanw/propmangle/internal/helpers"
	"gopkg.in/yaml.v3"
)

// The name map is written as JSON unless the file extension asks for YAML.
// Either form can be passed back in with "--rename-file" to reproduce the
// same renaming for another run.
func printNameMap(path string, nameMap map[string]string) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return yaml.Marshal(nameMap)
	}
	return printNameMapJSON(nameMap), nil
}

func printNameMapJSON(nameMap map[string]string) []byte {
	order := make([]string, 0, len(nameMap))
	for key := range nameMap {
		order = append(order, key)
	}
	sort.Strings(order)

	j := helpers.Joiner{}
	j.AddString("{")

	for i, key := range order {
		// Print the key
		if i > 0 {
			j.AddString(",\n  ")
		} else {
			j.AddString("\n  ")
		}
		j.AddBytes(helpers.QuoteForJSON(key))

		// Print the value
		j.AddString(": ")
		j.AddBytes(helpers.QuoteForJSON(nameMap[key]))
	}

	if len(order) > 0 {
		j.AddString("\n")
	}
	j.AddString("}\n")
	return j.Done()
}

func writeNameMap(path string, nameMap map[string]string) error {
	contents, err := printNameMap(path, nameMap)
	if err != nil {
		return err
	}
	return writeFile(path, contents)
}

func writeFile(path string, contents []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, contents, 0644)
}
