// This shows how to use the Go API to rename the properties of several files
// with the same names. The name map from the first file is passed to every
// later file so that properties shared between them stay compatible.
package main

import (
	"fmt"
	"os"

	"github.com/evanw/propmangle/pkg/api"
)

func main() {
	rename := map[string]interface{}{}

	for _, path := range os.Args[1:] {
		contents, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not read %q: %s\n", path, err.Error())
			os.Exit(1)
		}

		result := api.Transform(string(contents), api.TransformOptions{
			LogLevel:   api.LogLevelInfo,
			Rename:     rename,
			Sourcefile: path,
		})
		if len(result.Errors) > 0 {
			os.Exit(1)
		}

		fmt.Printf("// %s\n%s", path, result.Code)
		for original, replacement := range result.NameMap {
			rename[original] = replacement
		}
	}
}
