package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/9003755/excel-tool/config"
)

// DefaultNamePattern names each generated document after its source row and template.
const DefaultNamePattern = config.DefaultNamePattern

// DefaultMergedName is the fixed label of the combined document.
const DefaultMergedName = config.DefaultMergedName

func replacePlaceholders(input string, params map[string]string) string {
	output := input
	for k, v := range params {
		placeholder := fmt.Sprintf("${%s}", k)
		output = strings.ReplaceAll(output, placeholder, v)
	}
	return output
}

// OutputName expands pattern for one source row. Supported placeholders are
// ${name}, ${template}, ${index} (1-based) and ${month}.
func OutputName(pattern string, row SourceRow, templateName string, index, month int) string {
	if pattern == "" {
		pattern = DefaultNamePattern
	}
	return replacePlaceholders(pattern, map[string]string{
		"name":     row.Name,
		"template": templateName,
		"index":    fmt.Sprintf("%d", index),
		"month":    fmt.Sprintf("%d", month),
	})
}

// WriteFiles saves every file under dir, creating it when needed.
func WriteFiles(dir string, files []FileData) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for _, file := range files {
		// Row names come from user data and must not escape dir.
		name := filepath.Base(filepath.Clean("/" + file.Name))
		if err := os.WriteFile(filepath.Join(dir, name), file.Data, 0644); err != nil {
			return fmt.Errorf("failed to save %s: %w", file.Name, err)
		}
	}
	return nil
}
