package homepage

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// templateVar matches Homepage template variables such as {{HOMEPAGE_VAR_URL}}.
var templateVar = regexp.MustCompile(`\{\{[^}]+\}\}`)

// LoadBookmarks reads and parses a Homepage bookmarks.yaml file.
func LoadBookmarks(path string) (BookmarksConfig, error) {
	var cfg BookmarksConfig
	if err := loadYAML(path, &cfg); err != nil {
		return nil, fmt.Errorf("bookmarks: %w", err)
	}
	return cfg, nil
}

// LoadServices reads and parses a Homepage services.yaml file.
func LoadServices(path string) (ServicesConfig, error) {
	var cfg ServicesConfig
	if err := loadYAML(path, &cfg); err != nil {
		return nil, fmt.Errorf("services: %w", err)
	}
	return cfg, nil
}

func loadYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	data = stripTemplateVariables(data)

	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// stripTemplateVariables replaces Homepage template variables with an empty
// YAML string, e.g. {{HOMEPAGE_VAR_ADGUARD_USER}} -> "".
func stripTemplateVariables(data []byte) []byte {
	return templateVar.ReplaceAll(data, []byte(`""`))
}
