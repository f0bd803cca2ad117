package homepage

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}
	return path
}

func TestLoadBookmarks(t *testing.T) {
	path := writeFile(t, "bookmarks.yaml", `---
- Developer:
    - Github:
        - abbr: GH
          href: https://github.com/
    - Go:
        - abbr: GO
          href: https://go.dev/
- Social:
    - Reddit:
        - icon: reddit.png
          href: https://reddit.com/
          description: The front page of the internet
`)

	cfg, err := LoadBookmarks(path)
	if err != nil {
		t.Fatalf("LoadBookmarks() error = %v", err)
	}
	if len(cfg) != 2 {
		t.Fatalf("LoadBookmarks() returned %d groups, want 2", len(cfg))
	}
	if got := cfg[1]["Social"][0]["Reddit"][0].Description; got != "The front page of the internet" {
		t.Errorf("description = %q", got)
	}
}

func TestLoadServicesWithTemplateVariables(t *testing.T) {
	path := writeFile(t, "services.yaml", `---
- Infrastructure:
    - AdGuard Home:
        icon: adguard-home.svg
        href: {{HOMEPAGE_VAR_ADGUARD_URL}}
        description: Test
`)

	cfg, err := LoadServices(path)
	if err != nil {
		t.Fatalf("LoadServices() error = %v", err)
	}
	if len(cfg) == 0 {
		t.Fatal("LoadServices() returned empty config")
	}
	if href := cfg[0]["Infrastructure"][0]["AdGuard Home"].Href; href != "" {
		t.Errorf("template variable should be stripped, href = %q", href)
	}
}

func TestLoadFileNotFound(t *testing.T) {
	if _, err := LoadBookmarks("/nonexistent/path/bookmarks.yaml"); err == nil {
		t.Error("LoadBookmarks() with non-existent file should return error")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeFile(t, "bookmarks.yaml", "- Developer: [unclosed")
	if _, err := LoadBookmarks(path); err == nil {
		t.Error("LoadBookmarks() with invalid yaml should return error")
	}
}

func TestStripTemplateVariables(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "single template variable",
			input:    []byte("url: {{HOMEPAGE_VAR_URL}}"),
			expected: "url: \"\"",
		},
		{
			name:     "no template variables",
			input:    []byte("plain text"),
			expected: "plain text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := stripTemplateVariables(tt.input)
			if string(result) != tt.expected {
				t.Errorf("stripTemplateVariables() = %q, want %q", string(result), tt.expected)
			}
		})
	}
}
