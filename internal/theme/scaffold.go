package theme

import (
	"fmt"
	"os"
	"path/filepath"
)

// Scaffold writes a starting point for a custom theme: the classic preamble
// and stylesheet as editable files plus a sample options block. The directory
// must not already exist.
func Scaffold(name, parentDir string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("theme name must not be empty")
	}
	if _, exists := registry[name]; exists {
		return "", fmt.Errorf("theme %q is a built-in theme", name)
	}
	dir := filepath.Join(parentDir, name)
	if _, err := os.Stat(dir); err == nil {
		return "", fmt.Errorf("directory %s already exists", dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	files := map[string]string{
		"preamble.tex.tmpl": classicPreamble,
		"style.css":         sharedCSS,
		"options.yaml": `# recognized options for the ` + name + ` theme
font_size: 10pt        # 10pt, 11pt or 12pt
page_size: a4paper     # a4paper or letterpaper
color: "#004f90"       # accent color, hex
disable_page_numbering: false
show_last_updated_date: false
`,
	}
	for fname, content := range files {
		if err := os.WriteFile(filepath.Join(dir, fname), []byte(content), 0o644); err != nil {
			return "", err
		}
	}
	return dir, nil
}
