package raster

import "strings"

// languageAliases maps common fence labels to the canonical name the
// rendering backend understands.
var languageAliases = map[string]string{
	"js":         "javascript",
	"jsx":        "javascript",
	"ts":         "typescript",
	"tsx":        "typescript",
	"py":         "python",
	"py3":        "python",
	"rb":         "ruby",
	"sh":         "bash",
	"shell":      "bash",
	"zsh":        "bash",
	"yml":        "yaml",
	"golang":     "go",
	"c++":        "cpp",
	"cs":         "csharp",
	"md":         "markdown",
	"ps1":        "powershell",
	"rs":         "rust",
	"kt":         "kotlin",
	"dockerfile": "docker",
	"plaintext":  "text",
	"plain":      "text",
}

// NormalizeLanguage canonicalizes a code fence language label. Unknown labels
// pass through lowercased; empty labels default to plain text.
func NormalizeLanguage(language string) string {
	normalized := strings.ToLower(strings.TrimSpace(language))
	if normalized == "" {
		return "text"
	}
	if canonical, ok := languageAliases[normalized]; ok {
		return canonical
	}
	return normalized
}
