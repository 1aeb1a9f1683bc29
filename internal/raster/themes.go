package raster

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrThemeUnknown = errors.New("raster: unknown theme")
	ErrThemeInvalid = errors.New("raster: invalid theme definition")
)

// Theme describes the palette a rasterizer renders with. Colors use hex
// notation (#rrggbb). Dots are the three title-bar window dots, left to right.
type Theme struct {
	Name       string   `json:"name"`
	Background string   `json:"background"`
	Text       string   `json:"text"`
	Comment    string   `json:"comment"`
	Keyword    string   `json:"keyword"`
	String     string   `json:"string"`
	Number     string   `json:"number"`
	Function   string   `json:"function"`
	Operator   string   `json:"operator"`
	Class      string   `json:"class"`
	Variable   string   `json:"variable"`
	TitleBar   string   `json:"title_bar"`
	Dots       []string `json:"dots"`
}

var defaultDots = []string{"#ff5f56", "#ffbd2e", "#27c93f"}

var builtinThemes = map[string]Theme{
	"monokai": {
		Name:       "monokai",
		Background: "#272822",
		Text:       "#f8f8f2",
		Comment:    "#75715e",
		Keyword:    "#f92672",
		String:     "#e6db74",
		Number:     "#ae81ff",
		Function:   "#a6e22e",
		Operator:   "#f92672",
		Class:      "#66d9ef",
		Variable:   "#f8f8f2",
		TitleBar:   "#1e1f1a",
		Dots:       defaultDots,
	},
	"github-dark": {
		Name:       "github-dark",
		Background: "#0d1117",
		Text:       "#c9d1d9",
		Comment:    "#7d8590",
		Keyword:    "#ff7b72",
		String:     "#a5d6ff",
		Number:     "#79c0ff",
		Function:   "#d2a8ff",
		Operator:   "#ff7b72",
		Class:      "#79c0ff",
		Variable:   "#c9d1d9",
		TitleBar:   "#161b22",
		Dots:       defaultDots,
	},
	"dracula": {
		Name:       "dracula",
		Background: "#282a36",
		Text:       "#f8f8f2",
		Comment:    "#6272a4",
		Keyword:    "#ff79c6",
		String:     "#f1fa8c",
		Number:     "#bd93f9",
		Function:   "#50fa7b",
		Operator:   "#ff79c6",
		Class:      "#8be9fd",
		Variable:   "#f8f8f2",
		TitleBar:   "#21222c",
		Dots:       []string{"#ff5555", "#f1fa8c", "#50fa7b"},
	},
	"one-dark": {
		Name:       "one-dark",
		Background: "#282c34",
		Text:       "#abb2bf",
		Comment:    "#5c6370",
		Keyword:    "#c678dd",
		String:     "#98c379",
		Number:     "#d19a66",
		Function:   "#61afef",
		Operator:   "#56b6c2",
		Class:      "#e5c07b",
		Variable:   "#e06c75",
		TitleBar:   "#21252b",
		Dots:       defaultDots,
	},
}

// BuiltinThemes lists the bundled theme names in stable order.
func BuiltinThemes() []string {
	names := make([]string, 0, len(builtinThemes))
	for name := range builtinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupTheme resolves a built-in theme by name.
func LookupTheme(name string) (Theme, error) {
	theme, ok := builtinThemes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Theme{}, fmt.Errorf("%w: %q", ErrThemeUnknown, name)
	}
	return theme, nil
}

// IsBuiltinTheme reports whether name resolves to a bundled theme.
func IsBuiltinTheme(name string) bool {
	_, ok := builtinThemes[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

const themeSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["name", "background", "text", "comment", "keyword", "string", "number", "function", "operator", "class", "variable", "title_bar"],
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"background": {"$ref": "#/$defs/color"},
		"text": {"$ref": "#/$defs/color"},
		"comment": {"$ref": "#/$defs/color"},
		"keyword": {"$ref": "#/$defs/color"},
		"string": {"$ref": "#/$defs/color"},
		"number": {"$ref": "#/$defs/color"},
		"function": {"$ref": "#/$defs/color"},
		"operator": {"$ref": "#/$defs/color"},
		"class": {"$ref": "#/$defs/color"},
		"variable": {"$ref": "#/$defs/color"},
		"title_bar": {"$ref": "#/$defs/color"},
		"dots": {
			"type": "array",
			"items": {"$ref": "#/$defs/color"},
			"minItems": 3,
			"maxItems": 3
		}
	},
	"additionalProperties": false,
	"$defs": {
		"color": {"type": "string", "pattern": "^#[0-9a-fA-F]{6}$"}
	}
}`

func compiledThemeSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("theme.json", bytes.NewReader([]byte(themeSchema))); err != nil {
		return nil, err
	}
	return compiler.Compile("theme.json")
}

// LoadThemeFile reads a custom theme definition from a JSON file, validating
// it against the theme schema before use. Missing dots default to the
// standard traffic-light palette.
func LoadThemeFile(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("raster: read theme %s: %w", path, err)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Theme{}, fmt.Errorf("%w: %v", ErrThemeInvalid, err)
	}

	schema, err := compiledThemeSchema()
	if err != nil {
		return Theme{}, fmt.Errorf("raster: compile theme schema: %w", err)
	}
	if err := schema.Validate(raw); err != nil {
		return Theme{}, fmt.Errorf("%w: %v", ErrThemeInvalid, err)
	}

	var theme Theme
	if err := json.Unmarshal(data, &theme); err != nil {
		return Theme{}, fmt.Errorf("%w: %v", ErrThemeInvalid, err)
	}
	if len(theme.Dots) == 0 {
		theme.Dots = defaultDots
	}
	return theme, nil
}
