package parser

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/andrewesterhuizen/js-engine/internal/token"
)

// RenderTokensAsJSON serializes a token stream as pretty-printed JSON for the
// --output-tokens debug mode.
func RenderTokensAsJSON(tokens []token.Token) (string, error) {
	entries := make([]map[string]interface{}, len(tokens))
	for i, t := range tokens {
		entries[i] = map[string]interface{}{
			"type":   string(t.Type),
			"value":  t.Literal,
			"line":   t.Line,
			"column": t.Column,
		}
	}

	buf := new(bytes.Buffer)
	encoder := json.NewEncoder(buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(entries); err != nil {
		return "", fmt.Errorf("failed to encode JSON: %v", err)
	}
	return buf.String(), nil
}
