package gemini

import (
	"encoding/json"
	"fmt"

	"github.com/phrazzld/email-writer/internal/generation"
)

// Extract returns the generated text from a raw generateContent response.
// It never fails: any problem with the document is reported as a reply that
// starts with generation.ErrorReplyPrefix followed by a short diagnostic.
func Extract(raw []byte) string {
	text, err := ExtractText(raw)
	if err != nil {
		return generation.ErrorReply(err)
	}
	return text
}

// ExtractText walks candidates[0].content.parts[0].text in raw. Errors wrap
// generation.ErrInvalidResponse and name the step that failed.
func ExtractText(raw []byte) (string, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", fmt.Errorf("%w: malformed JSON: %v", generation.ErrInvalidResponse, err)
	}

	root, err := asObject(doc, "response")
	if err != nil {
		return "", err
	}

	candidates, err := arrayField(root, "candidates")
	if err != nil {
		return "", err
	}

	candidate, err := objectAt(candidates, 0, "candidates")
	if err != nil {
		return "", err
	}

	content, err := objectField(candidate, "content")
	if err != nil {
		return "", err
	}

	parts, err := arrayField(content, "parts")
	if err != nil {
		return "", err
	}

	part, err := objectAt(parts, 0, "parts")
	if err != nil {
		return "", err
	}

	value, ok := part["text"]
	if !ok || value == nil {
		return "", fmt.Errorf("%w: missing field %q", generation.ErrInvalidResponse, "text")
	}

	text, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: field %q is %s, not a string",
			generation.ErrInvalidResponse, "text", jsonKind(value))
	}

	return text, nil
}

func asObject(v any, name string) (map[string]any, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s is %s, not an object",
			generation.ErrInvalidResponse, name, jsonKind(v))
	}
	return obj, nil
}

func objectField(obj map[string]any, key string) (map[string]any, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return nil, fmt.Errorf("%w: missing field %q", generation.ErrInvalidResponse, key)
	}
	return asObject(v, fmt.Sprintf("field %q", key))
}

func arrayField(obj map[string]any, key string) ([]any, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return nil, fmt.Errorf("%w: missing field %q", generation.ErrInvalidResponse, key)
	}

	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: field %q is %s, not an array",
			generation.ErrInvalidResponse, key, jsonKind(v))
	}
	return arr, nil
}

func objectAt(arr []any, index int, name string) (map[string]any, error) {
	if index < 0 || index >= len(arr) {
		return nil, fmt.Errorf("%w: index %d out of range for %q (length %d)",
			generation.ErrInvalidResponse, index, name, len(arr))
	}
	return asObject(arr[index], fmt.Sprintf("%s[%d]", name, index))
}

// jsonKind names the JSON type of a decoded value for diagnostics.
func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "an object"
	case []any:
		return "an array"
	case string:
		return "a string"
	case float64:
		return "a number"
	case bool:
		return "a boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
