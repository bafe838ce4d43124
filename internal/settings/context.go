package settings

import "strings"

// Context is the flat mapping from dot-path key to resolved value
// (string or bool). It is written only during resolution and read-only
// afterwards.
type Context map[string]any

// GetString returns the string value for a key, or "" when the key is
// absent or holds a bool.
func (c Context) GetString(key string) string {
	if s, ok := c[key].(string); ok {
		return s
	}
	return ""
}

// GetBool returns the boolean value for a key; absent keys and string
// values report false.
func (c Context) GetBool(key string) bool {
	if b, ok := c[key].(bool); ok {
		return b
	}
	return false
}

// Nest explodes the flat dot-path keys into a hierarchical structure for
// template rendering. The flat form stays canonical; nesting happens only
// at this serialization boundary.
func (c Context) Nest() map[string]any {
	result := map[string]any{}
	for key, value := range c {
		path := strings.Split(key, ".")
		node := result
		for _, step := range path[:len(path)-1] {
			child, ok := node[step].(map[string]any)
			if !ok {
				child = map[string]any{}
				node[step] = child
			}
			node = child
		}
		node[path[len(path)-1]] = value
	}
	return result
}
