// Package settings implements the typed settings model behind project
// scaffolding: named settings organized into pools, resolved once per
// invocation into an immutable context the template engine renders against.
package settings

// Kind discriminates the closed set of value shapes a Setting can produce.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindList
)

// Value is a tagged variant: exactly one of the three shapes is populated.
// Consumers switch on Kind and handle every case.
type Value struct {
	kind Kind
	str  string
	flag bool
	list []string
}

// String creates a string-valued Value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Bool creates a boolean-valued Value.
func Bool(b bool) Value {
	return Value{kind: KindBool, flag: b}
}

// List creates an ordered-choice Value. The first element is the
// effective default.
func List(items ...string) Value {
	return Value{kind: KindList, list: items}
}

// Kind reports which variant this Value holds.
func (v Value) Kind() Kind {
	return v.kind
}

// Str returns the string payload. Valid only for KindString.
func (v Value) Str() string {
	return v.str
}

// Flag returns the boolean payload. Valid only for KindBool.
func (v Value) Flag() bool {
	return v.flag
}

// Choices returns the list payload. Valid only for KindList.
func (v Value) Choices() []string {
	return v.list
}

// Collapse reduces the Value to the scalar stored in a resolved context:
// strings and bools pass through, a list collapses to its first element.
func (v Value) Collapse() any {
	switch v.kind {
	case KindBool:
		return v.flag
	case KindList:
		if len(v.list) == 0 {
			return ""
		}
		return v.list[0]
	default:
		return v.str
	}
}

// MoveToFront returns a copy of a list Value with the given choice first,
// used when an override selects a non-default list element. Non-list
// values are returned unchanged.
func (v Value) MoveToFront(choice string) Value {
	if v.kind != KindList {
		return v
	}
	reordered := make([]string, 0, len(v.list))
	reordered = append(reordered, choice)
	for _, item := range v.list {
		if item != choice {
			reordered = append(reordered, item)
		}
	}
	return Value{kind: KindList, list: reordered}
}
