package spi

// Parameter is a value accompanied by an explicitly declared type.
type Parameter struct {
	Type  Type
	Value any
}

// In wraps value with a declared type.
func In(t Type, value any) Parameter {
	return Parameter{Type: t, Value: value}
}
