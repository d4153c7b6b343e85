package usecase

type fieldState int

const (
	fieldUnset fieldState = iota
	fieldClear
	fieldSet
)

// Field is a tri-state patch value: not supplied, explicitly cleared, or set
// to a value. It removes the nil/empty-string overloading a partial update
// payload would otherwise carry.
type Field[T any] struct {
	state fieldState
	value T
}

// SetField returns a Field carrying v.
func SetField[T any](v T) Field[T] {
	return Field[T]{state: fieldSet, value: v}
}

// ClearField returns a Field that explicitly clears the target.
func ClearField[T any]() Field[T] {
	return Field[T]{state: fieldClear}
}

// Unset reports that the field was not supplied.
func (f Field[T]) Unset() bool { return f.state == fieldUnset }

// Clear reports an explicit clear.
func (f Field[T]) Clear() bool { return f.state == fieldClear }

// Set reports that a value was supplied.
func (f Field[T]) Set() bool { return f.state == fieldSet }

// Value returns the supplied value, or the zero value when unset or cleared.
func (f Field[T]) Value() T { return f.value }
