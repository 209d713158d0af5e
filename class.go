package skll

// Class is an optional example label. The zero value is the unset label,
// used for examples with no annotation. Distinguishing unset from an empty
// string avoids the ambiguity of a sentinel value.
type Class struct {
	Value string
	Valid bool
}

// NewClass returns a set label with the given value.
func NewClass(value string) Class {
	return Class{Value: value, Valid: true}
}

// Equal reports whether two labels agree, treating two unset labels as
// equal regardless of their values.
func (c Class) Equal(other Class) bool {
	if c.Valid != other.Valid {
		return false
	}
	return !c.Valid || c.Value == other.Value
}

// String returns the label value, or the empty string when unset.
func (c Class) String() string {
	if !c.Valid {
		return ""
	}
	return c.Value
}
