package stage

// ValueKind tags the payload type of a Value.
type ValueKind int

const (
	// ValueFloat tags a numeric parameter value.
	ValueFloat ValueKind = iota
	// ValueString tags a textual parameter value (waveform or filter names).
	ValueString
	// ValueBool tags a boolean parameter value.
	ValueBool
)

// String returns the kind name as used in type-mismatch errors.
func (k ValueKind) String() string {
	switch k {
	case ValueFloat:
		return "float"
	case ValueString:
		return "string"
	case ValueBool:
		return "bool"
	}
	return "invalid"
}

// Value is a tagged parameter value. The zero Value is the float 0.
type Value struct {
	kind ValueKind
	num  float64
	str  string
	b    bool
}

// FloatValue wraps a numeric parameter value.
func FloatValue(v float64) Value { return Value{kind: ValueFloat, num: v} }

// StringValue wraps a textual parameter value.
func StringValue(v string) Value { return Value{kind: ValueString, str: v} }

// BoolValue wraps a boolean parameter value.
func BoolValue(v bool) Value { return Value{kind: ValueBool, b: v} }

// Kind reports the payload type.
func (v Value) Kind() ValueKind { return v.kind }

// Float returns the numeric payload; zero unless Kind is ValueFloat.
func (v Value) Float() float64 { return v.num }

// Str returns the textual payload; empty unless Kind is ValueString.
func (v Value) Str() string { return v.str }

// Bool returns the boolean payload; false unless Kind is ValueBool.
func (v Value) Bool() bool { return v.b }
