package object

const (
	RETURN_VALUE_OBJ = "RETURN_VALUE"
	THROWN_VALUE_OBJ = "THROWN_VALUE"
)

// ReturnValue carries a `return` up the tree. It is unwound only at call
// boundaries; try/catch never intercepts it.
type ReturnValue struct {
	propertyMap
	Value Value
}

func (rv *ReturnValue) Type() ValueType { return RETURN_VALUE_OBJ }
func (rv *ReturnValue) Inspect() string { return rv.Value.Inspect() }

// ThrownValue carries a user `throw`. It unwinds to the nearest try/catch
// or, uncaught, out of the program.
type ThrownValue struct {
	propertyMap
	Value Value
}

func (tv *ThrownValue) Type() ValueType { return THROWN_VALUE_OBJ }
func (tv *ThrownValue) Inspect() string { return tv.Value.Inspect() }
