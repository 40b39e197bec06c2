package ir

// Type is the result type of a function. SysY scalars are all i32.
type Type uint8

const (
	TypeI32 Type = iota
	TypeUnit
)

func (t Type) String() string {
	if t == TypeUnit {
		return "unit"
	}
	return "i32"
}
