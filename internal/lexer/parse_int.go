package lexer

import (
	"fmt"
	"strconv"
)

// ParseInt decodes an integer literal spelled in SysY syntax. The value is
// read as 32 unsigned bits and reinterpreted as int32, so 0xFFFFFFFF is -1
// and 2147483648 is math.MinInt32 (which is what -2147483648 needs).
func ParseInt(text string) (int32, error) {
	base := 10
	digits := text
	switch {
	case len(text) > 2 && (text[1] == 'x' || text[1] == 'X') && text[0] == '0':
		base, digits = 16, text[2:]
	case len(text) > 1 && text[0] == '0':
		base, digits = 8, text[1:]
	}
	u, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return 0, fmt.Errorf("integer literal %s does not fit in 32 bits", text)
	}
	return int32(uint32(u)), nil // #nosec G115 -- deliberate two's complement reinterpretation
}
