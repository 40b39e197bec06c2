package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedBlockComment Code = 1002
	LexBadNumber                Code = 1003
	LexIntegerOverflow          Code = 1004

	// Syntax
	SynInfo                Code = 2000
	SynUnexpectedToken     Code = 2001
	SynExpectSemicolon     Code = 2002
	SynExpectIdentifier    Code = 2003
	SynExpectExpression    Code = 2004
	SynExpectType          Code = 2005
	SynUnclosedParen       Code = 2006
	SynUnclosedBrace       Code = 2007
	SynUnclosedBracket     Code = 2008
	SynExpectAssign        Code = 2009
	SynUnexpectedTopLevel  Code = 2010
	SynInvalidAssignTarget Code = 2011

	// IR lowering
	LowInfo                   Code = 3000
	LowUndeclaredIdentifier   Code = 3001
	LowNonConstantInitializer Code = 3002
	LowConstantAssignment     Code = 3003
	LowUnsupportedConstruct   Code = 3004
	LowConstDivisionByZero    Code = 3005
	LowUnreachableCode        Code = 3006
	LowReturnTypeMismatch     Code = 3007
	LowDuplicateFunction      Code = 3008

	// Code generation
	GenInfo                  Code = 4000
	GenUnsupportedOperator   Code = 4001
	GenRegisterPoolExhausted Code = 4002

	// I/O
	IOLoadFileError Code = 5001
	IOWriteError    Code = 5002

	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed integer literal",
	LexIntegerOverflow:          "Integer literal does not fit in 32 bits",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynExpectSemicolon:          "Expected ';'",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectExpression:         "Expected expression",
	SynExpectType:               "Expected 'int' or 'void'",
	SynUnclosedParen:            "Unclosed parenthesis",
	SynUnclosedBrace:            "Unclosed brace",
	SynUnclosedBracket:          "Unclosed bracket",
	SynExpectAssign:             "Expected '='",
	SynUnexpectedTopLevel:       "Unexpected token at top level",
	SynInvalidAssignTarget:      "Left side of assignment is not a variable",
	LowInfo:                     "Lowering information",
	LowUndeclaredIdentifier:     "Undeclared identifier",
	LowNonConstantInitializer:   "Constant initializer is not a compile-time constant",
	LowConstantAssignment:       "Assignment to a constant",
	LowUnsupportedConstruct:     "Construct is not supported by this compiler",
	LowConstDivisionByZero:      "Division by zero in constant expression",
	LowUnreachableCode:          "Unreachable code after return",
	LowReturnTypeMismatch:       "Return value does not match function type",
	LowDuplicateFunction:        "Function defined more than once",
	GenInfo:                     "Code generation information",
	GenUnsupportedOperator:      "Operator has no RISC-V lowering",
	GenRegisterPoolExhausted:    "Register pool exhausted",
	IOLoadFileError:             "I/O load file error",
	IOWriteError:                "I/O write error",
	ObsInfo:                     "Observability information",
	ObsTimings:                  "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("LOW%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("GEN%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
