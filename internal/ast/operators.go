package ast

import "github.com/andrewesterhuizen/js-engine/internal/token"

type Operator int

const (
	OperatorAdd Operator = iota
	OperatorSubtract
	OperatorMultiply
	OperatorDivide
	OperatorModulo
	OperatorExponent

	OperatorEqual
	OperatorEqualStrict
	OperatorNotEqual
	OperatorNotEqualStrict
	OperatorLessThan
	OperatorLessThanOrEqual
	OperatorGreaterThan
	OperatorGreaterThanOrEqual

	OperatorLogicalAnd
	OperatorLogicalOr
	OperatorNot

	OperatorBitwiseAnd
	OperatorBitwiseOr

	OperatorAssign
	OperatorAddAssign
	OperatorSubtractAssign
	OperatorMultiplyAssign
	OperatorDivideAssign

	OperatorIncrement
	OperatorDecrement

	OperatorTypeof
)

var operatorStrings = map[Operator]string{
	OperatorAdd:                "+",
	OperatorSubtract:           "-",
	OperatorMultiply:           "*",
	OperatorDivide:             "/",
	OperatorModulo:             "%",
	OperatorExponent:           "**",
	OperatorEqual:              "==",
	OperatorEqualStrict:        "===",
	OperatorNotEqual:           "!=",
	OperatorNotEqualStrict:     "!==",
	OperatorLessThan:           "<",
	OperatorLessThanOrEqual:    "<=",
	OperatorGreaterThan:        ">",
	OperatorGreaterThanOrEqual: ">=",
	OperatorLogicalAnd:         "&&",
	OperatorLogicalOr:          "||",
	OperatorNot:                "!",
	OperatorBitwiseAnd:         "&",
	OperatorBitwiseOr:          "|",
	OperatorAssign:             "=",
	OperatorAddAssign:          "+=",
	OperatorSubtractAssign:     "-=",
	OperatorMultiplyAssign:     "*=",
	OperatorDivideAssign:       "/=",
	OperatorIncrement:          "++",
	OperatorDecrement:          "--",
	OperatorTypeof:             "typeof",
}

func (op Operator) String() string {
	if s, ok := operatorStrings[op]; ok {
		return s
	}
	return "<unknown operator>"
}

// tokenOperators is the source of truth mapping operator token kinds to
// operators; TokenTypeToOperator and TokenTypeIsOperator both derive from it.
var tokenOperators = map[token.TokenType]Operator{
	token.PLUS:            OperatorAdd,
	token.MINUS:           OperatorSubtract,
	token.ASTERISK:        OperatorMultiply,
	token.SLASH:           OperatorDivide,
	token.PERCENT:         OperatorModulo,
	token.EXPONENT:        OperatorExponent,
	token.EQ:              OperatorEqual,
	token.EQ_STRICT:       OperatorEqualStrict,
	token.NOT_EQ:          OperatorNotEqual,
	token.NOT_EQ_STRICT:   OperatorNotEqualStrict,
	token.LT:              OperatorLessThan,
	token.LT_EQ:           OperatorLessThanOrEqual,
	token.GT:              OperatorGreaterThan,
	token.GT_EQ:           OperatorGreaterThanOrEqual,
	token.LOGICAL_AND:     OperatorLogicalAnd,
	token.LOGICAL_OR:      OperatorLogicalOr,
	token.BANG:            OperatorNot,
	token.BITWISE_AND:     OperatorBitwiseAnd,
	token.BITWISE_OR:      OperatorBitwiseOr,
	token.ASSIGN:          OperatorAssign,
	token.PLUS_ASSIGN:     OperatorAddAssign,
	token.MINUS_ASSIGN:    OperatorSubtractAssign,
	token.ASTERISK_ASSIGN: OperatorMultiplyAssign,
	token.SLASH_ASSIGN:    OperatorDivideAssign,
	token.INCREMENT:       OperatorIncrement,
	token.DECREMENT:       OperatorDecrement,
}

func TokenTypeToOperator(t token.TokenType) (Operator, bool) {
	op, ok := tokenOperators[t]
	return op, ok
}

func TokenTypeIsOperator(t token.TokenType) bool {
	_, ok := tokenOperators[t]
	return ok
}

// assignmentOperators is the subset driving AssignmentExpression folding.
var assignmentOperators = map[token.TokenType]bool{
	token.ASSIGN:          true,
	token.PLUS_ASSIGN:     true,
	token.MINUS_ASSIGN:    true,
	token.ASTERISK_ASSIGN: true,
	token.SLASH_ASSIGN:    true,
}

func TokenTypeIsAssignmentOperator(t token.TokenType) bool {
	return assignmentOperators[t]
}

// TokenTypeIsBinaryOperator reports whether t folds as an infix binary
// operator (assignment and update operators fold as their own node kinds).
func TokenTypeIsBinaryOperator(t token.TokenType) bool {
	op, ok := tokenOperators[t]
	if !ok {
		return false
	}
	switch op {
	case OperatorAssign, OperatorAddAssign, OperatorSubtractAssign,
		OperatorMultiplyAssign, OperatorDivideAssign,
		OperatorIncrement, OperatorDecrement, OperatorNot:
		return false
	}
	return true
}
