package semantic

// OperationKind discriminates the node variants of the bound tree.
type OperationKind uint8

const (
	// KindNone marks syntax the binder does not model. Its children are still bound.
	KindNone OperationKind = iota
	// KindInvalid marks code that could not be bound, such as unknown names.
	KindInvalid
	KindMethodBody
	KindBlock
	KindExpressionStatement
	KindVariableDeclaration
	KindLocalFunction
	KindAnonymousFunction
	KindLiteral
	KindLocalReference
	KindParameterReference
	KindFieldReference
	KindPropertyReference
	KindEventReference
	KindInstanceReference
	KindInvocation
	KindObjectCreation
	KindUnaryOperator
	KindBinaryOperator
	KindIf
	KindWhileLoop
	KindDoLoop
	KindForLoop
	KindForEachLoop
	KindUsing
	KindLock
	KindSwitch
	KindSwitchSection
	KindSingleValueCaseClause
	KindDefaultCaseClause
	KindPatternCaseClause
	KindReturn
	KindYieldReturn
	KindYieldBreak
	KindThrow
)

var operationKindNames = [...]string{
	KindNone:                  "None",
	KindInvalid:               "Invalid",
	KindMethodBody:            "MethodBody",
	KindBlock:                 "Block",
	KindExpressionStatement:   "ExpressionStatement",
	KindVariableDeclaration:   "VariableDeclaration",
	KindLocalFunction:         "LocalFunction",
	KindAnonymousFunction:     "AnonymousFunction",
	KindLiteral:               "Literal",
	KindLocalReference:        "LocalReference",
	KindParameterReference:    "ParameterReference",
	KindFieldReference:        "FieldReference",
	KindPropertyReference:     "PropertyReference",
	KindEventReference:        "EventReference",
	KindInstanceReference:     "InstanceReference",
	KindInvocation:            "Invocation",
	KindObjectCreation:        "ObjectCreation",
	KindUnaryOperator:         "UnaryOperator",
	KindBinaryOperator:        "BinaryOperator",
	KindIf:                    "If",
	KindWhileLoop:             "WhileLoop",
	KindDoLoop:                "DoLoop",
	KindForLoop:               "ForLoop",
	KindForEachLoop:           "ForEachLoop",
	KindUsing:                 "Using",
	KindLock:                  "Lock",
	KindSwitch:                "Switch",
	KindSwitchSection:         "SwitchSection",
	KindSingleValueCaseClause: "SingleValueCaseClause",
	KindDefaultCaseClause:     "DefaultCaseClause",
	KindPatternCaseClause:     "PatternCaseClause",
	KindReturn:                "Return",
	KindYieldReturn:           "YieldReturn",
	KindYieldBreak:            "YieldBreak",
	KindThrow:                 "Throw",
}

func (k OperationKind) String() string {
	if int(k) < len(operationKindNames) {
		return operationKindNames[k]
	}

	return "OperationKind(?)"
}

// SymbolKind is the semantic category of a named entity. Parameters are
// split by passing mode and methods by method kind, so rules can phrase
// messages without inspecting the symbol further.
type SymbolKind uint8

const (
	Variable SymbolKind = iota
	Parameter
	RefParameter
	OutParameter
	InParameter
	ParamsParameter
	ThisParameter
	Field
	Property
	Event
	Method
	Constructor
	StaticConstructor
	Destructor
	Operator
	Conversion
	LocalFunction
)

var symbolKindNames = [...]string{
	Variable:          "variable",
	Parameter:         "parameter",
	RefParameter:      "ref parameter",
	OutParameter:      "out parameter",
	InParameter:       "in parameter",
	ParamsParameter:   "params parameter",
	ThisParameter:     "this parameter",
	Field:             "field",
	Property:          "property",
	Event:             "event",
	Method:            "method",
	Constructor:       "constructor",
	StaticConstructor: "static constructor",
	Destructor:        "destructor",
	Operator:          "operator",
	Conversion:        "conversion operator",
	LocalFunction:     "local function",
}

// String returns the lower-case label used in diagnostic messages.
func (k SymbolKind) String() string {
	if int(k) < len(symbolKindNames) {
		return symbolKindNames[k]
	}

	return "symbol"
}

// IsParameter reports whether k is one of the parameter passing modes.
func (k SymbolKind) IsParameter() bool {
	return k >= Parameter && k <= ThisParameter
}

// IsMember reports whether k is a field, property or event.
func (k SymbolKind) IsMember() bool {
	return k >= Field && k <= Event
}

// IsMethod reports whether k is one of the method kinds.
func (k SymbolKind) IsMethod() bool {
	return k >= Method && k <= LocalFunction
}

// RefKind is the passing mode of a parameter.
type RefKind uint8

const (
	RefNone RefKind = iota
	RefRef
	RefOut
	RefIn
	RefParams
	RefThis
)

var refKindKeywords = [...]string{
	RefNone:   "",
	RefRef:    "ref",
	RefOut:    "out",
	RefIn:     "in",
	RefParams: "params",
	RefThis:   "this",
}

// Keyword returns the C# modifier for the passing mode, empty for by-value.
func (r RefKind) Keyword() string {
	if int(r) < len(refKindKeywords) {
		return refKindKeywords[r]
	}

	return ""
}

func (r RefKind) symbolKind() SymbolKind {
	switch r {
	case RefRef:
		return RefParameter
	case RefOut:
		return OutParameter
	case RefIn:
		return InParameter
	case RefParams:
		return ParamsParameter
	case RefThis:
		return ThisParameter
	default:
		return Parameter
	}
}

func parseRefKind(keyword string) (RefKind, bool) {
	for r, kw := range refKindKeywords {
		if kw != "" && kw == keyword {
			return RefKind(r), true
		}
	}

	return RefNone, false
}

// TypeKind is the declaration form of a named type.
type TypeKind uint8

const (
	TypeClass TypeKind = iota
	TypeStruct
	TypeInterface
	TypeRecord
	TypeEnum
)

func (k TypeKind) String() string {
	switch k {
	case TypeClass:
		return "class"
	case TypeStruct:
		return "struct"
	case TypeInterface:
		return "interface"
	case TypeRecord:
		return "record"
	case TypeEnum:
		return "enum"
	}

	return "type"
}

// UnaryOperatorKind classifies prefix unary operators.
type UnaryOperatorKind uint8

const (
	UnaryOther UnaryOperatorKind = iota
	UnaryLogicalNot
	UnaryMinus
	UnaryPlus
	UnaryBitwiseNot
)

func unaryOperatorKind(token string) UnaryOperatorKind {
	switch token {
	case "!":
		return UnaryLogicalNot
	case "-":
		return UnaryMinus
	case "+":
		return UnaryPlus
	case "~":
		return UnaryBitwiseNot
	default:
		return UnaryOther
	}
}

// BinaryOperatorKind classifies binary operators. Only the short-circuit
// operators are distinguished.
type BinaryOperatorKind uint8

const (
	BinaryOther BinaryOperatorKind = iota
	BinaryConditionalAnd
	BinaryConditionalOr
)

func binaryOperatorKind(token string) BinaryOperatorKind {
	switch token {
	case "&&":
		return BinaryConditionalAnd
	case "||":
		return BinaryConditionalOr
	default:
		return BinaryOther
	}
}
