package value

type Kind uint8

const (
	KindUnit Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindChar
	KindString
	KindSeq
	KindTuple
	KindMap
	KindStruct
	KindEnum
	KindOption
)

var kindNames = [...]string{
	KindUnit:   "unit",
	KindBool:   "bool",
	KindInt:    "int",
	KindUint:   "uint",
	KindFloat:  "float",
	KindChar:   "char",
	KindString: "string",
	KindSeq:    "seq",
	KindTuple:  "tuple",
	KindMap:    "map",
	KindStruct: "struct",
	KindEnum:   "enum",
	KindOption: "option",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsScalar reports whether values of this kind are leaves.
func (k Kind) IsScalar() bool {
	return k <= KindString
}

func (k Kind) IsNumber() bool {
	return k == KindInt || k == KindUint || k == KindFloat
}

// VariantForm is the payload form of an enum variant.
type VariantForm uint8

const (
	UnitVariant VariantForm = iota
	NewtypeVariant
	TupleVariant
	StructVariant
)

var formNames = [...]string{
	UnitVariant:    "unit",
	NewtypeVariant: "newtype",
	TupleVariant:   "tuple",
	StructVariant:  "struct",
}

func (f VariantForm) String() string {
	if int(f) < len(formNames) {
		return formNames[f]
	}
	return "unknown"
}
