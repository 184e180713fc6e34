package types

// QualKind enumerates the storage-class/intent tags a resolved
// expression's type carries (spec.md §3).
type QualKind uint8

const (
	QualUnknown QualKind = iota
	QualVar
	QualConstVar
	QualRef
	QualConstRef
	QualRefMaybeConst
	QualIn
	QualConstIn
	QualOut
	QualInout
	QualType
	QualParam
	QualParenlessFunction
	QualFunction
	QualModule
)

func (k QualKind) String() string {
	switch k {
	case QualUnknown:
		return "unknown"
	case QualVar:
		return "var"
	case QualConstVar:
		return "const var"
	case QualRef:
		return "ref"
	case QualConstRef:
		return "const ref"
	case QualRefMaybeConst:
		return "ref-maybe-const"
	case QualIn:
		return "in"
	case QualConstIn:
		return "const in"
	case QualOut:
		return "out"
	case QualInout:
		return "inout"
	case QualType:
		return "type"
	case QualParam:
		return "param"
	case QualParenlessFunction:
		return "parenless function"
	case QualFunction:
		return "function"
	case QualModule:
		return "module"
	default:
		return "?"
	}
}

// IsRefLike reports whether the kind denotes a reference/aliasing
// intent, used by the instantiation engine's "ref requires exact type
// match" rule (spec.md §4.F.3).
func (k QualKind) IsRefLike() bool {
	switch k {
	case QualRef, QualConstRef, QualRefMaybeConst, QualOut, QualInout:
		return true
	default:
		return false
	}
}

// QualifiedType pairs a Type with its storage-class kind and, for
// param kinds, the compile-time constant value. Equality is
// structural over all three fields (spec.md §3) because Param is a
// plain comparable struct — QualifiedType values can be compared with
// == and used as map keys directly.
type QualifiedType struct {
	Kind  QualKind
	Type  TypeID
	Param Param
}

// UnknownQT is the sentinel qualified type for an expression whose
// type genuinely could not be determined (spec.md §7: "unresolvable
// but benign").
var UnknownQT = QualifiedType{Kind: QualUnknown}

// NewVar builds a var-kind qualified type.
func NewVar(t TypeID) QualifiedType { return QualifiedType{Kind: QualVar, Type: t} }

// NewType builds a type-kind qualified type (the expression names a
// type, e.g. as a type-constructor call actual).
func NewType(t TypeID) QualifiedType { return QualifiedType{Kind: QualType, Type: t} }

// NewParam builds a param-kind qualified type carrying a compile-time
// constant value.
func NewParam(t TypeID, p Param) QualifiedType {
	return QualifiedType{Kind: QualParam, Type: t, Param: p}
}

// IsUnknown reports whether qt is the unknown sentinel.
func (qt QualifiedType) IsUnknown() bool { return qt.Kind == QualUnknown }

// IsErroneous reports whether qt wraps the erroneous placeholder type
// (spec.md §7: reported errors still produce an ErroneousType-typed
// expression so downstream resolution continues).
func (qt QualifiedType) IsErroneous(in *Interner) bool {
	return qt.Type == in.Builtins().Erroneous
}

// WithType returns a copy of qt pointing at a different underlying
// Type, keeping kind and param intact.
func (qt QualifiedType) WithType(t TypeID) QualifiedType {
	qt.Type = t
	return qt
}
