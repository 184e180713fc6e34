// Package types implements the interned, hash-consed type lattice that
// backs the Vela semantic resolution core: primitives, tuples, nominal
// composites, decorated class references, c-pointers, domains, arrays,
// enums, and the "any-" generic upper bounds.
package types

import "fmt"

// TypeID is a stable, interned handle to a Type descriptor.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// DeclID names the AST declaration a nominal type (composite or enum)
// originates from. It mirrors ast.ID without importing the ast package,
// keeping the type lattice free of a dependency on the AST provider.
type DeclID uint64

// NoDeclID marks a structural (non-nominal) type.
const NoDeclID DeclID = 0

// Kind enumerates every variant the lattice supports.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindUnknown
	KindErroneous
	KindBool
	KindString
	KindBytes
	KindCString
	KindInt
	KindUint
	KindReal
	KindImag
	KindComplex
	KindTuple
	KindComposite // record / union: nominal, structural value type
	KindClass     // nominal reference type, always carries Management+Nilability
	KindCPointer
	KindDomain
	KindArray
	KindEnum
	KindAnyClass
	KindAnyOwned
	KindAnyShared
	KindAnyInt
	KindAnyUint
	KindAnyReal
	KindAnyImag
	KindAnyComplex
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindUnknown:
		return "unknown"
	case KindErroneous:
		return "erroneous"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindCString:
		return "c_string"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindReal:
		return "real"
	case KindImag:
		return "imag"
	case KindComplex:
		return "complex"
	case KindTuple:
		return "tuple"
	case KindComposite:
		return "composite"
	case KindClass:
		return "class"
	case KindCPointer:
		return "c_ptr"
	case KindDomain:
		return "domain"
	case KindArray:
		return "array"
	case KindEnum:
		return "enum"
	case KindAnyClass:
		return "AnyClass"
	case KindAnyOwned:
		return "AnyOwned"
	case KindAnyShared:
		return "AnyShared"
	case KindAnyInt:
		return "AnyInt"
	case KindAnyUint:
		return "AnyUint"
	case KindAnyReal:
		return "AnyReal"
	case KindAnyImag:
		return "AnyImag"
	case KindAnyComplex:
		return "AnyComplex"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsAnyBound reports whether the kind is one of the "any-" generic
// upper-bound families used for formal annotations and partial
// construction (spec.md §4.B).
func (k Kind) IsAnyBound() bool {
	switch k {
	case KindAnyClass, KindAnyOwned, KindAnyShared, KindAnyInt, KindAnyUint, KindAnyReal, KindAnyImag, KindAnyComplex:
		return true
	default:
		return false
	}
}

// Width captures the bit width of a numeric primitive. WidthAny means
// the generic, unwidthed family member ("int" rather than "int(32)").
type Width uint8

const (
	WidthAny Width = 0
	Width8   Width = 8
	Width16  Width = 16
	Width32  Width = 32
	Width64  Width = 64
	Width128 Width = 128
)

// ValidNumericWidth reports whether w is a legal argument to the
// int/uint/real/imag/complex type constructors (spec.md §4.H.3: width
// in [0, 128]).
func ValidNumericWidth(w Width) bool {
	return w <= Width128
}

// Management enumerates how a class reference's storage is owned.
// ManageUnspecified is the generic bound used before a formal's
// management is pinned down.
type Management uint8

const (
	ManageUnspecified Management = iota
	ManageBorrowed
	ManageUnmanaged
	ManageOwned
	ManageShared
)

func (m Management) String() string {
	switch m {
	case ManageBorrowed:
		return "borrowed"
	case ManageUnmanaged:
		return "unmanaged"
	case ManageOwned:
		return "owned"
	case ManageShared:
		return "shared"
	default:
		return "?"
	}
}

// IsManaged reports whether the management implies a reference-counted
// or otherwise memory-managed lifetime (owned/shared).
func (m Management) IsManaged() bool {
	return m == ManageOwned || m == ManageShared
}

// Concrete reports whether the management is pinned down (not the
// generic bound).
func (m Management) Concrete() bool { return m != ManageUnspecified }

// Nilability enumerates whether a class reference may hold nil.
type Nilability uint8

const (
	NilUnspecified Nilability = iota
	NilNilable
	NilNonNil
)

func (n Nilability) String() string {
	switch n {
	case NilNilable:
		return "nilable"
	case NilNonNil:
		return "non-nil"
	default:
		return "?"
	}
}

func (n Nilability) Concrete() bool { return n != NilUnspecified }

// CompositeKind distinguishes the three flavors of nominal composite
// declaration.
type CompositeKind uint8

const (
	CompositeRecord CompositeKind = iota
	CompositeUnion
	CompositeClassBody // the structural body backing a KindClass
)

func (k CompositeKind) String() string {
	switch k {
	case CompositeRecord:
		return "record"
	case CompositeUnion:
		return "union"
	case CompositeClassBody:
		return "class"
	default:
		return "?"
	}
}

// Type is the compact, interned descriptor for any lattice member.
//
// Nominal composites and classes are identified by Decl, not by
// structure: two record declarations with identical fields are
// distinct types. Args names the generic instantiation actuals for a
// nominal type (interned via Interner.InternArgs); NoArgsID means "not
// instantiated" (the generic declaration itself, or a non-generic
// declaration).
type Type struct {
	Kind          Kind
	Width         Width
	Elem          TypeID // c_ptr/domain/array element type
	Count         uint32 // array rank / fixed length (ArrayDynamicLength = open)
	Decl          DeclID // composite/class/enum declaration identity
	Args          ArgsID // generic instantiation actuals for Decl
	CompositeKind CompositeKind
	Management    Management // KindClass only
	Nilability    Nilability // KindClass only
	Tuple         TupleID    // KindTuple only
}

// ArrayDynamicLength marks an array whose extent is not known at
// compile time (an open-ended slice-like array).
const ArrayDynamicLength = ^uint32(0)

// TupleID is an interned handle to a TupleInfo record.
type TupleID uint32

// NoTupleID marks the absence of tuple shape data.
const NoTupleID TupleID = 0

// TupleInfo describes one tuple shape: its element types plus the two
// axes spec.md §3 calls out (star vs explicit, referential vs value).
type TupleInfo struct {
	Elems       ArgsID
	Star        bool // variadic "star" tuple: single repeated element type
	Referential bool // referential tuple binds to its operands by reference
}

// Constructors -----------------------------------------------------------

func MakeBool() Type   { return Type{Kind: KindBool} }
func MakeString() Type { return Type{Kind: KindString} }
func MakeBytes() Type  { return Type{Kind: KindBytes} }
func MakeCString() Type { return Type{Kind: KindCString} }

func MakeInt(w Width) Type     { return Type{Kind: KindInt, Width: w} }
func MakeUint(w Width) Type    { return Type{Kind: KindUint, Width: w} }
func MakeReal(w Width) Type    { return Type{Kind: KindReal, Width: w} }
func MakeImag(w Width) Type    { return Type{Kind: KindImag, Width: w} }
func MakeComplex(w Width) Type { return Type{Kind: KindComplex, Width: w} }

func MakeAnyClass() Type   { return Type{Kind: KindAnyClass} }
func MakeAnyOwned() Type   { return Type{Kind: KindAnyOwned} }
func MakeAnyShared() Type  { return Type{Kind: KindAnyShared} }
func MakeAnyInt() Type     { return Type{Kind: KindAnyInt} }
func MakeAnyUint() Type    { return Type{Kind: KindAnyUint} }
func MakeAnyReal() Type    { return Type{Kind: KindAnyReal} }
func MakeAnyImag() Type    { return Type{Kind: KindAnyImag} }
func MakeAnyComplex() Type { return Type{Kind: KindAnyComplex} }

func MakeCPointer(elem TypeID) Type { return Type{Kind: KindCPointer, Elem: elem} }

func MakeDomain(indexType TypeID, rank uint32) Type {
	return Type{Kind: KindDomain, Elem: indexType, Count: rank}
}

func MakeArray(domain, elem TypeID) Type {
	return Type{Kind: KindArray, Elem: elem, Decl: DeclID(domain)}
}

// ArrayDomain recovers the domain type stashed in Decl by MakeArray.
func (t Type) ArrayDomain() TypeID { return TypeID(t.Decl) }

func MakeEnum(decl DeclID) Type { return Type{Kind: KindEnum, Decl: decl} }

// MakeComposite describes a nominal record or union declaration,
// optionally instantiated with generic arguments.
func MakeComposite(kind CompositeKind, decl DeclID, args ArgsID) Type {
	return Type{Kind: KindComposite, CompositeKind: kind, Decl: decl, Args: args}
}

// MakeClass describes a decorated reference to a nominal class body.
func MakeClass(decl DeclID, args ArgsID, mgmt Management, nilab Nilability) Type {
	return Type{Kind: KindClass, Decl: decl, Args: args, Management: mgmt, Nilability: nilab}
}

// WithDecorator returns a copy of a class type with a new
// management/nilability pair, used by decorator-combine (spec.md §4.B).
func (t Type) WithDecorator(mgmt Management, nilab Nilability) Type {
	t.Management = mgmt
	t.Nilability = nilab
	return t
}

// ShallowGenericity answers spec.md §4.C for the leaf cases that need
// no field resolution: fixed-width and non-numeric primitives are
// concrete, generic-width numerics and the "any-" bounds are
// maybe-generic, and every nominal/tuple/array/domain type defers to
// the resolve-package query that has access to the AST and can walk
// fields (see resolve.Genericity).
func (t Type) ShallowGenericity() (Genericity, bool) {
	switch t.Kind {
	case KindInvalid, KindUnknown, KindErroneous:
		return Concrete, true
	case KindBool, KindString, KindBytes, KindCString:
		return Concrete, true
	case KindInt, KindUint, KindReal, KindImag, KindComplex:
		if t.Width == WidthAny {
			return MaybeGeneric, true
		}
		return Concrete, true
	case KindCPointer:
		if t.Elem == NoTypeID {
			return MaybeGeneric, true
		}
		return Concrete, false // depends on Elem; not fully decidable here
	default:
		if t.Kind.IsAnyBound() {
			return MaybeGeneric, true
		}
		return Concrete, false
	}
}
