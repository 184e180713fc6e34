package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins caches TypeIDs for the primitive types every program needs,
// so callers never re-intern them.
type Builtins struct {
	Invalid    TypeID
	Unknown    TypeID
	Erroneous  TypeID
	Bool       TypeID
	String     TypeID
	Bytes      TypeID
	CString    TypeID
	Int        TypeID // generic-width int
	Uint       TypeID
	Real       TypeID
	Imag       TypeID
	Complex    TypeID
	AnyClass   TypeID
	AnyOwned   TypeID
	AnyShared  TypeID
	AnyInt     TypeID
	AnyUint    TypeID
	AnyReal    TypeID
	AnyImag    TypeID
	AnyComplex TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// Two nominal (composite/class/enum) types with the same Decl+Args
// intern to the same TypeID, matching spec.md §3's interning invariant
// ("pointer equality implies structural equality and vice versa").
type Interner struct {
	types    []Type
	index    map[typeKey]TypeID
	builtins Builtins
	args     *argsInterner
	tuples   []TupleInfo
	tupleIdx map[TupleInfo]TupleID
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index:    make(map[typeKey]TypeID, 64),
		args:     newArgsInterner(),
		tuples:   []TupleInfo{{}}, // reserve 0 for NoTupleID
		tupleIdx: make(map[TupleInfo]TupleID, 16),
	}
	in.types = append(in.types, Type{Kind: KindInvalid}) // reserve NoTypeID
	in.builtins.Invalid = NoTypeID
	in.builtins.Unknown = in.Intern(Type{Kind: KindUnknown})
	in.builtins.Erroneous = in.Intern(Type{Kind: KindErroneous})
	in.builtins.Bool = in.Intern(MakeBool())
	in.builtins.String = in.Intern(MakeString())
	in.builtins.Bytes = in.Intern(MakeBytes())
	in.builtins.CString = in.Intern(MakeCString())
	in.builtins.Int = in.Intern(MakeInt(WidthAny))
	in.builtins.Uint = in.Intern(MakeUint(WidthAny))
	in.builtins.Real = in.Intern(MakeReal(WidthAny))
	in.builtins.Imag = in.Intern(MakeImag(WidthAny))
	in.builtins.Complex = in.Intern(MakeComplex(WidthAny))
	in.builtins.AnyClass = in.Intern(MakeAnyClass())
	in.builtins.AnyOwned = in.Intern(MakeAnyOwned())
	in.builtins.AnyShared = in.Intern(MakeAnyShared())
	in.builtins.AnyInt = in.Intern(MakeAnyInt())
	in.builtins.AnyUint = in.Intern(MakeAnyUint())
	in.builtins.AnyReal = in.Intern(MakeAnyReal())
	in.builtins.AnyImag = in.Intern(MakeAnyImag())
	in.builtins.AnyComplex = in.Intern(MakeAnyComplex())
	return in
}

// Builtins returns the cached TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins { return in.builtins }

// InternArgs hash-conses a generic-argument or tuple-element list.
func (in *Interner) InternArgs(elems []TypeID) ArgsID { return in.args.intern(elems) }

// LookupArgs recovers the element list for an ArgsID.
func (in *Interner) LookupArgs(id ArgsID) []TypeID { return in.args.lookup(id) }

// InternTuple hash-conses a TupleInfo into a TupleID, then interns the
// Tuple Type descriptor itself and returns that descriptor's TypeID.
func (in *Interner) InternTuple(info TupleInfo) TypeID {
	id, ok := in.tupleIdx[info]
	if !ok {
		lenTuples, err := safecast.Conv[uint32](len(in.tuples))
		if err != nil {
			panic(fmt.Errorf("types: tuple table overflow: %w", err))
		}
		id = TupleID(lenTuples)
		in.tuples = append(in.tuples, info)
		in.tupleIdx[info] = id
	}
	return in.Intern(Type{Kind: KindTuple, Tuple: id})
}

// LookupTuple recovers the TupleInfo for a TupleID.
func (in *Interner) LookupTuple(id TupleID) (TupleInfo, bool) {
	if id == NoTupleID || int(id) >= len(in.tuples) {
		return TupleInfo{}, false
	}
	return in.tuples[id], true
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	key := typeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("types: interner overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[typeKey(t)] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid; reserved for call sites that
// have already validated id came from this interner.
func (in *Interner) MustLookup(id TypeID) Type {
	t, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return t
}

// typeKey is the fixed-width structural key every Type hashes to.
// Variable-length payloads (tuple elements, generic arguments) are
// pre-interned into ArgsID/TupleID before a Type reaches Intern, so
// the key itself stays a small comparable struct.
type typeKey Type
