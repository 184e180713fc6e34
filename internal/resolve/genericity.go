package resolve

import (
	"github.com/vela-lang/velac/internal/query"
	"github.com/vela-lang/velac/internal/types"
)

const genericityQuery = "resolve.genericity"

// genericityKey is comparable so it can key the query memo table
// directly: the ignore set (spec.md §4.C step 1, the cycle breaker
// for e.g. linked lists) is folded into the key via a deterministic
// byte encoding, since a Go map isn't comparable.
type genericityKey struct {
	t      types.TypeID
	ignore string
}

// Genericity answers spec.md §4.C for any interned type, deferring to
// Type.ShallowGenericity for the leaf cases and walking into
// composite/array/domain/tuple structure for the rest.
func (r *Resolver) Genericity(t types.TypeID, ignore map[types.TypeID]bool) types.Genericity {
	ty, ok := r.Types.Lookup(t)
	if !ok {
		return types.Concrete
	}
	if g, decidable := ty.ShallowGenericity(); decidable {
		return g
	}
	if ignore[t] {
		return types.Concrete
	}

	key := genericityKey{t: t, ignore: encodeIgnoreSet(ignore)}
	if r.Ctx.IsRunning(genericityQuery, key) {
		// Step 5: this type's genericity query is already on the stack
		// (fieldsForTypeDecl has the matching guard for its own query);
		// report concrete to avoid runaway recursion.
		return types.Concrete
	}
	return query.Run(r.Ctx, genericityQuery, key, func() types.Genericity {
		return r.computeGenericity(ty, t, ignore)
	})
}

func encodeIgnoreSet(ignore map[types.TypeID]bool) string {
	if len(ignore) == 0 {
		return ""
	}
	ids := make([]types.TypeID, 0, len(ignore))
	for id := range ignore {
		ids = append(ids, id)
	}
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
	buf := make([]byte, 0, len(ids)*4)
	for _, id := range ids {
		buf = append(buf, byte(id), byte(id>>8), byte(id>>16), byte(id>>24))
	}
	return string(buf)
}

func (r *Resolver) computeGenericity(ty types.Type, self types.TypeID, ignore map[types.TypeID]bool) types.Genericity {
	nextIgnore := make(map[types.TypeID]bool, len(ignore)+1)
	for k := range ignore {
		nextIgnore[k] = true
	}
	nextIgnore[self] = true

	switch ty.Kind {
	case types.KindTuple:
		info, ok := r.Types.LookupTuple(ty.Tuple)
		if !ok {
			return types.Concrete
		}
		acc := types.Concrete
		for _, elem := range r.Types.LookupArgs(info.Elems) {
			acc = types.Combine(acc, r.Genericity(elem, nextIgnore))
		}
		return acc

	case types.KindArray, types.KindDomain, types.KindCPointer:
		return r.Genericity(ty.Elem, nextIgnore)

	case types.KindComposite, types.KindClass:
		return r.compositeGenericity(ty, nextIgnore)

	default:
		return types.Concrete
	}
}

// compositeGenericity implements spec.md §4.C step 6: resolve fields
// under USE_DEFAULTS_OTHER_FIELDS and combine. A class with a parent
// recurses into the parent first (step 4), folded into the same
// combine by ResolvedFields.IsGeneric already accounting for
// inherited fields (see fields.go).
func (r *Resolver) compositeGenericity(ty types.Type, ignore map[types.TypeID]bool) types.Genericity {
	item := declItem(ty.Decl)
	fields := r.FieldsForTypeDecl(item, PolicyUseDefaultsOtherFields)

	switch {
	case fields.IsGeneric:
		return types.Generic
	case fields.IsGenericWithDefaults:
		return types.GenericWithDefaults
	default:
		return types.Concrete
	}
}
