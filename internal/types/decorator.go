package types

// CombineDecorators implements spec.md §4.B's decorator-combine rule:
// given a formal decorator F and an actual decorator A, the result
// takes management from whichever side is concrete (formal wins ties,
// since a caller-supplied concrete formal management is the binding
// constraint) and nilability from the more specific side. Conflicting
// concrete managements are the caller's problem (canPass rejects
// before this is invoked in earnest); CombineDecorators itself never
// fails, it only picks a value.
func CombineDecorators(formalMgmt, actualMgmt Management, formalNil, actualNil Nilability) (Management, Nilability) {
	mgmt := formalMgmt
	if !mgmt.Concrete() {
		mgmt = actualMgmt
	}

	nilab := mostSpecificNilability(formalNil, actualNil)
	return mgmt, nilab
}

// mostSpecificNilability prefers whichever side commits to non-nil or
// nilable over the generic/unspecified bound; a mismatch between two
// concrete choices favors the formal, mirroring CombineDecorators'
// formal-wins-ties policy.
func mostSpecificNilability(formalNil, actualNil Nilability) Nilability {
	if formalNil.Concrete() {
		return formalNil
	}
	if actualNil.Concrete() {
		return actualNil
	}
	return NilUnspecified
}

// ManagementFromBound reports the management a `owned`/`shared` "any"
// bound pins down, used when wrapping an actual's basic class with the
// formal's management bound (spec.md §4.F.3).
func ManagementFromBound(k Kind) (Management, bool) {
	switch k {
	case KindAnyOwned:
		return ManageOwned, true
	case KindAnyShared:
		return ManageShared, true
	default:
		return ManageUnspecified, false
	}
}
