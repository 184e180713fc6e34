package diag

import "fmt"

// Code is a compact, stable identifier for one diagnostic kind.
type Code uint16

const (
	// UnknownCode marks a diagnostic that predates the code registry.
	UnknownCode Code = 0

	// General / driver-level (1000s)
	GenInfo         Code = 1000
	GenIOError      Code = 1001
	GenInternalBug  Code = 1002
	GenUnimplemented Code = 1003

	// Name resolution (2000s) — external scope-provider failures surfaced
	// through the core.
	ResUnresolvedName    Code = 2000
	ResNotVisible        Code = 2001
	ResAmbiguousImport   Code = 2002
	ResNotAModule        Code = 2003

	// Call resolution (3000s) — §4.G/§4.H/§7 of the resolution core.
	ResArityMismatch          Code = 3000
	ResNamedArgumentMismatch  Code = 3001
	ResNotAMethod             Code = 3002
	ResNotParenless           Code = 3003
	ResNoApplicableCandidate  Code = 3004
	ResAmbiguousCall          Code = 3005
	ResAmbiguousReturnIntent  Code = 3006
	ResWhereClauseFalse       Code = 3007
	ResWhereClauseNotBool     Code = 3008
	ResMixedTupleElements     Code = 3009
	ResParenlessFieldConflict Code = 3010

	// Type construction (4000s) — §4.H.3.
	ResInvalidNumericWidth  Code = 4000
	ResInvalidClassCtor     Code = 4001
	ResInvalidPointerCtor   Code = 4002
	ResMultipleInheritance  Code = 4003
	ResDecoratorConflict    Code = 4004

	// Composite fields & forwarding (5000s) — §4.D.
	ResForwardingCycle       Code = 5000
	ResFieldTypeUnresolved   Code = 5001
	ResRecursiveFieldDefault Code = 5002

	// Generics & instantiation (6000s) — §4.E/§4.F.
	ResInstantiationFailed   Code = 6000
	ResSubstitutionConflict  Code = 6001
	ResCannotPassArgument    Code = 6002

	// Project / module graph (7000s).
	ProjInfo              Code = 7000
	ProjMissingModule     Code = 7001
	ProjImportCycle       Code = 7002
	ProjInvalidManifest   Code = 7003

	// Observability (8000s).
	ObsInfo    Code = 8000
	ObsTimings Code = 8001
)

var codeDescription = map[Code]string{
	UnknownCode:               "unknown diagnostic",
	GenInfo:                   "general information",
	GenIOError:                "I/O error",
	GenInternalBug:            "internal error",
	GenUnimplemented:          "unimplemented",
	ResUnresolvedName:         "unresolved name",
	ResNotVisible:             "name is not visible from this scope",
	ResAmbiguousImport:        "ambiguous import",
	ResNotAModule:             "expression does not name a module",
	ResArityMismatch:          "wrong number of arguments",
	ResNamedArgumentMismatch:  "no formal with this name",
	ResNotAMethod:             "call target is not a method",
	ResNotParenless:           "call target is not a parenless function",
	ResNoApplicableCandidate:  "no matching candidate",
	ResAmbiguousCall:          "ambiguous call",
	ResAmbiguousReturnIntent:  "candidates disagree on return type after disambiguation",
	ResWhereClauseFalse:       "where clause is false",
	ResWhereClauseNotBool:     "where clause did not evaluate to a param bool",
	ResMixedTupleElements:     "tuple expression mixes type and value elements",
	ResParenlessFieldConflict: "parenless method name collides with a field",
	ResInvalidNumericWidth:    "invalid numeric type width",
	ResInvalidClassCtor:       "invalid class-management constructor arguments",
	ResInvalidPointerCtor:     "invalid pointer type constructor arguments",
	ResMultipleInheritance:    "multiple inheritance is not supported",
	ResDecoratorConflict:      "conflicting class decorators",
	ResForwardingCycle:        "forwarding cycle detected",
	ResFieldTypeUnresolved:    "field type could not be resolved",
	ResRecursiveFieldDefault:  "field default expression recurses through its own type",
	ResInstantiationFailed:    "generic instantiation failed",
	ResSubstitutionConflict:   "conflicting substitutions for the same type parameter",
	ResCannotPassArgument:     "argument cannot be passed to formal",
	ProjInfo:                  "project information",
	ProjMissingModule:         "missing module",
	ProjImportCycle:           "import cycle detected",
	ProjInvalidManifest:       "invalid project manifest",
	ObsInfo:                   "observability information",
	ObsTimings:                "pipeline timings",
}

// ID returns the stable, category-prefixed textual form of the code.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("GEN%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("RESN%04d", ic)
	case ic >= 3000 && ic < 6000:
		return fmt.Sprintf("RES%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("RESG%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 8000 && ic < 9000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

// Title returns the human-readable description registered for the code.
func (c Code) Title() string {
	if desc, ok := codeDescription[c]; ok {
		return desc
	}
	return codeDescription[UnknownCode]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
