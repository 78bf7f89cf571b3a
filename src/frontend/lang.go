// lang.go lists ParaCL's reserved keywords, grouped by length exactly as the teacher's reserved
// word table does: indexing by word length before comparing is cheaper than a generic hash lookup
// for a handful of short keywords.

package frontend

type reservedItem struct {
	val string
	typ itemType
}

// rw contains the set of all reserved ParaCL keywords (spec §6's informal grammar).
// The first dimension equals the length of the word minus one.
var rw = [...][]reservedItem{
	// One-grams
	{},
	// Two-grams
	{
		{val: "if", typ: IF},
	},
	// Three-grams
	{},
	// Four-grams
	{
		{val: "else", typ: ELSE},
	},
	// Five-grams
	{
		{val: "while", typ: WHILE},
		{val: "print", typ: PRINT},
	},
	// Six-grams
	{},
	// Seven-grams
	{},
	// Eight-grams
	{},
}

// isKeyword returns true if s is a reserved ParaCL keyword.
// On true the keyword's itemType is also returned.
// On false the itemType is IDENTIFIER.
func isKeyword(s string) (bool, itemType) {
	if len(s) == 0 || len(s) > len(rw) {
		return false, IDENTIFIER
	}
	for _, e1 := range rw[len(s)-1] {
		if e1.val == s {
			return true, e1.typ
		}
	}
	return false, IDENTIFIER
}
