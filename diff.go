package hcl1

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff renders a human-readable line diff between the canonical HCL1
// text of a and b. Both sides are emitted with SortKeys so that two
// structurally-equal documents whose Objects happened to accumulate
// keys in a different order never show spurious diff lines. Both must
// be Objects.
func Diff(a, b Value) (string, error) {
	at, err := EmitWithOptions(a, EmitOptions{SortKeys: true})
	if err != nil {
		return "", err
	}
	bt, err := EmitWithOptions(b, EmitOptions{SortKeys: true})
	if err != nil {
		return "", err
	}
	dmp := diffmatchpatch.New()
	achars, bchars, lines := dmp.DiffLinesToChars(at, bt)
	diffs := dmp.DiffMain(achars, bchars, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)
	return dmp.DiffPrettyText(diffs), nil
}
