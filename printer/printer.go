package printer

import (
	"strconv"
	"strings"

	"github.com/bshepherdson/mal/types"
)

var escaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, `"`, `\"`)

// PrintStr renders d as text. With readable set, strings are quoted and
// escaped so the output reads back to an equal value.
func PrintStr(di types.Data, readable bool) string {
	switch d := di.(type) {
	case *types.DList:
		return "(" + printSeq(d.Members, readable) + ")"

	case *types.DVector:
		return "[" + printSeq(d.Members, readable) + "]"

	case *types.DHashMap:
		outs := []string{}
		for _, k := range d.Keys() {
			outs = append(outs, PrintStr(k, readable), PrintStr(d.Entries[k], readable))
		}
		return "{" + strings.Join(outs, " ") + "}"

	case types.DString:
		if readable {
			return `"` + escaper.Replace(string(d)) + `"`
		}
		return string(d)

	case types.DNumber:
		return strconv.Itoa(int(d))

	case types.DSymbol:
		return string(d)

	case types.DKeyword:
		return ":" + string(d)

	case types.DBool:
		return strconv.FormatBool(bool(d))

	case types.DNil:
		return "nil"

	case *types.DClosure:
		if d.IsMacro {
			return "#<macro>"
		}
		return "#<function>"

	case *types.DNative:
		return "#<native " + d.Name + ">"

	case *types.DAtom:
		return "(atom " + PrintStr(d.Value, readable) + ")"

	case nil:
		return "nil"
	}
	return "#<unknown>"
}

// PrintList renders each value and joins them with sep.
func PrintList(ds []types.Data, readable bool, sep string) string {
	strs := make([]string, len(ds))
	for i, d := range ds {
		strs[i] = PrintStr(d, readable)
	}
	return strings.Join(strs, sep)
}

func printSeq(ds []types.Data, readable bool) string {
	return PrintList(ds, readable, " ")
}
