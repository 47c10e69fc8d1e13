package hcl

import (
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// CharsFunc splits a string into a list of its characters.
var CharsFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "str", Type: cty.String},
	},
	Type: function.StaticReturnType(cty.List(cty.String)),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		str := args[0].AsString()
		if str == "" {
			return cty.ListValEmpty(cty.String), nil
		}
		vals := make([]cty.Value, 0, len(str))
		for _, r := range str {
			vals = append(vals, cty.StringVal(string(r)))
		}
		return cty.ListVal(vals), nil
	},
})

// functions is the function table available to every table file.
func functions() map[string]function.Function {
	return map[string]function.Function{
		"chars":  CharsFunc,
		"concat": stdlib.ConcatFunc,
		"format": stdlib.FormatFunc,
		"keys":   stdlib.KeysFunc,
		"lower":  stdlib.LowerFunc,
		"merge":  stdlib.MergeFunc,
		"upper":  stdlib.UpperFunc,
	}
}
