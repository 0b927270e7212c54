// Command greet is a small demonstration of package dispatch. Install it, or
// link it, under the name of one of its commands:
//
//	$ ln -s greet shout
//	$ shout 2 hello
//	HELLO
//	HELLO
//	$ greet --help --
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/nesv/dispatch"
	"github.com/zclconf/go-cty/cty"
)

func greet(args dispatch.Args) (cty.Value, error) {
	var (
		count int
		text  string
	)
	if err := args.Decode(0, &count); err != nil {
		return cty.NilVal, err
	}
	if err := args.Decode(1, &text); err != nil {
		return cty.NilVal, err
	}
	for i := 0; i < count; i++ {
		fmt.Println(text)
	}
	return cty.NumberIntVal(int64(count)), nil
}

func shout(args dispatch.Args) (cty.Value, error) {
	var text string
	if err := args.Decode(1, &text); err != nil {
		return cty.NilVal, err
	}
	return greet(dispatch.Args{args[0], cty.StringVal(strings.ToUpper(text))})
}

func main() {
	e := dispatch.New()
	params := []dispatch.Param{
		{Name: "count", Whole: true},
		{Name: "text", Type: cty.String, Default: cty.StringVal("hello")},
	}

	e.Register(&dispatch.Cmd{
		Doc: `Print text count times.

The number of lines printed is returned as the exit status.`,
		Params:  params,
		Returns: cty.Number,
		Run:     greet,
	})
	e.Register(&dispatch.Cmd{
		Doc:     "Print text count times, in upper case.",
		Params:  params,
		Returns: cty.Number,
		Run:     shout,
	})

	os.Exit(e.Exec())
}
