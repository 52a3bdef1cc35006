//go:build property
// +build property

package example

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/conneroisu/sassdocgen/internal/types"
)

// genExamples generates example lists over a small alphabet so pairs occur often
func genExamples() gopter.Gen {
	return gen.SliceOf(gen.Struct(reflect.TypeOf(types.Example{}), map[string]gopter.Gen{
		"Type":        gen.OneConstOf("scss", "html", "css"),
		"Description": gen.OneConstOf("Usage", "Other"),
		"Code":        gen.AlphaString(),
	}))
}

// TestPairingProperties tests the pairing law
func TestPairingProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("every example is used exactly once", prop.ForAll(
		func(examples []types.Example) bool {
			used := 0
			for _, pair := range Pairs(examples) {
				used++
				if pair.HTML != nil {
					used++
				}
			}
			return used == len(examples)
		},
		genExamples(),
	))

	properties.Property("scss followed by html with same description pairs", prop.ForAll(
		func(examples []types.Example) bool {
			for _, pair := range Pairs(examples) {
				next := pair.Index
				pairable := pair.Example.Type == "scss" && next < len(examples) &&
					examples[next].Type == "html" && examples[next].Description == pair.Example.Description
				if pairable != (pair.HTML != nil) {
					return false
				}
			}
			return true
		},
		genExamples(),
	))

	properties.Property("indexes are increasing and point at the example", prop.ForAll(
		func(examples []types.Example) bool {
			last := 0
			for _, pair := range Pairs(examples) {
				if pair.Index <= last || examples[pair.Index-1] != pair.Example {
					return false
				}
				last = pair.Index
			}
			return true
		},
		genExamples(),
	))

	properties.TestingRun(t)
}
