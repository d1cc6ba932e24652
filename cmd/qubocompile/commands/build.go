// cmd/qubocompile/commands/build.go
package commands

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"qubocompile/internal/ast"
	"qubocompile/internal/compile"
	"qubocompile/internal/demo"
)

func demoExpr(name string) (ast.Expr, error) {
	switch name {
	case "binary-and":
		return demo.BinaryAND(), nil
	case "spin":
		return demo.SpinEncoding(), nil
	case "placeholder":
		return demo.PlaceholderWeighted(), nil
	case "one-hot":
		return demo.OneHot(), nil
	case "penalty":
		return demo.PenaltyDemo(), nil
	default:
		return nil, fmt.Errorf("unknown demo %q (want binary-and|spin|placeholder|one-hot|penalty)", name)
	}
}

// BuildCommand compiles one of the built-in demo expressions (spec §8
// end-to-end scenarios) and prints its BQM parameters, grounded on
// cmd/sentra/commands.BuildCommand's "parse args, run one pipeline,
// print the result" shape.
func BuildCommand(args []string) error {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	name := fs.String("demo", "binary-and", "demo expression: binary-and|spin|placeholder|one-hot|penalty")
	strength := fs.Float64("strength", compile.DefaultStrength, "quadratization penalty strength")
	feed := fs.String("feed", "", "placeholder feed as name=value,name=value")
	if err := fs.Parse(args); err != nil {
		return err
	}

	expr, err := demoExpr(*name)
	if err != nil {
		return err
	}

	m, err := compile.Compile(expr, *strength)
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}

	feedMap, err := parseFeed(*feed)
	if err != nil {
		return err
	}

	linear, quadratic, offset, err := m.ToBQMParameters(feedMap)
	if err != nil {
		return fmt.Errorf("to_bqm_parameters: %w", err)
	}

	fmt.Printf("expression: %s\n", expr.String())
	fmt.Printf("variables: %d (incl. auxiliaries)\n", m.Registry.Len())
	fmt.Printf("offset: %g\n", offset)
	fmt.Println("linear:")
	for _, n := range m.Registry.Names() {
		if c, ok := linear[n]; ok {
			fmt.Printf("  %s: %g\n", n, c)
		}
	}
	fmt.Println("quadratic:")
	for key, c := range quadratic {
		fmt.Printf("  (%s, %s): %g\n", key[0], key[1], c)
	}
	return nil
}

// parseFeed parses a "name=value,name=value" feed dictionary, the
// CLI-friendly encoding of the feed maps the library API takes as
// map[string]float64 directly.
func parseFeed(s string) (map[string]float64, error) {
	out := make(map[string]float64)
	if s == "" {
		return out, nil
	}
	for _, p := range strings.Split(s, ",") {
		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("malformed feed entry %q", p)
		}
		v, err := strconv.ParseFloat(kv[1], 64)
		if err != nil {
			return nil, fmt.Errorf("malformed feed value %q: %w", kv[1], err)
		}
		out[kv[0]] = v
	}
	return out, nil
}
