// cmd/qubocompile/commands/analyze.go
package commands

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"qubocompile/internal/compile"
	"qubocompile/internal/model"
)

// maxBruteForceVars bounds the brute-force enumeration below so an
// -analyze run never tries to allocate 2^n samples for a careless
// demo size; this is a CLI convenience limit, not part of the core
// library (which has no sampler of its own — spec §1 Non-goals).
const maxBruteForceVars = 20

// AnalyzeCommand compiles a demo expression, brute-force enumerates
// every binary assignment over its (small) variable set, decodes each
// one, and renders an energy histogram plus a constraint-satisfaction
// bar chart to an HTML report. Grounded on
// JonasLazardGIT-SPRUCE/cmd/analysis/main.go's flag-driven,
// go-echarts-charting analysis binary.
func AnalyzeCommand(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	name := fs.String("demo", "one-hot", "demo expression: binary-and|spin|placeholder|one-hot|penalty")
	strength := fs.Float64("strength", compile.DefaultStrength, "quadratization penalty strength")
	feed := fs.String("feed", "", "placeholder feed as name=value,name=value")
	outDir := fs.String("out", "qubocompile-reports", "output directory for the HTML report")
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

	names := m.Registry.Names()
	if len(names) > maxBruteForceVars {
		return fmt.Errorf("refusing to brute-force %d variables (limit %d); pick a smaller demo", len(names), maxBruteForceVars)
	}

	solutions, err := enumerate(m, names, feedMap)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(*outDir, fmt.Sprintf("%s_%s.html", *name, m.ID().String()))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer f.Close()

	page := components.NewPage()
	page.AddCharts(energyHistogram(*name, solutions), constraintBarChart(*name, solutions))
	if err := page.Render(f); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	fmt.Printf("%d assignments enumerated, report written to %s\n", len(solutions), path)
	return nil
}

// enumerate walks every binary assignment of the given variable names
// in order, decoding each through the Model exactly as a real sampler
// result would be decoded.
func enumerate(m *model.Model, names []string, feed map[string]float64) ([]*model.Solution, error) {
	n := len(names)
	total := 1 << uint(n)
	samples := make([]map[string]int, 0, total)
	for mask := 0; mask < total; mask++ {
		sample := make(map[string]int, n)
		for i, name := range names {
			if mask&(1<<uint(i)) != 0 {
				sample[name] = 1
			} else {
				sample[name] = 0
			}
		}
		samples = append(samples, sample)
	}
	return m.DecodeSamples(samples, model.BinaryVartype, feed)
}

func freedmanDiaconisBins(values []float64) int {
	n := len(values)
	if n < 2 {
		return 1
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	q1 := sorted[n/4]
	q3 := sorted[3*n/4]
	iqr := q3 - q1
	if iqr <= 0 {
		return 1
	}
	width := 2 * iqr / math.Cbrt(float64(n))
	if width <= 0 {
		return 1
	}
	span := sorted[n-1] - sorted[0]
	bins := int(math.Ceil(span / width))
	if bins < 1 {
		bins = 1
	}
	if bins > 50 {
		bins = 50
	}
	return bins
}

func energyHistogram(title string, solutions []*model.Solution) *charts.Bar {
	values := make([]float64, len(solutions))
	for i, s := range solutions {
		values[i] = s.EnergyValue
	}
	sort.Float64s(values)

	nbins := freedmanDiaconisBins(values)
	lo, hi := values[0], values[len(values)-1]
	width := (hi - lo) / float64(nbins)
	if width == 0 {
		width = 1
	}
	counts := make([]int, nbins)
	labels := make([]string, nbins)
	for i := 0; i < nbins; i++ {
		labels[i] = fmt.Sprintf("%.3g", lo+width*(float64(i)+0.5))
	}
	for _, v := range values {
		bin := int((v - lo) / width)
		if bin >= nbins {
			bin = nbins - 1
		}
		if bin < 0 {
			bin = 0
		}
		counts[bin]++
	}

	items := make([]opts.BarData, nbins)
	for i, c := range counts {
		items[i] = opts.BarData{Value: c}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s: energy histogram", title),
			Subtitle: fmt.Sprintf("n=%d, min=%.3g, max=%.3g", len(values), lo, hi),
		}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1000px", Height: "500px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).AddSeries("count", items)
	return bar
}

func constraintBarChart(title string, solutions []*model.Solution) *charts.Bar {
	names := map[string]bool{}
	for _, s := range solutions {
		for name := range s.ConstraintResults {
			names[name] = true
		}
	}
	sortedNames := make([]string, 0, len(names))
	for name := range names {
		sortedNames = append(sortedNames, name)
	}
	sort.Strings(sortedNames)

	broken := make([]int, len(sortedNames))
	for _, s := range solutions {
		for i, name := range sortedNames {
			if r, ok := s.ConstraintResults[name]; ok && !r.Satisfied {
				broken[i]++
			}
		}
	}

	items := make([]opts.BarData, len(broken))
	for i, c := range broken {
		items[i] = opts.BarData{Value: c}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s: broken assignments per constraint", title)}),
		charts.WithInitializationOpts(opts.Initialization{Width: "1000px", Height: "400px"}),
	)
	bar.SetXAxis(sortedNames).AddSeries("broken", items)
	return bar
}
