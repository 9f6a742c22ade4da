package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	mgcd "github.com/jonathanmweiss/go-mgcd"
	"github.com/jonathanmweiss/go-mgcd/field"
	"github.com/jonathanmweiss/go-mgcd/mpoly"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Uint("vars", 3, "Number of variables")
	rootCmd.Flags().Uint("degree", 4, "Maximum exponent of each variable in the factors")
	rootCmd.Flags().Uint("terms", 8, "Number of terms of each factor")
	rootCmd.Flags().Uint("problems", 5, "Number of random problems")
	rootCmd.Flags().Uint64("prime", 524287, "Coefficient field modulus, 0 for the integers")
	rootCmd.Flags().Uint64("seed", 1, "Random seed")
	rootCmd.Flags().Duration("timeout", 30*time.Second, "Time limit of a single gcd")
	rootCmd.Flags().String("algorithms", "brown,zippel,ez,eez", "Comma separated field algorithms")
	rootCmd.Flags().String("chart", "", "Write an HTML bar chart of the timings to this file")
	rootCmd.Flags().BoolP("verbose", "v", false, "Enable debug logging")
}

var rootCmd = &cobra.Command{
	Use:   "gcdbench",
	Short: "Benchmark multivariate polynomial gcd algorithms on random problems.",
	Long: `Generates random problems a*g, b*g and times every selected gcd algorithm
on them. With --prime 0 the problems are over the integers and the modular
algorithms are timed instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configureLogging(GetFlag(cmd, "verbose"))

		prm := benchParams{
			vars:     int(GetUint(cmd, "vars")),
			degree:   int(GetUint(cmd, "degree")),
			terms:    int(GetUint(cmd, "terms")),
			problems: int(GetUint(cmd, "problems")),
			seed:     GetUint64(cmd, "seed"),
			timeout:  GetDuration(cmd, "timeout"),
		}

		var (
			results []result
			err     error
		)

		if prime := GetUint64(cmd, "prime"); prime == 0 {
			results = benchIntegers(prm)
		} else {
			results, err = benchPrimeField(prm, prime, GetString(cmd, "algorithms"))
			if err != nil {
				return err
			}
		}

		printResults(results)

		if path := GetString(cmd, "chart"); path != "" {
			return writeChart(path, results)
		}

		return nil
	},
}

// configureLogging sends the log to stderr, coloured when stderr is a terminal.
func configureLogging(verbose bool) {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{
		ForceColors:   term.IsTerminal(int(os.Stderr.Fd())),
		FullTimestamp: true,
	})

	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

type benchParams struct {
	vars, degree, terms, problems int
	seed                          uint64
	timeout                       time.Duration
}

type result struct {
	name     string
	total    time.Duration
	solved   int
	timeouts int
	failures int
	// skewed is set when a timing overlapped an abandoned gcd still running.
	skewed bool
}

type gcdFunc[E any] func(cfg *mgcd.Config, a, b *mpoly.Poly[E]) (*mpoly.Poly[E], error)

type problem[E any] struct {
	a, b, g *mpoly.Poly[E]
}

func randomProblems[E any](r field.Ring[E], prm benchParams, rnd *field.Random) []problem[E] {
	out := make([]problem[E], prm.problems)
	for i := range out {
		g := mpoly.Random(r, prm.vars, prm.degree, prm.terms, rnd)
		a := mpoly.Random(r, prm.vars, prm.degree, prm.terms, rnd)
		b := mpoly.Random(r, prm.vars, prm.degree, prm.terms, rnd)

		out[i] = problem[E]{a: a.Mul(g), b: b.Mul(g), g: g}
	}

	return out
}

func benchPrimeField(prm benchParams, prime uint64, algorithms string) ([]result, error) {
	f, err := field.NewPrimeField(prime)
	if err != nil {
		return nil, err
	}

	problems := randomProblems[uint64](f, prm, field.NewRandomFromUint64(prm.seed))

	var results []result

	for _, name := range strings.Split(algorithms, ",") {
		alg, err := mgcd.ParseAlgorithm(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}

		results = append(results, run(alg.String(), algorithmFunc(alg), problems, prm))
	}

	results = append(results, run("auto", mgcd.PolynomialGCD[uint64], problems, prm))

	return results, nil
}

func algorithmFunc(alg mgcd.Algorithm) gcdFunc[uint64] {
	switch alg {
	case mgcd.Zippel:
		return mgcd.ZippelGCD[uint64]
	case mgcd.EZ:
		return mgcd.EZGCD[uint64]
	case mgcd.EEZ:
		return mgcd.EEZGCD[uint64]
	default:
		return mgcd.BrownGCD[uint64]
	}
}

func benchIntegers(prm benchParams) []result {
	problems := randomProblems[*big.Int](field.Z, prm, field.NewRandomFromUint64(prm.seed))

	return []result{
		run("modular", mgcd.ModularGCD, problems, prm),
		run("zippel-z", mgcd.ZippelGCDInZ, problems, prm),
	}
}

// abandoned counts gcd goroutines that ran past their timeout and are still
// computing. The gcd functions take no context, so they cannot be stopped.
var abandoned atomic.Int64

// run times gcd on every problem. A gcd running past the timeout is abandoned and
// keeps a core busy until it returns, so timings taken meanwhile are approximate
// and the result is marked skewed.
func run[E any](name string, gcd gcdFunc[E], problems []problem[E], prm benchParams) result {
	res := result{name: name}

	for i, pr := range problems {
		cfg := mgcd.NewConfig(field.NewRandomFromUint64(prm.seed + uint64(i)))

		ctx, cancel := context.WithTimeout(context.Background(), prm.timeout)

		type outcome struct {
			g   *mpoly.Poly[E]
			err error
		}

		done := make(chan outcome, 1)
		if abandoned.Load() > 0 {
			res.skewed = true
		}

		start := time.Now()

		go func() {
			g, err := gcd(cfg, pr.a, pr.b)
			done <- outcome{g, err}
		}()

		select {
		case <-ctx.Done():
			res.timeouts++
			log.Warnf("%s: problem %d timed out, later timings are approximate", name, i)

			abandoned.Add(1)
			go func() {
				<-done
				abandoned.Add(-1)
			}()
		case out := <-done:
			res.total += time.Since(start)

			switch {
			case out.err != nil:
				res.failures++
				log.Errorf("%s: problem %d: %v", name, i, out.err)
			case !pr.g.Divides(out.g) || !out.g.Divides(pr.a) || !out.g.Divides(pr.b):
				res.failures++
				log.Errorf("%s: problem %d: wrong gcd %s", name, i, out.g)
			default:
				res.solved++
				log.Debugf("%s: problem %d solved in %s", name, i, time.Since(start))
			}
		}

		cancel()
	}

	return res
}

func printResults(results []result) {
	fmt.Printf("%-10s %8s %8s %8s %14s\n", "algorithm", "solved", "failed", "timeout", "mean")

	skewed := false
	for _, r := range results {
		mark := ""
		if r.skewed {
			mark, skewed = "*", true
		}

		fmt.Printf("%-10s %8d %8d %8d %14s%s\n", r.name, r.solved, r.failures, r.timeouts, r.mean(), mark)
	}

	if skewed {
		fmt.Println("* measured while a timed out gcd was still running")
	}
}

func (r result) mean() time.Duration {
	if n := r.solved + r.failures; n > 0 {
		return r.total / time.Duration(n)
	}

	return 0
}

func writeChart(path string, results []result) error {
	names := make([]string, len(results))
	means := make([]opts.BarData, len(results))

	for i, r := range results {
		names[i] = r.name
		means[i] = opts.BarData{Value: r.mean().Seconds() * 1000}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "gcd timings", Subtitle: "mean milliseconds per problem"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(names).AddSeries("mean (ms)", means)

	page := components.NewPage()
	page.AddCharts(bar)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return err
	}

	log.Infof("chart written to %s", path)

	return nil
}
