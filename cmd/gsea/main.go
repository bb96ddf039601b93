// gsea is a minimal CLI driver demonstrating both ExecuteGsea entry points
// against a tiny synthetic dataset: template-shuffle permutation on a
// dataset+template pair, and gene-set-shuffle permutation on an already
// ranked list. Real dataset/chip/GMT file parsing is out of scope; this
// driver only exists to exercise the library end to end.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/carbocation/gsea"
	"github.com/carbocation/gsea/compileinfo"
	_ "github.com/carbocation/gsea/compileinfoprint"
	"github.com/carbocation/gsea/dataset"
	"github.com/carbocation/gsea/enrichment"
	"github.com/carbocation/gsea/geneset"
	"github.com/carbocation/gsea/metric"
	"github.com/carbocation/gsea/randomize"
	"github.com/carbocation/gsea/rankedlist"
	"github.com/carbocation/gsea/seed"
)

func main() {
	var (
		mode       string
		nperm      int
		setSize    int
		baseSeed   int64
		numWorkers int
		version    bool
	)
	flag.StringVar(&mode, "mode", "templateshuffle", "Permutation mode: 'templateshuffle' or 'generanked'")
	flag.IntVar(&nperm, "nperm", 1000, "Number of permutations to draw")
	flag.IntVar(&setSize, "setsize", 10, "Size of the demonstration gene set")
	flag.Int64Var(&baseSeed, "seed", 42, "Base seed for the deterministic RNG sub-streams")
	flag.IntVar(&numWorkers, "workers", 4, "Number of permutation worker goroutines")
	flag.BoolVar(&version, "version", false, "Print build/version information and exit")
	flag.Parse()

	if version {
		fmt.Fprintln(os.Stderr, compileinfo.Get())
		return
	}

	ctx := context.Background()
	seeds := seed.NewGenerator(baseSeed)

	switch mode {
	case "templateshuffle":
		runTemplateShuffle(ctx, seeds, nperm, setSize, numWorkers)
	case "generanked":
		runGeneRanked(ctx, seeds, nperm, setSize)
	default:
		flag.Usage()
		log.Fatalln("Unrecognized --mode:", mode)
	}
}

func runTemplateShuffle(ctx context.Context, seeds *seed.Generator, nperm, setSize, numWorkers int) {
	dt, gsets := demoDatasetTemplate(setSize)

	db, err := gsea.ExecuteGsea(ctx, dt, gsets, nperm, gsea.ExecuteGseaParams{
		Metric:       metric.Signal2Noise,
		Sort:         metric.Real,
		Order:        metric.Descending,
		MetricParams: metric.DefaultParams(),
		Seeds:        seeds,
		Randomizer:   randomize.BalanceWithinClass,
		NumWorkers:   numWorkers,
		Progress: func(iter, total int, label string) {
			log.Printf("%s: %d/%d permutations complete", label, iter, total)
		},
		NumMarkers: 1,
	})
	if err != nil {
		log.Fatalln(err)
	}

	printResults(db.Results)
}

func runGeneRanked(ctx context.Context, seeds *seed.Generator, nperm, setSize int) {
	rl, gsets := demoRankedList(setSize)

	db, err := gsea.ExecuteGseaPreranked(ctx, rl, gsets, nperm, seeds, "demo-chip", nil)
	if err != nil {
		log.Fatalln(err)
	}

	printResults(db.Results)
}

func printResults(results []*enrichment.Result) {
	for _, r := range results {
		mean, sd := 0.0, 0.0
		if r.NullSummary != nil {
			mean, sd = r.NullSummary.Mean(), r.NullSummary.StandardDeviation()
		}
		fmt.Printf("%s\tES=%.4f\trankAtES=%d\tnullMean=%.4g\tnullSD=%.4g\tleadingEdge=%d\n",
			r.GeneSet.Name(), r.Real.MaxDev.ES(), r.Real.MaxDev.RankAtES(), mean, sd, len(r.LeadingEdge))
		asciiNullHistogram(r.GeneSet.Name(), r.RandomES)
	}
}

func demoRankedList(setSize int) (*rankedlist.RankedList, []*geneset.GeneSet) {
	const n = 200
	names := make([]string, n)
	scores := make([]float32, n)
	for i := 0; i < n; i++ {
		names[i] = fmt.Sprintf("GENE%03d", i)
		scores[i] = float32(n - i)
	}
	rl, err := rankedlist.New("demo", names, scores)
	if err != nil {
		log.Fatalln(err)
	}

	members := make([]string, setSize)
	copy(members, names[:setSize])
	gs := geneset.New("demo-top-set", members)

	return rl, []*geneset.GeneSet{gs}
}

func demoDatasetTemplate(setSize int) (*dataset.DatasetTemplate, []*geneset.GeneSet) {
	const nGenes, nSamples = 200, 12
	rowNames := make([]string, nGenes)
	data := make([][]float64, nGenes)
	for i := 0; i < nGenes; i++ {
		rowNames[i] = fmt.Sprintf("GENE%03d", i)
		row := make([]float64, nSamples)
		for j := 0; j < nSamples; j++ {
			if i < setSize && j < nSamples/2 {
				row[j] = 10
			} else if i < setSize {
				row[j] = 1
			} else {
				row[j] = 5
			}
		}
		data[i] = row
	}

	colNames := make([]string, nSamples)
	classOf := make([]string, nSamples)
	for j := 0; j < nSamples; j++ {
		colNames[j] = fmt.Sprintf("SAMPLE%02d", j)
		if j < nSamples/2 {
			classOf[j] = "wt"
		} else {
			classOf[j] = "mut"
		}
	}

	ds, err := dataset.NewDataset("demo", rowNames, colNames, data)
	if err != nil {
		log.Fatalln(err)
	}
	tmpl, err := dataset.NewCategoricalTemplate("demo", classOf)
	if err != nil {
		log.Fatalln(err)
	}
	dt, err := dataset.NewDatasetTemplate(ds, tmpl)
	if err != nil {
		log.Fatalln(err)
	}

	members := make([]string, setSize)
	copy(members, rowNames[:setSize])
	gs := geneset.New("demo-signal-set", members)

	return dt, []*geneset.GeneSet{gs}
}

func asciiNullHistogram(label string, es []float32) {
	data := make([]float64, len(es))
	for i, v := range es {
		data[i] = float64(v)
	}
	hist := histogram.Hist(20, data)
	fmt.Fprintf(os.Stderr, "Null ES distribution for %s:\n", label)
	if err := histogram.Fprint(os.Stderr, hist, histogram.Linear(40)); err != nil {
		log.Println("printing histogram:", err)
	}
}
