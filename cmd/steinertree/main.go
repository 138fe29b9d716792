// Command steinertree computes an exact minimum-weight Steiner tree for a
// DIMACS-STP-format graph, following the original Erickson-Monma-Veinott
// reference tool's stdout contract (spec §6).
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"strings"
	"time"

	"steinertree/pkg/csr"
	"steinertree/pkg/dijkstra"
	"steinertree/pkg/pq"
	"steinertree/pkg/resource"
	"steinertree/pkg/steiner"
	"steinertree/pkg/stp"
)

func main() {
	inPath := flag.String("in", "", "input graph path (DIMACS STP); stdin if omitted")
	seed := flag.Int64("seed", 123456789, "RNG seed (affects only -dijkstra)")
	runErickson := flag.Bool("el", false, "run the Erickson-Monma-Veinott algorithm")
	runEricksonLong := flag.Bool("erickson", false, "alias for -el")
	runDijkstra := flag.Bool("dijkstra", false, "run one Dijkstra from a random source")
	listSolution := flag.Bool("list", false, "emit the reconstructed Steiner tree edge list")
	workers := flag.Int("workers", defaultWorkers(), "worker-pool size")
	heapFlag := flag.String("heap", "binary", "priority queue backend: binary|fibonacci")
	trackResources := flag.Bool("track-resources", false, "enable per-phase timing/allocation accounting in the command result line")
	help := flag.Bool("h", false, "usage")
	helpLong := flag.Bool("help", false, "alias for -h")
	flag.Parse()

	if *help || *helpLong {
		printUsage()
		return
	}

	fmt.Print("invoked as:")
	for _, a := range os.Args {
		fmt.Printf(" %s", a)
	}
	fmt.Println()

	in := os.Stdin
	if *inPath != "" {
		f, err := os.Open(*inPath)
		if err != nil {
			log.Fatalf("unable to open file %q: %v", *inPath, err)
		}
		defer f.Close()
		in = f
	} else {
		fmt.Println("no input file specified, defaulting to stdin")
	}
	fmt.Printf("random seed = %d\n", *seed)

	g, err := stp.Parse(in)
	if err != nil {
		log.Fatalf("%v", err)
	}

	heapKind, err := parseHeapKind(*heapFlag)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if *workers < 1 || *workers > 128 {
		log.Fatalf("-workers must be between 1 and 128, got %d", *workers)
	}

	adj, err := csr.Build(g, *workers)
	if err != nil {
		log.Fatalf("%v", err)
	}

	costHint := int64(-1)
	if g.HasCost {
		costHint = g.Cost
	}
	fmt.Printf("input: n = %d, m = %d, k = %d, cost = %d\n", adj.NumVertices, adj.NumEdges, len(g.Terminals), costHint)
	fmt.Print("terminals:")
	for _, t := range g.Terminals {
		fmt.Printf(" %d", t+1)
	}
	fmt.Println()

	command := "no operation"
	switch {
	case *runDijkstra:
		command = "Dijkstra Single-Source-Shortest-Path"
	case *runErickson || *runEricksonLong:
		command = "Erickson-Monma-Veinott"
	}
	fmt.Printf("command: %s\n", command)

	start := time.Now()
	tr := resource.New(*trackResources)

	switch {
	case *runDijkstra:
		rng := rand.New(rand.NewSource(*seed))
		source := rng.Intn(adj.NumVertices)
		view := csr.NewView(adj, *workers)
		scratch := dijkstra.NewScratch(view.NumVertices())
		tr.Track("dijkstra", func() {
			dijkstra.Run(view, source, scratch, pq.New(heapKind, view.NumVertices()))
		})
		fmt.Printf("%sdone. [%.2fms] [source: %d]\n", tr.Report(), time.Since(start).Seconds()*1000, source+1)

	case *runErickson || *runEricksonLong:
		res, err := steiner.Solve(adj, g.Terminals, steiner.Options{
			Heap:    heapKind,
			Workers: *workers,
			Track:   *listSolution,
			Tracker: tr,
		})
		if err != nil {
			log.Fatalf("%v", err)
		}
		if g.HasCost && g.Cost != res.Cost {
			log.Fatalf("min_cost != cost: minimum cost = %d, cost = %d", res.Cost, g.Cost)
		}
		fmt.Printf("erickson: %sdone. [%.2fms] [cost: %d]\n", tr.Report(), time.Since(start).Seconds()*1000, res.Cost)

		if *listSolution {
			printSolution(res.Edges)
		}

	default:
		// No operation requested; parsing and CSR construction already ran.
	}

	fmt.Printf("command done [%.2fms]\n", time.Since(start).Seconds()*1000)
	fmt.Printf("host: %s\n", hostname())
	fmt.Printf("build: %s, %s, %s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fmt.Printf("list solution: %t\n", *listSolution)
	fmt.Printf("num threads: %d\n", *workers)
	fmt.Printf("compiler: %s\n", runtime.Compiler)
}

func printSolution(edges []steiner.TreeEdge) {
	parts := make([]string, len(edges))
	for i, e := range edges {
		parts[i] = fmt.Sprintf("%q", fmt.Sprintf("%d %d", e.U+1, e.V+1))
	}
	fmt.Printf("solution: [%s]\n", strings.Join(parts, ", "))
}

func parseHeapKind(s string) (pq.Kind, error) {
	switch strings.ToLower(s) {
	case "binary", "":
		return pq.Binary, nil
	case "fibonacci":
		return pq.Fibonacci, nil
	default:
		return pq.Binary, fmt.Errorf("unknown -heap value %q: want binary or fibonacci", s)
	}
}

func defaultWorkers() int {
	n := runtime.NumCPU()
	if n > 128 {
		return 128
	}
	if n < 1 {
		return 1
	}
	return n
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return h
}

func printUsage() {
	fmt.Printf(`usage: %s -in <input graph> <arguments>

arguments:
	-seed <n>         : RNG seed (affects only -dijkstra)
	-el / -erickson   : Erickson-Monma-Veinott algorithm
	-dijkstra         : Dijkstra single source shortest path
	-list             : output the reconstructed Steiner tree
	-workers <n>      : worker-pool size (default %d)
	-heap <kind>      : binary | fibonacci (default binary)
	-track-resources  : report allocation/timing per phase
`, os.Args[0], defaultWorkers())
}
