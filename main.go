package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"strconv"

	"github.com/neojume/twoclubs/algorithms"
	"github.com/neojume/twoclubs/borough"
	"github.com/neojume/twoclubs/candidate"
	"github.com/neojume/twoclubs/engine"
	"github.com/neojume/twoclubs/lib"
)

func logActive(b bool) {
	log.SetFlags(0)
	if b {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(ioutil.Discard)
	}
}

func check(e error) {
	if e != nil {
		panic(e)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage of %s: [flags] <graph-file> <hub-worker-count>...\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	logActive(false)

	boroughPath := flag.String("b", "", "path to a JSON borough file (alias --borough)")
	flag.StringVar(boroughPath, "borough", "", "path to a JSON borough file")
	boroughNumber := flag.Int("bn", 0, "which borough to search, 0 = largest (alias --borough-number)")
	flag.IntVar(boroughNumber, "borough-number", 0, "which borough to search, 0 = largest")
	output := flag.String("o", "candidates.bin", "candidate binary output file (alias --output)")
	flag.StringVar(output, "output", "candidates.bin", "candidate binary output file")
	maxLen := flag.Int("max-len", 10, "backpressure threshold for spilling worker/hub stacks")
	verbose := flag.Bool("v", false, "enable diagnostic logging")
	flag.Parse()

	logActive(*verbose)

	args := flag.Args()
	if len(args) < 2 {
		usage()
		os.Exit(1)
	}

	graphPath := args[0]
	division := make(engine.HubDivision, 0, len(args)-1)
	for _, a := range args[1:] {
		n, err := strconv.Atoi(a)
		if err != nil || n <= 0 {
			fmt.Fprintf(os.Stderr, "invalid hub worker count %q: must be a positive integer\n", a)
			os.Exit(1)
		}
		division = append(division, n)
	}

	f, err := os.Open(graphPath)
	check(err)
	g, err := lib.ReadGraphML(f)
	f.Close()
	check(err)

	if *boroughPath != "" {
		bf, err := borough.Load(*boroughPath)
		check(err)
		g, err = bf.Select(g, *boroughNumber)
		check(err)
	}

	log.Printf("graph: %d vertices", g.N())

	model := algorithms.NewTwoClubModel(g)
	answers, err := engine.Run(model, division, *maxLen)
	check(err)

	log.Printf("search done: %d accepted candidates", len(answers))

	outFile, err := os.Create(*output)
	check(err)
	cw := candidate.NewWriter(outFile)
	for _, n := range answers {
		node := n.(*algorithms.TwoClubNode)
		set := candidate.FromInfo(0, node.Info)
		check(cw.Write(set))
	}
	check(cw.Flush())
	check(outFile.Close())

	fmt.Printf("wrote %d candidates to %s\n", len(answers), *output)
}
