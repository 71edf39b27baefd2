package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"git.solver4all.com/azaryc2s/vrp"
)

var sizes vrp.ArrayIntFlags

func main() {
	flag.Var(&sizes, "n", "List of sub-instance sizes to extract")
	targetDir := flag.String("dir", ".", "Directory with .vrp instance files")
	outDir := flag.String("out", "", "Output directory. Defaults to the input directory")
	includeDepot := flag.Bool("depot", true, "Include the depot as node 0 in the extracted instances")
	flag.Parse()

	if len(sizes) == 0 {
		sizes = vrp.ArrayIntFlags{10, 15, 20}
	}
	if *outDir == "" {
		*outDir = *targetDir
	}

	files, err := os.ReadDir(*targetDir)
	if err != nil {
		log.Fatal(err)
	}

	for _, f := range files {
		if !strings.HasSuffix(f.Name(), ".vrp") {
			continue
		}
		fileName := filepath.Join(*targetDir, f.Name())
		fmt.Println(fileName)

		inst, err := vrp.ReadInstance(fileName)
		if err != nil {
			log.Printf("At %s: %s\n", fileName, err.Error())
			continue
		}

		for _, size := range sizes {
			if size > inst.Dimension {
				log.Printf("Size %d exceeds dimension %d of %s, clamping\n", size, inst.Dimension, inst.Name)
			}
			sub := vrp.ExtractSubInstance(inst, size, *includeDepot)
			base := filepath.Join(*outDir, sub.Name)
			if err := vrp.WriteTSPLIB(sub, base+".tsp"); err != nil {
				log.Printf("At %s: %s\n", base+".tsp", err.Error())
				continue
			}
			if err := vrp.WriteJSON(sub, base+".json"); err != nil {
				log.Printf("At %s: %s\n", base+".json", err.Error())
				continue
			}
			fmt.Printf("  %s: %d nodes -> %s.{tsp,json}\n", sub.Name, sub.Dimension, base)
		}
	}
}
