// Command scoremap writes a canonical rule table CSV containing the full
// Cartesian product of the scoring dimensions, each row at a default score.
// Operators hand-tune the scores before deploying the file; the server never
// generates tables at runtime.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/spec-kit/ticket-triage/internal/rules"
)

func main() {
	out := flag.String("out", "score_map.csv", "output file name")
	defaultScore := flag.Int("score", 0, "default score for every generated row")
	flag.Parse()

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create %s: %v", *out, err)
	}

	if err := rules.Generate(f, *defaultScore); err != nil {
		f.Close()
		log.Fatalf("generate rule table: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("close %s: %v", *out, err)
	}

	fmt.Printf("wrote %s with all dimension combinations at score %d\n", *out, *defaultScore)
}
