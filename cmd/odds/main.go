// Command odds computes offspring odds for one pairing without a server or
// database. Trait text is segmented with the built-in dictionary plus any
// genes configured in GENETICS_EXTRA_GENES.
//
// Usage:
//
//	odds -male "Pastel Het Clown" -female "Clown 50% Het Pied" [-json]
//
// Exit codes: 0 = success, 1 = error, 2 = usage.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/app"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/config"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/domain"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/service/breeding"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/service/breeding/genedict"
)

func main() {
	maleFlag := flag.String("male", "", "male trait text")
	femaleFlag := flag.String("female", "", "female trait text")
	jsonFlag := flag.Bool("json", false, "print the result as JSON")
	flag.Parse()

	if strings.TrimSpace(*maleFlag) == "" && strings.TrimSpace(*femaleFlag) == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Defaults()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Diagnostics go to stderr so stdout stays machine-readable.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	extras := app.GeneEntries(cfg.Genetics.ExtraGenes)
	svc := breeding.NewService(logger, genedict.New(append(genedict.Builtin(), extras...)...), cfg.Genetics)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	odds, err := svc.ComputeOdds(ctx,
		domain.Animal{Sex: domain.SexMale, Traits: *maleFlag},
		domain.Animal{Sex: domain.SexFemale, Traits: *femaleFlag},
	)
	if err != nil {
		log.Fatalf("compute odds: %v", err)
	}

	if err := render(os.Stdout, odds, *jsonFlag); err != nil {
		log.Fatalf("write output: %v", err)
	}
}

// render writes odds as indented JSON or as per-gene tables followed by
// the combined list.
func render(w io.Writer, odds *domain.PairingOdds, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(odds)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if len(odds.PerGene) == 0 {
		fmt.Fprintln(tw, "No modeled genes on either parent.")
	}
	for _, g := range odds.PerGene {
		fmt.Fprintf(tw, "%s (%s)\tmale: %s\tfemale: %s\n", g.Gene, g.Category.DisplayName(), g.MaleState, g.FemaleState)
		for _, o := range g.Outcomes {
			fmt.Fprintf(tw, "  %s\t%s\t\n", o.Label, percent(o.Probability))
		}
		fmt.Fprintln(tw)
	}

	if len(odds.Combined) > 0 {
		fmt.Fprintln(tw, "Combined")
		for _, c := range odds.Combined {
			fmt.Fprintf(tw, "  %s\t%s\t\n", c.Label, percent(c.Probability))
		}
	}
	if odds.Truncated {
		fmt.Fprintln(tw, "(combined list truncated; probabilities do not sum to 100%)")
	}
	if len(odds.Skipped) > 0 {
		fmt.Fprintf(tw, "Not modeled: %s\n", strings.Join(odds.Skipped, ", "))
	}
	return tw.Flush()
}

func percent(p float64) string {
	return strconv.FormatFloat(p*100, 'f', 2, 64) + "%"
}
