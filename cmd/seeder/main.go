// Command seeder imports gene files (YAML or JSON) into the custom gene
// catalog. Genes that are already registered are skipped, so the command
// can be re-run against the same files.
//
// Flags:
//
//	--file           gene file to import; repeatable, overrides the config
//	--dry-run        validate files without writing to DB
//	--seeder-config  path to seeder YAML config file
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/adapter/postgres"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/adapter/postgres/gene"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/app"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/app/seeder"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/config"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/service/breeding"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/service/breeding/genedict"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/service/genecatalog"
)

type fileList []string

func (f *fileList) String() string { return strings.Join(*f, ",") }

func (f *fileList) Set(v string) error {
	*f = append(*f, v)
	return nil
}

func main() {
	var files fileList
	flag.Var(&files, "file", "gene file to import (repeatable)")
	dryRunFlag := flag.Bool("dry-run", false, "validate files without writing to DB")
	seederConfigFlag := flag.String("seeder-config", "", "path to seeder YAML config file")
	flag.Parse()

	// Load app config (for DB connection).
	appCfg, err := config.Load()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}

	logger := app.NewLogger(appCfg.Log)

	seederCfg, err := seeder.LoadConfig(*seederConfigFlag)
	if err != nil {
		logger.Error("load seeder config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// CLI flags override config.
	if len(files) > 0 {
		seederCfg.GeneFiles = files
	}
	if *dryRunFlag {
		seederCfg.DryRun = true
	}

	if !appCfg.Database.Enabled() {
		logger.Error("DATABASE_DSN is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, appCfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	// The seeder publishes into a throwaway engine; the server picks up the
	// new genes on its next start.
	extras := app.GeneEntries(appCfg.Genetics.ExtraGenes)
	engine := breeding.NewService(logger, genedict.New(append(genedict.Builtin(), extras...)...), appCfg.Genetics)
	catalog := genecatalog.NewService(logger, gene.New(pool), postgres.NewTxManager(pool), engine, extras)

	pipeline := seeder.NewPipeline(logger, catalog, *seederCfg)
	if err := pipeline.Run(ctx); err != nil {
		logger.Error("pipeline failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if pipeline.HasErrors() {
		logger.Warn("pipeline completed with errors")
		os.Exit(1)
	}

	logger.Info("pipeline completed successfully", slog.Int("genes", engine.GeneCount()))
}
