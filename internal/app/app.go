package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/adapter/metrics"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/adapter/postgres"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/adapter/postgres/gene"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/config"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/service/breeding"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/service/breeding/genedict"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/service/genecatalog"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/transport/graphql"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/transport/graphql/dataloader"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/transport/graphql/resolver"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/transport/middleware"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/transport/rest"
	"github.com/albertbit-cyber/Breeding-planner-sub000/migrations"
)

// Run is the server entry point. It loads configuration, wires the
// breeding engine, the optional Postgres-backed gene catalog and the HTTP
// server, then serves until ctx is cancelled and shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.Bool("database", cfg.Database.Enabled()),
	)

	extras := GeneEntries(cfg.Genetics.ExtraGenes)
	breedingSvc := breeding.NewService(logger, genedict.New(append(genedict.Builtin(), extras...)...), cfg.Genetics)

	var (
		db      interface{ Ping(context.Context) error }
		catalog *genecatalog.Service
		repos   = &dataloader.Repos{}
	)
	if cfg.Database.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer pool.Close()
		db = pool

		if cfg.Database.AutoMigrate {
			if err := migrate(ctx, cfg.Database.DSN, logger); err != nil {
				return err
			}
		}

		geneRepo := gene.New(pool)
		repos.CustomGene = geneRepo
		catalog = genecatalog.NewService(logger, geneRepo, postgres.NewTxManager(pool), breedingSvc, extras)
		if err := catalog.Refresh(ctx); err != nil {
			return fmt.Errorf("load custom genes: %w", err)
		}
	} else {
		logger.Info("database not configured, custom genes disabled")
	}

	handlers := rest.Handlers{
		Health:   rest.NewHealthHandler(db, breedingSvc, BuildVersion()),
		Breeding: rest.NewBreedingHandler(breedingSvc, logger),
		Genes:    rest.NewGeneHandler(breedingSvc, nil, logger),
	}
	resolvers := resolver.NewResolver(logger, breedingSvc, nil)
	if catalog != nil {
		handlers.Genes = rest.NewGeneHandler(breedingSvc, catalog, logger)
		resolvers = resolver.NewResolver(logger, breedingSvc, catalog)
	}
	exec := graphql.NewExecutor(graphql.Schema(), resolvers.Resolvers(), graphql.NewErrorPresenter(logger))
	handlers.GraphQL = middleware.Chain(dataloader.Middleware(repos))(graphql.NewHandler(exec))
	handlers.GraphQLSchema = graphql.SchemaHandler()
	if cfg.Metrics.Enabled {
		recorder := metrics.NewRecorder()
		breedingSvc.SetMetrics(recorder)
		handlers.Metrics = recorder.Handler()
		handlers.MetricsPath = cfg.Metrics.Path
	}

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)(rest.NewRouter(handlers))

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	return serve(ctx, srv, cfg.Server, logger)
}

// serve runs srv until ctx is done, then drains in-flight requests within
// the configured shutdown timeout.
func serve(ctx context.Context, srv *http.Server, cfg config.ServerConfig, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// migrate applies the embedded goose migrations over a short-lived
// database/sql handle (goose requires *sql.DB).
func migrate(ctx context.Context, dsn string, logger *slog.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("migrate: open: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("migrate: new provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("migrate: up: %w", err)
	}
	for _, r := range results {
		logger.Info("migration applied",
			slog.String("source", r.Source.Path),
			slog.Duration("duration", r.Duration),
		)
	}
	return nil
}

// GeneEntries converts configured genes into dictionary entries.
func GeneEntries(specs []config.GeneSpec) []genedict.Entry {
	entries := make([]genedict.Entry, 0, len(specs))
	for _, s := range specs {
		entries = append(entries, genedict.Entry{Name: s.Name, Category: s.Category, Aliases: s.Aliases})
	}
	return entries
}
