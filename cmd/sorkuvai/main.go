package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/senkathir/sorkuvai/app/config"
	"github.com/senkathir/sorkuvai/app/ingest"
	"github.com/senkathir/sorkuvai/app/search"
	"github.com/senkathir/sorkuvai/app/server"
	"github.com/senkathir/sorkuvai/app/store"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "setup":
		runSetup()
	case "ingest":
		runIngest()
	case "delete":
		runDelete()
	case "serve":
		runServe()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: sorkuvai <command> [options]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  setup         Create the schema and views")
	fmt.Fprintln(os.Stderr, "  ingest        Parse and load a corpus or a single work")
	fmt.Fprintln(os.Stderr, "  delete        Remove one work and everything under it")
	fmt.Fprintln(os.Stderr, "  serve         Start the search API server")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "The store connection string comes from DATABASE_URL;")
	fmt.Fprintln(os.Stderr, "--db overrides it for one invocation.")
}

// openStore loads configuration and connects. dbOverride comes from the
// per-command --db flag.
func openStore(dbOverride string) (*store.PgStore, *config.Config) {
	conf, err := config.Load(dbOverride)
	if err != nil {
		slog.Error("configuration error", "err", err)
		os.Exit(1)
	}
	pool, err := store.Connect(context.Background(), conf.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "err", err)
		os.Exit(1)
	}
	return store.NewPgStore(pool), conf
}

func runSetup() {
	flags := pflag.NewFlagSet("setup", pflag.ExitOnError)
	var db string
	flags.StringVar(&db, "db", "", "Connection string (overrides DATABASE_URL)")
	flags.Parse(os.Args[2:])
	if db == "" {
		db = flags.Arg(0)
	}

	st, _ := openStore(db)
	defer st.Close()

	if err := st.Setup(context.Background()); err != nil {
		slog.Error("schema setup failed", "err", err)
		os.Exit(1)
	}
	slog.Info("schema ready")
}

func runIngest() {
	flags := pflag.NewFlagSet("ingest", pflag.ExitOnError)
	var db, corpusName, workName, sourceDir string
	flags.StringVar(&db, "db", "", "Connection string (overrides DATABASE_URL)")
	flags.StringVarP(&corpusName, "corpus", "c", "", "Corpus to ingest (required)")
	flags.StringVarP(&workName, "work", "w", "", "Restrict to this work of the corpus")
	flags.StringVarP(&sourceDir, "source-dir", "s", "", "Directory holding the source text files (required)")
	flags.Parse(os.Args[2:])
	if db == "" {
		db = flags.Arg(0)
	}

	if corpusName == "" || sourceDir == "" {
		fmt.Fprintln(os.Stderr, "Error: --corpus and --source-dir are required")
		fmt.Fprintln(os.Stderr, "Available corpora:")
		for _, c := range ingest.Corpora() {
			fmt.Fprintf(os.Stderr, "  %s (%s)\n", c.Name, c.Collection.CollectionName)
		}
		os.Exit(1)
	}

	c, err := ingest.FindCorpus(corpusName)
	if err != nil {
		slog.Error("unknown corpus", "err", err)
		os.Exit(1)
	}
	if workName != "" {
		var kept []ingest.WorkSpec
		for _, ws := range c.Works {
			if ws.Binding.Work.WorkName == workName {
				kept = append(kept, ws)
			}
		}
		if len(kept) == 0 {
			slog.Error("work not found in corpus", "corpus", corpusName, "work", workName)
			os.Exit(1)
		}
		c.Works = kept
	}

	st, _ := openStore(db)
	defer st.Close()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	o := ingest.NewOrchestrator(st, sourceDir, logger)
	if err := o.IngestCorpus(context.Background(), c); err != nil {
		slog.Error("ingestion failed", "err", err)
		os.Exit(1)
	}
}

func runDelete() {
	flags := pflag.NewFlagSet("delete", pflag.ExitOnError)
	var db, workName string
	flags.StringVar(&db, "db", "", "Connection string (overrides DATABASE_URL)")
	flags.StringVarP(&workName, "work", "w", "", "English name of the work to delete (required)")
	flags.Parse(os.Args[2:])
	if db == "" {
		db = flags.Arg(0)
	}

	if workName == "" {
		fmt.Fprintln(os.Stderr, "Error: --work is required")
		os.Exit(1)
	}

	st, _ := openStore(db)
	defer st.Close()

	counts, err := st.DeleteWork(context.Background(), workName)
	if err != nil {
		slog.Error("delete failed", "work", workName, "err", err)
		os.Exit(1)
	}
	slog.Info("work deleted",
		"work", workName,
		"sections", counts.Sections,
		"verses", counts.Verses,
		"lines", counts.Lines,
		"words", counts.Words)
}

func runServe() {
	flags := pflag.NewFlagSet("serve", pflag.ExitOnError)
	var db string
	flags.StringVar(&db, "db", "", "Connection string (overrides DATABASE_URL)")
	flags.Parse(os.Args[2:])
	if db == "" {
		db = flags.Arg(0)
	}

	st, conf := openStore(db)
	defer st.Close()

	service := search.NewService(search.NewPgSearchStore(st.Pool()))
	controller := server.NewController(service)

	fmt.Printf("Starting server on %s:%d\n", conf.Server.Address, conf.Server.Port)
	server.StartServer(controller, conf.Server)
}
