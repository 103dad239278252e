package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/joho/godotenv"

	"github.com/DaanHessen/linegrep/internal/render"
	"github.com/DaanHessen/linegrep/internal/search"
	"github.com/DaanHessen/linegrep/internal/store"
	"github.com/DaanHessen/linegrep/internal/ui"
	"github.com/DaanHessen/linegrep/internal/util"
)

var version = "0.1.0"

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	_ = godotenv.Load()

	ignoreCase := flag.Bool("ignore-case", false, "Match case-insensitively (setting IGNORE_CASE also enables this)")
	dsn := flag.String("dsn", "", "SQLite path for search history (default $LINEGREP_DSN, then $DATABASE_URL)")
	theme := flag.String("theme", "", "UI theme name")
	interactive := flag.Bool("interactive", false, "Open the interactive search UI")
	plain := flag.Bool("plain", false, "Undecorated output, for pipes")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "linegrep [flags] QUERY FILE | linegrep --interactive [QUERY] FILE | migrate up|down | history [n] | version\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) > 0 && !*interactive {
		switch args[0] {
		case "version":
			fmt.Println("linegrep", version)
			return
		case "migrate":
			if len(args) < 2 {
				log.Fatal("migrate requires 'up' or 'down'")
			}
			runMigrate(resolveDSN(*dsn), args[1])
			return
		case "history":
			limit := 20
			if len(args) > 1 {
				n, err := strconv.Atoi(args[1])
				if err != nil {
					log.Fatalf("history limit must be a number: %v", err)
				}
				limit = n
			}
			runHistory(resolveDSN(*dsn), limit)
			return
		}
	}

	ctx := context.Background()

	if *interactive {
		cfg := util.FromEnv()
		switch len(args) {
		case 0:
			log.Fatal("interactive mode requires a file path")
		case 1:
			cfg.Path = args[0]
		default:
			parsed, err := util.FromArgs(slices.Values(args))
			if err != nil {
				log.Fatalf("problem parsing arguments: %v", err)
			}
			cfg = parsed
		}
		cfg.Interactive = true
		applyFlagOverrides(&cfg, *ignoreCase, *dsn, *theme)

		db := openHistoryDB(ctx, cfg)
		if db != nil {
			defer db.Close()
		}
		if err := ui.Run(ctx, db, cfg, version); err != nil {
			log.Fatal(err)
		}
		return
	}

	cfg, err := util.FromArgs(slices.Values(args))
	if err != nil {
		log.Fatalf("problem parsing arguments: %v", err)
	}
	applyFlagOverrides(&cfg, *ignoreCase, *dsn, *theme)

	f, err := os.Open(cfg.Path)
	if err != nil {
		log.Fatalf("couldn't open %s: %v", cfg.Path, err)
	}
	defer f.Close()

	matcher := search.NewMatcher(cfg.Query, cfg.IgnoreCase)
	sc := search.Lines(f)
	matches := search.Collect(search.Search(matcher, sc.All()))
	if err := sc.Err(); err != nil {
		log.Fatalf("reading %s: %v", cfg.Path, err)
	}
	if err := render.Result(os.Stdout, matcher, matches, render.Options{Plain: *plain}); err != nil {
		log.Fatal(err)
	}

	recordHistory(ctx, cfg, len(matches))
}

// applyFlagOverrides lets explicitly-set flags win over environment values.
func applyFlagOverrides(cfg *util.Config, ignoreCase bool, dsn, theme string) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "ignore-case":
			cfg.IgnoreCase = ignoreCase
		case "dsn":
			cfg.DSN = dsn
		case "theme":
			cfg.Theme = theme
		}
	})
}

// resolveDSN picks the history database path: flag, then env, then a file
// under the user cache directory.
func resolveDSN(flagDSN string) string {
	if flagDSN != "" {
		return flagDSN
	}
	if dsn := util.FromEnv().DSN; dsn != "" {
		return dsn
	}
	return defaultDSN()
}

func defaultDSN() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "linegrep", "history.db")
}

func runMigrate(dsn, action string) {
	if dsn == "" {
		log.Fatal("no history database path; set --dsn or LINEGREP_DSN")
	}
	if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
		log.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	migrator, err := store.NewMigrator(dsn)
	if err != nil {
		log.Fatal(err)
	}
	switch action {
	case "up":
		if err := migrator.Up(ctx); err != nil && err != store.ErrNoChange {
			log.Fatal(err)
		}
		fmt.Println("Migrations applied")
	case "down":
		if err := migrator.Down(ctx); err != nil && err != store.ErrNoChange {
			log.Fatal(err)
		}
		fmt.Println("Migrations rolled back")
	default:
		log.Fatal("unknown migrate action; use up|down")
	}
}

func runHistory(dsn string, limit int) {
	if dsn == "" {
		log.Fatal("no history database path; set --dsn or LINEGREP_DSN")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := openHistoryDB(ctx, util.Config{DSN: dsn})
	if db == nil {
		log.Fatalf("couldn't open history database at %s", dsn)
	}
	defer db.Close()

	entries, err := store.NewHistoryRepo(db).Recent(ctx, limit)
	if err != nil {
		log.Fatal(err)
	}
	md := render.HistoryMarkdown(entries)
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := renderer.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// openHistoryDB prepares the history database, returning nil when it is
// unavailable; history is best-effort and never blocks a search.
func openHistoryDB(ctx context.Context, cfg util.Config) *store.DB {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = defaultDSN()
	}
	if dsn == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
		debugf("history dir: %v", err)
		return nil
	}
	migrator, err := store.NewMigrator(dsn)
	if err != nil {
		debugf("history migrator: %v", err)
		return nil
	}
	if err := migrator.Up(ctx); err != nil && err != store.ErrNoChange {
		debugf("history migrations: %v", err)
		return nil
	}
	cfg.DSN = dsn
	db, err := store.Open(ctx, cfg)
	if err != nil {
		debugf("history open: %v", err)
		return nil
	}
	return db
}

func recordHistory(ctx context.Context, cfg util.Config, matches int) {
	db := openHistoryDB(ctx, cfg)
	if db == nil {
		return
	}
	defer db.Close()
	if _, err := store.NewHistoryRepo(db).Record(ctx, cfg.Query, cfg.Path, cfg.IgnoreCase, matches); err != nil {
		debugf("history record: %v", err)
	}
}

func debugf(format string, args ...any) {
	if os.Getenv("LINEGREP_DEBUG") == "1" {
		log.Printf(format, args...)
	}
}
