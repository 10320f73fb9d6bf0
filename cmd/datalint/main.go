package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/datalint/datalint/internal/api"
	"github.com/datalint/datalint/internal/ddl"
	"github.com/datalint/datalint/internal/ir"
	"github.com/datalint/datalint/internal/record"
	"github.com/datalint/datalint/internal/reporting"
	"github.com/datalint/datalint/internal/scan"
	"github.com/datalint/datalint/internal/security"
	"github.com/datalint/datalint/internal/shared"
	"github.com/datalint/datalint/internal/storage"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "scan":
		scanCmd(os.Args[2:])
	case "serve":
		serveCmd(os.Args[2:])
	case "report":
		reportCmd(os.Args[2:])
	case "diff":
		diffCmd(os.Args[2:])
	case "adduser":
		adduserCmd(os.Args[2:])
	case "version":
		fmt.Println("datalint IR:", ir.Version)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `datalint – JSON data set validator against a CREATE TABLE schema

Usage:
  datalint scan    --json <file.json> [--sql <schema.sql>] [--out <reports-dir>] [--db ./datalint.db] [--config ./configs/datalint.yaml]
  datalint serve   [--addr :8080] [--db ./datalint.db] [--config ./configs/datalint.yaml]
  datalint report  --run <run-id> [--out <reports-dir>] [--db ./datalint.db]
  datalint diff    --base <run-id> --head <run-id> [--out <reports-dir>] [--db ./datalint.db]
  datalint adduser --user <name> --pass <password> [--role viewer|admin] [--db ./datalint.db]
  datalint version
`)
}

// readInput is the content-acquisition collaborator: it turns a path into
// UTF-8 text, tagging failures as IO errors.
func readInput(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", scan.IOError(err)
	}
	return string(b), nil
}

func scanCmd(args []string) {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	jsonPath := fs.String("json", "", "Path to JSON data set")
	sqlPath := fs.String("sql", "", "Path to SQL DDL file (enables the numeric check)")
	outDir := fs.String("out", "", "Output directory for reports")
	dbPath := fs.String("db", "", "SQLite database path")
	noSave := fs.Bool("no-save", false, "Skip persisting the run")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging)

	// precedence: flags > config > defaults
	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *jsonPath == "" {
		fmt.Fprintln(os.Stderr, "scan: --json is required")
		os.Exit(2)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "scan: cannot create out dir:", err)
		os.Exit(1)
	}

	jsonText, err := readInput(*jsonPath)
	if err != nil {
		slog.Error("read json input", "err", err)
		os.Exit(1)
	}

	run := ir.Run{
		ID:        "run-" + uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Source:    filepath.Clean(*jsonPath),
		IRVersion: ir.Version,
	}

	// Parse once; both checks and the record count share the result.
	records, err := record.ParseArray(jsonText)
	if err != nil {
		jerr := scan.JSONError(err)
		slog.Error("parse json input", "err", jerr, "kind", scan.KindOf(jerr).String())
		os.Exit(1)
	}
	run.Summary.Records = len(records)

	empty := scan.EmptyValuesIn(records)
	run.Summary.EmptyValues = len(empty.Data)
	run.Summary.EmptyMS = empty.DurationMS
	slog.Info("empty-value scan complete", "findings", len(empty.Data), "ms", empty.DurationMS)

	var invalid scan.Outcome[scan.InvalidNumeric]
	if *sqlPath != "" {
		sqlText, err := readInput(*sqlPath)
		if err != nil {
			slog.Error("read sql input", "err", err)
			os.Exit(1)
		}
		run.SchemaSrc = filepath.Clean(*sqlPath)
		table, err := ddl.Parse(sqlText)
		if err != nil {
			serr := scan.SQLError(err)
			slog.Error("numeric scan failed", "err", serr, "kind", scan.KindOf(serr).String())
			os.Exit(1)
		}
		invalid = scan.InvalidNumericsIn(records, table)
		run.Summary.InvalidNumerics = len(invalid.Data)
		run.Summary.NumericMS = invalid.DurationMS
		slog.Info("numeric scan complete", "findings", len(invalid.Data), "ms", invalid.DurationMS)
	}

	run.Findings = scan.CollectFindings(empty.Data, invalid.Data)

	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.CreateSchema(); err != nil {
		slog.Error("db schema error", "err", err)
		os.Exit(1)
	}

	if waivers, err := db.ListWaivers(true); err == nil && len(waivers) > 0 {
		kept, waived := scan.ApplyWaivers(run.Findings, waivers)
		run.Findings = kept
		run.Summary.Waived = waived
	}

	if !*noSave {
		if err := db.SaveRun(&run); err != nil {
			slog.Error("db save run error", "err", err)
			os.Exit(1)
		}
	}

	jsonOut, _ := reporting.WriteJSON(run.ID, *outDir, &run)
	htmlOut, _ := reporting.WriteHTML(run.ID, *outDir, &run)
	slog.Info("scan complete",
		"run", run.ID,
		"findings", len(run.Findings),
		"json", jsonOut,
		"html", htmlOut,
		"db", filepath.Clean(*dbPath),
	)
	fmt.Printf("Scan OK\n  Run: %s\n  Findings: %d (empty=%d, numeric=%d, waived=%d)\n  JSON: %s\n  HTML: %s\n",
		run.ID, len(run.Findings), run.Summary.EmptyValues, run.Summary.InvalidNumerics,
		run.Summary.Waived, jsonOut, htmlOut)
}

func serveCmd(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	addr := fs.String("addr", "", "Listen address")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	logger := shared.InitLogger(cfg.Logging)

	if *addr == "" {
		*addr = cfg.API.Addr
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}

	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.CreateSchema(); err != nil {
		slog.Error("db schema error", "err", err)
		os.Exit(1)
	}

	srv := &api.Server{
		DB:              db,
		UserStore:       db,
		Logger:          logger,
		AllowedOrigins:  cfg.API.AllowedOrigins,
		SessionDuration: time.Duration(cfg.API.SessionHours) * time.Hour,
	}
	slog.Info("serving", "addr", *addr, "db", filepath.Clean(*dbPath))
	if err := http.ListenAndServe(*addr, srv.Routes()); err != nil {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
}

func reportCmd(args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	runID := fs.String("run", "", "Run ID")
	outDir := fs.String("out", "", "Output directory")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging)

	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *runID == "" {
		fmt.Fprintln(os.Stderr, "report: --run is required")
		os.Exit(2)
	}

	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	run, err := db.LoadRun(*runID)
	if err != nil {
		slog.Error("load run error", "err", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		slog.Error("cannot create out dir", "err", err)
		os.Exit(1)
	}
	jsonOut, _ := reporting.WriteJSON(run.ID, *outDir, &run)
	htmlOut, _ := reporting.WriteHTML(run.ID, *outDir, &run)
	fmt.Printf("Report OK\n  Run: %s\n  JSON: %s\n  HTML: %s\n", run.ID, jsonOut, htmlOut)
}

func diffCmd(args []string) {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	base := fs.String("base", "", "Base run ID")
	head := fs.String("head", "", "Head run ID")
	outDir := fs.String("out", "", "Output directory")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging)

	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *base == "" || *head == "" {
		fmt.Fprintln(os.Stderr, "diff: --base and --head are required")
		os.Exit(2)
	}
	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	br, err := db.LoadRun(*base)
	if err != nil {
		slog.Error("load base run error", "err", err)
		os.Exit(1)
	}
	hr, err := db.LoadRun(*head)
	if err != nil {
		slog.Error("load head run error", "err", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		slog.Error("cannot create out dir", "err", err)
		os.Exit(1)
	}
	path, _ := reporting.WriteDiffJSON(*base, *head, *outDir, &br, &hr)
	fmt.Printf("Diff OK\n  %s\n", path)
}

func adduserCmd(args []string) {
	fs := flag.NewFlagSet("adduser", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	user := fs.String("user", "", "Username")
	pass := fs.String("pass", "", "Password")
	role := fs.String("role", "viewer", "Role: viewer or admin")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging)

	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *user == "" || *pass == "" {
		fmt.Fprintln(os.Stderr, "adduser: --user and --pass are required")
		os.Exit(2)
	}

	hash, err := security.HashPassword(*pass)
	if err != nil {
		slog.Error("hash error", "err", err)
		os.Exit(1)
	}
	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.CreateSchema(); err != nil {
		slog.Error("db schema error", "err", err)
		os.Exit(1)
	}
	id, err := db.CreateUser(*user, hash, *role)
	if err != nil {
		slog.Error("create user error", "err", err)
		os.Exit(1)
	}
	fmt.Printf("User OK\n  ID: %d\n  Username: %s\n  Role: %s\n", id, *user, *role)
}
