package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"cetpredict/internal"
	"cetpredict/internal/branchmap"
	"cetpredict/internal/config"
	"cetpredict/internal/cutoff"
	"cetpredict/internal/ingest"
	"cetpredict/internal/logger"
	"cetpredict/internal/server"
)

func main() {
	cfg, err := config.Load()
	must(err)
	logger.Init(cfg)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	branches, err := branchmap.Load(cfg.BranchMapPath)
	if err != nil {
		logger.Log.WithError(err).Warn("branch map unavailable, branch names will be unset")
		branches = branchmap.Empty()
	}

	store := cutoff.NewStore()
	svc := ingest.NewService(store, branches, logger.Log)
	engine := cutoff.NewEngine(store, cfg.DefaultCourse)
	catalogue := cutoff.NewCatalogue(store, branches)

	cmd := os.Args[1]
	switch cmd {
	case "ingest":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		dir := fs.String("dir", cfg.DataDir, "directory of extracted cutoff tables")
		pg := fs.Bool("pg", false, "read the postgres staging table instead of files")
		reportOut := fs.String("report", "", "optional xlsx report path")
		_ = fs.Parse(os.Args[2:])

		report, err := runIngest(svc, cfg, *dir, *pg)
		must(err)
		fmt.Printf("ingest done total=%d accepted=%d rejected=%d collapsed=%d generation=%d\n",
			report.Total, report.Accepted, report.Rejected, report.Collapsed, store.Generation())
		if strings.TrimSpace(*reportOut) != "" {
			must(ingest.ExportReportToXLSX(report, *reportOut))
			fmt.Printf("report written to %s\n", *reportOut)
		}
	case "predict":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		dir := fs.String("dir", cfg.DataDir, "directory of extracted cutoff tables")
		rank := fs.Int("rank", 0, "entrance rank")
		course := fs.String("course", "", "course (optional in single-course deployments)")
		category := fs.String("category", "", "reservation category code")
		branch := fs.String("branch", "", "optional branch code")
		_ = fs.Parse(os.Args[2:])

		_, err := svc.RebuildFromDir(context.Background(), *dir)
		must(err)

		var result any
		if *branch != "" {
			result, err = engine.PredictBranch(*rank, *course, *category, *branch)
		} else {
			result, err = engine.Predict(*rank, *course, *category)
		}
		must(err)
		must(printJSON(result))
	case "catalogue":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		dir := fs.String("dir", cfg.DataDir, "directory of extracted cutoff tables")
		list := fs.String("list", "courses", "courses|categories|branches")
		course := fs.String("course", "", "course for categories/branches listings")
		_ = fs.Parse(os.Args[2:])

		_, err := svc.RebuildFromDir(context.Background(), *dir)
		must(err)

		var values []string
		switch *list {
		case "courses":
			values, err = catalogue.Courses()
		case "categories":
			values, err = catalogue.Categories(*course)
		case "branches":
			values, err = catalogue.Branches(*course)
		default:
			err = fmt.Errorf("unsupported listing: %s", *list)
		}
		must(err)
		for _, v := range values {
			fmt.Println(v)
		}
	case "serve":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		dir := fs.String("dir", cfg.DataDir, "directory of extracted cutoff tables")
		pg := fs.Bool("pg", false, "read the postgres staging table instead of files")
		listen := fs.String("listen", cfg.ListenAddr, "listen address")
		_ = fs.Parse(os.Args[2:])

		if _, err := runIngest(svc, cfg, *dir, *pg); err != nil {
			// Serve anyway: queries answer NotReady until a reload succeeds.
			logger.Log.WithError(err).Warn("initial ingest failed")
		}

		handler := server.New(server.Options{CORSOrigins: cfg.CORSOrigins, DataDir: *dir}, engine, catalogue, svc, logger.Log)
		logger.Log.WithField("addr", *listen).Info("serving")
		must(http.ListenAndServe(*listen, handler))
	default:
		usage()
		os.Exit(1)
	}
}

func runIngest(svc *ingest.Service, cfg config.Config, dir string, pg bool) (internal.IngestReport, error) {
	if pg {
		if err := cfg.Require("CET_POSTGRES_DSN", cfg.PostgresDSN); err != nil {
			return internal.IngestReport{}, err
		}
		return svc.RebuildFromPostgres(context.Background(), cfg.PostgresDSN)
	}
	return svc.RebuildFromDir(context.Background(), dir)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func usage() {
	fmt.Println("usage: cetpredict <command>")
	fmt.Println("commands:")
	fmt.Println("  ingest    [--dir=...] [--pg] [--report=out.xlsx]")
	fmt.Println("  predict   --rank=N --category=GM [--course=engineering] [--branch=CS] [--dir=...]")
	fmt.Println("  catalogue --list=courses|categories|branches [--course=...] [--dir=...]")
	fmt.Println("  serve     [--dir=...] [--pg] [--listen=:8080]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
