package main

import (
	"context"
	"flag"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"lhsyard/app"
	"lhsyard/config"
	"lhsyard/intentlog"
	"lhsyard/logger"
	"lhsyard/model"
	"lhsyard/queue"
	"lhsyard/session"
	"lhsyard/sheet"
)

func main() {
	demo := flag.Bool("demo", false, "run against an in-memory store with sample data")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogPath)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer zlog.Sync()
	zlog.Info("app started")

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		zlog.Warnf("unknown timezone %q, falling back to Asia/Bangkok: %v", cfg.Timezone, err)
		loc, err = time.LoadLocation("Asia/Bangkok")
		if err != nil {
			log.Fatalf("timezone load error: %v", err)
		}
	}

	dbConn, err := sqlx.Open("sqlite3", cfg.IntentDBPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer dbConn.Close()

	alloc, err := queue.NewAllocator(dbConn)
	if err != nil {
		log.Fatalf("queue allocator init failed: %v", err)
	}
	intents, err := intentlog.New(dbConn)
	if err != nil {
		log.Fatalf("intent log init failed: %v", err)
	}

	store, err := buildStore(cfg, *demo, loc)
	if err != nil {
		log.Fatalf("store init failed: %v", err)
	}

	a := &app.App{
		Store:    store,
		Sessions: session.NewManager(),
		Queue:    alloc,
		Intents:  intents,
		Log:      zlog,
		Loc:      loc,
		Cfg:      config.GetConfig,
	}

	// Catch the persisted queue mark up with history and surface any
	// write sequence that never finished.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if tt, err := sheet.LoadTrucks(ctx, store, cfg.DataWorksheet); err != nil {
		zlog.Warnf("startup table read failed, queue seed skipped: %v", err)
	} else if err := alloc.Seed(tt.CheckedInCount()); err != nil {
		zlog.Warnf("queue seed failed: %v", err)
	}
	cancel()

	if pending, err := intents.Pending(); err != nil {
		zlog.Warnf("pending intent check failed: %v", err)
	} else {
		for _, it := range pending {
			zlog.Warnf("incomplete write sequence from %s: op=%s steps=%d payload=%s",
				it.CreatedAt, it.Op, it.Steps, it.Payload)
		}
	}

	stopWatch, err := config.Watch(func(newCfg config.Config) {
		zlog.Infof("config file reloaded (backend=%s, data worksheet=%s)", newCfg.StoreBackend, newCfg.DataWorksheet)
	}, func(err error) {
		zlog.Warnf("config reload failed: %v", err)
	})
	if err != nil {
		zlog.Warnf("config watch unavailable: %v", err)
	} else {
		defer stopWatch()
	}

	appTemplate, err := template.ParseFiles("static/index.html")
	if err != nil {
		log.Fatalf("failed to parse static/index.html: %v", err)
	}

	mux := http.NewServeMux()

	mux.Handle("/static/", http.StripPrefix("/static/",
		http.FileServer(http.Dir("./static"))))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		cur := a.Cfg()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err := appTemplate.ExecuteTemplate(w, "index.html", struct {
			OriginNodes  []string
			Vendors      []string
			VehicleTypes []string
		}{cur.OriginNodes, cur.Vendors, cur.VehicleTypes})
		if err != nil {
			zlog.Errorf("error executing main template: %v", err)
		}
	})

	SetupRoutes(mux, a)

	addr := fmt.Sprintf(":%d", cfg.ListenPort)
	zlog.Infof("starting server on http://localhost%s", addr)

	openBrowser("http://localhost" + addr)

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server start error: %v", err)
	}
}

func buildStore(cfg config.Config, demo bool, loc *time.Location) (sheet.Store, error) {
	if demo {
		return demoStore(cfg, loc), nil
	}
	switch cfg.StoreBackend {
	case "google":
		if cfg.SpreadsheetID == "" {
			return nil, fmt.Errorf("spreadsheetId is required for the google backend")
		}
		return sheet.NewGoogleStore(context.Background(), cfg.CredentialsFile, cfg.SpreadsheetID)
	case "excel":
		return sheet.NewExcelStore(cfg.WorkbookPath), nil
	case "memory":
		return demoStore(cfg, loc), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// demoStore seeds an in-memory store with a small day of traffic so
// the UI can be exercised without any spreadsheet.
func demoStore(cfg config.Config, loc *time.Location) *sheet.MemoryStore {
	store := sheet.NewMemoryStore()
	store.Seed(cfg.UserWorksheet, [][]string{
		{"user_id"},
		{"1001"},
		{"1002"},
	})

	now := time.Now().In(loc)
	eta := func(d time.Duration) string { return now.Add(d).Format(model.TimeLayout) }
	blank := func(id, origin, vendor, vtype string, d time.Duration) []string {
		return []string{eta(d), origin, vendor, id, "Driver " + id, "080-000-0000", vtype, "", "", "", "", "", "", "", "", "", "", ""}
	}
	store.Seed(cfg.DataWorksheet, [][]string{
		model.DataColumns,
		blank("T001", "SSW", "PJT", "4W5CBM", -1*time.Hour),
		blank("T002", "TPK", "TTA", "4W10CBM", 90*time.Minute),
		blank("T003", "SSW", "WML", "4W12CBM", 5*time.Hour),
		blank("T004", "TPK", "SPT", "4W13CBM", 30*time.Minute),
	})
	return store
}

func openBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = exec.Command("xdg-open", url).Start()
	}
	if err != nil {
		log.Printf("failed to open browser: %v", err)
	}
}
