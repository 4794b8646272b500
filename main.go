package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"Ductwork/internal/auth"
	"Ductwork/internal/calc/duct"
	"Ductwork/internal/calc/premium/autodesign"
	"Ductwork/internal/calc/premium/batch"
	"Ductwork/internal/calc/premium/importer"
	"Ductwork/internal/calc/premium/recommend"
	"Ductwork/internal/calc/report"
	"Ductwork/internal/config"
	"Ductwork/internal/live"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, cfg config.Config, engine *duct.Calculator) {
	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	ductH := &duct.Handler{Engine: engine}
	api.HandleFunc("/tools/duct/calc", ductH.Calc).Methods("POST")
	api.HandleFunc("/tools/duct/materials", ductH.Materials).Methods("GET")
	api.HandleFunc("/tools/duct/sizes", ductH.Sizes).Methods("GET")
	api.HandleFunc("/tools/duct/chart", ductH.Chart).Methods("GET")

	if cfg.TokenKey == "" {
		log.Warn("TOKEN_KEY is not set, premium routes are disabled")
	} else {
		gate := &auth.TokenGate{Key: []byte(cfg.TokenKey)}
		premium := api.PathPrefix("/premium").Subrouter()
		premium.Use(gate.Middleware)

		batchH := &batch.Handler{Engine: engine}
		importH := &importer.Handler{Engine: engine}
		autoH := &autodesign.Handler{Engine: engine}
		recommendH := &recommend.Handler{Engine: engine}
		reportH := &report.Handler{Engine: engine}

		premium.HandleFunc("/duct/batch", batchH.Duct).Methods("POST")
		premium.HandleFunc("/duct/import", importH.Duct).Methods("POST")
		premium.HandleFunc("/duct/export", importH.Export).Methods("POST")
		premium.HandleFunc("/duct/autodesign", autoH.Rect).Methods("POST")
		premium.HandleFunc("/duct/recommend", recommendH.Material).Methods("POST")
		premium.HandleFunc("/duct/report", reportH.Generate).Methods("POST")
	}

	mux.HandleFunc("/ws/duct", live.NewServer(engine).ServeWs)
}

func loadEngine(cfg config.Config) (*duct.Calculator, error) {
	if cfg.TablesPath == "" {
		return duct.Default(), nil
	}
	return config.LoadTables(cfg.TablesPath)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	log.SetLevel(cfg.LogLevel)

	engine, err := loadEngine(cfg)
	if err != nil {
		log.Fatalf("duct tables: %v", err)
	}

	mux := mux.NewRouter()
	HandleList(mux, cfg, engine)
	handler := CORS(mux)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	log.WithFields(log.Fields{"addr": cfg.Addr, "tls": cfg.TLS(), "materials": len(engine.Materials)}).Info("starting server")
	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("server error: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received, closing active connections")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown: %v", err)
	}
	log.Info("server stopped")

	wg.Wait()
}
