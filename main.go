package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"Retrofit/internal/auth"
	"Retrofit/internal/calc/annual"
	"Retrofit/internal/calc/batch"
	"Retrofit/internal/calc/importer"
	"Retrofit/internal/calc/loads"
	"Retrofit/internal/calc/pipeline"
	"Retrofit/internal/calc/report"
	"Retrofit/internal/project"
	"Retrofit/internal/repo"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(ctx context.Context, mux *mux.Router, db *sql.DB, tokenKey string) {
	authEnv := &auth.Authenv{JWTkey: []byte(tokenKey), Repo: repo.NewPostgresUserDB(db)}
	projectH := &project.Handler{Repo: repo.NewPostgresProjectDB(db)}

	limiter := auth.NewIPRateLimiter(1, 3)
	go limiter.RunSweeper(ctx, time.Minute, 10*time.Minute)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	calcH := &pipeline.Handler{}
	loadsH := &loads.Handler{}
	annualH := &annual.Handler{}
	reportH := &report.Handler{}
	importH := &importer.Handler{}
	batchH := &batch.Handler{}

	secureApi.HandleFunc("/tools/retrofit/calc", calcH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/retrofit/loads", loadsH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/retrofit/annual", annualH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/retrofit/report", reportH.Generate).Methods("POST")
	secureApi.HandleFunc("/tools/retrofit/import", importH.Workbook).Methods("POST")
	secureApi.HandleFunc("/tools/retrofit/batch", batchH.Run).Methods("POST")
	projectH.Register(secureApi)

	authFileServer := http.FileServer(http.Dir("./static/auth"))
	mux.PathPrefix("/auth/").
		Handler(authEnv.RedirectIfLoggedIn(http.StripPrefix("/auth", authFileServer)))
	mainFileServer := http.FileServer(http.Dir("./static/main"))
	mux.PathPrefix("/").
		Handler(mainFileServer)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}
	tokenKey := os.Getenv("TOKEN_KEY")
	if tokenKey == "" {
		log.Fatal("TOKEN_KEY environment variable is not set")
	}
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}

	db := auth.InitDB()
	defer db.Close()
	if err := repo.Migrate(ctx, db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	mux := mux.NewRouter()
	HandleList(ctx, mux, db, tokenKey)

	server := &http.Server{
		Addr:              addr,
		Handler:           CORS(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	certFile, keyFile := os.Getenv("TLS_CERT"), os.Getenv("TLS_KEY")
	log.Printf("Starting server on %s", addr)
	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if certFile != "" && keyFile != "" {
			err = server.ListenAndServeTLS(certFile, keyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server error: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received, closing active connections")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")

	wg.Wait()
}
