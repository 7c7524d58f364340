package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/3reps/liftlog/internal/config"
	"github.com/3reps/liftlog/internal/docstore"
	"github.com/3reps/liftlog/internal/exercises"
	"github.com/3reps/liftlog/internal/instrumentation"
	"github.com/3reps/liftlog/internal/middleware"
	"github.com/3reps/liftlog/internal/workoutlog"
	"github.com/3reps/liftlog/pkg"

	"github.com/coocood/freecache"
	"github.com/getsentry/sentry-go"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

const catalogCacheSize = 2 * 1024 * 1024 // 2 MB, plenty for one merged catalog

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server

	config *config.Config
	store  *docstore.DiskStore

	exercisesRepo    *exercises.Repo
	exercisesCatalog *exercises.Catalog
	workoutLogRepo   *workoutlog.Repo

	instr        *instrumentation.Instrumentation
	promRegistry *prometheus.Registry
	catalogCache *freecache.Cache
}

func NewServer(cfg *config.Config) (*Server, error) {
	store, err := docstore.NewDiskStore(cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("new disk store: %w", err)
	}

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	instr := instrumentation.NewInstrumentationWithRegisterer("liftlog", "main", promRegistry)
	instr.GaugeLifeSignal.Set(0)

	exercisesRepo := exercises.NewRepo(store)

	return &Server{
		config:           cfg,
		store:            store,
		exercisesRepo:    exercisesRepo,
		exercisesCatalog: exercises.NewCatalog(exercises.BuiltIn(), exercisesRepo),
		workoutLogRepo:   workoutlog.NewRepo(store),
		instr:            instr,
		promRegistry:     promRegistry,
		catalogCache:     freecache.NewCache(catalogCacheSize),
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()

	exercisesHandler := exercises.NewHandler(
		s.exercisesCatalog,
		s.exercisesRepo,
		s.catalogCache,
		s.instr,
	)
	workoutLogHandler := workoutlog.NewHandler(s.workoutLogRepo, s.instr)
	statsHandler := workoutlog.NewStatsHandler(
		workoutlog.NewAnalyzer(s.workoutLogRepo),
	)

	r.HandleFunc("/exercises", exercisesHandler.HandleList).Methods("GET", "OPTIONS").Name("list-exercises")
	r.HandleFunc("/exercises/groups", exercisesHandler.HandleGroups).Methods("GET", "OPTIONS").Name("exercise-groups")
	r.HandleFunc("/exercises/search", exercisesHandler.HandleSearch).Methods("GET", "OPTIONS").Name("search-exercises")
	r.HandleFunc("/exercises/custom", exercisesHandler.HandleListCustom).Methods("GET", "OPTIONS").Name("list-custom-exercises")
	r.HandleFunc("/exercises/custom/deleted", exercisesHandler.HandleListDeleted).Methods("GET", "OPTIONS").Name("list-deleted-custom-exercises")
	r.HandleFunc("/exercises/custom", exercisesHandler.HandleSave).Methods("POST", "OPTIONS").Name("save-custom-exercise")
	r.HandleFunc("/exercises/custom/{name}", exercisesHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-custom-exercise")

	r.HandleFunc("/log", workoutLogHandler.HandleAppend).Methods("POST", "OPTIONS").Name("append-entry")
	r.HandleFunc("/log", workoutLogHandler.HandleList).Methods("GET", "OPTIONS").Name("list-entries")
	r.HandleFunc("/log/history", workoutLogHandler.HandleHistory).Methods("GET", "OPTIONS").Name("log-history")
	r.HandleFunc("/log/{id}", workoutLogHandler.HandleUpdateSets).Methods("PUT", "OPTIONS").Name("update-entry")
	r.HandleFunc("/log/{id}", workoutLogHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-entry")

	r.HandleFunc("/stats", statsHandler.HandleTotals).Methods("GET", "OPTIONS").Name("stats-totals")
	r.HandleFunc("/stats/exercises", statsHandler.HandleLoggedExercises).Methods("GET", "OPTIONS").Name("stats-logged-exercises")
	r.HandleFunc("/stats/exercise/{name}/progress", statsHandler.HandleExerciseProgress).Methods("GET", "OPTIONS").Name("stats-exercise-progress")
	r.HandleFunc("/stats/group/{mgroup}/percentages", statsHandler.HandleExercisePercentages).Methods("GET", "OPTIONS").Name("stats-exercise-percentages")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteResponse(w, pkg.ContentType.Text, "ok", http.StatusOK)
	}).Methods("GET").Name("health")

	r.Use(middleware.PanicRecovery(s.instr))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.instr))
	r.Use(middleware.Cors())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.instr.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.instr.GaugeLifeSignal.Set(0)

	if s.config.SentryEnabled {
		if ok := sentry.Flush(5 * time.Second); !ok {
			log.Warnln("sentry flush timed out")
		}
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	var err error
	if s.httpServer != nil {
		err = multierr.Append(err, s.httpServer.Shutdown(ctx))
	}
	if s.metricsHttpServer != nil {
		err = multierr.Append(err, s.metricsHttpServer.Shutdown(ctx))
	}
	if err != nil {
		log.Errorf(" >>> failed to gracefully shutdown http servers: %s", err)
	}

	log.Warnln("server shut down")
}
