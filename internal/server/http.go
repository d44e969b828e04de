package server

import (
	"context"
	"encoding/json"
	"net/http"
	_ "net/http/pprof" // Profiling
	"time"

	"advanced-melee/internal/engine"
	"advanced-melee/internal/storage"
	"advanced-melee/internal/version"
	"advanced-melee/pkg/api"
	"advanced-melee/pkg/logger"
)

// maxReportBody - предел тела отчета о модах
const maxReportBody = 1 << 20

// ReportStore - хранилище отчетов о модах без анимаций
type ReportStore interface {
	SaveMissingMods(ctx context.Context, reports []api.MissingModRequest) error
	MissingMods(ctx context.Context) ([]storage.MissingModReport, error)
}

type Server struct {
	Engine  *engine.GameService
	Reports ReportStore
	Port    string
}

func New(engine *engine.GameService, reports ReportStore, port string) *Server {
	return &Server{
		Engine:  engine,
		Reports: reports,
		Port:    port,
	}
}

// Routes собирает все обработчики
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))

	mux.HandleFunc("/api/modreporting/report-missing-mods", enableCORS(s.handleReportMissingMods))
	mux.HandleFunc("/api/modreporting/health-check", enableCORS(s.handleReportingHealth))

	debugHandler := NewDebugHandler(s.Engine, s.Reports)
	debugHandler.RegisterRoutes(mux)

	// pprof регистрируется в DefaultServeMux
	mux.Handle("/debug/pprof/", http.DefaultServeMux)
	return mux
}

// Run запускает HTTP сервер и останавливает его после отмены ctx
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.Port,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Warn("HTTP shutdown failed")
		}
	}()

	logger.Log.Infof("Advanced Melee server running on :%s", s.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Разрешаем запросы с фронтенда
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next(w, r)
	}
}

// handleWS обрабатывает подключение по WebSocket
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Error("Upgrade error")
		return
	}

	client := NewClient(s.Engine, conn)

	// Запускаем пампы
	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(version.Info())
}

// errRecording - единственный текст ошибки для клиента мода
const errRecording = "Error recording data"

// handleReportMissingMods принимает массив отчетов. null в массиве пропускается.
func (s *Server) handleReportMissingMods(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	log := logger.Component("mod_reporting")

	var body []*api.MissingModRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxReportBody)).Decode(&body); err != nil {
		log.WithError(err).Warn("Invalid report body")
		http.Error(w, errRecording, http.StatusBadRequest)
		return
	}

	reports := make([]api.MissingModRequest, 0, len(body))
	for _, m := range body {
		if m == nil {
			continue
		}
		if err := m.Validate(); err != nil {
			log.WithError(err).WithField("mod_id", m.ModID).Warn("Invalid report entry")
			http.Error(w, errRecording, http.StatusBadRequest)
			return
		}
		reports = append(reports, *m)
	}

	if err := s.Reports.SaveMissingMods(r.Context(), reports); err != nil {
		log.WithField("count", len(reports)).WithError(err).Error("Failed to record missing mods")
		http.Error(w, errRecording, http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleReportingHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodHead {
		w.Header().Set("Allow", http.MethodHead)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
}
