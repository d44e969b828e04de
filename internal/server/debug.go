package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"advanced-melee/internal/domain"
	"advanced-melee/internal/engine"
	"advanced-melee/internal/storage"
)

const debugTimeout = 2 * time.Second

// DebugHandler предоставляет доступ к внутреннему состоянию движка
type DebugHandler struct {
	Service *engine.GameService
	Reports ReportStore
}

func NewDebugHandler(s *engine.GameService, reports ReportStore) *DebugHandler {
	return &DebugHandler{Service: s, Reports: reports}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/entities", h.handleDumpEntities)
	mux.HandleFunc("/debug/jobs", h.handleJobs)
	mux.HandleFunc("/debug/reports", h.handleReports)
	mux.HandleFunc("/debug/sessions", h.handleSessions)
}

// /debug/sessions - пешки, к которым сейчас подключены игроки
func (h *DebugHandler) handleSessions(w http.ResponseWriter, r *http.Request) {
	ids := h.Service.Hub.Subscribers()
	sort.Strings(ids)
	writeJSON(w, struct {
		Count    int      `json:"count"`
		Entities []string `json:"entities"`
	}{
		Count:    h.Service.Hub.SubscriberCount(),
		Entities: ids,
	})
}

// /debug/entities - дамп всех сущностей вместе с данными ближнего боя
func (h *DebugHandler) handleDumpEntities(w http.ResponseWriter, r *http.Request) {
	type entityDump struct {
		Entity domain.Entity     `json:"entity"`
		Melee  *domain.MeleeData `json:"melee,omitempty"`
	}

	dump := make([]entityDump, 0)
	err := h.inspect(r.Context(), func(g *engine.Game) {
		for _, e := range g.Entities {
			d := entityDump{Entity: *e}
			if m, ok := g.Melee.Registry().Lookup(e.ID); ok {
				cp := *m
				d.Melee = &cp
			}
			dump = append(dump, d)
		}
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, dump)
}

// /debug/jobs - очередь действий. Порядок кучи, не порядок извлечения.
func (h *DebugHandler) handleJobs(w http.ResponseWriter, r *http.Request) {
	type jobView struct {
		ID        string `json:"id"`
		Kind      string `json:"kind"`
		ActorID   string `json:"actor_id"`
		TargetID  string `json:"target_id"`
		Animation string `json:"animation,omitempty"`
		Mirrored  bool   `json:"mirrored"`
		Due       int    `json:"due"`
		Stage     int    `json:"stage"`
	}

	jobs := make([]jobView, 0)
	err := h.inspect(r.Context(), func(g *engine.Game) {
		for _, j := range g.Jobs.Jobs() {
			v := jobView{
				ID:       j.Request.ID,
				Kind:     j.Request.Kind.String(),
				ActorID:  j.Request.ActorID,
				TargetID: j.Request.TargetID,
				Mirrored: j.Request.Mirrored,
				Due:      j.Due,
				Stage:    j.Stage,
			}
			if j.Request.Candidate != nil {
				v.Animation = j.Request.Candidate.ID
			}
			jobs = append(jobs, v)
		}
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, jobs)
}

// /debug/reports - накопленные отчеты о модах
func (h *DebugHandler) handleReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.Reports.MissingMods(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if reports == nil {
		reports = []storage.MissingModReport{}
	}
	writeJSON(w, reports)
}

func (h *DebugHandler) inspect(ctx context.Context, fn func(g *engine.Game)) error {
	ctx, cancel := context.WithTimeout(ctx, debugTimeout)
	defer cancel()
	return h.Service.Do(ctx, fn)
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (нужно для локального debug-клиента)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	_ = json.NewEncoder(w).Encode(data)
}
