package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/mkovacc/liftboard/internal/auth"
	"github.com/mkovacc/liftboard/internal/schedule"
	"github.com/mkovacc/liftboard/internal/telemetry/metrics"
	"github.com/mkovacc/liftboard/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=records_test

type entriesRepo interface {
	Upsert(ctx context.Context, entry Entry) (*Entry, error)
	Get(ctx context.Context, id int) (*Entry, error)
	GetForDay(ctx context.Context, ownerID string, day time.Time) (*Entry, error)
	Delete(ctx context.Context, id int) error
	ListAll(ctx context.Context, params EntryParams) ([]Entry, error)
	List(ctx context.Context, params ListParams) ([]Entry, int, error)
	EntriesCount(ctx context.Context, params EntryParams) (int, error)
}

// dayResolver tells which movement a calendar date maps to.
type dayResolver interface {
	Resolve(date time.Time) schedule.Movement
}

// ownerDirectory supplies the display name and gender stamped onto saved
// entries.
type ownerDirectory interface {
	DisplayInfo(ctx context.Context, ownerID string) (name string, gender string, err error)
}

type Handler struct {
	repo     entriesRepo
	analyzer *Analyzer
	calendar dayResolver
	owners   ownerDirectory
	metrics  *metrics.Manager
}

func NewHandler(
	repo entriesRepo,
	analyzer *Analyzer,
	calendar dayResolver,
	owners ownerDirectory,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		repo:     repo,
		analyzer: analyzer,
		calendar: calendar,
		owners:   owners,
		metrics:  metricsManager,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("", handler.HandleSave).Methods("POST", "OPTIONS").Name("save-record")
	router.HandleFunc("/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-record")
	router.HandleFunc("/day/{date}", handler.HandleDay).Methods("GET", "OPTIONS").Name("record-for-day")
	router.HandleFunc("/list/page/{page}/size/{size}", handler.HandleList).Methods("GET", "OPTIONS").Name("list-records")
	router.HandleFunc("/movement/{movement}/leaderboard", handler.HandleLeaderboard).Methods("GET", "OPTIONS").Name("leaderboard")
	router.HandleFunc("/movement/{movement}/series", handler.HandleSeries).Methods("GET", "OPTIONS").Name("series")
}

type saveRequest struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
	Notes string  `json:"notes,omitempty"`
}

func (handler *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.OwnerIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("save record failed, unmarshal json params: %s", err)
		http.Error(w, "add record failed", http.StatusBadRequest)
		return
	}

	day, err := schedule.ParseDay(req.Date)
	if err != nil {
		http.Error(w, "invalid date, expected yyyy-mm-dd", http.StatusBadRequest)
		return
	}

	movement := handler.calendar.Resolve(day)
	if movement.IsTBD() {
		http.Error(w, "nothing scheduled for that day", http.StatusBadRequest)
		return
	}

	name, gender, err := handler.owners.DisplayInfo(r.Context(), ownerID)
	if err != nil {
		log.Errorf("save record failed, owner %s display info: %s", ownerID, err)
		http.Error(w, "add record failed", http.StatusInternalServerError)
		return
	}

	entry := Entry{
		OwnerID:      ownerID,
		Date:         day,
		MovementName: movement.Name,
		Value:        req.Value,
		Unit:         movement.Unit,
		OwnerName:    name,
		Gender:       gender,
		Notes:        req.Notes,
	}

	saved, err := handler.repo.Upsert(r.Context(), entry)
	if err != nil {
		if errors.Is(err, ErrInvalidEntry) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("save record failed: %s", err)
		http.Error(w, "add record failed", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterEntriesSaved.Inc()
	log.Tracef("record saved: owner %s, %s on %s", ownerID, movement.Name, req.Date)

	savedJson, err := json.Marshal(saved)
	if err != nil {
		log.Errorf("save record failed, marshal: %s", err)
		http.Error(w, "add record failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, savedJson, http.StatusCreated)
}

func (handler *Handler) HandleDay(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.OwnerIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	day, err := schedule.ParseDay(vars["date"])
	if err != nil {
		http.Error(w, "invalid date, expected yyyy-mm-dd", http.StatusBadRequest)
		return
	}

	entry, err := handler.repo.GetForDay(r.Context(), ownerID, day)
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		log.Errorf("get record for day failed: %s", err)
		http.Error(w, "get record failed", http.StatusInternalServerError)
		return
	}

	entryJson, err := json.Marshal(entry)
	if err != nil {
		log.Errorf("get record for day failed, marshal: %s", err)
		http.Error(w, "get record failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, entryJson)
}

type listResponse struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.OwnerIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)

	page, err := strconv.Atoi(vars["page"])
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid page: %s", vars["page"]), http.StatusBadRequest)
		return
	}
	size, err := strconv.Atoi(vars["size"])
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid size: %s", vars["size"]), http.StatusBadRequest)
		return
	}
	if page < 1 {
		http.Error(w, fmt.Sprintf("invalid page: %d", page), http.StatusBadRequest)
		return
	}
	if size < 1 {
		http.Error(w, fmt.Sprintf("invalid size: %d", size), http.StatusBadRequest)
		return
	}

	params := ListParams{
		EntryParams: EntryParams{
			OwnerID:      ownerID,
			MovementName: r.URL.Query().Get("movement"),
		},
		Page: page,
		Size: size,
	}

	entries, total, err := handler.repo.List(r.Context(), params)
	if err != nil {
		log.Errorf("list records failed: %s", err)
		http.Error(w, "list records failed", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(listResponse{Entries: entries, Total: total})
	if err != nil {
		log.Errorf("list records failed, marshal: %s", err)
		http.Error(w, "list records failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.OwnerIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid id: %s", vars["id"]), http.StatusBadRequest)
		return
	}

	entry, err := handler.repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		log.Errorf("delete record %d failed: %s", id, err)
		http.Error(w, "delete record failed", http.StatusInternalServerError)
		return
	}

	// owners delete their own entries only
	if entry.OwnerID != ownerID {
		http.Error(w, "no can do", http.StatusForbidden)
		return
	}

	if err := handler.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		log.Errorf("delete record %d failed: %s", id, err)
		http.Error(w, "delete record failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, fmt.Sprintf("deleted:%d", id))
}

type leaderboardRow struct {
	Person  string  `json:"person"`
	Value   float64 `json:"value"`
	Display string  `json:"display"`
	Date    string  `json:"date"`
}

type leaderboardResponse struct {
	MovementName  string           `json:"movementName"`
	Unit          string           `json:"unit"`
	LowerIsBetter bool             `json:"lowerIsBetter"`
	Men           []leaderboardRow `json:"men"`
	Women         []leaderboardRow `json:"women"`
}

func (handler *Handler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	movementName := vars["movement"]

	topN := DefaultLeaderboardSize
	if topParam := r.URL.Query().Get("top"); topParam != "" {
		top, err := strconv.Atoi(topParam)
		if err != nil || top < 1 {
			http.Error(w, fmt.Sprintf("invalid top: %s", topParam), http.StatusBadRequest)
			return
		}
		topN = top
	}

	board, err := handler.analyzer.Leaderboard(r.Context(), movementName, topN)
	if err != nil {
		log.Errorf("leaderboard for %s failed: %s", movementName, err)
		http.Error(w, "leaderboard failed", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterLeaderboardQueries.Inc()

	resp := leaderboardResponse{
		MovementName:  board.MovementName,
		Unit:          board.Unit,
		LowerIsBetter: board.LowerIsBetter,
		Men:           rows2display(board.Men),
		Women:         rows2display(board.Women),
	}

	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("leaderboard for %s failed, marshal: %s", movementName, err)
		http.Error(w, "leaderboard failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func rows2display(rows []Row) []leaderboardRow {
	displayRows := make([]leaderboardRow, 0, len(rows))
	for _, row := range rows {
		displayRows = append(displayRows, leaderboardRow{
			Person:  row.Person,
			Value:   row.Value,
			Display: ExactValue(row.Value),
			Date:    row.Entry.Date.Format("2006-01-02"),
		})
	}
	return displayRows
}

type seriesPoint struct {
	Date      string  `json:"date"`
	Value     float64 `json:"value"`
	Display   string  `json:"display"`
	AxisLabel string  `json:"axisLabel"`
}

type seriesResponse struct {
	MovementName string        `json:"movementName"`
	Points       []seriesPoint `json:"points"`
}

func (handler *Handler) HandleSeries(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.OwnerIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	movementName := vars["movement"]

	var from, to *time.Time
	if fromParam := r.URL.Query().Get("from"); fromParam != "" {
		fromDay, err := schedule.ParseDay(fromParam)
		if err != nil {
			http.Error(w, "invalid from, expected yyyy-mm-dd", http.StatusBadRequest)
			return
		}
		from = &fromDay
	}
	if toParam := r.URL.Query().Get("to"); toParam != "" {
		toDay, err := schedule.ParseDay(toParam)
		if err != nil {
			http.Error(w, "invalid to, expected yyyy-mm-dd", http.StatusBadRequest)
			return
		}
		to = &toDay
	}
	if from != nil && to != nil && to.Before(*from) {
		http.Error(w, "to before from", http.StatusBadRequest)
		return
	}

	points, err := handler.analyzer.Series(r.Context(), ownerID, movementName, from, to)
	if err != nil {
		log.Errorf("series for %s failed: %s", movementName, err)
		http.Error(w, "series failed", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterSeriesQueries.Inc()

	resp := seriesResponse{
		MovementName: movementName,
		Points:       make([]seriesPoint, 0, len(points)),
	}
	for _, point := range points {
		resp.Points = append(resp.Points, seriesPoint{
			Date:      point.Date.Format("2006-01-02"),
			Value:     point.Value,
			Display:   ExactValue(point.Value),
			AxisLabel: AxisLabel(point.Value),
		})
	}

	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("series for %s failed, marshal: %s", movementName, err)
		http.Error(w, "series failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}
