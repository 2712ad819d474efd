package schedule

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mkovacc/liftboard/internal/telemetry/tracing"
	"github.com/mkovacc/liftboard/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	calendar *Calendar
}

func NewHandler(calendar *Calendar) *Handler {
	return &Handler{
		calendar: calendar,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/schedule/day/{date}", handler.HandleDay).Methods("GET", "OPTIONS").Name("schedule-day")
	router.HandleFunc("/schedule/today", handler.HandleToday).Methods("GET", "OPTIONS").Name("schedule-today")
	router.HandleFunc("/schedule/cycles", handler.HandleCycles).Methods("GET", "OPTIONS").Name("schedule-cycles")
}

type DayResponse struct {
	Date     string   `json:"date"`
	Movement Movement `json:"movement"`
}

type cycleResponse struct {
	Name     string              `json:"name"`
	Start    string              `json:"start"`
	End      string              `json:"end"`
	Template map[string]Movement `json:"template"`
}

func (handler *Handler) HandleDay(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.schedule.day")
	defer span.End()

	vars := mux.Vars(r)
	dateStr := vars["date"]
	date, err := ParseDay(dateStr)
	if err != nil {
		log.Tracef("schedule day, bad date param: %s", err)
		http.Error(w, "error, invalid date, use YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	handler.writeDay(w, date)
}

func (handler *Handler) HandleToday(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.schedule.today")
	defer span.End()

	handler.writeDay(w, time.Now())
}

func (handler *Handler) HandleCycles(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.schedule.cycles")
	defer span.End()

	cycles := handler.calendar.Cycles()
	resp := make([]cycleResponse, 0, len(cycles))
	for _, c := range cycles {
		template := make(map[string]Movement, len(c.Template))
		for weekday, movement := range c.Template {
			template[weekday.String()] = movement
		}
		resp = append(resp, cycleResponse{
			Name:     c.Name,
			Start:    c.Start.Format("2006-01-02"),
			End:      c.End.Format("2006-01-02"),
			Template: template,
		})
	}

	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("failed to marshal cycles: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) writeDay(w http.ResponseWriter, date time.Time) {
	movement := handler.calendar.Resolve(date)
	respJson, err := json.Marshal(DayResponse{
		Date:     Day(date).Format("2006-01-02"),
		Movement: movement,
	})
	if err != nil {
		log.Errorf("failed to marshal day response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}
