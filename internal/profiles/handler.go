package profiles

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mkovacc/liftboard/internal/auth"
	"github.com/mkovacc/liftboard/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	cache *Cache
}

func NewHandler(cache *Cache) *Handler {
	return &Handler{cache: cache}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-profile")
	router.HandleFunc("", handler.HandleUpsert).Methods("POST", "OPTIONS").Name("save-profile")
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.OwnerIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	profile, err := handler.cache.Get(r.Context(), ownerID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		log.Errorf("get profile for %s failed: %s", ownerID, err)
		http.Error(w, "get profile failed", http.StatusInternalServerError)
		return
	}

	profileJson, err := json.Marshal(profile)
	if err != nil {
		log.Errorf("get profile for %s failed, marshal: %s", ownerID, err)
		http.Error(w, "get profile failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, profileJson)
}

type upsertRequest struct {
	DisplayName string `json:"displayName"`
	Gender      string `json:"gender"`
}

func (handler *Handler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.OwnerIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "save profile failed", http.StatusBadRequest)
		return
	}

	saved, err := handler.cache.Upsert(r.Context(), Profile{
		OwnerID:     ownerID,
		DisplayName: req.DisplayName,
		Gender:      req.Gender,
	})
	if err != nil {
		log.Errorf("save profile for %s failed: %s", ownerID, err)
		http.Error(w, "save profile failed", http.StatusBadRequest)
		return
	}

	savedJson, err := json.Marshal(saved)
	if err != nil {
		log.Errorf("save profile for %s failed, marshal: %s", ownerID, err)
		http.Error(w, "save profile failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, savedJson)
}
