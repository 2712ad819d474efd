package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mkovacc/liftboard/internal/telemetry/metrics"
	"github.com/mkovacc/liftboard/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
	repo    *Repo
	metrics *metrics.Manager
}

func NewHandler(service *Service, repo *Repo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service: service,
		repo:    repo,
		metrics: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/login", handler.handleLogin).Methods("POST", "OPTIONS").Name("login")
	router.HandleFunc("/logout", handler.handleLogout).Methods("GET", "OPTIONS").Name("logout")
	router.HandleFunc("/register", handler.handleRegister).Methods("POST", "OPTIONS").Name("register")
	router.HandleFunc("/code", handler.handleIssueCode).Methods("POST", "OPTIONS").Name("issue-code")
}

type loginResponse struct {
	Token   string `json:"token"`
	OwnerID string `json:"ownerId"`
}

func (handler *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var credential Credential
	if err := json.NewDecoder(r.Body).Decode(&credential); err != nil {
		if errors.Is(err, ErrInvalidCredential) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("login failed, decode credential: %s", err)
		http.Error(w, "login failed", http.StatusBadRequest)
		return
	}

	token, ownerID, err := handler.service.EstablishSession(r.Context(), credential, time.Now())
	if err != nil {
		if errors.Is(err, ErrWrongCredentials) || errors.Is(err, ErrUnknownCredential) {
			userIp, ipErr := pkg.ReadUserIP(r)
			if ipErr != nil {
				userIp = r.RemoteAddr
			}
			log.Warnf("[%s] failed login attempt from %s", credential.Kind, userIp)
			http.Error(w, "wrong credentials", http.StatusUnauthorized)
			return
		}
		log.Errorf("login failed, establish session: %s", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterLogins.Inc()
	log.Tracef("[%s] login ok, owner: %s", credential.Kind, ownerID)

	resp, err := json.Marshal(loginResponse{Token: token, OwnerID: ownerID})
	if err != nil {
		log.Errorf("login failed, marshal response: %s", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resp)
}

func (handler *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("X-LIFT-TOKEN")
	if token == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	loggedOut, err := handler.service.Logout(r.Context(), token)
	if err != nil {
		log.Errorf("logout failed: %s", err)
		http.Error(w, "logout failed", http.StatusInternalServerError)
		return
	}
	if !loggedOut {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	pkg.WriteTextResponseOK(w, "logged-out")
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (handler *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "register failed", http.StatusBadRequest)
		return
	}
	if req.Username == "" || len(req.Password) < 8 {
		http.Error(w, "username and a password of at least 8 chars required", http.StatusBadRequest)
		return
	}

	account, err := handler.repo.Create(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			http.Error(w, "username taken", http.StatusConflict)
			return
		}
		log.Errorf("register failed: %s", err)
		http.Error(w, "register failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"ownerId": %q}`, account.OwnerID))
}

type issueCodeRequest struct {
	Kind CredentialKind `json:"kind"`
}

// handleIssueCode creates a single-use login code for the signed-in owner,
// meant to sign in another device without retyping the password.
func (handler *Handler) handleIssueCode(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := OwnerIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req issueCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "issue code failed", http.StatusBadRequest)
		return
	}

	code, err := handler.service.IssueCode(r.Context(), req.Kind, ownerID)
	if err != nil {
		if errors.Is(err, ErrUnknownCredential) {
			http.Error(w, "unknown code kind", http.StatusBadRequest)
			return
		}
		log.Errorf("issue code failed: %s", err)
		http.Error(w, "issue code failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"code": %q}`, code))
}
