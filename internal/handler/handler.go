package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/GoArmGo/TextForge/internal/domain"
	"github.com/GoArmGo/TextForge/internal/session"
	"github.com/GoArmGo/TextForge/internal/usecase"
)

// Handler carries the HTTP endpoints for accounts and text generation.
type Handler struct {
	accounts    usecase.AccountUseCase
	generations usecase.GenerationUseCase
	sessions    *session.Store
	codec       *session.TokenCodec
	logger      *slog.Logger
}

func NewHandler(
	accounts usecase.AccountUseCase,
	generations usecase.GenerationUseCase,
	sessions *session.Store,
	codec *session.TokenCodec,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		accounts:    accounts,
		generations: generations,
		sessions:    sessions,
		codec:       codec,
		logger:      logger,
	}
}

// respondWithJSON sends a JSON response to the client.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithError sends a JSON error body.
func respondWithError(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, map[string]string{"error": message}, logger)
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	_, err := h.accounts.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict):
			respondWithError(w, http.StatusBadRequest, "Email already registered", h.logger)
		case errors.Is(err, domain.ErrInvalidInput):
			respondWithError(w, http.StatusBadRequest, "Username, email and password are required", h.logger)
		default:
			h.logger.Error("registration failed", "error", err)
			respondWithError(w, http.StatusInternalServerError, "Registration failed", h.logger)
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{"message": "User registered successfully"}, h.logger)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks credentials and establishes a session. The cookie value is the
// signed session token; the server-side store stays authoritative.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	user, err := h.accounts.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			respondWithError(w, http.StatusUnauthorized, "Invalid credentials", h.logger)
			return
		}
		h.logger.Error("login failed", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Login failed", h.logger)
		return
	}

	sessionID := h.sessions.Create(user.ID)
	token, err := h.codec.Encode(sessionID)
	if err != nil {
		h.sessions.Delete(sessionID)
		h.logger.Error("failed to issue session token", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Login failed", h.logger)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	h.logger.Info("session established", "user_id", user.ID)
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Login successful"}, h.logger)
}

// Logout ends the current session. Runs behind RequireSession; deleting an
// already-gone session is a no-op.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(session.CookieName); err == nil && cookie.Value != "" {
		if sessionID, err := h.codec.Decode(cookie.Value); err == nil {
			h.sessions.Delete(sessionID)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"}, h.logger)
}

type generateRequest struct {
	InputText string `json:"input_text"`
}

// Generate forwards the prompt to the generation workflow.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required", h.logger)
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	// Detached from the request context: a client disconnect mid-generation
	// does not abandon the engine call, so a completed generation is still
	// recorded. The engine client carries its own timeout.
	event, err := h.generations.Generate(context.WithoutCancel(r.Context()), userID, req.InputText)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			respondWithError(w, http.StatusBadRequest, "Input text is required", h.logger)
		case errors.Is(err, domain.ErrUnauthorized):
			respondWithError(w, http.StatusUnauthorized, "Authentication required", h.logger)
		default:
			// The detail is already in the server log; the client gets a
			// generic message only.
			respondWithError(w, http.StatusInternalServerError, "Text generation failed", h.logger)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"generated_text": event.OutputText}, h.logger)
}

// History returns the caller's past generations.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required", h.logger)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if perPage <= 0 {
		perPage = 10
	}

	events, err := h.generations.History(r.Context(), userID, page, perPage)
	if err != nil {
		h.logger.Error("failed to fetch history", "user_id", userID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch history", h.logger)
		return
	}
	if events == nil {
		events = []domain.GenerationEvent{}
	}

	respondWithJSON(w, http.StatusOK, events, h.logger)
}
