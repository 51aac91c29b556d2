package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rmedina-dev/inkwell-backend/auth"
	"github.com/rmedina-dev/inkwell-backend/errs"
	"github.com/rmedina-dev/inkwell-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	users     userStore
	tokens    *auth.TokenIssuer
}

func newAuthHandler(users userStore, tokens *auth.TokenIssuer) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		users:     users,
		tokens:    tokens,
	}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// signup creates a user and returns a bearer token for it.
func (h authHandler) signup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError(err))
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		switch {
		case req.Name == "":
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("name"))
			return
		case req.Email == "":
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("email"))
			return
		case req.Password == "":
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("password"))
			return
		}

		existing, err := h.users.FindByEmail(req.Email)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "user", err))
			return
		}
		if existing != nil {
			h.responder.WriteError(w, errs.NewConflictError("email already registered"))
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user := models.User{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: hash,
			CreatedAt:    time.Now(),
		}
		if err := h.users.Add(&user); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("create", "user", err))
			return
		}

		token, err := h.tokens.Issue(user.ID.String())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, map[string]interface{}{
			"message": "User registered successfully",
			"token":   token,
			"user":    user,
		})
	}
}

// login authenticates by email and password and returns a bearer token.
// Unknown email and wrong password produce the same response, so callers
// cannot probe which addresses have accounts.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError(err))
			return
		}

		switch {
		case req.Email == "":
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("email"))
			return
		case req.Password == "":
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("password"))
			return
		}

		user, err := h.users.FindByEmail(strings.TrimSpace(req.Email))
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "user", err))
			return
		}
		if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid email or password"))
			return
		}

		token, err := h.tokens.Issue(user.ID.String())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"message": "Login successful",
			"token":   token,
			"user":    user,
		})
	}
}
