package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/bookshelf-api/internal/api/shared"
	"github.com/phrazzld/bookshelf-api/internal/platform/logger"
	"github.com/phrazzld/bookshelf-api/internal/service"
	"github.com/phrazzld/bookshelf-api/internal/service/auth"
)

// UserHandler serves registration, login and password changes.
type UserHandler struct {
	userService service.UserService
	jwtService  auth.JWTService
	errors      *shared.ErrorResponder
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(
	userService service.UserService,
	jwtService auth.JWTService,
	responder *shared.ErrorResponder,
	logger *slog.Logger,
) *UserHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for UserHandler")
	}
	return &UserHandler{
		userService: userService,
		jwtService:  jwtService,
		errors:      responder,
		logger:      logger.With(slog.String("component", "user_handler")),
	}
}

func (h *UserHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.errors.Respond(w, r, MapError(err))
}

// Register handles POST /users/register. New users are never admins.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CredentialsRequest
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := validateCredentials(req); err != nil {
		h.fail(w, r, err)
		return
	}

	id, err := h.userService.CreateUser(r.Context(), req.UserName, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	log.Info("user registered", slog.Int64("user_id", id))
	w.WriteHeader(http.StatusCreated)
}

// Login handles POST /users/login. A successful login answers 302 with the
// token in the body.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CredentialsRequest
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := validateCredentials(req); err != nil {
		h.fail(w, r, err)
		return
	}

	user, err := h.userService.Login(r.Context(), req.UserName, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.Principal())
	if err != nil {
		log.Error("failed to generate token", slog.Int64("user_id", user.ID))
		h.fail(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusFound, TokenResponse{Token: token})
}

// ChangePassword handles PUT /users/{id}. Only the user or an admin may
// change a password.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	actor, ok := principalFromRequest(w, r, h.errors, log)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	userID, err := validateChangePassword(r, actor, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.userService.ChangePassword(r.Context(), actor, userID, req.OldPassword, req.NewPassword); err != nil {
		h.fail(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, SuccessResponse{Success: true})
}
