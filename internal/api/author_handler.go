package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/bookshelf-api/internal/api/shared"
	"github.com/phrazzld/bookshelf-api/internal/domain"
	"github.com/phrazzld/bookshelf-api/internal/platform/logger"
	"github.com/phrazzld/bookshelf-api/internal/service"
)

// AuthorHandler serves the /authors routes. Deletion consults the book
// service so that referenced authors are never removed.
type AuthorHandler struct {
	authorService service.AuthorService
	bookService   service.BookService
	errors        *shared.ErrorResponder
	logger        *slog.Logger
}

// NewAuthorHandler creates a new AuthorHandler.
func NewAuthorHandler(
	authorService service.AuthorService,
	bookService service.BookService,
	responder *shared.ErrorResponder,
	logger *slog.Logger,
) *AuthorHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AuthorHandler")
	}
	return &AuthorHandler{
		authorService: authorService,
		bookService:   bookService,
		errors:        responder,
		logger:        logger.With(slog.String("component", "author_handler")),
	}
}

func (h *AuthorHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.errors.Respond(w, r, MapError(err))
}

// Find handles GET /authors?name=
func (h *AuthorHandler) Find(w http.ResponseWriter, r *http.Request) {
	authors, err := h.authorService.Find(r.Context(), domain.AuthorQuery{Name: r.URL.Query().Get("name")})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, authors)
}

// Get handles GET /authors/{id}
func (h *AuthorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	author, err := h.authorService.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, author)
}

// Create handles POST /authors and answers with the new id only.
func (h *AuthorHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	actor, ok := principalFromRequest(w, r, h.errors, log)
	if !ok {
		return
	}

	var req CreateAuthorRequest
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	author, err := validateCreateAuthor(req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	id, err := h.authorService.Create(r.Context(), actor, author)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, AuthorCreatedResponse{AuthorID: id})
}

// Update handles PUT /authors/{id}.
func (h *AuthorHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	actor, ok := principalFromRequest(w, r, h.errors, log)
	if !ok {
		return
	}

	var req UpdateAuthorRequest
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	author, err := validateUpdateAuthor(r, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	updated, err := h.authorService.Update(r.Context(), actor, author)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, SuccessResponse{Success: updated})
}

// Delete handles DELETE /authors. If any book lists one of the ids, nothing
// is deleted and the blocking books are returned with 405.
func (h *AuthorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req DeleteRequest
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	ids, ok := validateDeleteIDs(req)
	if !ok {
		h.fail(w, r, shared.NewBadRequestError(shared.MsgInvalidAuthorIDs, domain.ErrInvalidID))
		return
	}
	if len(ids) == 0 {
		w.WriteHeader(http.StatusOK)
		return
	}

	blocking, err := h.bookService.Find(r.Context(), domain.BookQuery{Authors: ids})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if len(blocking) > 0 {
		log.Info("author deletion blocked by books",
			slog.Int("authors", len(ids)),
			slog.Int("books", len(blocking)))
		h.fail(w, r, shared.NewConflictError(blocking))
		return
	}

	if err := h.authorService.Remove(r.Context(), ids); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
