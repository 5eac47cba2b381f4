package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/bookshelf-api/internal/api/shared"
	"github.com/phrazzld/bookshelf-api/internal/domain"
	"github.com/phrazzld/bookshelf-api/internal/platform/logger"
	"github.com/phrazzld/bookshelf-api/internal/service"
)

// BookHandler serves the /books routes. Every route sits behind the auth middleware.
type BookHandler struct {
	bookService service.BookService
	errors      *shared.ErrorResponder
	logger      *slog.Logger
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(
	bookService service.BookService,
	responder *shared.ErrorResponder,
	logger *slog.Logger,
) *BookHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for BookHandler")
	}
	return &BookHandler{
		bookService: bookService,
		errors:      responder,
		logger:      logger.With(slog.String("component", "book_handler")),
	}
}

func (h *BookHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.errors.Respond(w, r, MapError(err))
}

// Find handles GET /books?title=
func (h *BookHandler) Find(w http.ResponseWriter, r *http.Request) {
	books, err := h.bookService.Find(r.Context(), domain.BookQuery{Title: r.URL.Query().Get("title")})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, books)
}

// Get handles GET /books/{id}
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	book, err := h.bookService.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, book)
}

// Create handles POST /books and answers with the new id only.
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	actor, ok := principalFromRequest(w, r, h.errors, log)
	if !ok {
		return
	}

	var req CreateBookRequest
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	book, err := validateCreateBook(req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	id, err := h.bookService.Create(r.Context(), actor, book)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, BookCreatedResponse{BookID: id})
}

// Update handles PUT /books/{id}. Success is false when no book has the id.
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	actor, ok := principalFromRequest(w, r, h.errors, log)
	if !ok {
		return
	}

	var req UpdateBookRequest
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	book, err := validateUpdateBook(r, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	updated, err := h.bookService.Update(r.Context(), actor, book)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, SuccessResponse{Success: updated})
}

// Delete handles DELETE /books with a body of {"ids": [...]}.
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req DeleteRequest
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	ids, ok := validateDeleteIDs(req)
	if !ok {
		h.fail(w, r, shared.NewParamError("ids", domain.ErrInvalidID))
		return
	}

	if len(ids) > 0 {
		if err := h.bookService.Remove(r.Context(), ids); err != nil {
			h.fail(w, r, err)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
}
