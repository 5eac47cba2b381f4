package api

import (
	"net/http"

	"github.com/phrazzld/bookshelf-api/internal/api/shared"
	"github.com/phrazzld/bookshelf-api/internal/domain"
)

// credentialsField is the field named by every register and login failure,
// so a response never tells which of the two was wrong.
const credentialsField = "userName or password"

func toAuthorIDs(vs []any) ([]int64, error) {
	if vs == nil {
		return nil, nil
	}
	ids, ok := domain.ToSequenceIDs(vs)
	if !ok {
		return nil, shared.NewParamError("authors", domain.ErrInvalidID)
	}
	return ids, nil
}

// blankToNil treats an empty ISBN as absent.
func blankToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func validateCreateBook(req CreateBookRequest) (*domain.Book, error) {
	if err := shared.ValidateRequest(req); err != nil {
		return nil, err
	}
	authors, err := toAuthorIDs(req.Authors)
	if err != nil {
		return nil, err
	}
	if authors == nil {
		authors = []int64{}
	}
	return &domain.Book{Title: req.Title, ISBN: blankToNil(req.ISBN), Authors: authors}, nil
}

// validateUpdateBook requires a body id that agrees with the URL. A nil ISBN
// or nil Authors in the result leaves the stored value alone; an empty ISBN
// is passed through so the store clears it.
func validateUpdateBook(r *http.Request, req UpdateBookRequest) (*domain.Book, error) {
	id, ok := domain.ToSequenceID(req.ID)
	if !ok || !pathMatches(r, id) {
		return nil, shared.NewParamError("id", domain.ErrInvalidID)
	}
	if err := shared.ValidateRequest(req); err != nil {
		return nil, err
	}
	authors, err := toAuthorIDs(req.Authors)
	if err != nil {
		return nil, err
	}
	return &domain.Book{ID: id, Title: req.Title, ISBN: req.ISBN, Authors: authors}, nil
}

func validateCreateAuthor(req CreateAuthorRequest) (*domain.Author, error) {
	if err := shared.ValidateRequest(req); err != nil {
		return nil, err
	}
	dob, err := domain.ParseDate(req.DOB)
	if err != nil {
		return nil, shared.NewParamError("dob", err)
	}
	return &domain.Author{Name: req.Name, DOB: dob}, nil
}

func validateUpdateAuthor(r *http.Request, req UpdateAuthorRequest) (*domain.Author, error) {
	id, ok := domain.ToSequenceID(req.ID)
	if !ok || !pathMatches(r, id) {
		return nil, shared.NewParamError("id", domain.ErrInvalidID)
	}
	author, err := validateCreateAuthor(CreateAuthorRequest{Name: req.Name, DOB: req.DOB})
	if err != nil {
		return nil, err
	}
	author.ID = id
	return author, nil
}

// validateDeleteIDs converts the ids of a delete request. An absent or
// empty list is valid and yields no ids.
func validateDeleteIDs(req DeleteRequest) ([]int64, bool) {
	if len(req.IDs) == 0 {
		return nil, true
	}
	return domain.ToSequenceIDs(req.IDs)
}

func validateCredentials(req CredentialsRequest) error {
	if err := shared.ValidateRequest(req); err != nil {
		return shared.NewParamError(credentialsField, err)
	}
	return nil
}

// validateChangePassword checks the fields in order and then whether actor
// may change the target's password. An unauthorized actor is reported as an
// invalid userId.
func validateChangePassword(r *http.Request, actor domain.Principal, req ChangePasswordRequest) (int64, error) {
	if err := shared.ValidateRequest(req); err != nil {
		return 0, err
	}
	userID, ok := domain.ToSequenceID(req.UserID)
	if !ok || !pathMatches(r, userID) {
		return 0, shared.NewParamError("userId", domain.ErrInvalidID)
	}
	if !actor.CanChangePasswordOf(userID) {
		return 0, shared.NewParamError("userId", domain.ErrValidation)
	}
	return userID, nil
}
