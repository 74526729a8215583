package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/arthurCDG/Vinted-clone-server/internal/domain"
	"github.com/arthurCDG/Vinted-clone-server/internal/usecase"
)

// UserService and OfferService are what the handlers need from the usecase
// layer; the concrete usecases satisfy them.
type UserService interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
}

type OfferService interface {
	Publish(ctx context.Context, owner *domain.User, in usecase.PublishInput) (*domain.Offer, error)
	Delete(ctx context.Context, callerID, id string) error
	Modify(ctx context.Context, callerID, id string, in usecase.ModifyInput) (*domain.Offer, error)
	GetByID(ctx context.Context, id string) (*domain.Offer, error)
	Search(ctx context.Context, query domain.OfferQuery) ([]*domain.OfferSummary, int64, error)
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondError maps domain errors onto HTTP statuses: validation 400,
// missing/invalid credentials 401, ownership 403, absent records 404,
// anything else is a downstream failure surfaced as 500 with the raw
// message.
func respondError(w http.ResponseWriter, err error) {
	respondJSON(w, statusForError(err), errorResponse{Error: err.Error()})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrPasswordRequired),
		errors.Is(err, domain.ErrEmailRequired),
		errors.Is(err, domain.ErrUsernameRequired),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrPriceTooHigh),
		errors.Is(err, domain.ErrDescriptionTooLong),
		errors.Is(err, domain.ErrNameTooLong):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrOfferNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// formFile reads an optional uploaded file; a missing file is not an error.
func formFile(r *http.Request, field string) (string, []byte, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil, nil
		}
		return "", nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, err
	}
	return header.Filename, data, nil
}

const maxUploadSize = 10 << 20 // 10 MiB multipart memory limit

// parseForm handles both multipart (file uploads) and urlencoded bodies.
func parseForm(r *http.Request) error {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return r.ParseForm()
		}
		return err
	}
	return nil
}
