package usecase

import (
	"context"
	"net/http"
	"net/mail"
	"strings"

	"github.com/jr777pal/PetNest-India/internal/domain/model"
	repo "github.com/jr777pal/PetNest-India/internal/repository"

	"github.com/labstack/gommon/log"
)

// 里親希望フォーム
type AdoptionRequestInput struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	PetType        string `json:"pet_type"`
	PreferredAge   string `json:"preferred_age"`
	PreferredColor string `json:"preferred_color"`
	Budget         string `json:"budget"`
	Experience     string `json:"experience"`
	Message        string `json:"message"`
}

type AdoptionRequestListOutput struct {
	Items []model.AdoptionRequest `json:"items"`
	Total int64                   `json:"total"`
}

type AdoptionUsecase struct {
	requests repo.AdoptionRequestRepository
	logger   *log.Logger
}

func NewAdoptionUsecase(requests repo.AdoptionRequestRepository, logger *log.Logger) *AdoptionUsecase {
	return &AdoptionUsecase{requests: requests, logger: logger}
}

// userIDは未ログインなら空
func (u *AdoptionUsecase) Submit(ctx context.Context, userID string, in AdoptionRequestInput) (model.AdoptionRequest, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	phone := strings.TrimSpace(in.Phone)
	if name == "" || email == "" || phone == "" {
		return model.AdoptionRequest{}, badRequest(MsgFillRequired)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return model.AdoptionRequest{}, badRequest("invalid email")
	}

	req := model.AdoptionRequest{
		Name:           name,
		Email:          email,
		Phone:          phone,
		Address:        strings.TrimSpace(in.Address),
		PetType:        strings.TrimSpace(in.PetType),
		PreferredAge:   strings.TrimSpace(in.PreferredAge),
		PreferredColor: strings.TrimSpace(in.PreferredColor),
		Budget:         strings.TrimSpace(in.Budget),
		Experience:     strings.TrimSpace(in.Experience),
		Message:        in.Message,
	}
	if userID != "" {
		req.UserID = &userID
	}

	created, err := u.requests.Create(ctx, req)
	if err != nil {
		u.logger.Errorf("create adoption request: %v", err)
		return model.AdoptionRequest{}, NewHTTPError(http.StatusInternalServerError, "Failed to submit application")
	}
	return created, nil
}

func (u *AdoptionUsecase) List(ctx context.Context, limit, offset int) (AdoptionRequestListOutput, error) {
	if limit < 1 || limit > 100 {
		return AdoptionRequestListOutput{}, badRequest("invalid limit")
	}
	if offset < 0 {
		return AdoptionRequestListOutput{}, badRequest("invalid offset")
	}

	items, total, err := u.requests.List(ctx, limit, offset)
	if err != nil {
		u.logger.Errorf("list adoption requests: %v", err)
		return AdoptionRequestListOutput{}, dbError()
	}
	return AdoptionRequestListOutput{Items: items, Total: total}, nil
}
