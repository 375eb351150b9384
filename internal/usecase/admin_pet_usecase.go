package usecase

import (
	"context"
	"errors"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/jr777pal/PetNest-India/internal/domain/model"
	repo "github.com/jr777pal/PetNest-India/internal/repository"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

type PetInput struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Breed       string `json:"breed"`
	Age         int    `json:"age"`
	Gender      string `json:"gender"`
	Price       int64  `json:"price"`
	ImageURL    string `json:"image_url"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
}

// 画像アップロード用の署名付きURL
type PresignedUpload struct {
	UploadURL string    `json:"upload_url"`
	PublicURL string    `json:"public_url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// 画像置き場（S3など）の約束
type ImageStorage interface {
	PresignUpload(ctx context.Context, key, contentType string) (PresignedUpload, error)
}

type ImageUploadInput struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
}

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type AdminPetUsecase struct {
	pets    repo.PetRepository
	tx      repo.TransactionManager
	storage ImageStorage
	logger  *log.Logger
}

func NewAdminPetUsecase(pets repo.PetRepository, tx repo.TransactionManager, storage ImageStorage, logger *log.Logger) *AdminPetUsecase {
	return &AdminPetUsecase{pets: pets, tx: tx, storage: storage, logger: logger}
}

func (u *AdminPetUsecase) List(ctx context.Context) ([]model.Pet, error) {
	pets, err := u.pets.ListAll(ctx)
	if err != nil {
		u.logger.Errorf("admin list pets: %v", err)
		return nil, dbError()
	}
	return pets, nil
}

func (u *AdminPetUsecase) Create(ctx context.Context, actorUserID string, in PetInput) (model.Pet, error) {
	p, err := petFromInput(in)
	if err != nil {
		return model.Pet{}, err
	}
	if in.Available == nil {
		p.Available = true
	}

	var created model.Pet
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := r.Pets().Create(ctx, p)
		if err != nil {
			u.logger.Errorf("admin create pet: %v", err)
			return dbError()
		}
		created = c
		return audit(ctx, r, actorUserID, model.AuditActionCreatePet, model.AuditResourcePet, c.ID, "", toJSON(c))
	})
	if err != nil {
		return model.Pet{}, err
	}
	return created, nil
}

func (u *AdminPetUsecase) Update(ctx context.Context, actorUserID, petID string, in PetInput) (model.Pet, error) {
	if petID == "" {
		return model.Pet{}, badRequest("invalid id")
	}
	p, err := petFromInput(in)
	if err != nil {
		return model.Pet{}, err
	}

	var updated model.Pet
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Pets().FindByID(ctx, petID)
		if errors.Is(err, repo.ErrNotFound) {
			return notFound()
		}
		if err != nil {
			return dbError()
		}

		p.ID = petID
		if in.Available == nil {
			p.Available = before.Available
		}
		if err := r.Pets().Update(ctx, p); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return notFound()
			}
			u.logger.Errorf("admin update pet %s: %v", petID, err)
			return dbError()
		}

		p.CreatedAt = before.CreatedAt
		p.UpdatedAt = time.Now()
		updated = p
		return audit(ctx, r, actorUserID, model.AuditActionUpdatePet, model.AuditResourcePet, petID, toJSON(before), toJSON(p))
	})
	if err != nil {
		return model.Pet{}, err
	}
	return updated, nil
}

// 一覧の表示・非表示を切り替える
func (u *AdminPetUsecase) SetAvailability(ctx context.Context, actorUserID, petID string, available bool) error {
	if petID == "" {
		return badRequest("invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Pets().FindByID(ctx, petID)
		if errors.Is(err, repo.ErrNotFound) {
			return notFound()
		}
		if err != nil {
			return dbError()
		}
		if before.Available == available {
			return nil
		}

		if err := r.Pets().SetAvailability(ctx, petID, available); err != nil {
			u.logger.Errorf("admin availability pet %s: %v", petID, err)
			return dbError()
		}
		return audit(ctx, r, actorUserID, model.AuditActionUpdateAvailability, model.AuditResourcePet, petID,
			toJSON(map[string]bool{"available": before.Available}),
			toJSON(map[string]bool{"available": available}))
	})
}

func (u *AdminPetUsecase) Delete(ctx context.Context, actorUserID, petID string) error {
	if petID == "" {
		return badRequest("invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Pets().FindByID(ctx, petID)
		if errors.Is(err, repo.ErrNotFound) {
			return notFound()
		}
		if err != nil {
			return dbError()
		}

		if err := r.Pets().Delete(ctx, petID); err != nil {
			u.logger.Errorf("admin delete pet %s: %v", petID, err)
			return dbError()
		}
		return audit(ctx, r, actorUserID, model.AuditActionDeletePet, model.AuditResourcePet, petID, toJSON(before), "")
	})
}

// 画像をブラウザから直接アップロードするためのURLを発行
func (u *AdminPetUsecase) ImageUploadURL(ctx context.Context, in ImageUploadInput) (PresignedUpload, error) {
	if u.storage == nil {
		return PresignedUpload{}, NewHTTPError(http.StatusServiceUnavailable, "image storage is not configured")
	}

	ct := strings.ToLower(strings.TrimSpace(in.ContentType))
	ext, ok := allowedImageTypes[ct]
	if !ok {
		return PresignedUpload{}, badRequest("unsupported content_type")
	}
	if e := strings.ToLower(path.Ext(in.FileName)); e == ".jpeg" || e == ".jpg" || e == ".png" || e == ".webp" {
		ext = e
	}

	key := "pets/" + uuid.NewString() + ext
	out, err := u.storage.PresignUpload(ctx, key, ct)
	if err != nil {
		u.logger.Errorf("presign %s: %v", key, err)
		return PresignedUpload{}, NewHTTPError(http.StatusBadGateway, "failed to create upload url")
	}
	return out, nil
}

func petFromInput(in PetInput) (model.Pet, error) {
	name := strings.TrimSpace(in.Name)
	petType := strings.ToLower(strings.TrimSpace(in.Type))
	if name == "" || petType == "" {
		return model.Pet{}, badRequest(MsgFillRequired)
	}
	if in.Price <= 0 {
		return model.Pet{}, badRequest("price must be positive")
	}
	if in.Age < 0 {
		return model.Pet{}, badRequest("age must not be negative")
	}

	p := model.Pet{
		Name:        name,
		Type:        model.PetType(petType),
		Breed:       strings.TrimSpace(in.Breed),
		Age:         in.Age,
		Gender:      strings.TrimSpace(in.Gender),
		Price:       in.Price,
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Description: in.Description,
	}
	if in.Available != nil {
		p.Available = *in.Available
	}
	return p, nil
}

func audit(ctx context.Context, r repo.TxRepos, actor string, action model.AuditAction, rt model.AuditResourceType, id, before, after string) error {
	if err := r.AuditLogs().Create(ctx, model.AuditLog{
		ActorUserID:  actor,
		Action:       action,
		ResourceType: rt,
		ResourceID:   id,
		BeforeJSON:   before,
		AfterJSON:    after,
		CreatedAt:    time.Now(),
	}); err != nil {
		return dbError()
	}
	return nil
}
