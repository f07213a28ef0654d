package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/xylem-api/internal/domain/entity"
	"github.com/sangkips/xylem-api/internal/domain/repository"
	"github.com/sangkips/xylem-api/pkg/apperror"
	"github.com/sangkips/xylem-api/pkg/districts"
	"github.com/sangkips/xylem-api/pkg/notify"
	"github.com/sangkips/xylem-api/pkg/pagination"
	"github.com/sangkips/xylem-api/pkg/utils"
)

const generatedPasswordLength = 8

// MarketingRepService handles representative onboarding and maintenance
type MarketingRepService struct {
	repRepo   repository.MarketingRepRepository
	userRepo  repository.UserRepository
	txManager repository.TxManager
	catalog   *districts.Catalog
	notifier  notify.Notifier
}

// NewMarketingRepService creates a new marketing representative service
func NewMarketingRepService(
	repRepo repository.MarketingRepRepository,
	userRepo repository.UserRepository,
	txManager repository.TxManager,
	catalog *districts.Catalog,
	notifier notify.Notifier,
) *MarketingRepService {
	return &MarketingRepService{
		repRepo:   repRepo,
		userRepo:  userRepo,
		txManager: txManager,
		catalog:   catalog,
		notifier:  notifier,
	}
}

// MarketingRepInput represents the create/update input. On update nil
// fields are left unchanged.
type MarketingRepInput struct {
	Name        *string
	PhoneNumber *string
	Email       *string
	District    *string
	SubDistrict *string
}

// CreateMarketingRep creates the representative and its login in one
// transaction, then emails the generated credentials.
func (s *MarketingRepService) CreateMarketingRep(ctx context.Context, input *MarketingRepInput) (*entity.MarketingRepresentative, error) {
	rep := &entity.MarketingRepresentative{}
	if err := s.apply(ctx, rep, input, true); err != nil {
		return nil, err
	}

	password, err := utils.RandomPassword(generatedPasswordLength)
	if err != nil {
		return nil, err
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username:                  rep.Email,
		Email:                     rep.Email,
		Password:                  hashed,
		FirstName:                 rep.Name,
		IsMarketingRepresentative: true,
	}
	rep.EmployeeID = utils.GenerateEmployeeID()

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.userRepo.Create(ctx, user); err != nil {
			return err
		}
		rep.UserID = user.ID
		return s.repRepo.Create(ctx, rep)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, notify.Notification{
		Channel:    notify.ChannelEmail,
		Template:   notify.TemplateRepCredentials,
		Recipients: []string{rep.Email},
		Payload: map[string]string{
			"Name":       rep.Name,
			"EmployeeID": rep.EmployeeID,
			"Username":   user.Username,
			"Password":   password,
		},
	})
	return rep, nil
}

// GetMarketingRep retrieves a representative by ID
func (s *MarketingRepService) GetMarketingRep(ctx context.Context, id uuid.UUID) (*entity.MarketingRepresentative, error) {
	rep, err := s.repRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, apperror.NewNotFoundError("Marketing representative")
	}
	return rep, nil
}

// ForUser resolves the representative profile of a logged in user
func (s *MarketingRepService) ForUser(ctx context.Context, userID uuid.UUID) (*entity.MarketingRepresentative, error) {
	rep, err := s.repRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, apperror.NewForbiddenError("User is not a Marketing Representative.")
	}
	return rep, nil
}

// ListMarketingReps lists representatives
func (s *MarketingRepService) ListMarketingReps(ctx context.Context, search string, params *pagination.PaginationParams) (*pagination.Page[entity.MarketingRepresentative], error) {
	reps, total, err := s.repRepo.List(ctx, search, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPage(reps, params, total)
}

// UpdateMarketingRep updates a representative. A new email also becomes the
// login username.
func (s *MarketingRepService) UpdateMarketingRep(ctx context.Context, id uuid.UUID, input *MarketingRepInput) (*entity.MarketingRepresentative, error) {
	rep, err := s.GetMarketingRep(ctx, id)
	if err != nil {
		return nil, err
	}
	oldEmail := rep.Email
	if err := s.apply(ctx, rep, input, false); err != nil {
		return nil, err
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.repRepo.Update(ctx, rep); err != nil {
			return err
		}
		if rep.Email == oldEmail {
			return nil
		}
		user, err := s.userRepo.GetByID(ctx, rep.UserID)
		if err != nil || user == nil {
			return err
		}
		user.Email = rep.Email
		user.Username = rep.Email
		return s.userRepo.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return rep, nil
}

// DeleteMarketingRep deletes the representative and its login. Fabricators
// and distributors keep their reference to the deleted representative.
func (s *MarketingRepService) DeleteMarketingRep(ctx context.Context, id uuid.UUID) error {
	rep, err := s.GetMarketingRep(ctx, id)
	if err != nil {
		return err
	}
	return s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.repRepo.Delete(ctx, rep.ID); err != nil {
			return err
		}
		return s.userRepo.Delete(ctx, rep.UserID)
	})
}

func (s *MarketingRepService) apply(ctx context.Context, rep *entity.MarketingRepresentative, input *MarketingRepInput, create bool) error {
	var v validator
	set := func(field string, src *string, dst *string) {
		if src == nil {
			if create {
				v.add(field, msgRequired)
			}
			return
		}
		val := strings.TrimSpace(*src)
		if val == "" {
			v.add(field, msgRequired)
			return
		}
		*dst = val
	}
	set("name", input.Name, &rep.Name)
	set("phone_number", input.PhoneNumber, &rep.PhoneNumber)
	set("email", input.Email, &rep.Email)
	set("district", input.District, &rep.District)
	set("sub_district", input.SubDistrict, &rep.SubDistrict)
	if input.Email != nil && rep.Email != "" && !strings.Contains(rep.Email, "@") {
		v.add("email", "Enter a valid email address.")
	}
	v.location(s.catalog, rep.District, rep.SubDistrict)
	if err := v.err(); err != nil {
		return err
	}

	if input.Email == nil {
		return nil
	}
	existing, err := s.repRepo.GetByEmail(ctx, rep.Email)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != rep.ID {
		return apperror.NewFieldError("email", "marketing representative with this email already exists.")
	}
	user, err := s.userRepo.GetByEmail(ctx, rep.Email)
	if err != nil {
		return err
	}
	if user != nil && user.ID != rep.UserID {
		return apperror.NewFieldError("email", "A user with that email already exists.")
	}
	return nil
}
