package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/xylem-api/internal/domain/entity"
	"github.com/sangkips/xylem-api/internal/domain/enum"
	"github.com/sangkips/xylem-api/internal/domain/repository"
	"github.com/sangkips/xylem-api/pkg/apperror"
	"github.com/sangkips/xylem-api/pkg/districts"
	"github.com/sangkips/xylem-api/pkg/notify"
	"github.com/sangkips/xylem-api/pkg/pagination"
	"github.com/sangkips/xylem-api/pkg/utils"
)

// FabricatorService handles fabricator registration and maintenance
type FabricatorService struct {
	fabricatorRepo  repository.FabricatorRepository
	distributorRepo repository.DistributorRepository
	repRepo         repository.MarketingRepRepository
	txManager       repository.TxManager
	catalog         *districts.Catalog
	notifier        notify.Notifier
}

// NewFabricatorService creates a new fabricator service
func NewFabricatorService(
	fabricatorRepo repository.FabricatorRepository,
	distributorRepo repository.DistributorRepository,
	repRepo repository.MarketingRepRepository,
	txManager repository.TxManager,
	catalog *districts.Catalog,
	notifier notify.Notifier,
) *FabricatorService {
	return &FabricatorService{
		fabricatorRepo:  fabricatorRepo,
		distributorRepo: distributorRepo,
		repRepo:         repRepo,
		txManager:       txManager,
		catalog:         catalog,
		notifier:        notifier,
	}
}

// RegisterFabricatorInput represents a self-registration
type RegisterFabricatorInput struct {
	Name               string
	Institution        string
	PhoneNumber        string
	District           string
	SubDistrict        string
	Address            *string
	DistributorID      string
	TradeLicenseImgURL string
	VisitingCardImgURL string
	ProfileImgURL      string
}

// Register creates a pending fabricator and texts its registration number
// once the insert has committed.
func (s *FabricatorService) Register(ctx context.Context, input *RegisterFabricatorInput) (*entity.Fabricator, error) {
	var v validator
	v.required("name", input.Name)
	v.required("institution", input.Institution)
	v.required("phone_number", input.PhoneNumber)
	v.required("district", input.District)
	v.required("sub_district", input.SubDistrict)
	v.required("trade_license_img_url", input.TradeLicenseImgURL)
	v.required("visiting_card_img_url", input.VisitingCardImgURL)
	v.required("profile_img_url", input.ProfileImgURL)
	var distributorID uuid.UUID
	v.uuid("distributor", input.DistributorID, &distributorID)
	v.location(s.catalog, input.District, input.SubDistrict)
	if err := v.err(); err != nil {
		return nil, err
	}

	phone := strings.TrimSpace(input.PhoneNumber)
	if err := s.checkPhone(ctx, phone, uuid.Nil); err != nil {
		return nil, err
	}
	distributor, err := s.distributorRepo.GetByID(ctx, distributorID)
	if err != nil {
		return nil, err
	}
	if distributor == nil {
		return nil, apperror.NewNotFoundError("Distributor")
	}

	fabricator := &entity.Fabricator{
		Name:               strings.TrimSpace(input.Name),
		Institution:        strings.TrimSpace(input.Institution),
		RegistrationNumber: utils.GenerateRegistrationNumber(),
		PhoneNumber:        phone,
		District:           strings.TrimSpace(input.District),
		SubDistrict:        strings.TrimSpace(input.SubDistrict),
		Address:            trimPtr(input.Address),
		DistributorID:      distributor.ID,
		TradeLicenseImgURL: input.TradeLicenseImgURL,
		VisitingCardImgURL: input.VisitingCardImgURL,
		ProfileImgURL:      input.ProfileImgURL,
		Status:             enum.FabricatorStatusPending,
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.fabricatorRepo.Create(ctx, fabricator)
	})
	if err != nil {
		return nil, err
	}
	fabricator.Distributor = distributor

	notifyFabricator(ctx, s.notifier, notify.TemplateFabricatorRegistered, fabricator, fabricatorPayload(fabricator))
	return fabricator, nil
}

// GetFabricator retrieves a fabricator by ID
func (s *FabricatorService) GetFabricator(ctx context.Context, id uuid.UUID) (*entity.Fabricator, error) {
	fabricator, err := s.fabricatorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if fabricator == nil {
		return nil, apperror.NewNotFoundError("Fabricator")
	}
	return fabricator, nil
}

// ListFabricators lists fabricators for an admin view
func (s *FabricatorService) ListFabricators(ctx context.Context, view, search string, params *pagination.PaginationParams) (*pagination.Page[entity.Fabricator], error) {
	v, ok := enum.ParseFabricatorView(view)
	if !ok {
		return nil, apperror.NewBadRequestError("Invalid view parameter.")
	}

	filter := repository.FabricatorFilter{Search: search}
	if st, ok := v.Status(); ok {
		filter.Status = &st
	}
	switch v {
	case enum.FabricatorViewAssigned:
		assigned := true
		filter.Assigned = &assigned
	case enum.FabricatorViewUnassigned:
		assigned := false
		filter.Assigned = &assigned
	}

	fabricators, total, err := s.fabricatorRepo.List(ctx, filter, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPage(fabricators, params, total)
}

// UpdateFabricatorInput holds the editable fields. Nil fields are left as is.
type UpdateFabricatorInput struct {
	Name               *string
	Institution        *string
	PhoneNumber        *string
	District           *string
	SubDistrict        *string
	Address            *string
	DistributorID      *string
	TradeLicenseImgURL *string
	VisitingCardImgURL *string
	ProfileImgURL      *string
}

// UpdateFabricator edits a fabricator. The registration number never changes.
func (s *FabricatorService) UpdateFabricator(ctx context.Context, id uuid.UUID, input *UpdateFabricatorInput) (*entity.Fabricator, error) {
	fabricator, err := s.GetFabricator(ctx, id)
	if err != nil {
		return nil, err
	}

	var v validator
	set := func(field string, src *string, dst *string) {
		if src == nil {
			return
		}
		val := strings.TrimSpace(*src)
		if val == "" {
			v.add(field, "This field may not be blank.")
			return
		}
		*dst = val
	}
	set("name", input.Name, &fabricator.Name)
	set("institution", input.Institution, &fabricator.Institution)
	set("phone_number", input.PhoneNumber, &fabricator.PhoneNumber)
	set("district", input.District, &fabricator.District)
	set("sub_district", input.SubDistrict, &fabricator.SubDistrict)
	set("trade_license_img_url", input.TradeLicenseImgURL, &fabricator.TradeLicenseImgURL)
	set("visiting_card_img_url", input.VisitingCardImgURL, &fabricator.VisitingCardImgURL)
	set("profile_img_url", input.ProfileImgURL, &fabricator.ProfileImgURL)
	if input.Address != nil {
		fabricator.Address = trimPtr(input.Address)
	}
	if input.DistributorID != nil {
		var distributorID uuid.UUID
		v.uuid("distributor", *input.DistributorID, &distributorID)
		if distributorID != uuid.Nil {
			fabricator.DistributorID = distributorID
		}
	}
	v.location(s.catalog, fabricator.District, fabricator.SubDistrict)
	if err := v.err(); err != nil {
		return nil, err
	}

	if input.PhoneNumber != nil {
		if err := s.checkPhone(ctx, fabricator.PhoneNumber, fabricator.ID); err != nil {
			return nil, err
		}
	}
	if input.DistributorID != nil {
		distributor, err := s.distributorRepo.GetByID(ctx, fabricator.DistributorID)
		if err != nil {
			return nil, err
		}
		if distributor == nil {
			return nil, apperror.NewNotFoundError("Distributor")
		}
		fabricator.Distributor = distributor
	}

	if err := s.fabricatorRepo.Update(ctx, fabricator); err != nil {
		return nil, err
	}
	return fabricator, nil
}

// DeleteFabricator deletes a fabricator
func (s *FabricatorService) DeleteFabricator(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetFabricator(ctx, id); err != nil {
		return err
	}
	return s.fabricatorRepo.Delete(ctx, id)
}

// ListForRep returns the fabricators assigned to a representative, by name
func (s *FabricatorService) ListForRep(ctx context.Context, repID uuid.UUID) ([]entity.Fabricator, error) {
	return s.fabricatorRepo.ListAll(ctx, repository.FabricatorFilter{RepID: &repID})
}

// Option is an id/name pair for registration form dropdowns
type Option struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// RegistrationOptions lists distributors (view "distributor") or
// representatives (view "marketing-rep") for the public registration form.
func (s *FabricatorService) RegistrationOptions(ctx context.Context, view string) ([]Option, error) {
	options := []Option{}
	switch view {
	case "distributor":
		distributors, err := s.distributorRepo.ListAll(ctx, repository.DistributorFilter{})
		if err != nil {
			return nil, err
		}
		for _, d := range distributors {
			options = append(options, Option{ID: d.ID, Name: d.Name})
		}
	case "marketing-rep":
		reps, err := s.repRepo.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		for _, r := range reps {
			options = append(options, Option{ID: r.ID, Name: r.Name})
		}
	default:
		return nil, apperror.NewBadRequestError("Invalid view parameter.")
	}
	return options, nil
}

// checkPhone rejects a phone number already used by another fabricator
func (s *FabricatorService) checkPhone(ctx context.Context, phone string, self uuid.UUID) error {
	existing, err := s.fabricatorRepo.GetByPhone(ctx, phone)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != self {
		return apperror.NewFieldError("phone_number", "fabricator with this phone number already exists.")
	}
	return nil
}
