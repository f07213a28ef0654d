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
	"github.com/sangkips/xylem-api/pkg/pagination"
)

// DistributorService handles distributor-related operations
type DistributorService struct {
	distributorRepo repository.DistributorRepository
	repRepo         repository.MarketingRepRepository
	catalog         *districts.Catalog
}

// NewDistributorService creates a new distributor service
func NewDistributorService(
	distributorRepo repository.DistributorRepository,
	repRepo repository.MarketingRepRepository,
	catalog *districts.Catalog,
) *DistributorService {
	return &DistributorService{
		distributorRepo: distributorRepo,
		repRepo:         repRepo,
		catalog:         catalog,
	}
}

// DistributorInput represents the create distributor input. On update nil
// fields are left unchanged.
type DistributorInput struct {
	Name                    *string
	PhoneNumber             *string
	Email                   *string
	District                *string
	SubDistrict             *string
	MarketingRepresentative *string
}

// CreateDistributor creates a new distributor
func (s *DistributorService) CreateDistributor(ctx context.Context, input *DistributorInput) (*entity.Distributor, error) {
	distributor := &entity.Distributor{}
	if err := s.apply(ctx, distributor, input, true); err != nil {
		return nil, err
	}
	if err := s.distributorRepo.Create(ctx, distributor); err != nil {
		return nil, err
	}
	return distributor, nil
}

// GetDistributor retrieves a distributor by ID
func (s *DistributorService) GetDistributor(ctx context.Context, id uuid.UUID) (*entity.Distributor, error) {
	distributor, err := s.distributorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if distributor == nil {
		return nil, apperror.NewNotFoundError("Distributor")
	}
	return distributor, nil
}

// ListDistributors lists distributors filtered by assignment view and search
func (s *DistributorService) ListDistributors(ctx context.Context, view, search string, params *pagination.PaginationParams) (*pagination.Page[entity.Distributor], error) {
	v, ok := enum.ParseAssignmentView(view)
	if !ok {
		return nil, apperror.NewBadRequestError("Invalid view parameter.")
	}
	filter := repository.DistributorFilter{Search: search}
	switch v {
	case enum.AssignmentAssigned:
		assigned := true
		filter.Assigned = &assigned
	case enum.AssignmentUnassigned:
		assigned := false
		filter.Assigned = &assigned
	}

	distributors, total, err := s.distributorRepo.List(ctx, filter, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPage(distributors, params, total)
}

// ListForRep returns every distributor assigned to a representative
func (s *DistributorService) ListForRep(ctx context.Context, repID uuid.UUID) ([]entity.Distributor, error) {
	return s.distributorRepo.ListAll(ctx, repository.DistributorFilter{RepID: &repID})
}

// UpdateDistributor updates an existing distributor
func (s *DistributorService) UpdateDistributor(ctx context.Context, id uuid.UUID, input *DistributorInput) (*entity.Distributor, error) {
	distributor, err := s.GetDistributor(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, distributor, input, false); err != nil {
		return nil, err
	}
	if err := s.distributorRepo.Update(ctx, distributor); err != nil {
		return nil, err
	}
	if input.MarketingRepresentative != nil {
		if err := s.distributorRepo.SetRepresentative(ctx, distributor.ID, distributor.MarketingRepresentativeID); err != nil {
			return nil, err
		}
	}
	return distributor, nil
}

// DeleteDistributor deletes a distributor
func (s *DistributorService) DeleteDistributor(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetDistributor(ctx, id); err != nil {
		return err
	}
	return s.distributorRepo.Delete(ctx, id)
}

// apply validates input and copies it onto d. create makes every plain
// field required.
func (s *DistributorService) apply(ctx context.Context, d *entity.Distributor, input *DistributorInput, create bool) error {
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
	set("name", input.Name, &d.Name)
	set("phone_number", input.PhoneNumber, &d.PhoneNumber)
	set("email", input.Email, &d.Email)
	set("district", input.District, &d.District)
	set("sub_district", input.SubDistrict, &d.SubDistrict)
	if input.Email != nil && d.Email != "" && !strings.Contains(d.Email, "@") {
		v.add("email", "Enter a valid email address.")
	}

	var repID *uuid.UUID
	if input.MarketingRepresentative != nil {
		id, err := ParseOptionalID("marketing_representative", *input.MarketingRepresentative)
		if err != nil {
			return err
		}
		repID = id
	}
	v.location(s.catalog, d.District, d.SubDistrict)
	if err := v.err(); err != nil {
		return err
	}

	if input.Email != nil {
		existing, err := s.distributorRepo.GetByEmail(ctx, d.Email)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != d.ID {
			return apperror.NewFieldError("email", "distributor with this email already exists.")
		}
	}
	if input.MarketingRepresentative != nil {
		if repID != nil {
			rep, err := s.repRepo.GetByID(ctx, *repID)
			if err != nil {
				return err
			}
			if rep == nil {
				return apperror.NewNotFoundError("Marketing representative")
			}
		}
		d.MarketingRepresentativeID = repID
		d.MarketingRepresentative = nil
	}
	return nil
}
