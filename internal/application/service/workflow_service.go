package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sangkips/xylem-api/internal/domain/entity"
	"github.com/sangkips/xylem-api/internal/domain/enum"
	"github.com/sangkips/xylem-api/internal/domain/repository"
	"github.com/sangkips/xylem-api/pkg/apperror"
	"github.com/sangkips/xylem-api/pkg/logger"
	"github.com/sangkips/xylem-api/pkg/notify"
)

// WorkflowService applies fabricator status transitions and representative
// assignments.
type WorkflowService struct {
	fabricatorRepo  repository.FabricatorRepository
	distributorRepo repository.DistributorRepository
	repRepo         repository.MarketingRepRepository
	notifier        notify.Notifier
	log             zerolog.Logger
}

// NewWorkflowService creates a new workflow service
func NewWorkflowService(
	fabricatorRepo repository.FabricatorRepository,
	distributorRepo repository.DistributorRepository,
	repRepo repository.MarketingRepRepository,
	notifier notify.Notifier,
) *WorkflowService {
	return &WorkflowService{
		fabricatorRepo:  fabricatorRepo,
		distributorRepo: distributorRepo,
		repRepo:         repRepo,
		notifier:        notifier,
		log:             logger.ForPackage("workflow"),
	}
}

// SetStatus moves a fabricator to any status in the enum. Any state may be
// reached from any other.
func (s *WorkflowService) SetStatus(ctx context.Context, fabricatorID uuid.UUID, status string) (*entity.Fabricator, error) {
	st, ok := enum.ParseFabricatorStatus(status)
	if !ok {
		return nil, apperror.NewFieldError("status", fmt.Sprintf("%q is not a valid choice.", status))
	}

	fabricator, err := s.getFabricator(ctx, fabricatorID)
	if err != nil {
		return nil, err
	}

	if err := s.fabricatorRepo.UpdateStatus(ctx, fabricator.ID, st); err != nil {
		return nil, err
	}
	fabricator.Status = st
	s.log.Info().Str("fabricator_id", fabricator.ID.String()).Str("status", st.String()).Msg("fabricator status changed")

	payload := withRep(fabricatorPayload(fabricator), fabricator.MarketingRepresentative)
	notifyFabricator(ctx, s.notifier, notify.TemplateFabricatorStatus, fabricator, payload)
	if fabricator.MarketingRepresentative != nil {
		notifyRep(ctx, s.notifier, notify.TemplateFabricatorStatus, fabricator.MarketingRepresentative, payload)
	}

	return fabricator, nil
}

// AssignRepresentative assigns an approved fabricator to a representative.
// Reassignment is allowed.
func (s *WorkflowService) AssignRepresentative(ctx context.Context, fabricatorID, repID uuid.UUID) (*entity.Fabricator, error) {
	fabricator, err := s.getFabricator(ctx, fabricatorID)
	if err != nil {
		return nil, err
	}
	rep, err := s.getRep(ctx, repID)
	if err != nil {
		return nil, err
	}

	if fabricator.Status != enum.FabricatorStatusApproved {
		return nil, apperror.NewFailedPreconditionError("Fabricator must be approved before a marketing representative can be assigned.")
	}

	if err := s.fabricatorRepo.SetRepresentative(ctx, fabricator.ID, &rep.ID); err != nil {
		return nil, err
	}
	fabricator.MarketingRepresentativeID = &rep.ID
	fabricator.MarketingRepresentative = rep

	payload := withRep(fabricatorPayload(fabricator), rep)
	notifyRep(ctx, s.notifier, notify.TemplateRepAssigned, rep, payload)
	notifyFabricator(ctx, s.notifier, notify.TemplateFabricatorAssigned, fabricator, payload)

	return fabricator, nil
}

// AssignFabricatorsBulk assigns each fabricator in order. It is not atomic:
// the first missing or unapproved fabricator stops the batch and earlier
// assignments stay. It returns how many fabricators were assigned.
func (s *WorkflowService) AssignFabricatorsBulk(ctx context.Context, repID uuid.UUID, ids []uuid.UUID) (int, error) {
	rep, err := s.getRep(ctx, repID)
	if err != nil {
		return 0, err
	}

	for i, id := range ids {
		fabricator, err := s.fabricatorRepo.GetByID(ctx, id)
		if err != nil {
			return i, err
		}
		if fabricator == nil {
			return i, apperror.NewNotFoundErrorf("Fabricator with id %s not found", id)
		}
		if fabricator.Status != enum.FabricatorStatusApproved {
			return i, apperror.NewFailedPreconditionError(fmt.Sprintf("Fabricator with id %s must be approved before a marketing representative can be assigned.", id))
		}
		if err := s.fabricatorRepo.SetRepresentative(ctx, id, &rep.ID); err != nil {
			return i, err
		}
	}
	return len(ids), nil
}

// AssignDistributorsBulk is AssignFabricatorsBulk for distributors
func (s *WorkflowService) AssignDistributorsBulk(ctx context.Context, repID uuid.UUID, ids []uuid.UUID) (int, error) {
	rep, err := s.getRep(ctx, repID)
	if err != nil {
		return 0, err
	}

	for i, id := range ids {
		distributor, err := s.distributorRepo.GetByID(ctx, id)
		if err != nil {
			return i, err
		}
		if distributor == nil {
			return i, apperror.NewNotFoundErrorf("Distributor with id %s not found", id)
		}
		if err := s.distributorRepo.SetRepresentative(ctx, id, &rep.ID); err != nil {
			return i, err
		}
	}
	return len(ids), nil
}

// UnassignFabricator clears the representative only when it is repID
func (s *WorkflowService) UnassignFabricator(ctx context.Context, fabricatorID, repID uuid.UUID) error {
	fabricator, err := s.fabricatorRepo.GetByID(ctx, fabricatorID)
	if err != nil {
		return err
	}
	if fabricator == nil || !fabricator.IsAssignedTo(repID) {
		return apperror.NewNotFoundError("Fabricator assigned to this marketing representative")
	}
	return s.fabricatorRepo.SetRepresentative(ctx, fabricatorID, nil)
}

// UnassignDistributor clears the representative only when it is repID
func (s *WorkflowService) UnassignDistributor(ctx context.Context, distributorID, repID uuid.UUID) error {
	distributor, err := s.distributorRepo.GetByID(ctx, distributorID)
	if err != nil {
		return err
	}
	if distributor == nil || distributor.MarketingRepresentativeID == nil || *distributor.MarketingRepresentativeID != repID {
		return apperror.NewNotFoundError("Distributor assigned to this marketing representative")
	}
	return s.distributorRepo.SetRepresentative(ctx, distributorID, nil)
}

func (s *WorkflowService) getFabricator(ctx context.Context, id uuid.UUID) (*entity.Fabricator, error) {
	fabricator, err := s.fabricatorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if fabricator == nil {
		return nil, apperror.NewNotFoundError("Fabricator")
	}
	return fabricator, nil
}

func (s *WorkflowService) getRep(ctx context.Context, id uuid.UUID) (*entity.MarketingRepresentative, error) {
	rep, err := s.repRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, apperror.NewNotFoundError("Marketing representative")
	}
	return rep, nil
}
