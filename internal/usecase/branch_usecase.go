package usecase

import (
	"context"
	"errors"

	"provider-directory/internal/converter"
	"provider-directory/internal/delivery/dto"
	"provider-directory/internal/delivery/http/middleware"
	"provider-directory/internal/domain/entity"
	"provider-directory/internal/domain/repository"
	"provider-directory/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrBranchNotFound         = errors.New("branch not found")
	ErrBranchProviderNotFound = errors.New("branch provider not found")
)

type BranchUsecase interface {
	// GetAll lists every branch, or only those of providerID when it is set.
	GetAll(ctx context.Context, providerID string) ([]dto.Branch, error)
	Create(ctx context.Context, req *dto.CreateBranchRequest) (*dto.Branch, error)
	Update(ctx context.Context, id string, req *dto.UpdateBranchRequest) (*dto.Branch, error)
}

type branchUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	branchRepo   repository.BranchRepository
	providerRepo repository.ProviderRepository
	auditService service.AuditService
}

func NewBranchUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	branchRepo repository.BranchRepository,
	providerRepo repository.ProviderRepository,
	auditService service.AuditService,
) BranchUsecase {
	return &branchUsecase{
		db:           db,
		log:          log,
		branchRepo:   branchRepo,
		providerRepo: providerRepo,
		auditService: auditService,
	}
}

func (u *branchUsecase) GetAll(ctx context.Context, providerID string) ([]dto.Branch, error) {
	var (
		branches []entity.Branch
		err      error
	)
	if providerID == "" {
		branches, err = u.branchRepo.FindAll(u.db.WithContext(ctx))
	} else {
		branches, err = u.branchRepo.FindByProviderID(u.db.WithContext(ctx), providerID)
	}
	if err != nil {
		u.log.Warnf("Failed to find branches: %+v", err)
		return nil, err
	}

	return converter.BranchesToResponses(branches), nil
}

func (u *branchUsecase) Create(ctx context.Context, req *dto.CreateBranchRequest) (*dto.Branch, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	provider, err := u.providerRepo.FindByID(tx, req.ProviderID)
	if err != nil {
		u.log.Warnf("Failed to find provider: %+v", err)
		return nil, err
	}
	if provider == nil {
		return nil, ErrBranchProviderNotFound
	}

	branch := &entity.Branch{}
	converter.ApplyBranch(branch, req)

	if err := u.branchRepo.Create(tx, branch); err != nil {
		u.log.Warnf("Failed to create branch: %+v", err)
		return nil, err
	}

	actor, _ := middleware.GetSubjectFromContext(ctx)
	if err := u.auditService.LogCreate(ctx, tx, actor, entity.AuditActionBranchCreate, "branch", branch.ID, converter.BranchToResponse(branch)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.BranchToResponse(branch), nil
}

func (u *branchUsecase) Update(ctx context.Context, id string, req *dto.UpdateBranchRequest) (*dto.Branch, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	branch, err := u.branchRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find branch: %+v", err)
		return nil, err
	}
	if branch == nil {
		return nil, ErrBranchNotFound
	}

	oldValue := converter.BranchToResponse(branch)
	converter.ApplyBranch(branch, req)

	if err := u.branchRepo.Update(tx, branch); err != nil {
		u.log.Warnf("Failed to update branch: %+v", err)
		return nil, err
	}

	actor, _ := middleware.GetSubjectFromContext(ctx)
	newValue := converter.BranchToResponse(branch)
	if err := u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionBranchUpdate, "branch", branch.ID, oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return newValue, nil
}
