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
	ErrProviderNotFound = errors.New("provider not found")
)

type ProviderUsecase interface {
	GetAll(ctx context.Context) ([]dto.ServiceProvider, error)
	GetByID(ctx context.Context, id string) (*dto.ServiceProvider, error)
	Create(ctx context.Context, req *dto.CreateProviderRequest) (*dto.ServiceProvider, error)
	Update(ctx context.Context, id string, req *dto.ServiceProvider) (*dto.ServiceProvider, error)
}

type providerUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	providerRepo repository.ProviderRepository
	auditService service.AuditService
}

func NewProviderUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	providerRepo repository.ProviderRepository,
	auditService service.AuditService,
) ProviderUsecase {
	return &providerUsecase{
		db:           db,
		log:          log,
		providerRepo: providerRepo,
		auditService: auditService,
	}
}

func (u *providerUsecase) GetAll(ctx context.Context) ([]dto.ServiceProvider, error) {
	providers, err := u.providerRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find providers: %+v", err)
		return nil, err
	}

	return converter.ProvidersToResponses(providers), nil
}

func (u *providerUsecase) GetByID(ctx context.Context, id string) (*dto.ServiceProvider, error) {
	provider, err := u.providerRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find provider: %+v", err)
		return nil, err
	}
	if provider == nil {
		return nil, ErrProviderNotFound
	}

	return converter.ProviderToResponse(provider), nil
}

func (u *providerUsecase) Create(ctx context.Context, req *dto.CreateProviderRequest) (*dto.ServiceProvider, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	provider := converter.CreateRequestToProvider(req)
	if provider.Status == "" {
		provider.Status = dto.StatusActive
	}

	if err := u.providerRepo.Create(tx, provider); err != nil {
		u.log.Warnf("Failed to create provider: %+v", err)
		return nil, err
	}

	actor, _ := middleware.GetSubjectFromContext(ctx)
	if err := u.auditService.LogCreate(ctx, tx, actor, entity.AuditActionProviderCreate, "provider", provider.ID, converter.ProviderToResponse(provider)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ProviderToResponse(provider), nil
}

func (u *providerUsecase) Update(ctx context.Context, id string, req *dto.ServiceProvider) (*dto.ServiceProvider, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	provider, err := u.providerRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find provider: %+v", err)
		return nil, err
	}
	if provider == nil {
		return nil, ErrProviderNotFound
	}

	oldValue := converter.ProviderToResponse(provider)
	converter.ApplyProvider(provider, req)

	if err := u.providerRepo.Update(tx, provider); err != nil {
		u.log.Warnf("Failed to update provider: %+v", err)
		return nil, err
	}

	actor, _ := middleware.GetSubjectFromContext(ctx)
	newValue := converter.ProviderToResponse(provider)
	if err := u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionProviderUpdate, "provider", provider.ID, oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return newValue, nil
}
