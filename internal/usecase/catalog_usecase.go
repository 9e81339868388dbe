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
	// ErrSpecialtyDuration rejects durations that do not round-trip through
	// whole minutes.
	ErrSpecialtyDuration = errors.New("specialty duration must be a whole number of minutes")
)

// CatalogUsecase serves the reference collections providers point at by ID.
type CatalogUsecase interface {
	ListSpecialties(ctx context.Context) ([]dto.Specialty, error)
	CreateSpecialty(ctx context.Context, req *dto.CreateSpecialtyRequest) (*dto.Specialty, error)
	ListInsurances(ctx context.Context) ([]dto.Insurance, error)
	CreateInsurance(ctx context.Context, req *dto.CreateInsuranceRequest) (*dto.Insurance, error)
	ListProcedures(ctx context.Context) ([]dto.Procedure, error)
	CreateProcedure(ctx context.Context, req *dto.CreateProcedureRequest) (*dto.Procedure, error)
}

type catalogUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	specialtyRepo repository.SpecialtyRepository
	insuranceRepo repository.InsuranceRepository
	procedureRepo repository.ProcedureRepository
	auditService  service.AuditService
	cache         service.CatalogCache
}

func NewCatalogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	specialtyRepo repository.SpecialtyRepository,
	insuranceRepo repository.InsuranceRepository,
	procedureRepo repository.ProcedureRepository,
	auditService service.AuditService,
	cache service.CatalogCache,
) CatalogUsecase {
	return &catalogUsecase{
		db:            db,
		log:           log,
		specialtyRepo: specialtyRepo,
		insuranceRepo: insuranceRepo,
		procedureRepo: procedureRepo,
		auditService:  auditService,
		cache:         cache,
	}
}

func (u *catalogUsecase) ListSpecialties(ctx context.Context) ([]dto.Specialty, error) {
	var cached []dto.Specialty
	if u.cache.Get(ctx, service.CatalogKeySpecialties, &cached) {
		return cached, nil
	}

	specialties, err := u.specialtyRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find specialties: %+v", err)
		return nil, err
	}

	responses := converter.SpecialtiesToResponses(specialties)
	u.cache.Set(ctx, service.CatalogKeySpecialties, responses)
	return responses, nil
}

func (u *catalogUsecase) CreateSpecialty(ctx context.Context, req *dto.CreateSpecialtyRequest) (*dto.Specialty, error) {
	if req.Time%dto.MillisPerMinute != 0 {
		return nil, ErrSpecialtyDuration
	}

	specialty := &entity.Specialty{Name: req.Name, Time: req.Time}
	err := u.create(ctx, entity.AuditActionSpecialtyCreate, "specialty", service.CatalogKeySpecialties, func(tx *gorm.DB) error {
		return u.specialtyRepo.Create(tx, specialty)
	}, specialty)
	if err != nil {
		return nil, err
	}

	return &dto.Specialty{ID: specialty.ID, Name: specialty.Name, Time: specialty.Time}, nil
}

func (u *catalogUsecase) ListInsurances(ctx context.Context) ([]dto.Insurance, error) {
	var cached []dto.Insurance
	if u.cache.Get(ctx, service.CatalogKeyInsurances, &cached) {
		return cached, nil
	}

	insurances, err := u.insuranceRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find insurances: %+v", err)
		return nil, err
	}

	responses := converter.InsurancesToResponses(insurances)
	u.cache.Set(ctx, service.CatalogKeyInsurances, responses)
	return responses, nil
}

func (u *catalogUsecase) CreateInsurance(ctx context.Context, req *dto.CreateInsuranceRequest) (*dto.Insurance, error) {
	insurance := &entity.Insurance{Name: req.Name, Src: req.Src}
	err := u.create(ctx, entity.AuditActionInsuranceCreate, "insurance", service.CatalogKeyInsurances, func(tx *gorm.DB) error {
		return u.insuranceRepo.Create(tx, insurance)
	}, insurance)
	if err != nil {
		return nil, err
	}

	return &dto.Insurance{ID: insurance.ID, Name: insurance.Name, Src: insurance.Src}, nil
}

func (u *catalogUsecase) ListProcedures(ctx context.Context) ([]dto.Procedure, error) {
	var cached []dto.Procedure
	if u.cache.Get(ctx, service.CatalogKeyProcedures, &cached) {
		return cached, nil
	}

	procedures, err := u.procedureRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find procedures: %+v", err)
		return nil, err
	}

	responses := converter.ProceduresToResponses(procedures)
	u.cache.Set(ctx, service.CatalogKeyProcedures, responses)
	return responses, nil
}

func (u *catalogUsecase) CreateProcedure(ctx context.Context, req *dto.CreateProcedureRequest) (*dto.Procedure, error) {
	procedure := &entity.Procedure{Name: req.Name}
	err := u.create(ctx, entity.AuditActionProcedureCreate, "procedure", service.CatalogKeyProcedures, func(tx *gorm.DB) error {
		return u.procedureRepo.Create(tx, procedure)
	}, procedure)
	if err != nil {
		return nil, err
	}

	return &dto.Procedure{ID: procedure.ID, Name: procedure.Name}, nil
}

// create runs insert inside a transaction with an audit entry and drops the
// cached collection once committed.
func (u *catalogUsecase) create(ctx context.Context, action, entityName, cacheKey string, insert func(tx *gorm.DB) error, value interface{}) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := insert(tx); err != nil {
		u.log.Warnf("Failed to create %s: %+v", entityName, err)
		return err
	}

	actor, _ := middleware.GetSubjectFromContext(ctx)
	if err := u.auditService.LogCreate(ctx, tx, actor, action, entityName, entityID(value), value); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.cache.Invalidate(ctx, cacheKey)
	return nil
}

func entityID(value interface{}) string {
	switch v := value.(type) {
	case *entity.Specialty:
		return v.ID
	case *entity.Insurance:
		return v.ID
	case *entity.Procedure:
		return v.ID
	default:
		return ""
	}
}
