package usecase

import (
	"context"
	"strings"

	"stempede-store/internal/data/entity"
	"stempede-store/internal/data/repository"
	"stempede-store/internal/dto/request"
	"stempede-store/internal/dto/response"
	"stempede-store/pkg/utils"

	"go.uber.org/zap"
)

const (
	msgSubcategoriesRetrieved = "Subcategories retrieved successfully."
	msgSubcategoriesFailed    = "Failed to retrieve subcategories."
	msgSubcategoryRetrieved   = "Subcategory retrieved successfully."
	msgSubcategoryNotFound    = "Subcategory not found."
	msgInvalidSubcategory     = "Invalid subcategory data."
	msgSubcategoryCreated     = "Subcategory created successfully."
	msgSubcategoryCreateFail  = "Failed to create subcategory."
	msgSubcategoryUpdated     = "Subcategory updated successfully."
	msgSubcategoryUpdateFail  = "Failed to update subcategory."
	msgSubcategoryDeleted     = "Subcategory deleted successfully."
	msgSubcategoryDeleteFail  = "Failed to delete subcategory."
	msgSubcategoryInUse       = "Subcategory is in use by products."
)

type SubcategoryService interface {
	List(ctx context.Context) response.Result[[]response.SubcategoryResponse]
	GetByID(ctx context.Context, id int) response.Result[*response.SubcategoryResponse]
	Create(ctx context.Context, req *request.CreateSubcategoryRequest) response.Result[*response.SubcategoryResponse]
	Update(ctx context.Context, id int, req *request.CreateSubcategoryRequest) response.Result[*response.SubcategoryResponse]
	Delete(ctx context.Context, id int) response.Result[string]
}

type subcategoryService struct {
	uow *repository.UnitOfWorkFactory
	rec Recorder
	log *zap.Logger
}

func NewSubcategoryService(uow *repository.UnitOfWorkFactory, rec Recorder, log *zap.Logger) SubcategoryService {
	return &subcategoryService{
		uow: uow,
		rec: rec,
		log: log.With(zap.String("service", "subcategory")),
	}
}

func (s *subcategoryService) List(ctx context.Context) response.Result[[]response.SubcategoryResponse] {
	return observe(s.rec, "subcategory", "list", s.list(ctx))
}

func (s *subcategoryService) list(ctx context.Context) response.Result[[]response.SubcategoryResponse] {
	uow := s.uow.New()
	defer uow.Close()

	subs, err := uow.Subcategory.GetAll(ctx).OrderBy("id").List()
	if err != nil {
		return storageFailure[[]response.SubcategoryResponse](s.log, err, msgSubcategoriesFailed, msgSubcategoriesFailed)
	}

	return response.Ok(response.SubcategoriesToResponse(subs), msgSubcategoriesRetrieved)
}

func (s *subcategoryService) GetByID(ctx context.Context, id int) response.Result[*response.SubcategoryResponse] {
	return observe(s.rec, "subcategory", "get", s.getByID(ctx, id))
}

func (s *subcategoryService) getByID(ctx context.Context, id int) response.Result[*response.SubcategoryResponse] {
	uow := s.uow.New()
	defer uow.Close()

	sub, err := uow.Subcategory.GetByID(ctx, id)
	if err != nil {
		return storageFailure[*response.SubcategoryResponse](s.log, err, msgSubcategoriesFailed, msgSubcategoriesFailed)
	}
	if sub == nil {
		return response.Fail[*response.SubcategoryResponse](response.KindNotFound, msgSubcategoryNotFound, msgSubcategoryNotFound)
	}

	view := response.SubcategoryToResponse(sub)
	return response.Ok(&view, msgSubcategoryRetrieved)
}

func (s *subcategoryService) Create(ctx context.Context, req *request.CreateSubcategoryRequest) response.Result[*response.SubcategoryResponse] {
	return observe(s.rec, "subcategory", "create", s.create(ctx, req))
}

func (s *subcategoryService) create(ctx context.Context, req *request.CreateSubcategoryRequest) response.Result[*response.SubcategoryResponse] {
	if res, ok := validateSubcategory(req); !ok {
		return res
	}

	uow := s.uow.New()
	defer uow.Close()

	sub := &entity.Subcategory{SubcategoryName: req.SubcategoryName}
	uow.Subcategory.Add(sub)
	if _, err := uow.Complete(ctx); err != nil {
		return storageFailure[*response.SubcategoryResponse](s.log, err, msgSubcategoryCreateFail, msgSubcategoryCreateFail)
	}
	s.log.Info("Subcategory created", zap.Int("subcategory_id", sub.ID))

	created, err := uow.Subcategory.GetByID(ctx, sub.ID, "Products")
	if err != nil {
		return storageFailure[*response.SubcategoryResponse](s.log, err, msgSubcategoryCreateFail, msgSubcategoryCreateFail)
	}
	if created == nil {
		created = sub
	}

	view := response.SubcategoryToResponse(created)
	return response.Ok(&view, msgSubcategoryCreated)
}

func (s *subcategoryService) Update(ctx context.Context, id int, req *request.CreateSubcategoryRequest) response.Result[*response.SubcategoryResponse] {
	return observe(s.rec, "subcategory", "update", s.update(ctx, id, req))
}

func (s *subcategoryService) update(ctx context.Context, id int, req *request.CreateSubcategoryRequest) response.Result[*response.SubcategoryResponse] {
	if res, ok := validateSubcategory(req); !ok {
		return res
	}

	uow := s.uow.New()
	defer uow.Close()

	sub, err := uow.Subcategory.GetByID(ctx, id)
	if err != nil {
		return storageFailure[*response.SubcategoryResponse](s.log, err, msgSubcategoryUpdateFail, msgSubcategoryUpdateFail)
	}
	if sub == nil {
		return response.Fail[*response.SubcategoryResponse](response.KindNotFound, msgSubcategoryNotFound, msgSubcategoryNotFound)
	}

	sub.SubcategoryName = req.SubcategoryName
	uow.Subcategory.Update(sub)
	if _, err := uow.Complete(ctx); err != nil {
		return storageFailure[*response.SubcategoryResponse](s.log, err, msgSubcategoryUpdateFail, msgSubcategoryUpdateFail)
	}
	s.log.Info("Subcategory updated", zap.Int("subcategory_id", sub.ID))

	view := response.SubcategoryToResponse(sub)
	return response.Ok(&view, msgSubcategoryUpdated)
}

func (s *subcategoryService) Delete(ctx context.Context, id int) response.Result[string] {
	return observe(s.rec, "subcategory", "delete", s.delete(ctx, id))
}

func (s *subcategoryService) delete(ctx context.Context, id int) response.Result[string] {
	uow := s.uow.New()
	defer uow.Close()

	sub, err := uow.Subcategory.GetByID(ctx, id)
	if err != nil {
		return storageFailure[string](s.log, err, msgSubcategoryDeleteFail, msgSubcategoryDeleteFail)
	}
	if sub == nil {
		return response.Fail[string](response.KindNotFound, msgSubcategoryNotFound, msgSubcategoryNotFound)
	}

	inUse, err := uow.Product.Any(ctx, repository.Where("subcategory_id = ?", id))
	if err != nil {
		return storageFailure[string](s.log, err, msgSubcategoryDeleteFail, msgSubcategoryDeleteFail)
	}
	if inUse {
		return response.Fail[string](response.KindConflict, msgSubcategoryInUse, msgSubcategoryInUse)
	}

	uow.Subcategory.Delete(sub)
	if _, err := uow.Complete(ctx); err != nil {
		return storageFailure[string](s.log, err, msgSubcategoryDeleteFail, msgSubcategoryDeleteFail)
	}
	s.log.Info("Subcategory deleted", zap.Int("subcategory_id", id))

	return response.Ok(msgSubcategoryDeleted, msgSubcategoryDeleted)
}

func validateSubcategory(req *request.CreateSubcategoryRequest) (response.Result[*response.SubcategoryResponse], bool) {
	if req == nil {
		return response.Fail[*response.SubcategoryResponse](response.KindValidation, msgInvalidSubcategory, msgInvalidSubcategory), false
	}

	req.SubcategoryName = strings.TrimSpace(req.SubcategoryName)
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return response.Fail[*response.SubcategoryResponse](response.KindValidation, msgInvalidSubcategory, utils.ValidationMessages(errs)...), false
	}
	return response.Result[*response.SubcategoryResponse]{}, true
}
