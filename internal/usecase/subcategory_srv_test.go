package usecase

import (
	"context"
	"testing"

	"stempede-store/internal/data/repository/repotest"
	"stempede-store/internal/dto/request"
	"stempede-store/internal/dto/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSubcategoryCRUD(t *testing.T) {
	factory, _ := repotest.Setup(t)
	svc := NewSubcategoryService(factory, nil, zap.NewNop())
	ctx := context.Background()

	created := svc.Create(ctx, &request.CreateSubcategoryRequest{SubcategoryName: "  Sensors "})
	require.True(t, created.Success, created.Message)
	assert.Equal(t, "Subcategory created successfully.", created.Message)
	assert.Equal(t, "Sensors", created.Data.SubcategoryName)
	assert.Empty(t, created.Data.Products)
	id := created.Data.SubcategoryID

	got := svc.GetByID(ctx, id)
	require.True(t, got.Success)
	assert.Equal(t, "Sensors", got.Data.SubcategoryName)

	updated := svc.Update(ctx, id, &request.CreateSubcategoryRequest{SubcategoryName: "Motion sensors"})
	require.True(t, updated.Success)
	assert.Equal(t, "Motion sensors", updated.Data.SubcategoryName)

	svc.Create(ctx, &request.CreateSubcategoryRequest{SubcategoryName: "Boards"})
	list := svc.List(ctx)
	require.True(t, list.Success)
	require.Len(t, list.Data, 2)
	assert.Equal(t, "Motion sensors", list.Data[0].SubcategoryName)
	assert.Equal(t, "Boards", list.Data[1].SubcategoryName)

	deleted := svc.Delete(ctx, id)
	require.True(t, deleted.Success)

	gone := svc.GetByID(ctx, id)
	assert.False(t, gone.Success)
	assert.Equal(t, response.KindNotFound, gone.Kind)
}

func TestSubcategoryValidation(t *testing.T) {
	factory, _ := repotest.Setup(t)
	svc := NewSubcategoryService(factory, nil, zap.NewNop())
	ctx := context.Background()

	for _, req := range []*request.CreateSubcategoryRequest{nil, {SubcategoryName: "   "}} {
		result := svc.Create(ctx, req)
		assert.False(t, result.Success)
		assert.Equal(t, "Invalid subcategory data.", result.Message)
		assert.Equal(t, response.KindValidation, result.Kind)
	}

	assert.Zero(t, count(t, factory.New().Subcategory.GetAll(ctx)))
}

func TestSubcategoryMissing(t *testing.T) {
	factory, _ := repotest.Setup(t)
	svc := NewSubcategoryService(factory, nil, zap.NewNop())
	ctx := context.Background()

	update := svc.Update(ctx, 9, &request.CreateSubcategoryRequest{SubcategoryName: "x"})
	assert.Equal(t, "Subcategory not found.", update.Message)

	del := svc.Delete(ctx, 9)
	assert.Equal(t, "Subcategory not found.", del.Message)
	assert.Equal(t, response.KindNotFound, del.Kind)
}

func TestSubcategoryDeleteInUse(t *testing.T) {
	factory, _ := repotest.Setup(t)
	svc := NewSubcategoryService(factory, nil, zap.NewNop())
	ctx := context.Background()
	sub := repotest.CreateSubcategory(t, factory, "Boards")
	repotest.CreateProduct(t, factory, "Arduino", sub.ID)

	result := svc.Delete(ctx, sub.ID)
	assert.False(t, result.Success)
	assert.Equal(t, "Subcategory is in use by products.", result.Message)
	assert.Equal(t, response.KindConflict, result.Kind)

	got := svc.GetByID(ctx, sub.ID)
	assert.True(t, got.Success)
}
