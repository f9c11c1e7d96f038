package usecase

import (
	"context"
	"testing"

	"stempede-store/internal/data/entity"
	"stempede-store/internal/data/repository/repotest"
	"stempede-store/internal/dto/request"
	"stempede-store/internal/dto/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func boolPtr(b bool) *bool { return &b }

func TestSupportListAllEmpty(t *testing.T) {
	factory, _ := repotest.Setup(t)
	svc := NewSupportRequestService(factory, nil, zap.NewNop())

	result := svc.ListAll(context.Background())
	require.True(t, result.Success)
	assert.Equal(t, "No support requests found.", result.Message)
	assert.NotNil(t, result.Data)
	assert.Empty(t, result.Data)
}

func TestSupportListing(t *testing.T) {
	factory, _ := repotest.Setup(t)
	svc := NewSupportRequestService(factory, nil, zap.NewNop())
	ctx := context.Background()

	alice := repotest.CreateUser(t, factory, "alice", "alice@x.com", "secret", entity.RoleCustomer, true)
	bob := repotest.CreateUser(t, factory, "bob", "bob@x.com", "secret", entity.RoleCustomer, true)
	aliceOrder := repotest.CreateOrder(t, factory, alice.ID, entity.DeliveryStatusPlaced)
	bobOrder := repotest.CreateOrder(t, factory, bob.ID, entity.DeliveryStatusPlaced)

	first := repotest.CreateSupportRequest(t, factory, alice.ID, aliceOrder.ID, "missing cable")
	repotest.CreateSupportRequest(t, factory, bob.ID, bobOrder.ID, "wrong board")
	third := repotest.CreateSupportRequest(t, factory, alice.ID, aliceOrder.ID, "still missing")

	all := svc.ListAll(ctx)
	require.True(t, all.Success)
	assert.Equal(t, "All support requests retrieved successfully.", all.Message)
	require.Len(t, all.Data, 3)
	assert.Equal(t, third.ID, all.Data[0].SupportID)
	assert.Equal(t, first.ID, all.Data[2].SupportID)

	mine := svc.ListByUser(ctx, "ALICE")
	require.True(t, mine.Success)
	assert.Equal(t, "Support requests retrieved successfully.", mine.Message)
	require.Len(t, mine.Data, 2)
	assert.Equal(t, third.ID, mine.Data[0].SupportID)
	assert.Equal(t, first.ID, mine.Data[1].SupportID)
	for _, item := range mine.Data {
		assert.Equal(t, "alice", item.Username)
		assert.Equal(t, aliceOrder.ID, item.OrderID)
		assert.Nil(t, item.SupportStatus)
	}

	unknown := svc.ListByUser(ctx, "nobody")
	assert.False(t, unknown.Success)
	assert.Equal(t, "User not found", unknown.Message)
	assert.Equal(t, response.KindNotFound, unknown.Kind)
}

func TestSupportUpdateStatus(t *testing.T) {
	factory, _ := repotest.Setup(t)
	svc := NewSupportRequestService(factory, nil, zap.NewNop())
	ctx := context.Background()

	alice := repotest.CreateUser(t, factory, "alice", "alice@x.com", "secret", entity.RoleCustomer, true)
	repotest.CreateUser(t, factory, "bob", "bob@x.com", "secret", entity.RoleCustomer, true)
	order := repotest.CreateOrder(t, factory, alice.ID, entity.DeliveryStatusPlaced)
	req := repotest.CreateSupportRequest(t, factory, alice.ID, order.ID, "missing cable")

	stored := func() *bool {
		sr, err := factory.New().SupportRequest.GetByID(ctx, req.ID)
		require.NoError(t, err)
		require.NotNil(t, sr)
		return sr.SupportStatus
	}

	t.Run("not the owner", func(t *testing.T) {
		result := svc.UpdateStatus(ctx, req.ID, &request.UpdateSupportStatusRequest{SupportStatus: boolPtr(true)}, "bob")
		assert.False(t, result.Success)
		assert.Equal(t, "Unauthorized", result.Message)
		assert.Equal(t, []string{"You don't have permission to update this support request."}, result.Errors)
		assert.Equal(t, response.KindForbidden, result.Kind)
		assert.Nil(t, stored())
	})

	t.Run("missing request", func(t *testing.T) {
		result := svc.UpdateStatus(ctx, req.ID+50, &request.UpdateSupportStatusRequest{SupportStatus: boolPtr(true)}, "alice")
		assert.Equal(t, "Support request not found", result.Message)
		assert.Equal(t, response.KindNotFound, result.Kind)
	})

	t.Run("missing status", func(t *testing.T) {
		result := svc.UpdateStatus(ctx, req.ID, &request.UpdateSupportStatusRequest{}, "alice")
		assert.Equal(t, response.KindValidation, result.Kind)
		assert.Nil(t, stored())
	})

	t.Run("owner", func(t *testing.T) {
		result := svc.UpdateStatus(ctx, req.ID, &request.UpdateSupportStatusRequest{SupportStatus: boolPtr(true)}, "Alice")
		require.True(t, result.Success, result.Message)
		assert.Equal(t, "Support status updated successfully.", result.Message)
		require.NotNil(t, stored())
		assert.True(t, *stored())

		result = svc.UpdateStatus(ctx, req.ID, &request.UpdateSupportStatusRequest{SupportStatus: boolPtr(false)}, "alice")
		require.True(t, result.Success)
		assert.False(t, *stored())
	})
}
