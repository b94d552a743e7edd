package kitchen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/kitchen/internal/domain/models"
	"github.com/mamadbah2/kitchen/internal/service/gateway"
)

func TestSendChat(t *testing.T) {
	ctx := context.Background()

	t.Run("appends the user message and the reply", func(t *testing.T) {
		ai := new(MockGateway)
		svc := newTestKitchen(t, ai, nil)
		ai.On("Chat", ctx, mock.MatchedBy(func(history []models.ChatMessage) bool {
			return len(history) == 1 && history[0].Text == models.AssistantGreeting
		}), "What can I cook?", mock.Anything).Return("Try an omelette.")

		reply, err := svc.SendChat(ctx, "  What can I cook?  ")

		require.NoError(t, err)
		assert.Equal(t, models.RoleModel, reply.Role)
		assert.Equal(t, "Try an omelette.", reply.Text)

		transcript := svc.Transcript()
		require.Len(t, transcript, 3)
		assert.Equal(t, models.RoleUser, transcript[1].Role)
		assert.Equal(t, "What can I cook?", transcript[1].Text)
		assert.Equal(t, reply, transcript[2])
		assert.Equal(t, StateSucceeded, svc.Status()[OpChat].State)
	})

	t.Run("a fallback reply still closes the exchange", func(t *testing.T) {
		ai := new(MockGateway)
		svc := newTestKitchen(t, ai, nil)
		ai.On("Chat", ctx, mock.Anything, mock.Anything, mock.Anything).Return(gateway.ChatFallback)

		reply, err := svc.SendChat(ctx, "Hello?")

		require.NoError(t, err)
		assert.Equal(t, gateway.ChatFallback, reply.Text)
		assert.Len(t, svc.Transcript(), 3)
	})

	t.Run("blank input is ignored", func(t *testing.T) {
		ai := new(MockGateway)
		svc := newTestKitchen(t, ai, nil)

		_, err := svc.SendChat(ctx, " \n ")

		assert.ErrorIs(t, err, models.ErrInvalidInput)
		assert.Len(t, svc.Transcript(), 1)
		ai.AssertNotCalled(t, "Chat", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc := newTestKitchen(t, new(MockGateway), nil)

	size := 4
	goal := models.GoalWeightLoss
	updated, err := svc.UpdateProfile(ctx, models.ProfilePatch{
		HouseholdSize: &size,
		Goals:         &goal,
		Allergies:     []string{"peanuts", " Peanuts ", ""},
	})

	require.NoError(t, err)
	assert.Equal(t, 4, updated.HouseholdSize)
	assert.Equal(t, models.GoalWeightLoss, updated.Goals)
	assert.Equal(t, []string{"peanuts"}, updated.Allergies)
	assert.Equal(t, "Chef", updated.Name)

	zero := 0
	_, err = svc.UpdateProfile(ctx, models.ProfilePatch{MaxCookingTime: &zero})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	assert.Equal(t, 45, svc.Profile().MaxCookingTime)
}
