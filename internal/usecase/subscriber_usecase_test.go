package usecase

import (
	"testing"

	"pompa-press/internal/entity"
	"pompa-press/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newSubscriberUseCase(subRepo *MockSubscriberRepository) SubscriberUseCase {
	return NewSubscriberUseCase(subRepo, logger.New())
}

func TestSubscribe_NewSubscriberDefaultsToAllCategories(t *testing.T) {
	subRepo := new(MockSubscriberRepository)
	uc := newSubscriberUseCase(subRepo)

	subRepo.On("GetByEmail", "alicia@test.com").Return(nil, entity.ErrNotFound)
	subRepo.On("Create", mock.AnythingOfType("*entity.Subscriber")).Return(nil)

	subscriber, created, err := uc.Subscribe("Alicia", "Alicia@Test.com", nil)

	assert.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "alicia@test.com", subscriber.Email)
	assert.True(t, subscriber.Activo)
	assert.True(t, subscriber.SuscritoEditorials)
	assert.True(t, subscriber.SuscritoIssues)
	assert.True(t, subscriber.SuscritoMadeInArg)
	assert.True(t, subscriber.SuscritoNews)
	assert.True(t, subscriber.SuscritoClubPompa)
}

func TestSubscribe_ReactivatesAndKeepsToken(t *testing.T) {
	subRepo := new(MockSubscriberRepository)
	uc := newSubscriberUseCase(subRepo)

	existing := &entity.Subscriber{
		ID:                 "sub-1",
		Nombre:             "Alicia",
		Email:              "alicia@test.com",
		Activo:             false,
		TokenDesuscripcion: "tok-original",
	}
	subRepo.On("GetByEmail", "alicia@test.com").Return(existing, nil)
	subRepo.On("Update", mock.AnythingOfType("*entity.Subscriber")).Return(nil)

	subscriber, created, err := uc.Subscribe("Alicia", "alicia@test.com", &entity.CategoryFlags{Issues: true})

	assert.NoError(t, err)
	assert.False(t, created)
	assert.True(t, subscriber.Activo)
	assert.Equal(t, "tok-original", subscriber.TokenDesuscripcion)
	assert.True(t, subscriber.SuscritoIssues)
	assert.False(t, subscriber.SuscritoNews)
	subRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestSubscribe_InvalidEmail(t *testing.T) {
	uc := newSubscriberUseCase(new(MockSubscriberRepository))

	_, _, err := uc.Subscribe("Alicia", "not-an-email", nil)
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestSubscribe_MissingName(t *testing.T) {
	uc := newSubscriberUseCase(new(MockSubscriberRepository))

	_, _, err := uc.Subscribe("  ", "alicia@test.com", nil)
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestUnsubscribe_DeactivatesByToken(t *testing.T) {
	subRepo := new(MockSubscriberRepository)
	uc := newSubscriberUseCase(subRepo)

	existing := &entity.Subscriber{ID: "sub-1", Email: "alicia@test.com", Activo: true, TokenDesuscripcion: "tok-a"}
	subRepo.On("GetByToken", "tok-a").Return(existing, nil)

	var updated *entity.Subscriber
	subRepo.On("Update", mock.AnythingOfType("*entity.Subscriber")).
		Run(func(args mock.Arguments) { updated = args.Get(0).(*entity.Subscriber) }).
		Return(nil)

	assert.NoError(t, uc.Unsubscribe("tok-a", "demasiados correos"))
	assert.False(t, updated.Activo)
}

func TestUnsubscribe_IdempotentWhenInactive(t *testing.T) {
	subRepo := new(MockSubscriberRepository)
	uc := newSubscriberUseCase(subRepo)

	existing := &entity.Subscriber{ID: "sub-1", Activo: false, TokenDesuscripcion: "tok-a"}
	subRepo.On("GetByToken", "tok-a").Return(existing, nil)

	assert.NoError(t, uc.Unsubscribe("tok-a", ""))
	subRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestUnsubscribe_UnknownToken(t *testing.T) {
	subRepo := new(MockSubscriberRepository)
	uc := newSubscriberUseCase(subRepo)

	subRepo.On("GetByToken", "tok-ghost").Return(nil, entity.ErrNotFound)

	assert.ErrorIs(t, uc.Unsubscribe("tok-ghost", ""), entity.ErrNotFound)
}

func TestUpdatePreferences(t *testing.T) {
	subRepo := new(MockSubscriberRepository)
	uc := newSubscriberUseCase(subRepo)

	existing := &entity.Subscriber{
		ID:                 "sub-1",
		Activo:             true,
		TokenDesuscripcion: "tok-a",
		SuscritoEditorials: true,
		SuscritoNews:       true,
	}
	subRepo.On("GetByToken", "tok-a").Return(existing, nil)
	subRepo.On("Update", mock.AnythingOfType("*entity.Subscriber")).Return(nil)

	subscriber, err := uc.UpdatePreferences("tok-a", entity.CategoryFlags{Issues: true, ClubPompa: true})

	assert.NoError(t, err)
	assert.True(t, subscriber.SuscritoIssues)
	assert.True(t, subscriber.SuscritoClubPompa)
	assert.False(t, subscriber.SuscritoEditorials)
	assert.False(t, subscriber.SuscritoNews)
}
