package usecase

import (
	"testing"
	"time"

	"pompa-press/internal/entity"
	"pompa-press/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newVisitUseCase(t *testing.T, repo *MockContentRepository) VisitUseCase {
	return NewVisitUseCase(repo, nil, testConfig(t), logger.New())
}

func TestRecordVisit_CountsNewVisitor(t *testing.T) {
	mockRepo := new(MockContentRepository)
	uc := newVisitUseCase(t, mockRepo)

	content := &entity.Content{
		ID:                   "content-1",
		Categoria:            entity.CategoryNews,
		UltimoReseteo:        time.Now().Add(-time.Hour),
		ContadorVisitas:      10,
		ContadorVisitasTotal: 100,
	}
	counted := &entity.Content{
		ID:                   "content-1",
		Categoria:            entity.CategoryNews,
		UltimoReseteo:        content.UltimoReseteo,
		ContadorVisitas:      11,
		ContadorVisitasTotal: 101,
	}
	mockRepo.On("GetByID", "content-1").Return(content, nil).Once()
	mockRepo.On("VisitExistsSince", "content-1", "1.2.3.4", mock.AnythingOfType("time.Time")).Return(false, nil)
	mockRepo.On("CreateVisit", mock.AnythingOfType("*entity.Visit")).Return(nil)
	mockRepo.On("IncrementVisitas", "content-1").Return(nil)
	mockRepo.On("GetByID", "content-1").Return(counted, nil).Once()

	result, err := uc.RecordVisit("content-1", "1.2.3.4")

	assert.NoError(t, err)
	assert.True(t, result.Counted)
	assert.Equal(t, 11, result.ContadorVisitas)
	assert.Equal(t, 101, result.ContadorVisitasTotal)
	mockRepo.AssertExpectations(t)
}

func TestRecordVisit_DeduplicatesRecentIP(t *testing.T) {
	mockRepo := new(MockContentRepository)
	uc := newVisitUseCase(t, mockRepo)

	content := &entity.Content{
		ID:                   "content-1",
		UltimoReseteo:        time.Now().Add(-time.Hour),
		ContadorVisitas:      10,
		ContadorVisitasTotal: 100,
	}
	mockRepo.On("GetByID", "content-1").Return(content, nil)
	mockRepo.On("VisitExistsSince", "content-1", "1.2.3.4", mock.AnythingOfType("time.Time")).Return(true, nil)

	result, err := uc.RecordVisit("content-1", "1.2.3.4")

	assert.NoError(t, err)
	assert.False(t, result.Counted)
	assert.Equal(t, 10, result.ContadorVisitas)
	mockRepo.AssertNotCalled(t, "CreateVisit", mock.Anything)
	mockRepo.AssertNotCalled(t, "IncrementVisitas", mock.Anything)
}

func TestRecordVisit_ResetsStaleWindowFirst(t *testing.T) {
	mockRepo := new(MockContentRepository)
	uc := newVisitUseCase(t, mockRepo)

	content := &entity.Content{
		ID:            "content-1",
		UltimoReseteo: time.Now().Add(-8 * 24 * time.Hour),
	}
	mockRepo.On("GetByID", "content-1").Return(content, nil)
	mockRepo.On("ResetWindowIfStale", "content-1", mock.AnythingOfType("time.Time")).Return(true, nil)
	mockRepo.On("VisitExistsSince", "content-1", "1.2.3.4", mock.AnythingOfType("time.Time")).Return(false, nil)
	mockRepo.On("CreateVisit", mock.AnythingOfType("*entity.Visit")).Return(nil)
	mockRepo.On("IncrementVisitas", "content-1").Return(nil)

	_, err := uc.RecordVisit("content-1", "1.2.3.4")

	assert.NoError(t, err)
	mockRepo.AssertCalled(t, "ResetWindowIfStale", "content-1", mock.AnythingOfType("time.Time"))
}

func TestRecordVisit_UnknownContent(t *testing.T) {
	mockRepo := new(MockContentRepository)
	uc := newVisitUseCase(t, mockRepo)

	mockRepo.On("GetByID", "ghost").Return(nil, entity.ErrNotFound)

	_, err := uc.RecordVisit("ghost", "1.2.3.4")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestRecordVisit_EmptyIPSkipsDedup(t *testing.T) {
	mockRepo := new(MockContentRepository)
	uc := newVisitUseCase(t, mockRepo)

	content := &entity.Content{ID: "content-1", UltimoReseteo: time.Now()}
	mockRepo.On("GetByID", "content-1").Return(content, nil)
	mockRepo.On("CreateVisit", mock.AnythingOfType("*entity.Visit")).Return(nil)
	mockRepo.On("IncrementVisitas", "content-1").Return(nil)

	result, err := uc.RecordVisit("content-1", "")

	assert.NoError(t, err)
	assert.True(t, result.Counted)
	mockRepo.AssertNotCalled(t, "VisitExistsSince", mock.Anything, mock.Anything, mock.Anything)
}

func TestSweepStaleWindows(t *testing.T) {
	mockRepo := new(MockContentRepository)
	uc := newVisitUseCase(t, mockRepo)

	mockRepo.On("ListStaleWindows", mock.AnythingOfType("time.Time")).Return([]string{"a", "b", "c"}, nil)
	mockRepo.On("ResetWindowIfStale", "a", mock.AnythingOfType("time.Time")).Return(true, nil)
	mockRepo.On("ResetWindowIfStale", "b", mock.AnythingOfType("time.Time")).Return(false, nil)
	mockRepo.On("ResetWindowIfStale", "c", mock.AnythingOfType("time.Time")).Return(true, nil)

	reset, err := uc.SweepStaleWindows()

	assert.NoError(t, err)
	assert.Equal(t, 2, reset)
}

func TestResetCountersBulk_SkipsUnknownIDs(t *testing.T) {
	mockRepo := new(MockContentRepository)
	uc := newVisitUseCase(t, mockRepo)

	mockRepo.On("ResetCounters", "content-1").Return(nil)
	mockRepo.On("ResetCounters", "ghost").Return(entity.ErrNotFound)
	mockRepo.On("ResetCounters", "content-2").Return(nil)

	reset, err := uc.ResetCountersBulk([]string{"content-1", "ghost", "content-2"})

	assert.NoError(t, err)
	assert.Equal(t, 2, reset)
	mockRepo.AssertExpectations(t)
}

func TestMostVisited_ClampsLimit(t *testing.T) {
	mockRepo := new(MockContentRepository)
	uc := newVisitUseCase(t, mockRepo)

	mockRepo.On("MostVisited", 10).Return([]*entity.Content{}, nil)

	_, err := uc.MostVisited(0)
	assert.NoError(t, err)
	mockRepo.AssertCalled(t, "MostVisited", 10)
}
