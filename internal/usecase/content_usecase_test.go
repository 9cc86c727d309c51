package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pompa-press/internal/entity"
	"pompa-press/internal/repo/persistent"
	"pompa-press/pkg/config"
	"pompa-press/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockContentRepository is a mock implementation of ContentRepository
type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) Create(content *entity.Content) error {
	args := m.Called(content)
	return args.Error(0)
}

func (m *MockContentRepository) GetByID(id string) (*entity.Content, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Content), args.Error(1)
}

func (m *MockContentRepository) GetBySlug(slug string) (*entity.Content, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Content), args.Error(1)
}

func (m *MockContentRepository) List(limit, offset int, categoria entity.Category, estado entity.State) ([]*entity.Content, error) {
	args := m.Called(limit, offset, categoria, estado)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Content), args.Error(1)
}

func (m *MockContentRepository) Update(content *entity.Content) error {
	args := m.Called(content)
	return args.Error(0)
}

func (m *MockContentRepository) UpdateEstado(id string, estado entity.State) error {
	args := m.Called(id, estado)
	return args.Error(0)
}

func (m *MockContentRepository) HardDelete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockContentRepository) SlugExists(slug string) (bool, error) {
	args := m.Called(slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockContentRepository) MaxIssueNumber() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

func (m *MockContentRepository) ReplaceReferences(contentID string, refs []entity.ReferenceLink) error {
	args := m.Called(contentID, refs)
	return args.Error(0)
}

func (m *MockContentRepository) ReplaceImageLinks(contentID string, links []entity.ImageLink) error {
	args := m.Called(contentID, links)
	return args.Error(0)
}

func (m *MockContentRepository) UpsertSlot(contentID string, slot *entity.MediaSlot) error {
	args := m.Called(contentID, slot)
	return args.Error(0)
}

func (m *MockContentRepository) DeleteSlot(contentID string, kind entity.SlotKind, index int) error {
	args := m.Called(contentID, kind, index)
	return args.Error(0)
}

func (m *MockContentRepository) IncrementVisitas(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockContentRepository) ResetWindowIfStale(id string, cutoff time.Time) (bool, error) {
	args := m.Called(id, cutoff)
	return args.Bool(0), args.Error(1)
}

func (m *MockContentRepository) ResetCounters(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockContentRepository) MostVisited(limit int) ([]*entity.Content, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Content), args.Error(1)
}

func (m *MockContentRepository) MostRead(limit int) ([]*entity.Content, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Content), args.Error(1)
}

func (m *MockContentRepository) ListWithPendingSlots() ([]*entity.Content, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Content), args.Error(1)
}

func (m *MockContentRepository) ListStaleWindows(cutoff time.Time) ([]string, error) {
	args := m.Called(cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockContentRepository) CreateVisit(visit *entity.Visit) error {
	args := m.Called(visit)
	return args.Error(0)
}

func (m *MockContentRepository) VisitExistsSince(contentID, ip string, since time.Time) (bool, error) {
	args := m.Called(contentID, ip, since)
	return args.Bool(0), args.Error(1)
}

func (m *MockContentRepository) GetAuthor(id string) (*entity.Author, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Author), args.Error(1)
}

var _ persistent.ContentRepository = (*MockContentRepository)(nil)

// MockNewsletterUseCase is a mock implementation of NewsletterUseCase
type MockNewsletterUseCase struct {
	mock.Mock
}

func (m *MockNewsletterUseCase) DispatchForContent(contentID string, automatic bool) (*entity.DispatchResult, error) {
	args := m.Called(contentID, automatic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DispatchResult), args.Error(1)
}

func (m *MockNewsletterUseCase) Resend(newsletterID string) (*entity.DispatchResult, error) {
	args := m.Called(newsletterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DispatchResult), args.Error(1)
}

func (m *MockNewsletterUseCase) ListNewsletters(limit, offset int) ([]*entity.Newsletter, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Newsletter), args.Error(1)
}

func (m *MockNewsletterUseCase) GetNewsletter(id string) (*entity.Newsletter, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Newsletter), args.Error(1)
}

func (m *MockNewsletterUseCase) HandleDispatchTask(task map[string]interface{}) error {
	args := m.Called(task)
	return args.Error(0)
}

var _ NewsletterUseCase = (*MockNewsletterUseCase)(nil)

// fakeHost is an in-memory image host for tests.
type fakeHost struct {
	url     string
	err     error
	uploads int
}

func (f *fakeHost) Upload(ctx context.Context, data []byte, name string) (string, error) {
	f.uploads++
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func (f *fakeHost) Delete(ctx context.Context, url string) (bool, error) {
	return true, nil
}

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		SiteURL:            "https://revistapompa.com",
		StagingDir:         t.TempDir(),
		UploadTimeout:      time.Second,
		UploadMaxRetries:   1,
		VisitWindow:        7 * 24 * time.Hour,
		VisitDedupInterval: 5 * time.Minute,
	}
}

func newContentUseCase(t *testing.T, repo *MockContentRepository, host *fakeHost, newsletterUC *MockNewsletterUseCase) ContentUseCase {
	if host == nil {
		host = &fakeHost{url: "https://i.ibb.co/abc/test.jpg"}
	}
	if newsletterUC == nil {
		newsletterUC = new(MockNewsletterUseCase)
	}
	return NewContentUseCase(repo, host, nil, newsletterUC, testConfig(t), logger.New())
}

func TestCreateContent_DerivesSlug(t *testing.T) {
	mockRepo := new(MockContentRepository)
	uc := newContentUseCase(t, mockRepo, nil, nil)

	mockRepo.On("SlugExists", "mi-nota").Return(false, nil)
	mockRepo.On("Create", mock.AnythingOfType("*entity.Content")).Return(nil)

	created, err := uc.CreateContent(&entity.Content{
		Categoria: entity.CategoryEditorials,
		Titulo:    "Mi Nota",
		AutorID:   "author-1",
	})

	assert.NoError(t, err)
	assert.Equal(t, "mi-nota", created.Slug)
	assert.Equal(t, entity.StateBorrador, created.Estado)
	mockRepo.AssertExpectations(t)
}

func TestCreateContent_SlugCollisionProbesSuffix(t *testing.T) {
	mockRepo := new(MockContentRepository)
	uc := newContentUseCase(t, mockRepo, nil, nil)

	mockRepo.On("SlugExists", "mi-nota").Return(true, nil)
	mockRepo.On("SlugExists", "mi-nota-1").Return(true, nil)
	mockRepo.On("SlugExists", "mi-nota-2").Return(false, nil)
	mockRepo.On("Create", mock.AnythingOfType("*entity.Content")).Return(nil)

	created, err := uc.CreateContent(&entity.Content{
		Categoria: entity.CategoryEditorials,
		Titulo:    "Mi Nota",
		AutorID:   "author-1",
	})

	assert.NoError(t, err)
	assert.Equal(t, "mi-nota-2", created.Slug)
}

func TestCreateContent_AssignsNextIssueNumber(t *testing.T) {
	mockRepo := new(MockContentRepository)
	uc := newContentUseCase(t, mockRepo, nil, nil)

	mockRepo.On("SlugExists", "pompa-issue-5").Return(false, nil)
	mockRepo.On("MaxIssueNumber").Return(4, nil)
	mockRepo.On("Create", mock.AnythingOfType("*entity.Content")).Return(nil)

	created, err := uc.CreateContent(&entity.Content{
		Categoria: entity.CategoryIssues,
		Titulo:    "Pompa Issue 5",
		AutorID:   "author-1",
		Issue:     &entity.IssuePayload{NombreModelo: "Mora"},
	})

	assert.NoError(t, err)
	assert.Equal(t, 5, created.Issue.NumeroIssue)
}

func TestCreateContent_IssueNumberConflictRetries(t *testing.T) {
	mockRepo := new(MockContentRepository)
	uc := newContentUseCase(t, mockRepo, nil, nil)

	mockRepo.On("SlugExists", "pompa-issue-5").Return(false, nil)
	mockRepo.On("MaxIssueNumber").Return(4, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*entity.Content")).Return(entity.ErrSequenceConflict).Once()
	mockRepo.On("MaxIssueNumber").Return(5, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*entity.Content")).Return(nil).Once()

	created, err := uc.CreateContent(&entity.Content{
		Categoria: entity.CategoryIssues,
		Titulo:    "Pompa Issue 5",
		AutorID:   "author-1",
		Issue:     &entity.IssuePayload{NombreModelo: "Mora"},
	})

	assert.NoError(t, err)
	assert.Equal(t, 6, created.Issue.NumeroIssue)
	mockRepo.AssertExpectations(t)
}

func TestCreateContent_InvalidCategory(t *testing.T) {
	mockRepo := new(MockContentRepository)
	uc := newContentUseCase(t, mockRepo, nil, nil)

	_, err := uc.CreateContent(&entity.Content{
		Categoria: "gossip",
		Titulo:    "Algo",
		AutorID:   "author-1",
	})

	assert.ErrorIs(t, err, entity.ErrValidation)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateContent_PayloadCategoryMismatch(t *testing.T) {
	mockRepo := new(MockContentRepository)
	uc := newContentUseCase(t, mockRepo, nil, nil)

	_, err := uc.CreateContent(&entity.Content{
		Categoria: entity.CategoryEditorials,
		Titulo:    "Algo",
		AutorID:   "author-1",
		News:      &entity.NewsPayload{Cuerpo: "texto"},
	})

	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestCreateContent_NewsRequiresBody(t *testing.T) {
	mockRepo := new(MockContentRepository)
	uc := newContentUseCase(t, mockRepo, nil, nil)

	_, err := uc.CreateContent(&entity.Content{
		Categoria: entity.CategoryNews,
		Titulo:    "Noticia vacía",
		AutorID:   "author-1",
		News:      &entity.NewsPayload{},
	})

	assert.ErrorIs(t, err, entity.ErrValidation)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateContent_MadeInArgRequiresSubcategoria(t *testing.T) {
	mockRepo := new(MockContentRepository)
	uc := newContentUseCase(t, mockRepo, nil, nil)

	_, err := uc.CreateContent(&entity.Content{
		Categoria: entity.CategoryMadeInArg,
		Titulo:    "Marcas de acá",
		AutorID:   "author-1",
		MadeInArg: &entity.MadeInArgPayload{},
	})

	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestCreateContent_SkipsInvalidReferences(t *testing.T) {
	mockRepo := new(MockContentRepository)
	uc := newContentUseCase(t, mockRepo, nil, nil)

	mockRepo.On("SlugExists", "mi-nota").Return(false, nil)
	mockRepo.On("Create", mock.AnythingOfType("*entity.Content")).Return(nil)

	created, err := uc.CreateContent(&entity.Content{
		Categoria: entity.CategoryEditorials,
		Titulo:    "Mi Nota",
		AutorID:   "author-1",
		References: []entity.ReferenceLink{
			{TextoMostrar: "FFLORENC", URL: "https://instagram.com/fflorenc"},
			{TextoMostrar: "", URL: "https://instagram.com/anon"},
			{TextoMostrar: "MUA", URL: "https://instagram.com/mua"},
		},
	})

	assert.NoError(t, err)
	assert.Len(t, created.References, 2)
	assert.Equal(t, 1, created.References[0].Orden)
	assert.Equal(t, 2, created.References[1].Orden)
}

func TestCreateContent_PublishedTriggersDispatch(t *testing.T) {
	mockRepo := new(MockContentRepository)
	mockNL := new(MockNewsletterUseCase)
	uc := newContentUseCase(t, mockRepo, nil, mockNL)

	mockRepo.On("SlugExists", "mi-nota").Return(false, nil)
	mockRepo.On("Create", mock.AnythingOfType("*entity.Content")).Return(nil)

	dispatched := make(chan struct{})
	mockNL.On("DispatchForContent", mock.AnythingOfType("string"), true).
		Run(func(args mock.Arguments) { close(dispatched) }).
		Return(&entity.DispatchResult{Sent: 1}, nil)

	_, err := uc.CreateContent(&entity.Content{
		Categoria: entity.CategoryEditorials,
		Titulo:    "Mi Nota",
		AutorID:   "author-1",
		Estado:    entity.StatePublicado,
	})
	assert.NoError(t, err)

	select {
	case <-dispatched:
	case <-time.After(2 * time.Second):
		t.Fatal("newsletter dispatch was never triggered")
	}
}

func TestChangeEstado_PublishTransitionDispatches(t *testing.T) {
	mockRepo := new(MockContentRepository)
	mockNL := new(MockNewsletterUseCase)
	uc := newContentUseCase(t, mockRepo, nil, mockNL)

	existing := &entity.Content{ID: "content-1", Categoria: entity.CategoryNews, Titulo: "Noticia", Estado: entity.StateBorrador}
	mockRepo.On("GetByID", "content-1").Return(existing, nil)
	mockRepo.On("UpdateEstado", "content-1", entity.StatePublicado).Return(nil)

	dispatched := make(chan struct{})
	mockNL.On("DispatchForContent", "content-1", true).
		Run(func(args mock.Arguments) { close(dispatched) }).
		Return(&entity.DispatchResult{}, nil)

	_, err := uc.ChangeEstado("content-1", "Publicado")
	assert.NoError(t, err)

	select {
	case <-dispatched:
	case <-time.After(2 * time.Second):
		t.Fatal("newsletter dispatch was never triggered")
	}
}

func TestChangeEstado_AlreadyPublishedDoesNotDispatch(t *testing.T) {
	mockRepo := new(MockContentRepository)
	mockNL := new(MockNewsletterUseCase)
	uc := newContentUseCase(t, mockRepo, nil, mockNL)

	existing := &entity.Content{ID: "content-1", Categoria: entity.CategoryNews, Titulo: "Noticia", Estado: entity.StatePublicado}
	mockRepo.On("GetByID", "content-1").Return(existing, nil)
	mockRepo.On("UpdateEstado", "content-1", entity.StatePublicado).Return(nil)

	_, err := uc.ChangeEstado("content-1", "publicado")
	assert.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	mockNL.AssertNotCalled(t, "DispatchForContent", mock.Anything, mock.Anything)
}

func TestChangeEstado_InvalidState(t *testing.T) {
	mockRepo := new(MockContentRepository)
	uc := newContentUseCase(t, mockRepo, nil, nil)

	_, err := uc.ChangeEstado("content-1", "archivado")
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestAttachMedia_UploadsAndReconciles(t *testing.T) {
	mockRepo := new(MockContentRepository)
	host := &fakeHost{url: "https://i.ibb.co/abc/portada.jpg"}
	uc := newContentUseCase(t, mockRepo, host, nil)

	content := &entity.Content{ID: "content-1", Categoria: entity.CategoryEditorials, Titulo: "Nota"}
	mockRepo.On("GetByID", "content-1").Return(content, nil)

	var persisted []*entity.MediaSlot
	mockRepo.On("UpsertSlot", "content-1", mock.AnythingOfType("*entity.MediaSlot")).
		Run(func(args mock.Arguments) {
			slot := *args.Get(1).(*entity.MediaSlot)
			persisted = append(persisted, &slot)
		}).
		Return(nil)

	slot, err := uc.AttachMedia("content-1", entity.SlotKindGallery, 3, "portada.jpg", []byte("jpegdata"))

	assert.NoError(t, err)
	assert.Equal(t, "https://i.ibb.co/abc/portada.jpg", slot.RemoteURL)
	assert.False(t, slot.Pending())
	assert.Equal(t, 1, host.uploads)

	// first persist staged the slot, second recorded the remote URL
	assert.Len(t, persisted, 2)
	assert.True(t, persisted[0].Pending())
	assert.False(t, persisted[1].Pending())

	// staged file is gone after a successful upload
	files, _ := os.ReadDir(filepath.Dir(persisted[0].LocalRef))
	assert.Empty(t, files)
}

func TestAttachMedia_HostDownLeavesSlotPending(t *testing.T) {
	mockRepo := new(MockContentRepository)
	host := &fakeHost{err: errors.New("connection refused")}
	uc := newContentUseCase(t, mockRepo, host, nil)

	content := &entity.Content{ID: "content-1", Categoria: entity.CategoryEditorials, Titulo: "Nota"}
	mockRepo.On("GetByID", "content-1").Return(content, nil)
	mockRepo.On("UpsertSlot", "content-1", mock.AnythingOfType("*entity.MediaSlot")).Return(nil)

	slot, err := uc.AttachMedia("content-1", entity.SlotKindGallery, 1, "portada.jpg", []byte("jpegdata"))

	assert.NoError(t, err)
	assert.True(t, slot.Pending())
	assert.Empty(t, slot.RemoteURL)

	// staged binary survives for the retry sweep
	_, statErr := os.Stat(slot.LocalRef)
	assert.NoError(t, statErr)
}

func TestAttachMedia_BackstageOnlyForIssues(t *testing.T) {
	mockRepo := new(MockContentRepository)
	uc := newContentUseCase(t, mockRepo, nil, nil)

	content := &entity.Content{ID: "content-1", Categoria: entity.CategoryNews, Titulo: "Noticia"}
	mockRepo.On("GetByID", "content-1").Return(content, nil)

	_, err := uc.AttachMedia("content-1", entity.SlotKindBackstage, 1, "detras.jpg", []byte("jpegdata"))
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestAttachMedia_SlotIndexOutOfRange(t *testing.T) {
	mockRepo := new(MockContentRepository)
	uc := newContentUseCase(t, mockRepo, nil, nil)

	content := &entity.Content{ID: "content-1", Categoria: entity.CategoryEditorials, Titulo: "Nota"}
	mockRepo.On("GetByID", "content-1").Return(content, nil)

	_, err := uc.AttachMedia("content-1", entity.SlotKindGallery, 31, "extra.jpg", []byte("jpegdata"))
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestRetryPendingUploads(t *testing.T) {
	mockRepo := new(MockContentRepository)
	host := &fakeHost{url: "https://i.ibb.co/abc/retry.jpg"}
	uc := newContentUseCase(t, mockRepo, host, nil)

	cfg := testConfig(t)
	staged := filepath.Join(cfg.StagingDir, "staged.jpg")
	assert.NoError(t, os.MkdirAll(cfg.StagingDir, 0o755))
	assert.NoError(t, os.WriteFile(staged, []byte("jpegdata"), 0o644))

	pending := &entity.Content{
		ID:        "content-1",
		Categoria: entity.CategoryEditorials,
		Titulo:    "Nota",
		Slots: []entity.MediaSlot{
			{Kind: entity.SlotKindGallery, SlotIndex: 1, LocalRef: staged},
			{Kind: entity.SlotKindGallery, SlotIndex: 2, RemoteURL: "https://i.ibb.co/abc/done.jpg"},
		},
	}
	mockRepo.On("ListWithPendingSlots").Return([]*entity.Content{pending}, nil)
	mockRepo.On("UpsertSlot", "content-1", mock.AnythingOfType("*entity.MediaSlot")).Return(nil)

	uploaded, err := uc.RetryPendingUploads()

	assert.NoError(t, err)
	assert.Equal(t, 1, uploaded)
	assert.Equal(t, 1, host.uploads)
}

func TestUpdateContent_KeepsSlugAndCategory(t *testing.T) {
	mockRepo := new(MockContentRepository)
	uc := newContentUseCase(t, mockRepo, nil, nil)

	existing := &entity.Content{
		ID:               "content-1",
		Categoria:        entity.CategoryEditorials,
		Titulo:           "Nota vieja",
		Slug:             "nota-vieja",
		AutorID:          "author-1",
		Estado:           entity.StateBorrador,
		FechaPublicacion: time.Now(),
	}
	mockRepo.On("GetByID", "content-1").Return(existing, nil)
	mockRepo.On("Update", mock.AnythingOfType("*entity.Content")).Return(nil)

	updated, err := uc.UpdateContent("content-1", &entity.Content{
		Categoria: entity.CategoryNews,
		Titulo:    "Nota nueva",
	})

	assert.NoError(t, err)
	assert.Equal(t, "nota-vieja", updated.Slug)
	assert.Equal(t, entity.CategoryEditorials, updated.Categoria)
}

func TestUpdateContent_OmittedReferencesKept(t *testing.T) {
	mockRepo := new(MockContentRepository)
	uc := newContentUseCase(t, mockRepo, nil, nil)

	existing := &entity.Content{
		ID:               "content-1",
		Categoria:        entity.CategoryEditorials,
		Titulo:           "Nota vieja",
		Slug:             "nota-vieja",
		AutorID:          "author-1",
		Estado:           entity.StateBorrador,
		FechaPublicacion: time.Now(),
		References: []entity.ReferenceLink{
			{TextoMostrar: "Tienda", URL: "https://tienda.example.com", Orden: 1},
		},
	}
	mockRepo.On("GetByID", "content-1").Return(existing, nil)
	mockRepo.On("Update", mock.AnythingOfType("*entity.Content")).Return(nil)

	// References omitted from the payload: the stored links must survive.
	_, err := uc.UpdateContent("content-1", &entity.Content{
		Titulo: "Nota nueva",
	})

	assert.NoError(t, err)
	mockRepo.AssertNotCalled(t, "ReplaceReferences", mock.Anything, mock.Anything)
}

func TestUpdateContent_SuppliedReferencesReplace(t *testing.T) {
	mockRepo := new(MockContentRepository)
	uc := newContentUseCase(t, mockRepo, nil, nil)

	existing := &entity.Content{
		ID:               "content-1",
		Categoria:        entity.CategoryEditorials,
		Titulo:           "Nota",
		Slug:             "nota",
		AutorID:          "author-1",
		Estado:           entity.StateBorrador,
		FechaPublicacion: time.Now(),
	}
	mockRepo.On("GetByID", "content-1").Return(existing, nil)
	mockRepo.On("Update", mock.AnythingOfType("*entity.Content")).Return(nil)
	mockRepo.On("ReplaceReferences", "content-1", mock.Anything).Return(nil)

	_, err := uc.UpdateContent("content-1", &entity.Content{
		Titulo: "Nota",
		References: []entity.ReferenceLink{
			{TextoMostrar: "Lookbook", URL: "https://lookbook.example.com"},
		},
	})

	assert.NoError(t, err)
	mockRepo.AssertCalled(t, "ReplaceReferences", "content-1", mock.MatchedBy(func(refs []entity.ReferenceLink) bool {
		return len(refs) == 1 && refs[0].URL == "https://lookbook.example.com"
	}))
}

func TestUpdateContent_OmittedImageLinksKept(t *testing.T) {
	mockRepo := new(MockContentRepository)
	uc := newContentUseCase(t, mockRepo, nil, nil)

	existing := &entity.Content{
		ID:               "content-1",
		Categoria:        entity.CategoryMadeInArg,
		Titulo:           "Botas",
		Slug:             "botas",
		AutorID:          "author-1",
		Estado:           entity.StateBorrador,
		FechaPublicacion: time.Now(),
		MadeInArg: &entity.MadeInArgPayload{
			Subcategoria: entity.SubcategoryCalzado,
			ImageLinks: []entity.ImageLink{
				{SlotIndex: 1, URLTienda: "https://tienda.example.com/botas"},
			},
		},
	}
	mockRepo.On("GetByID", "content-1").Return(existing, nil)
	mockRepo.On("Update", mock.AnythingOfType("*entity.Content")).Return(nil)

	_, err := uc.UpdateContent("content-1", &entity.Content{
		Titulo: "Botas nuevas",
		MadeInArg: &entity.MadeInArgPayload{
			Subcategoria: entity.SubcategoryCalzado,
		},
	})

	assert.NoError(t, err)
	mockRepo.AssertNotCalled(t, "ReplaceImageLinks", mock.Anything, mock.Anything)
}

func TestDeleteContent_CleansUpRemoteAndStaged(t *testing.T) {
	mockRepo := new(MockContentRepository)
	host := &fakeHost{url: "unused"}
	uc := newContentUseCase(t, mockRepo, host, nil)

	content := &entity.Content{
		ID:        "content-1",
		Categoria: entity.CategoryEditorials,
		Titulo:    "Nota",
		Slots: []entity.MediaSlot{
			{Kind: entity.SlotKindGallery, SlotIndex: 1, RemoteURL: "https://i.ibb.co/abc/1.jpg"},
		},
	}
	mockRepo.On("GetByID", "content-1").Return(content, nil)
	mockRepo.On("HardDelete", "content-1").Return(nil)

	assert.NoError(t, uc.DeleteContent("content-1"))
	mockRepo.AssertCalled(t, "HardDelete", "content-1")
}
