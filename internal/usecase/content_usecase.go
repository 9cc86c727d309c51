package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pompa-press/internal/entity"
	"pompa-press/internal/repo/persistent"
	"pompa-press/pkg/config"
	"pompa-press/pkg/imghost"
	"pompa-press/pkg/logger"
	"pompa-press/pkg/metrics"
	"pompa-press/pkg/queue"
	"pompa-press/pkg/slug"

	"github.com/google/uuid"
)

const (
	maxSlugProbes       = 50
	maxSequenceAttempts = 3
)

type ContentUseCase interface {
	CreateContent(content *entity.Content) (*entity.Content, error)
	GetContent(id string) (*entity.Content, error)
	GetContentBySlug(slugValue string) (*entity.Content, error)
	ListContents(limit, offset int, categoria entity.Category, estado entity.State) ([]*entity.Content, error)
	UpdateContent(id string, content *entity.Content) (*entity.Content, error)
	ChangeEstado(id string, estado entity.State) (*entity.Content, error)
	TrashContent(id string) error
	DeleteContent(id string) error
	AttachMedia(contentID string, kind entity.SlotKind, index int, fileName string, data []byte) (*entity.MediaSlot, error)
	RemoveMedia(contentID string, kind entity.SlotKind, index int) error
	RetryPendingUploads() (int, error)
}

type contentUseCase struct {
	contentRepo  persistent.ContentRepository
	imageHost    imghost.Host
	queueClient  *queue.Client
	newsletterUC NewsletterUseCase
	cfg          *config.Config
	logger       *logger.Logger
}

func NewContentUseCase(
	contentRepo persistent.ContentRepository,
	imageHost imghost.Host,
	queueClient *queue.Client,
	newsletterUC NewsletterUseCase,
	cfg *config.Config,
	logger *logger.Logger,
) ContentUseCase {
	return &contentUseCase{
		contentRepo:  contentRepo,
		imageHost:    imageHost,
		queueClient:  queueClient,
		newsletterUC: newsletterUC,
		cfg:          cfg,
		logger:       logger,
	}
}

func (uc *contentUseCase) CreateContent(content *entity.Content) (*entity.Content, error) {
	content.Estado = entity.State(strings.ToLower(string(content.Estado)))
	if content.Estado == "" {
		content.Estado = entity.StateBorrador
	}
	if err := validateContent(content); err != nil {
		return nil, err
	}

	derived, err := uc.deriveSlug(content.Titulo)
	if err != nil {
		return nil, err
	}
	content.Slug = derived

	if content.FechaPublicacion.IsZero() {
		content.FechaPublicacion = time.Now()
	}
	content.UltimoReseteo = time.Now()

	if content.Categoria == entity.CategoryIssues && content.Issue.NumeroIssue == 0 {
		if err := uc.createWithAssignedNumber(content); err != nil {
			return nil, err
		}
	} else {
		if err := uc.contentRepo.Create(content); err != nil {
			return nil, err
		}
	}

	uc.logger.Info("Created content %s (%s) slug=%s estado=%s", content.ID, content.Categoria, content.Slug, content.Estado)

	if content.Estado == entity.StatePublicado {
		uc.triggerNewsletter(content.ID)
	}

	return content, nil
}

// createWithAssignedNumber assigns max+1 and retries on a sequence conflict,
// which happens when two issue creations race for the same number. The
// partial unique index is the arbiter; we just pick up the next number and
// try again a bounded number of times.
func (uc *contentUseCase) createWithAssignedNumber(content *entity.Content) error {
	for attempt := 0; attempt < maxSequenceAttempts; attempt++ {
		max, err := uc.contentRepo.MaxIssueNumber()
		if err != nil {
			return err
		}
		content.Issue.NumeroIssue = max + 1

		err = uc.contentRepo.Create(content)
		if err == nil {
			return nil
		}
		if !errors.Is(err, entity.ErrSequenceConflict) {
			return err
		}
		uc.logger.Warn("Issue number %d taken, retrying (attempt %d)", content.Issue.NumeroIssue, attempt+1)
	}
	return fmt.Errorf("%w: could not assign issue number", entity.ErrValidation)
}

func (uc *contentUseCase) GetContent(id string) (*entity.Content, error) {
	return uc.contentRepo.GetByID(id)
}

func (uc *contentUseCase) GetContentBySlug(slugValue string) (*entity.Content, error) {
	return uc.contentRepo.GetBySlug(slugValue)
}

func (uc *contentUseCase) ListContents(limit, offset int, categoria entity.Category, estado entity.State) ([]*entity.Content, error) {
	if categoria != "" && !categoria.Valid() {
		return nil, fmt.Errorf("%w: categoria %q", entity.ErrValidation, categoria)
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return uc.contentRepo.List(limit, offset, categoria, estado)
}

func (uc *contentUseCase) UpdateContent(id string, incoming *entity.Content) (*entity.Content, error) {
	existing, err := uc.contentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	incoming.ID = existing.ID
	incoming.Categoria = existing.Categoria
	incoming.Slug = existing.Slug
	incoming.Estado = entity.State(strings.ToLower(string(incoming.Estado)))
	if incoming.Estado == "" {
		incoming.Estado = existing.Estado
	}
	if incoming.AutorID == "" {
		incoming.AutorID = existing.AutorID
	}
	if incoming.FechaPublicacion.IsZero() {
		incoming.FechaPublicacion = existing.FechaPublicacion
	}
	if incoming.Categoria == entity.CategoryIssues && incoming.Issue != nil && incoming.Issue.NumeroIssue == 0 && existing.Issue != nil {
		incoming.Issue.NumeroIssue = existing.Issue.NumeroIssue
	}

	if err := validateContent(incoming); err != nil {
		return nil, err
	}

	if err := uc.contentRepo.Update(incoming); err != nil {
		return nil, err
	}
	// A nil list means the field was omitted from the payload; only a
	// supplied list replaces the stored one.
	if incoming.References != nil {
		if err := uc.contentRepo.ReplaceReferences(id, incoming.References); err != nil {
			return nil, err
		}
	}
	if incoming.Categoria == entity.CategoryMadeInArg && incoming.MadeInArg != nil && incoming.MadeInArg.ImageLinks != nil {
		if err := uc.contentRepo.ReplaceImageLinks(id, incoming.MadeInArg.ImageLinks); err != nil {
			return nil, err
		}
	}

	uc.reconcilePendingSlots(existing)

	wasPublished := strings.EqualFold(string(existing.Estado), string(entity.StatePublicado))
	isPublished := incoming.Estado == entity.StatePublicado
	if isPublished && !wasPublished {
		uc.triggerNewsletter(id)
	}

	return uc.contentRepo.GetByID(id)
}

func (uc *contentUseCase) ChangeEstado(id string, estado entity.State) (*entity.Content, error) {
	estado = entity.State(strings.ToLower(string(estado)))
	if !estado.Valid() {
		return nil, fmt.Errorf("%w: estado %q", entity.ErrValidation, estado)
	}

	existing, err := uc.contentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := uc.contentRepo.UpdateEstado(id, estado); err != nil {
		return nil, err
	}

	wasPublished := strings.EqualFold(string(existing.Estado), string(entity.StatePublicado))
	if estado == entity.StatePublicado && !wasPublished {
		uc.triggerNewsletter(id)
	}

	return uc.contentRepo.GetByID(id)
}

func (uc *contentUseCase) TrashContent(id string) error {
	return uc.contentRepo.UpdateEstado(id, entity.StateEnPapelera)
}

// DeleteContent removes the row permanently. Remote image cleanup is
// best-effort; a host that cannot delete never blocks the removal.
func (uc *contentUseCase) DeleteContent(id string) error {
	content, err := uc.contentRepo.GetByID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), uc.cfg.UploadTimeout)
	defer cancel()
	for i := range content.Slots {
		slot := &content.Slots[i]
		if slot.RemoteURL != "" {
			if _, err := uc.imageHost.Delete(ctx, slot.RemoteURL); err != nil {
				uc.logger.Warn("Could not delete remote image for %s slot %s/%d: %v", id, slot.Kind, slot.SlotIndex, err)
			}
		}
		if slot.LocalRef != "" {
			if err := os.Remove(slot.LocalRef); err != nil && !os.IsNotExist(err) {
				uc.logger.Warn("Could not remove staged file %s: %v", slot.LocalRef, err)
			}
		}
	}

	return uc.contentRepo.HardDelete(id)
}

// AttachMedia stages the uploaded binary and tries to push it to the image
// host right away. On upload failure the slot stays pending and the retry
// sweep picks it up later; the caller still gets the slot back.
func (uc *contentUseCase) AttachMedia(contentID string, kind entity.SlotKind, index int, fileName string, data []byte) (*entity.MediaSlot, error) {
	content, err := uc.contentRepo.GetByID(contentID)
	if err != nil {
		return nil, err
	}
	if err := validateSlotPosition(content.Categoria, kind, index); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", entity.ErrValidation)
	}

	if err := os.MkdirAll(uc.cfg.StagingDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to prepare staging dir: %w", err)
	}
	stagedPath := filepath.Join(uc.cfg.StagingDir, uuid.New().String()+filepath.Ext(fileName))
	if err := os.WriteFile(stagedPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to stage file: %w", err)
	}

	if old := content.Slot(kind, index); old != nil {
		if old.LocalRef != "" && old.LocalRef != stagedPath {
			if err := os.Remove(old.LocalRef); err != nil && !os.IsNotExist(err) {
				uc.logger.Warn("Could not remove superseded staged file %s: %v", old.LocalRef, err)
			}
		}
		if old.RemoteURL != "" {
			uc.deleteRemoteAsync(contentID, kind, index, old.RemoteURL)
		}
	}

	slot := &entity.MediaSlot{
		Kind:      kind,
		SlotIndex: index,
		LocalRef:  stagedPath,
		UpdatedAt: time.Now(),
	}
	if err := uc.contentRepo.UpsertSlot(contentID, slot); err != nil {
		os.Remove(stagedPath)
		return nil, err
	}

	uc.uploadSlot(contentID, slot, fileName)
	return slot, nil
}

func (uc *contentUseCase) RemoveMedia(contentID string, kind entity.SlotKind, index int) error {
	content, err := uc.contentRepo.GetByID(contentID)
	if err != nil {
		return err
	}
	slot := content.Slot(kind, index)
	if slot == nil {
		return entity.ErrNotFound
	}

	if slot.RemoteURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), uc.cfg.UploadTimeout)
		defer cancel()
		if _, err := uc.imageHost.Delete(ctx, slot.RemoteURL); err != nil {
			uc.logger.Warn("Could not delete remote image for %s slot %s/%d: %v", contentID, kind, index, err)
		}
	}
	if slot.LocalRef != "" {
		if err := os.Remove(slot.LocalRef); err != nil && !os.IsNotExist(err) {
			uc.logger.Warn("Could not remove staged file %s: %v", slot.LocalRef, err)
		}
	}

	return uc.contentRepo.DeleteSlot(contentID, kind, index)
}

// RetryPendingUploads sweeps every content that still has staged binaries and
// retries each slot. Failures stay pending for the next sweep.
func (uc *contentUseCase) RetryPendingUploads() (int, error) {
	contents, err := uc.contentRepo.ListWithPendingSlots()
	if err != nil {
		return 0, err
	}

	uploaded := 0
	for _, content := range contents {
		uploaded += uc.reconcilePendingSlots(content)
	}
	if uploaded > 0 {
		uc.logger.Info("Pending upload sweep reconciled %d slots", uploaded)
	}
	return uploaded, nil
}

func (uc *contentUseCase) reconcilePendingSlots(content *entity.Content) int {
	uploaded := 0
	for i := range content.Slots {
		slot := &content.Slots[i]
		if !slot.Pending() {
			continue
		}
		if uc.uploadSlot(content.ID, slot, filepath.Base(slot.LocalRef)) {
			uploaded++
		}
	}
	return uploaded
}

// uploadSlot moves one staged binary to the image host. Each slot fails in
// isolation; a rate limit or host outage never aborts the surrounding save.
func (uc *contentUseCase) uploadSlot(contentID string, slot *entity.MediaSlot, fileName string) bool {
	data, err := os.ReadFile(slot.LocalRef)
	if err != nil {
		uc.logger.Error("Staged file missing for %s slot %s/%d: %v", contentID, slot.Kind, slot.SlotIndex, err)
		metrics.UploadsFailed.Inc()
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), uc.cfg.UploadTimeout*time.Duration(uc.cfg.UploadMaxRetries+1))
	defer cancel()

	url, err := uc.imageHost.Upload(ctx, data, fileName)
	if err != nil {
		uc.logger.Warn("Upload failed for %s slot %s/%d, will retry: %v", contentID, slot.Kind, slot.SlotIndex, err)
		metrics.UploadsFailed.Inc()
		return false
	}

	stagedPath := slot.LocalRef
	slot.RemoteURL = url
	slot.LocalRef = ""
	slot.UpdatedAt = time.Now()
	if err := uc.contentRepo.UpsertSlot(contentID, slot); err != nil {
		uc.logger.Error("Could not persist reconciled slot for %s %s/%d: %v", contentID, slot.Kind, slot.SlotIndex, err)
		slot.LocalRef = stagedPath
		return false
	}

	if err := os.Remove(stagedPath); err != nil && !os.IsNotExist(err) {
		uc.logger.Warn("Could not remove staged file %s: %v", stagedPath, err)
	}
	metrics.UploadsOK.Inc()
	return true
}

// deleteRemoteAsync fires a best-effort delete of a replaced remote image.
// Hosts without a delete API report success while leaving the asset live;
// either way the save never waits on it.
func (uc *contentUseCase) deleteRemoteAsync(contentID string, kind entity.SlotKind, index int, url string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), uc.cfg.UploadTimeout)
		defer cancel()
		if _, err := uc.imageHost.Delete(ctx, url); err != nil {
			uc.logger.Warn("Could not delete replaced remote image for %s slot %s/%d: %v", contentID, kind, index, err)
		}
	}()
}

// triggerNewsletter hands the publish event to the dispatch path. With a
// broker the task goes through the durable queue; without one the dispatch
// still happens off the request path.
func (uc *contentUseCase) triggerNewsletter(contentID string) {
	if uc.queueClient != nil {
		err := uc.queueClient.PublishTask(map[string]interface{}{
			"type":         "newsletter_dispatch",
			"contenido_id": contentID,
		})
		if err == nil {
			return
		}
		uc.logger.Error("Failed to enqueue newsletter dispatch for %s, falling back to direct send: %v", contentID, err)
	}

	go func() {
		if _, err := uc.newsletterUC.DispatchForContent(contentID, true); err != nil && !errors.Is(err, entity.ErrAlreadyDispatched) {
			uc.logger.Error("Newsletter dispatch for %s failed: %v", contentID, err)
		}
	}()
}

func (uc *contentUseCase) deriveSlug(titulo string) (string, error) {
	base := slug.Make(titulo)
	candidate := base
	for i := 1; i <= maxSlugProbes; i++ {
		exists, err := uc.contentRepo.SlugExists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", fmt.Errorf("%w: could not derive unique slug for %q", entity.ErrValidation, titulo)
}

func validateContent(content *entity.Content) error {
	if !content.Categoria.Valid() {
		return fmt.Errorf("%w: categoria %q", entity.ErrValidation, content.Categoria)
	}
	if strings.TrimSpace(content.Titulo) == "" {
		return fmt.Errorf("%w: titulo is required", entity.ErrValidation)
	}
	if content.AutorID == "" {
		return fmt.Errorf("%w: autor_id is required", entity.ErrValidation)
	}
	if !content.Estado.Valid() {
		return fmt.Errorf("%w: estado %q", entity.ErrValidation, content.Estado)
	}

	switch content.Categoria {
	case entity.CategoryIssues:
		if content.MadeInArg != nil || content.News != nil {
			return fmt.Errorf("%w: issues content carries only the issues payload", entity.ErrValidation)
		}
		if content.Issue == nil || strings.TrimSpace(content.Issue.NombreModelo) == "" {
			return fmt.Errorf("%w: issues content requires nombre_modelo", entity.ErrValidation)
		}
	case entity.CategoryMadeInArg:
		if content.Issue != nil || content.News != nil {
			return fmt.Errorf("%w: madeinarg content carries only the madeinarg payload", entity.ErrValidation)
		}
		if content.MadeInArg == nil || !content.MadeInArg.Subcategoria.Valid() {
			return fmt.Errorf("%w: madeinarg content requires a valid subcategoria", entity.ErrValidation)
		}
		content.MadeInArg.ImageLinks = keepValidImageLinks(content.MadeInArg.ImageLinks)
	case entity.CategoryNews:
		if content.Issue != nil || content.MadeInArg != nil {
			return fmt.Errorf("%w: news content carries only the news payload", entity.ErrValidation)
		}
		if content.News == nil || strings.TrimSpace(content.News.Cuerpo) == "" {
			return fmt.Errorf("%w: news content requires cuerpo", entity.ErrValidation)
		}
	default:
		if content.Issue != nil || content.MadeInArg != nil || content.News != nil {
			return fmt.Errorf("%w: %s content carries no category payload", entity.ErrValidation, content.Categoria)
		}
	}

	for i := range content.Slots {
		if err := validateSlotPosition(content.Categoria, content.Slots[i].Kind, content.Slots[i].SlotIndex); err != nil {
			return err
		}
	}
	content.References = keepValidReferences(content.References)

	return nil
}

// keepValidReferences drops entries missing their display text or URL and
// fills in sequential order for entries that did not supply one. Bad rows
// are skipped, not rejected.
func keepValidReferences(refs []entity.ReferenceLink) []entity.ReferenceLink {
	kept := refs[:0]
	for i := range refs {
		ref := refs[i]
		if strings.TrimSpace(ref.TextoMostrar) == "" || strings.TrimSpace(ref.URL) == "" {
			continue
		}
		if ref.Orden == 0 {
			ref.Orden = len(kept) + 1
		}
		kept = append(kept, ref)
	}
	return kept
}

func keepValidImageLinks(links []entity.ImageLink) []entity.ImageLink {
	kept := links[:0]
	for i := range links {
		link := links[i]
		if link.SlotIndex < 1 || link.SlotIndex > entity.MaxSlots {
			continue
		}
		if strings.TrimSpace(link.URLTienda) == "" {
			continue
		}
		kept = append(kept, link)
	}
	return kept
}

func validateSlotPosition(categoria entity.Category, kind entity.SlotKind, index int) error {
	if kind != entity.SlotKindGallery && kind != entity.SlotKindBackstage {
		return fmt.Errorf("%w: slot kind %q", entity.ErrValidation, kind)
	}
	if kind == entity.SlotKindBackstage && categoria != entity.CategoryIssues {
		return fmt.Errorf("%w: backstage slots exist only for issues", entity.ErrValidation)
	}
	if index < 1 || index > entity.MaxSlots {
		return fmt.Errorf("%w: slot index %d out of range 1..%d", entity.ErrValidation, index, entity.MaxSlots)
	}
	return nil
}
