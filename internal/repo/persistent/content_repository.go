package persistent

import (
	"errors"
	"strings"
	"time"

	"pompa-press/internal/entity"
	"pompa-press/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContentRepository interface {
	Create(content *entity.Content) error
	GetByID(id string) (*entity.Content, error)
	GetBySlug(slug string) (*entity.Content, error)
	List(limit, offset int, categoria entity.Category, estado entity.State) ([]*entity.Content, error)
	Update(content *entity.Content) error
	UpdateEstado(id string, estado entity.State) error
	HardDelete(id string) error
	SlugExists(slug string) (bool, error)
	MaxIssueNumber() (int, error)
	ReplaceReferences(contentID string, refs []entity.ReferenceLink) error
	ReplaceImageLinks(contentID string, links []entity.ImageLink) error
	UpsertSlot(contentID string, slot *entity.MediaSlot) error
	DeleteSlot(contentID string, kind entity.SlotKind, index int) error
	IncrementVisitas(id string) error
	ResetWindowIfStale(id string, cutoff time.Time) (bool, error)
	ResetCounters(id string) error
	MostVisited(limit int) ([]*entity.Content, error)
	MostRead(limit int) ([]*entity.Content, error)
	ListWithPendingSlots() ([]*entity.Content, error)
	ListStaleWindows(cutoff time.Time) ([]string, error)
	CreateVisit(visit *entity.Visit) error
	VisitExistsSince(contentID, ip string, since time.Time) (bool, error)
	GetAuthor(id string) (*entity.Author, error)
}

type contentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "duplicate key value violates unique constraint")
}

func (r *contentRepository) Create(content *entity.Content) error {
	contentModel := ToContentModel(content)
	if contentModel.ID == "" {
		contentModel.ID = uuid.New().String()
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		slots := contentModel.Slots
		refs := contentModel.References
		links := contentModel.ImageLinks
		contentModel.Slots = nil
		contentModel.References = nil
		contentModel.ImageLinks = nil

		if err := tx.Create(contentModel).Error; err != nil {
			return err
		}

		for i := range slots {
			slots[i].ContenidoID = contentModel.ID
			if slots[i].ID == "" {
				slots[i].ID = uuid.New().String()
			}
			if err := tx.Create(&slots[i]).Error; err != nil {
				return err
			}
		}
		for i := range refs {
			refs[i].ContenidoID = contentModel.ID
			if refs[i].ID == "" {
				refs[i].ID = uuid.New().String()
			}
			if err := tx.Create(&refs[i]).Error; err != nil {
				return err
			}
		}
		for i := range links {
			links[i].ContenidoID = contentModel.ID
			if links[i].ID == "" {
				links[i].ID = uuid.New().String()
			}
			if err := tx.Create(&links[i]).Error; err != nil {
				return err
			}
		}

		contentModel.Slots = slots
		contentModel.References = refs
		contentModel.ImageLinks = links
		*content = *ToContentEntity(contentModel)
		return nil
	})
	if isUniqueViolation(err) {
		if strings.Contains(err.Error(), "numero_issue") {
			return entity.ErrSequenceConflict
		}
		return entity.ErrValidation
	}
	return err
}

func (r *contentRepository) withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Slots", func(db *gorm.DB) *gorm.DB {
			return db.Order("media_slots.kind ASC, media_slots.slot_index ASC")
		}).
		Preload("References", func(db *gorm.DB) *gorm.DB {
			return db.Order("espacios_referencia.orden ASC")
		}).
		Preload("ImageLinks", func(db *gorm.DB) *gorm.DB {
			return db.Order("imagen_links.slot_index ASC")
		})
}

func (r *contentRepository) GetByID(id string) (*entity.Content, error) {
	var contentModel model.ContentModel
	err := r.withAssociations(r.db).Where("id = ?", id).First(&contentModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ToContentEntity(&contentModel), nil
}

func (r *contentRepository) GetBySlug(slug string) (*entity.Content, error) {
	var contentModel model.ContentModel
	err := r.withAssociations(r.db).Where("slug = ?", slug).First(&contentModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ToContentEntity(&contentModel), nil
}

func (r *contentRepository) List(limit, offset int, categoria entity.Category, estado entity.State) ([]*entity.Content, error) {
	var contentModels []model.ContentModel
	query := r.withAssociations(r.db).Order("fecha_publicacion DESC, created_at DESC")

	if categoria != "" {
		query = query.Where("categoria = ?", string(categoria))
	}
	if estado != "" {
		query = query.Where("LOWER(estado) = ?", strings.ToLower(string(estado)))
	}
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	if err := query.Find(&contentModels).Error; err != nil {
		return nil, err
	}

	contents := make([]*entity.Content, len(contentModels))
	for i := range contentModels {
		contents[i] = ToContentEntity(&contentModels[i])
	}
	return contents, nil
}

// Update persists the flat content row only. Owned association sets go
// through ReplaceReferences, ReplaceImageLinks and UpsertSlot so that
// counter columns are never clobbered by a stale aggregate.
func (r *contentRepository) Update(content *entity.Content) error {
	contentModel := ToContentModel(content)
	contentModel.Slots = nil
	contentModel.References = nil
	contentModel.ImageLinks = nil

	err := r.db.Model(&model.ContentModel{}).Where("id = ?", contentModel.ID).
		Omit("contador_visitas", "contador_visitas_total", "ultimo_reseteo", "created_at").
		Select("categoria", "titulo", "slug", "autor_id", "fecha_publicacion", "estado",
			"numero_issue", "nombre_modelo", "subtitulo_issue", "frase_final_issue", "video_youtube_issue",
			"subcategoria_madeinarg", "subtitulo_madeinarg", "tags_marcas",
			"subtitulos_news", "contenido_news", "video_youtube_news").
		Updates(contentModel).Error
	if isUniqueViolation(err) {
		if strings.Contains(err.Error(), "numero_issue") {
			return entity.ErrSequenceConflict
		}
		return entity.ErrValidation
	}
	return err
}

func (r *contentRepository) UpdateEstado(id string, estado entity.State) error {
	result := r.db.Model(&model.ContentModel{}).Where("id = ?", id).
		Update("estado", string(estado))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *contentRepository) HardDelete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contenido_id = ?", id).Delete(&model.MediaSlotModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("contenido_id = ?", id).Delete(&model.ReferenceLinkModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("contenido_id = ?", id).Delete(&model.ImageLinkModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("contenido_id = ?", id).Delete(&model.VisitaModel{}).Error; err != nil {
			return err
		}
		result := tx.Unscoped().Where("id = ?", id).Delete(&model.ContentModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return entity.ErrNotFound
		}
		return nil
	})
}

func (r *contentRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&model.ContentModel{}).Unscoped().Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *contentRepository) MaxIssueNumber() (int, error) {
	var max *int
	err := r.db.Model(&model.ContentModel{}).
		Where("categoria = ?", string(entity.CategoryIssues)).
		Select("MAX(numero_issue)").Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

func (r *contentRepository) ReplaceReferences(contentID string, refs []entity.ReferenceLink) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contenido_id = ?", contentID).Delete(&model.ReferenceLinkModel{}).Error; err != nil {
			return err
		}
		for i := range refs {
			ref := ToReferenceLinkModel(&refs[i])
			ref.ID = uuid.New().String()
			ref.ContenidoID = contentID
			if err := tx.Create(ref).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *contentRepository) ReplaceImageLinks(contentID string, links []entity.ImageLink) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contenido_id = ?", contentID).Delete(&model.ImageLinkModel{}).Error; err != nil {
			return err
		}
		for i := range links {
			link := ToImageLinkModel(&links[i])
			link.ID = uuid.New().String()
			link.ContenidoID = contentID
			if err := tx.Create(link).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *contentRepository) UpsertSlot(contentID string, slot *entity.MediaSlot) error {
	slotModel := ToMediaSlotModel(slot)
	slotModel.ID = uuid.New().String()
	slotModel.ContenidoID = contentID

	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "contenido_id"}, {Name: "kind"}, {Name: "slot_index"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"remote_url", "local_ref", "updated_at",
		}),
	}).Create(slotModel).Error
}

func (r *contentRepository) DeleteSlot(contentID string, kind entity.SlotKind, index int) error {
	return r.db.Where("contenido_id = ? AND kind = ? AND slot_index = ?", contentID, string(kind), index).
		Delete(&model.MediaSlotModel{}).Error
}

func (r *contentRepository) IncrementVisitas(id string) error {
	return r.db.Model(&model.ContentModel{}).Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"contador_visitas":       clause.Expr{SQL: "contador_visitas + ?", Vars: []interface{}{1}},
			"contador_visitas_total": clause.Expr{SQL: "contador_visitas_total + ?", Vars: []interface{}{1}},
		}).Error
}

// ResetWindowIfStale zeroes the rolling counter only when the last reset is
// older than cutoff. The WHERE clause makes concurrent callers race safely:
// exactly one wins, the rest match zero rows.
func (r *contentRepository) ResetWindowIfStale(id string, cutoff time.Time) (bool, error) {
	result := r.db.Model(&model.ContentModel{}).
		Where("id = ? AND ultimo_reseteo < ?", id, cutoff).
		UpdateColumns(map[string]interface{}{
			"contador_visitas": 0,
			"ultimo_reseteo":   time.Now(),
		})
	return result.RowsAffected > 0, result.Error
}

func (r *contentRepository) ResetCounters(id string) error {
	result := r.db.Model(&model.ContentModel{}).Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"contador_visitas":       0,
			"contador_visitas_total": 0,
			"ultimo_reseteo":         time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *contentRepository) MostVisited(limit int) ([]*entity.Content, error) {
	return r.topBy("contador_visitas", limit)
}

func (r *contentRepository) MostRead(limit int) ([]*entity.Content, error) {
	return r.topBy("contador_visitas_total", limit)
}

func (r *contentRepository) topBy(column string, limit int) ([]*entity.Content, error) {
	var contentModels []model.ContentModel
	err := r.withAssociations(r.db).
		Where("LOWER(estado) = ?", string(entity.StatePublicado)).
		Order(column + " DESC").
		Limit(limit).
		Find(&contentModels).Error
	if err != nil {
		return nil, err
	}
	contents := make([]*entity.Content, len(contentModels))
	for i := range contentModels {
		contents[i] = ToContentEntity(&contentModels[i])
	}
	return contents, nil
}

func (r *contentRepository) ListWithPendingSlots() ([]*entity.Content, error) {
	var contentModels []model.ContentModel
	err := r.withAssociations(r.db).
		Joins("INNER JOIN media_slots ON media_slots.contenido_id = contenidos.id").
		Where("media_slots.local_ref <> ''").
		Distinct("contenidos.*").
		Find(&contentModels).Error
	if err != nil {
		return nil, err
	}
	contents := make([]*entity.Content, len(contentModels))
	for i := range contentModels {
		contents[i] = ToContentEntity(&contentModels[i])
	}
	return contents, nil
}

func (r *contentRepository) ListStaleWindows(cutoff time.Time) ([]string, error) {
	var ids []string
	err := r.db.Model(&model.ContentModel{}).
		Where("ultimo_reseteo < ?", cutoff).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *contentRepository) CreateVisit(visit *entity.Visit) error {
	visitModel := &model.VisitaModel{
		ID:          visit.ID,
		ContenidoID: visit.ContenidoID,
		Fecha:       visit.Fecha,
		IPAddress:   visit.IPAddress,
	}
	if visitModel.ID == "" {
		visitModel.ID = uuid.New().String()
	}
	if err := r.db.Create(visitModel).Error; err != nil {
		return err
	}
	*visit = *ToVisitEntity(visitModel)
	return nil
}

func (r *contentRepository) VisitExistsSince(contentID, ip string, since time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&model.VisitaModel{}).
		Where("contenido_id = ? AND ip_address = ? AND fecha >= ?", contentID, ip, since).
		Count(&count).Error
	return count > 0, err
}

func (r *contentRepository) GetAuthor(id string) (*entity.Author, error) {
	var authorModel model.AuthorModel
	err := r.db.Where("id = ?", id).First(&authorModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ToAuthorEntity(&authorModel), nil
}
