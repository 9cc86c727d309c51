package persistent

import (
	"errors"

	"pompa-press/internal/entity"
	"pompa-press/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NewsletterRepository interface {
	Create(newsletter *entity.Newsletter) error
	GetByID(id string) (*entity.Newsletter, error)
	UpdateOutcome(newsletter *entity.Newsletter) error
	List(limit, offset int) ([]*entity.Newsletter, error)
	ListByContent(contentID string) ([]*entity.Newsletter, error)
}

type newsletterRepository struct {
	db *gorm.DB
}

func NewNewsletterRepository(db *gorm.DB) NewsletterRepository {
	return &newsletterRepository{db: db}
}

// Create inserts the batch row before any mail goes out. For automatic
// batches the partial unique index on contenido_id turns a second publish of
// the same content into ErrAlreadyDispatched, which makes the one-shot
// guarantee survive restarts and concurrent workers.
func (r *newsletterRepository) Create(newsletter *entity.Newsletter) error {
	newsletterModel := ToNewsletterModel(newsletter)
	if newsletterModel.ID == "" {
		newsletterModel.ID = uuid.New().String()
	}
	err := r.db.Create(newsletterModel).Error
	if isUniqueViolation(err) {
		return entity.ErrAlreadyDispatched
	}
	if err != nil {
		return err
	}
	*newsletter = *ToNewsletterEntity(newsletterModel)
	return nil
}

func (r *newsletterRepository) GetByID(id string) (*entity.Newsletter, error) {
	var newsletterModel model.NewsletterModel
	err := r.db.Where("id = ?", id).First(&newsletterModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ToNewsletterEntity(&newsletterModel), nil
}

func (r *newsletterRepository) UpdateOutcome(newsletter *entity.Newsletter) error {
	return r.db.Model(&model.NewsletterModel{}).Where("id = ?", newsletter.ID).
		UpdateColumns(map[string]interface{}{
			"enviado_exitosamente": newsletter.EnviadoExitosamente,
			"total_enviados":       newsletter.TotalEnviados,
			"total_errores":        newsletter.TotalErrores,
			"log_errores":          newsletter.LogErrores,
		}).Error
}

func (r *newsletterRepository) List(limit, offset int) ([]*entity.Newsletter, error) {
	var newsletterModels []model.NewsletterModel
	query := r.db.Order("fecha_envio DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&newsletterModels).Error; err != nil {
		return nil, err
	}

	newsletters := make([]*entity.Newsletter, len(newsletterModels))
	for i := range newsletterModels {
		newsletters[i] = ToNewsletterEntity(&newsletterModels[i])
	}
	return newsletters, nil
}

func (r *newsletterRepository) ListByContent(contentID string) ([]*entity.Newsletter, error) {
	var newsletterModels []model.NewsletterModel
	err := r.db.Where("contenido_id = ?", contentID).Order("fecha_envio DESC").Find(&newsletterModels).Error
	if err != nil {
		return nil, err
	}

	newsletters := make([]*entity.Newsletter, len(newsletterModels))
	for i := range newsletterModels {
		newsletters[i] = ToNewsletterEntity(&newsletterModels[i])
	}
	return newsletters, nil
}
