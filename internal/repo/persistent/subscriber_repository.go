package persistent

import (
	"errors"

	"pompa-press/internal/entity"
	"pompa-press/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubscriberRepository interface {
	Create(subscriber *entity.Subscriber) error
	GetByEmail(email string) (*entity.Subscriber, error)
	GetByToken(token string) (*entity.Subscriber, error)
	Update(subscriber *entity.Subscriber) error
	ListActiveByCategory(categoria entity.Category) ([]*entity.Subscriber, error)
}

type subscriberRepository struct {
	db *gorm.DB
}

func NewSubscriberRepository(db *gorm.DB) SubscriberRepository {
	return &subscriberRepository{db: db}
}

func (r *subscriberRepository) Create(subscriber *entity.Subscriber) error {
	subscriberModel := ToSubscriberModel(subscriber)
	if subscriberModel.ID == "" {
		subscriberModel.ID = uuid.New().String()
	}
	if subscriberModel.TokenDesuscripcion == "" {
		subscriberModel.TokenDesuscripcion = uuid.New().String()
	}
	err := r.db.Create(subscriberModel).Error
	if isUniqueViolation(err) {
		return entity.ErrValidation
	}
	if err != nil {
		return err
	}
	*subscriber = *ToSubscriberEntity(subscriberModel)
	return nil
}

func (r *subscriberRepository) GetByEmail(email string) (*entity.Subscriber, error) {
	var subscriberModel model.SuscriptorModel
	err := r.db.Where("email = ?", email).First(&subscriberModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ToSubscriberEntity(&subscriberModel), nil
}

func (r *subscriberRepository) GetByToken(token string) (*entity.Subscriber, error) {
	var subscriberModel model.SuscriptorModel
	err := r.db.Where("token_desuscripcion = ?", token).First(&subscriberModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ToSubscriberEntity(&subscriberModel), nil
}

func (r *subscriberRepository) Update(subscriber *entity.Subscriber) error {
	subscriberModel := ToSubscriberModel(subscriber)
	return r.db.Model(&model.SuscriptorModel{}).Where("id = ?", subscriberModel.ID).
		Select("nombre", "activo",
			"suscrito_editorials", "suscrito_issues", "suscrito_madeinarg", "suscrito_news", "suscrito_club_pompa").
		Updates(subscriberModel).Error
}

func (r *subscriberRepository) ListActiveByCategory(categoria entity.Category) ([]*entity.Subscriber, error) {
	column, ok := map[entity.Category]string{
		entity.CategoryEditorials: "suscrito_editorials",
		entity.CategoryIssues:     "suscrito_issues",
		entity.CategoryMadeInArg:  "suscrito_madeinarg",
		entity.CategoryNews:       "suscrito_news",
		entity.CategoryClubPompa:  "suscrito_club_pompa",
	}[categoria]
	if !ok {
		return nil, entity.ErrValidation
	}

	var subscriberModels []model.SuscriptorModel
	err := r.db.Where("activo = ? AND "+column+" = ?", true, true).
		Order("fecha_suscripcion ASC").
		Find(&subscriberModels).Error
	if err != nil {
		return nil, err
	}

	subscribers := make([]*entity.Subscriber, len(subscriberModels))
	for i := range subscriberModels {
		subscribers[i] = ToSubscriberEntity(&subscriberModels[i])
	}
	return subscribers, nil
}
