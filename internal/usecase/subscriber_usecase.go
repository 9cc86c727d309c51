package usecase

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"pompa-press/internal/entity"
	"pompa-press/internal/repo/persistent"
	"pompa-press/pkg/logger"
)

type SubscriberUseCase interface {
	Subscribe(nombre, email string, flags *entity.CategoryFlags) (*entity.Subscriber, bool, error)
	Unsubscribe(token, motivo string) error
	UpdatePreferences(token string, flags entity.CategoryFlags) (*entity.Subscriber, error)
}

type subscriberUseCase struct {
	subscriberRepo persistent.SubscriberRepository
	logger         *logger.Logger
}

func NewSubscriberUseCase(subscriberRepo persistent.SubscriberRepository, logger *logger.Logger) SubscriberUseCase {
	return &subscriberUseCase{
		subscriberRepo: subscriberRepo,
		logger:         logger,
	}
}

// Subscribe registers a new recipient, or reactivates an existing one and
// reports created=false. Re-subscribing keeps the same unsubscribe token, so
// old links in already-delivered mails keep working.
func (uc *subscriberUseCase) Subscribe(nombre, email string, flags *entity.CategoryFlags) (*entity.Subscriber, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, false, fmt.Errorf("%w: invalid email %q", entity.ErrValidation, email)
	}
	if strings.TrimSpace(nombre) == "" {
		return nil, false, fmt.Errorf("%w: nombre is required", entity.ErrValidation)
	}

	existing, err := uc.subscriberRepo.GetByEmail(email)
	if err != nil && !errors.Is(err, entity.ErrNotFound) {
		return nil, false, err
	}
	if existing != nil {
		existing.Nombre = nombre
		existing.Activo = true
		if flags != nil {
			existing.ApplyFlags(*flags)
		}
		if err := uc.subscriberRepo.Update(existing); err != nil {
			return nil, false, err
		}
		uc.logger.Info("Reactivated subscriber %s", email)
		return existing, false, nil
	}

	subscriber := &entity.Subscriber{
		Nombre:           nombre,
		Email:            email,
		Activo:           true,
		FechaSuscripcion: time.Now(),
	}
	if flags != nil {
		subscriber.ApplyFlags(*flags)
	} else {
		subscriber.ApplyFlags(entity.AllCategories())
	}

	if err := uc.subscriberRepo.Create(subscriber); err != nil {
		return nil, false, err
	}
	uc.logger.Info("New subscriber %s", email)
	return subscriber, true, nil
}

func (uc *subscriberUseCase) Unsubscribe(token, motivo string) error {
	subscriber, err := uc.subscriberRepo.GetByToken(token)
	if err != nil {
		return err
	}
	if !subscriber.Activo {
		return nil
	}
	subscriber.Activo = false
	if err := uc.subscriberRepo.Update(subscriber); err != nil {
		return err
	}
	if motivo != "" {
		uc.logger.Info("Unsubscribed %s (motivo: %s)", subscriber.Email, motivo)
	} else {
		uc.logger.Info("Unsubscribed %s", subscriber.Email)
	}
	return nil
}

func (uc *subscriberUseCase) UpdatePreferences(token string, flags entity.CategoryFlags) (*entity.Subscriber, error) {
	subscriber, err := uc.subscriberRepo.GetByToken(token)
	if err != nil {
		return nil, err
	}
	subscriber.ApplyFlags(flags)
	if err := uc.subscriberRepo.Update(subscriber); err != nil {
		return nil, err
	}
	return subscriber, nil
}
