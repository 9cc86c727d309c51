package usecase

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pompa-press/internal/entity"
	"pompa-press/internal/repo/persistent"
	"pompa-press/pkg/config"
	"pompa-press/pkg/logger"
	"pompa-press/pkg/mailer"
	"pompa-press/pkg/metrics"
)

type NewsletterUseCase interface {
	DispatchForContent(contentID string, automatic bool) (*entity.DispatchResult, error)
	Resend(newsletterID string) (*entity.DispatchResult, error)
	ListNewsletters(limit, offset int) ([]*entity.Newsletter, error)
	GetNewsletter(id string) (*entity.Newsletter, error)
	HandleDispatchTask(task map[string]interface{}) error
}

type newsletterUseCase struct {
	newsletterRepo persistent.NewsletterRepository
	subscriberRepo persistent.SubscriberRepository
	contentRepo    persistent.ContentRepository
	mailer         mailer.Mailer
	cfg            *config.Config
	logger         *logger.Logger
}

func NewNewsletterUseCase(
	newsletterRepo persistent.NewsletterRepository,
	subscriberRepo persistent.SubscriberRepository,
	contentRepo persistent.ContentRepository,
	mailer mailer.Mailer,
	cfg *config.Config,
	logger *logger.Logger,
) NewsletterUseCase {
	return &newsletterUseCase{
		newsletterRepo: newsletterRepo,
		subscriberRepo: subscriberRepo,
		contentRepo:    contentRepo,
		mailer:         mailer,
		cfg:            cfg,
		logger:         logger,
	}
}

// DispatchForContent runs one fan-out batch for a content. The batch row is
// inserted before any mail goes out; for automatic batches a duplicate insert
// means another worker (or an earlier publish) already handled this content
// and the call returns ErrAlreadyDispatched without sending anything.
func (uc *newsletterUseCase) DispatchForContent(contentID string, automatic bool) (*entity.DispatchResult, error) {
	content, err := uc.contentRepo.GetByID(contentID)
	if err != nil {
		return nil, err
	}

	newsletter := &entity.Newsletter{
		ContenidoID: contentID,
		FechaEnvio:  time.Now(),
		Automatico:  automatic,
	}
	if err := uc.newsletterRepo.Create(newsletter); err != nil {
		return nil, err
	}

	recipients, err := uc.subscriberRepo.ListActiveByCategory(content.Categoria)
	if err != nil {
		newsletter.LogErrores = fmt.Sprintf("could not load recipients: %v", err)
		if updErr := uc.newsletterRepo.UpdateOutcome(newsletter); updErr != nil {
			uc.logger.Error("Failed to record newsletter outcome for %s: %v", newsletter.ID, updErr)
		}
		return nil, err
	}

	authorName := ""
	if author, err := uc.contentRepo.GetAuthor(content.AutorID); err == nil {
		authorName = strings.TrimSpace(author.Nombre + " " + author.Apellido)
	}

	subject := fmt.Sprintf("Nuevo contenido en %s: %s", content.Categoria.Display(), content.Titulo)
	result := &entity.DispatchResult{}
	for _, recipient := range recipients {
		body := uc.buildBody(content, authorName, recipient)
		if err := uc.mailer.Send(recipient.Email, subject, body); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", recipient.Email, err))
			metrics.MailsFailed.Inc()
			uc.logger.Warn("Newsletter mail to %s failed: %v", recipient.Email, err)
			continue
		}
		result.Sent++
		metrics.MailsSent.Inc()
	}

	newsletter.TotalEnviados = result.Sent
	newsletter.TotalErrores = result.Failed
	newsletter.EnviadoExitosamente = result.Failed == 0
	newsletter.LogErrores = strings.Join(result.Errors, "\n")
	if err := uc.newsletterRepo.UpdateOutcome(newsletter); err != nil {
		uc.logger.Error("Failed to record newsletter outcome for %s: %v", newsletter.ID, err)
	}

	metrics.NewslettersDispatched.Inc()
	uc.logger.Info("Newsletter for %s dispatched: %d sent, %d failed", contentID, result.Sent, result.Failed)
	return result, nil
}

// Resend runs a fresh manual batch for the content behind an earlier
// newsletter. Every current active subscriber of the category gets the mail
// again; the one-shot guard applies only to automatic batches.
func (uc *newsletterUseCase) Resend(newsletterID string) (*entity.DispatchResult, error) {
	previous, err := uc.newsletterRepo.GetByID(newsletterID)
	if err != nil {
		return nil, err
	}
	return uc.DispatchForContent(previous.ContenidoID, false)
}

func (uc *newsletterUseCase) ListNewsletters(limit, offset int) ([]*entity.Newsletter, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return uc.newsletterRepo.List(limit, offset)
}

func (uc *newsletterUseCase) GetNewsletter(id string) (*entity.Newsletter, error) {
	return uc.newsletterRepo.GetByID(id)
}

// HandleDispatchTask is the queue consumer entry point. Already-dispatched
// contents ack cleanly so the broker never redelivers a duplicate publish
// event forever.
func (uc *newsletterUseCase) HandleDispatchTask(task map[string]interface{}) error {
	contentID, ok := task["contenido_id"].(string)
	if !ok || contentID == "" {
		uc.logger.Error("Dispatch task without contenido_id: %+v", task)
		return nil
	}

	_, err := uc.DispatchForContent(contentID, true)
	if err == nil {
		return nil
	}
	if errors.Is(err, entity.ErrAlreadyDispatched) || errors.Is(err, entity.ErrNotFound) {
		uc.logger.Warn("Dropping dispatch task for %s: %v", contentID, err)
		return nil
	}
	return err
}

func (uc *newsletterUseCase) buildBody(content *entity.Content, authorName string, recipient *entity.Subscriber) string {
	link := fmt.Sprintf("%s/%s/%s", strings.TrimRight(uc.cfg.SiteURL, "/"), content.Categoria, content.Slug)
	unsubscribe := fmt.Sprintf("%s/desuscribir/%s", strings.TrimRight(uc.cfg.SiteURL, "/"), recipient.TokenDesuscripcion)

	var b strings.Builder
	fmt.Fprintf(&b, "Hola %s,\n\n", recipient.Nombre)
	fmt.Fprintf(&b, "Hay contenido nuevo en %s:\n\n", content.Categoria.Display())
	fmt.Fprintf(&b, "  %s\n", content.Titulo)
	if authorName != "" {
		fmt.Fprintf(&b, "  Por %s\n", authorName)
	}
	fmt.Fprintf(&b, "  %s\n\n", content.FechaPublicacion.Format("02/01/2006"))
	fmt.Fprintf(&b, "Leelo aca: %s\n\n", link)
	fmt.Fprintf(&b, "--\nRevista Pompa\nPara dejar de recibir estos correos: %s\n", unsubscribe)
	return b.String()
}
