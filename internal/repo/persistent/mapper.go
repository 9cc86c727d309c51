package persistent

import (
	"strings"

	"pompa-press/internal/entity"
	"pompa-press/internal/model"
)

func ToContentEntity(m *model.ContentModel) *entity.Content {
	if m == nil {
		return nil
	}

	content := &entity.Content{
		ID:                   m.ID,
		Categoria:            entity.Category(m.Categoria),
		Titulo:               m.Titulo,
		Slug:                 m.Slug,
		AutorID:              m.AutorID,
		FechaPublicacion:     m.FechaPublicacion,
		Estado:               entity.State(strings.ToLower(m.Estado)),
		ContadorVisitas:      m.ContadorVisitas,
		ContadorVisitasTotal: m.ContadorVisitasTotal,
		UltimoReseteo:        m.UltimoReseteo,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}

	switch content.Categoria {
	case entity.CategoryIssues:
		content.Issue = &entity.IssuePayload{
			NombreModelo: m.NombreModelo,
			Subtitulo:    m.SubtituloIssue,
			FraseFinal:   m.FraseFinalIssue,
			VideoYoutube: m.VideoYoutubeIssue,
		}
		if m.NumeroIssue != nil {
			content.Issue.NumeroIssue = *m.NumeroIssue
		}
	case entity.CategoryMadeInArg:
		content.MadeInArg = &entity.MadeInArgPayload{
			Subcategoria: entity.Subcategory(m.SubcategoriaMadeinarg),
			Subtitulo:    m.SubtituloMadeinarg,
			TagsMarcas:   splitTags(m.TagsMarcas),
		}
		for i := range m.ImageLinks {
			content.MadeInArg.ImageLinks = append(content.MadeInArg.ImageLinks, ToImageLinkEntity(&m.ImageLinks[i]))
		}
	case entity.CategoryNews:
		content.News = &entity.NewsPayload{
			Cuerpo:       m.ContenidoNews,
			Subtitulos:   m.SubtitulosNews,
			VideoYoutube: m.VideoYoutubeNews,
		}
	}

	if len(m.Slots) > 0 {
		content.Slots = make([]entity.MediaSlot, len(m.Slots))
		for i := range m.Slots {
			content.Slots[i] = ToMediaSlotEntity(&m.Slots[i])
		}
	}
	if len(m.References) > 0 {
		content.References = make([]entity.ReferenceLink, len(m.References))
		for i := range m.References {
			content.References[i] = ToReferenceLinkEntity(&m.References[i])
		}
	}

	return content
}

func ToContentModel(e *entity.Content) *model.ContentModel {
	if e == nil {
		return nil
	}

	m := &model.ContentModel{
		ID:                   e.ID,
		Categoria:            string(e.Categoria),
		Titulo:               e.Titulo,
		Slug:                 e.Slug,
		AutorID:              e.AutorID,
		FechaPublicacion:     e.FechaPublicacion,
		Estado:               string(e.Estado),
		ContadorVisitas:      e.ContadorVisitas,
		ContadorVisitasTotal: e.ContadorVisitasTotal,
		UltimoReseteo:        e.UltimoReseteo,
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
	}

	if e.Issue != nil {
		if e.Issue.NumeroIssue > 0 {
			n := e.Issue.NumeroIssue
			m.NumeroIssue = &n
		}
		m.NombreModelo = e.Issue.NombreModelo
		m.SubtituloIssue = e.Issue.Subtitulo
		m.FraseFinalIssue = e.Issue.FraseFinal
		m.VideoYoutubeIssue = e.Issue.VideoYoutube
	}
	if e.MadeInArg != nil {
		m.SubcategoriaMadeinarg = string(e.MadeInArg.Subcategoria)
		m.SubtituloMadeinarg = e.MadeInArg.Subtitulo
		m.TagsMarcas = joinTags(e.MadeInArg.TagsMarcas)
		for i := range e.MadeInArg.ImageLinks {
			link := ToImageLinkModel(&e.MadeInArg.ImageLinks[i])
			link.ContenidoID = e.ID
			m.ImageLinks = append(m.ImageLinks, *link)
		}
	}
	if e.News != nil {
		m.ContenidoNews = e.News.Cuerpo
		m.SubtitulosNews = e.News.Subtitulos
		m.VideoYoutubeNews = e.News.VideoYoutube
	}

	if len(e.Slots) > 0 {
		m.Slots = make([]model.MediaSlotModel, len(e.Slots))
		for i := range e.Slots {
			slot := ToMediaSlotModel(&e.Slots[i])
			slot.ContenidoID = e.ID
			m.Slots[i] = *slot
		}
	}
	if len(e.References) > 0 {
		m.References = make([]model.ReferenceLinkModel, len(e.References))
		for i := range e.References {
			ref := ToReferenceLinkModel(&e.References[i])
			ref.ContenidoID = e.ID
			m.References[i] = *ref
		}
	}

	return m
}

func ToMediaSlotEntity(m *model.MediaSlotModel) entity.MediaSlot {
	if m == nil {
		return entity.MediaSlot{}
	}
	return entity.MediaSlot{
		Kind:      entity.SlotKind(m.Kind),
		SlotIndex: m.SlotIndex,
		RemoteURL: m.RemoteURL,
		LocalRef:  m.LocalRef,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToMediaSlotModel(e *entity.MediaSlot) *model.MediaSlotModel {
	if e == nil {
		return nil
	}
	return &model.MediaSlotModel{
		Kind:      string(e.Kind),
		SlotIndex: e.SlotIndex,
		RemoteURL: e.RemoteURL,
		LocalRef:  e.LocalRef,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToReferenceLinkEntity(m *model.ReferenceLinkModel) entity.ReferenceLink {
	if m == nil {
		return entity.ReferenceLink{}
	}
	return entity.ReferenceLink{
		ID:               m.ID,
		TextoDescriptivo: m.TextoDescriptivo,
		TextoMostrar:     m.TextoMostrar,
		URL:              m.URL,
		Orden:            m.Orden,
	}
}

func ToReferenceLinkModel(e *entity.ReferenceLink) *model.ReferenceLinkModel {
	if e == nil {
		return nil
	}
	return &model.ReferenceLinkModel{
		ID:               e.ID,
		TextoDescriptivo: e.TextoDescriptivo,
		TextoMostrar:     e.TextoMostrar,
		URL:              e.URL,
		Orden:            e.Orden,
	}
}

func ToImageLinkEntity(m *model.ImageLinkModel) entity.ImageLink {
	if m == nil {
		return entity.ImageLink{}
	}
	return entity.ImageLink{
		ID:               m.ID,
		SlotIndex:        m.SlotIndex,
		URLTienda:        m.URLTienda,
		TextoDescripcion: m.TextoDescripcion,
	}
}

func ToImageLinkModel(e *entity.ImageLink) *model.ImageLinkModel {
	if e == nil {
		return nil
	}
	return &model.ImageLinkModel{
		ID:               e.ID,
		SlotIndex:        e.SlotIndex,
		URLTienda:        e.URLTienda,
		TextoDescripcion: e.TextoDescripcion,
	}
}

func ToSubscriberEntity(m *model.SuscriptorModel) *entity.Subscriber {
	if m == nil {
		return nil
	}
	return &entity.Subscriber{
		ID:                 m.ID,
		Nombre:             m.Nombre,
		Email:              m.Email,
		Activo:             m.Activo,
		TokenDesuscripcion: m.TokenDesuscripcion,
		FechaSuscripcion:   m.FechaSuscripcion,
		SuscritoEditorials: m.SuscritoEditorials,
		SuscritoIssues:     m.SuscritoIssues,
		SuscritoMadeInArg:  m.SuscritoMadeinarg,
		SuscritoNews:       m.SuscritoNews,
		SuscritoClubPompa:  m.SuscritoClubPompa,
	}
}

func ToSubscriberModel(e *entity.Subscriber) *model.SuscriptorModel {
	if e == nil {
		return nil
	}
	return &model.SuscriptorModel{
		ID:                 e.ID,
		Nombre:             e.Nombre,
		Email:              e.Email,
		Activo:             e.Activo,
		TokenDesuscripcion: e.TokenDesuscripcion,
		FechaSuscripcion:   e.FechaSuscripcion,
		SuscritoEditorials: e.SuscritoEditorials,
		SuscritoIssues:     e.SuscritoIssues,
		SuscritoMadeinarg:  e.SuscritoMadeInArg,
		SuscritoNews:       e.SuscritoNews,
		SuscritoClubPompa:  e.SuscritoClubPompa,
	}
}

func ToNewsletterEntity(m *model.NewsletterModel) *entity.Newsletter {
	if m == nil {
		return nil
	}
	return &entity.Newsletter{
		ID:                  m.ID,
		ContenidoID:         m.ContenidoID,
		FechaEnvio:          m.FechaEnvio,
		Automatico:          m.Automatico,
		EnviadoExitosamente: m.EnviadoExitosamente,
		TotalEnviados:       m.TotalEnviados,
		TotalErrores:        m.TotalErrores,
		LogErrores:          m.LogErrores,
	}
}

func ToNewsletterModel(e *entity.Newsletter) *model.NewsletterModel {
	if e == nil {
		return nil
	}
	return &model.NewsletterModel{
		ID:                  e.ID,
		ContenidoID:         e.ContenidoID,
		FechaEnvio:          e.FechaEnvio,
		Automatico:          e.Automatico,
		EnviadoExitosamente: e.EnviadoExitosamente,
		TotalEnviados:       e.TotalEnviados,
		TotalErrores:        e.TotalErrores,
		LogErrores:          e.LogErrores,
	}
}

func ToVisitEntity(m *model.VisitaModel) *entity.Visit {
	if m == nil {
		return nil
	}
	return &entity.Visit{
		ID:          m.ID,
		ContenidoID: m.ContenidoID,
		Fecha:       m.Fecha,
		IPAddress:   m.IPAddress,
	}
}

func ToAuthorEntity(m *model.AuthorModel) *entity.Author {
	if m == nil {
		return nil
	}
	return &entity.Author{
		ID:         m.ID,
		Nombre:     m.Nombre,
		Apellido:   m.Apellido,
		Correo:     m.Correo,
		FotoPerfil: m.FotoPerfil,
	}
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func joinTags(tags []string) string {
	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	return strings.Join(cleaned, ",")
}
