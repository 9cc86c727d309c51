package persistent

import (
	"testing"
	"time"

	"pompa-press/internal/entity"
	"pompa-press/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestToContentModel_IssueFieldsFlatten(t *testing.T) {
	content := &entity.Content{
		ID:        "content-1",
		Categoria: entity.CategoryIssues,
		Titulo:    "Pompa Issue 7",
		Slug:      "pompa-issue-7",
		AutorID:   "author-1",
		Estado:    entity.StatePublicado,
		Issue: &entity.IssuePayload{
			NumeroIssue:  7,
			NombreModelo: "Mora",
			Subtitulo:    "Invierno",
			FraseFinal:   "Hasta la próxima",
			VideoYoutube: "https://youtu.be/abc",
		},
	}

	m := ToContentModel(content)

	assert.Equal(t, 7, *m.NumeroIssue)
	assert.Equal(t, "Mora", m.NombreModelo)
	assert.Equal(t, "Invierno", m.SubtituloIssue)
	assert.Empty(t, m.ContenidoNews)
	assert.Empty(t, m.SubcategoriaMadeinarg)
}

func TestToContentEntity_OnlyMatchingPayload(t *testing.T) {
	numero := 7
	m := &model.ContentModel{
		ID:           "content-1",
		Categoria:    "issues",
		Titulo:       "Pompa Issue 7",
		Estado:       "publicado",
		NumeroIssue:  &numero,
		NombreModelo: "Mora",
		// leftover news column must not leak into the entity
		ContenidoNews: "texto viejo",
	}

	content := ToContentEntity(m)

	assert.NotNil(t, content.Issue)
	assert.Equal(t, 7, content.Issue.NumeroIssue)
	assert.Nil(t, content.News)
	assert.Nil(t, content.MadeInArg)
}

func TestToContentEntity_NormalizesEstadoCase(t *testing.T) {
	m := &model.ContentModel{ID: "content-1", Categoria: "news", Estado: "Publicado"}

	content := ToContentEntity(m)

	assert.Equal(t, entity.StatePublicado, content.Estado)
}

func TestTagsRoundTrip(t *testing.T) {
	content := &entity.Content{
		ID:        "content-1",
		Categoria: entity.CategoryMadeInArg,
		MadeInArg: &entity.MadeInArgPayload{
			Subcategoria: entity.SubcategoryCalzado,
			TagsMarcas:   []string{"sibyl vane", " mishka ", ""},
		},
	}

	m := ToContentModel(content)
	assert.Equal(t, "sibyl vane,mishka", m.TagsMarcas)

	back := ToContentEntity(m)
	assert.Equal(t, []string{"sibyl vane", "mishka"}, back.MadeInArg.TagsMarcas)
}

func TestToContentModel_AssociationsCarryContentID(t *testing.T) {
	content := &entity.Content{
		ID:        "content-1",
		Categoria: entity.CategoryMadeInArg,
		MadeInArg: &entity.MadeInArgPayload{
			ImageLinks: []entity.ImageLink{{SlotIndex: 2, URLTienda: "https://tienda.com/botas"}},
		},
		Slots: []entity.MediaSlot{
			{Kind: entity.SlotKindGallery, SlotIndex: 1, RemoteURL: "https://i.ibb.co/a/1.jpg", UpdatedAt: time.Now()},
		},
		References: []entity.ReferenceLink{
			{TextoDescriptivo: "Fotógrafa", TextoMostrar: "FFLORENC", URL: "https://instagram.com/fflorenc", Orden: 1},
		},
	}

	m := ToContentModel(content)

	assert.Equal(t, "content-1", m.Slots[0].ContenidoID)
	assert.Equal(t, "content-1", m.References[0].ContenidoID)
	assert.Equal(t, "content-1", m.ImageLinks[0].ContenidoID)
}

func TestSubscriberRoundTrip(t *testing.T) {
	subscriber := &entity.Subscriber{
		ID:                 "sub-1",
		Nombre:             "Alicia",
		Email:              "alicia@test.com",
		Activo:             true,
		TokenDesuscripcion: "tok-a",
		SuscritoIssues:     true,
		SuscritoClubPompa:  true,
	}

	back := ToSubscriberEntity(ToSubscriberModel(subscriber))

	assert.Equal(t, subscriber, back)
}
