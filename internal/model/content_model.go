package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContentModel struct {
	ID               string    `gorm:"type:uuid;primary_key" json:"id"`
	Categoria        string    `gorm:"type:varchar(20);not null;index" json:"categoria"`
	Titulo           string    `gorm:"type:varchar(500);not null" json:"titulo"`
	Slug             string    `gorm:"type:varchar(120);not null;uniqueIndex" json:"slug"`
	AutorID          string    `gorm:"type:uuid;not null;index" json:"autor_id"`
	FechaPublicacion time.Time `gorm:"type:date;not null" json:"fecha_publicacion"`
	Estado           string    `gorm:"type:varchar(20);not null;default:'borrador';index" json:"estado"`

	// Issues
	NumeroIssue       *int   `gorm:"index" json:"numero_issue,omitempty"`
	NombreModelo      string `gorm:"type:varchar(200)" json:"nombre_modelo,omitempty"`
	SubtituloIssue    string `gorm:"type:text" json:"subtitulo_issue,omitempty"`
	FraseFinalIssue   string `gorm:"type:text" json:"frase_final_issue,omitempty"`
	VideoYoutubeIssue string `gorm:"type:varchar(500)" json:"video_youtube_issue,omitempty"`

	// MadeInArg
	SubcategoriaMadeinarg string `gorm:"type:varchar(20)" json:"subcategoria_madeinarg,omitempty"`
	SubtituloMadeinarg    string `gorm:"type:text" json:"subtitulo_madeinarg,omitempty"`
	TagsMarcas            string `gorm:"type:text" json:"tags_marcas,omitempty"`

	// News
	SubtitulosNews   string `gorm:"type:text" json:"subtitulos_news,omitempty"`
	ContenidoNews    string `gorm:"type:text" json:"contenido_news,omitempty"`
	VideoYoutubeNews string `gorm:"type:varchar(500)" json:"video_youtube_news,omitempty"`

	ContadorVisitas      int       `gorm:"default:0" json:"contador_visitas"`
	ContadorVisitasTotal int       `gorm:"default:0" json:"contador_visitas_total"`
	UltimoReseteo        time.Time `gorm:"not null" json:"ultimo_reseteo_contador"`

	Slots      []MediaSlotModel     `gorm:"foreignKey:ContenidoID" json:"slots,omitempty"`
	References []ReferenceLinkModel `gorm:"foreignKey:ContenidoID" json:"espacios_referencia,omitempty"`
	ImageLinks []ImageLinkModel     `gorm:"foreignKey:ContenidoID" json:"imagen_links,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ContentModel) TableName() string {
	return "contenidos"
}

func (c *ContentModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.UltimoReseteo.IsZero() {
		c.UltimoReseteo = time.Now()
	}
	return nil
}

type MediaSlotModel struct {
	ID          string    `gorm:"type:uuid;primary_key" json:"id"`
	ContenidoID string    `gorm:"type:uuid;not null;index;uniqueIndex:idx_media_slot" json:"contenido_id"`
	Kind        string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_media_slot" json:"kind"`
	SlotIndex   int       `gorm:"not null;uniqueIndex:idx_media_slot" json:"slot_index"`
	RemoteURL   string    `gorm:"type:varchar(500)" json:"remote_url,omitempty"`
	LocalRef    string    `gorm:"type:varchar(500)" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (MediaSlotModel) TableName() string {
	return "media_slots"
}

func (m *MediaSlotModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

type ReferenceLinkModel struct {
	ID               string    `gorm:"type:uuid;primary_key" json:"id"`
	ContenidoID      string    `gorm:"type:uuid;not null;index" json:"contenido_id"`
	TextoDescriptivo string    `gorm:"type:varchar(200)" json:"texto_descriptivo,omitempty"`
	TextoMostrar     string    `gorm:"type:varchar(200);not null" json:"texto_mostrar"`
	URL              string    `gorm:"type:varchar(500);not null" json:"url"`
	Orden            int       `gorm:"default:1" json:"orden"`
	CreatedAt        time.Time `json:"created_at"`
}

func (ReferenceLinkModel) TableName() string {
	return "espacios_referencia"
}

func (r *ReferenceLinkModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

type ImageLinkModel struct {
	ID               string    `gorm:"type:uuid;primary_key" json:"id"`
	ContenidoID      string    `gorm:"type:uuid;not null;index;uniqueIndex:idx_imagen_link" json:"contenido_id"`
	SlotIndex        int       `gorm:"not null;uniqueIndex:idx_imagen_link" json:"slot_index"`
	URLTienda        string    `gorm:"type:varchar(500);not null" json:"url_tienda"`
	TextoDescripcion string    `gorm:"type:varchar(200)" json:"texto_descripcion,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

func (ImageLinkModel) TableName() string {
	return "imagen_links"
}

func (l *ImageLinkModel) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

type AuthorModel struct {
	ID         string    `gorm:"type:uuid;primary_key" json:"id"`
	Nombre     string    `gorm:"type:varchar(100);not null" json:"nombre"`
	Apellido   string    `gorm:"type:varchar(100)" json:"apellido"`
	Correo     string    `gorm:"type:varchar(255)" json:"correo"`
	FotoPerfil string    `gorm:"type:varchar(500)" json:"foto_perfil,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (AuthorModel) TableName() string {
	return "autores"
}

func (a *AuthorModel) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}
