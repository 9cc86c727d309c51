package entity

import "time"

type Category string

const (
	CategoryEditorials Category = "editorials"
	CategoryIssues     Category = "issues"
	CategoryMadeInArg  Category = "madeinarg"
	CategoryNews       Category = "news"
	CategoryClubPompa  Category = "club_pompa"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryEditorials, CategoryIssues, CategoryMadeInArg, CategoryNews, CategoryClubPompa:
		return true
	}
	return false
}

func Categories() []Category {
	return []Category{CategoryEditorials, CategoryIssues, CategoryMadeInArg, CategoryNews, CategoryClubPompa}
}

type State string

const (
	StateBorrador        State = "borrador"
	StateEnPapelera      State = "en_papelera"
	StatePublicado       State = "publicado"
	StateListoParaEditar State = "listo_para_editar"
)

func (s State) Valid() bool {
	switch s {
	case StateBorrador, StateEnPapelera, StatePublicado, StateListoParaEditar:
		return true
	}
	return false
}

type Subcategory string

const (
	SubcategoryCalzado      Subcategory = "calzado"
	SubcategoryIndumentaria Subcategory = "indumentaria"
	SubcategoryAccesorios   Subcategory = "accesorios"
	SubcategoryOtro         Subcategory = "otro"
)

func (s Subcategory) Valid() bool {
	switch s {
	case SubcategoryCalzado, SubcategoryIndumentaria, SubcategoryAccesorios, SubcategoryOtro:
		return true
	}
	return false
}

// MaxSlots is the cap on image slots per gallery on a single content item.
const MaxSlots = 30

type SlotKind string

const (
	SlotKindGallery   SlotKind = "gallery"
	SlotKindBackstage SlotKind = "backstage"
)

// MediaSlot is one image position on a content item. RemoteURL holds the
// external-host URL once the slot is reconciled; LocalRef points at a staged
// binary awaiting upload. After a successful save cycle at most one of the
// two is set.
type MediaSlot struct {
	Kind      SlotKind  `json:"kind"`
	SlotIndex int       `json:"slot_index"`
	RemoteURL string    `json:"remote_url,omitempty"`
	LocalRef  string    `json:"-"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Pending reports whether the slot still carries a staged local binary.
func (s *MediaSlot) Pending() bool {
	return s.LocalRef != ""
}

// ReferenceLink is an ordered credit link on a content item
// (e.g. "Photographer: FFLORENC -> https://..."). The set is owned by its
// content and replaced wholesale on update.
type ReferenceLink struct {
	ID               string `json:"id,omitempty"`
	TextoDescriptivo string `json:"texto_descriptivo,omitempty"`
	TextoMostrar     string `json:"texto_mostrar"`
	URL              string `json:"url"`
	Orden            int    `json:"orden"`
}

// ImageLink ties a shop/instagram URL to one gallery slot of a madeinarg
// content item. Replaced wholesale on update, like ReferenceLink.
type ImageLink struct {
	ID               string `json:"id,omitempty"`
	SlotIndex        int    `json:"slot_index"`
	URLTienda        string `json:"url_tienda"`
	TextoDescripcion string `json:"texto_descripcion,omitempty"`
}

// IssuePayload carries the fields only meaningful for categoria=issues.
type IssuePayload struct {
	NumeroIssue  int    `json:"numero_issue,omitempty"`
	NombreModelo string `json:"nombre_modelo,omitempty"`
	Subtitulo    string `json:"subtitulo,omitempty"`
	FraseFinal   string `json:"frase_final,omitempty"`
	VideoYoutube string `json:"video_youtube,omitempty"`
}

// MadeInArgPayload carries the fields only meaningful for categoria=madeinarg.
type MadeInArgPayload struct {
	Subcategoria Subcategory `json:"subcategoria,omitempty"`
	Subtitulo    string      `json:"subtitulo,omitempty"`
	TagsMarcas   []string    `json:"tags_marcas,omitempty"`
	ImageLinks   []ImageLink `json:"image_links,omitempty"`
}

// NewsPayload carries the fields only meaningful for categoria=news.
type NewsPayload struct {
	Cuerpo       string `json:"cuerpo,omitempty"`
	Subtitulos   string `json:"subtitulos,omitempty"`
	VideoYoutube string `json:"video_youtube,omitempty"`
}

// Content is a publishable unit in one of the five magazine categories.
// Only the payload matching Categoria is semantically in use; the others
// stay nil and inert. Backstage slots exist only for issues.
type Content struct {
	ID               string            `json:"id"`
	Categoria        Category          `json:"categoria"`
	Titulo           string            `json:"titulo"`
	Slug             string            `json:"slug"`
	AutorID          string            `json:"autor_id"`
	FechaPublicacion time.Time         `json:"fecha_publicacion"`
	Estado           State             `json:"estado"`
	Issue            *IssuePayload     `json:"issue,omitempty"`
	MadeInArg        *MadeInArgPayload `json:"madeinarg,omitempty"`
	News             *NewsPayload      `json:"news,omitempty"`
	Slots            []MediaSlot       `json:"slots,omitempty"`
	References       []ReferenceLink   `json:"espacios_referencia,omitempty"`

	ContadorVisitas      int       `json:"contador_visitas"`
	ContadorVisitasTotal int       `json:"contador_visitas_total"`
	UltimoReseteo        time.Time `json:"ultimo_reseteo_contador"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Slot returns the slot with the given kind and index, or nil.
func (c *Content) Slot(kind SlotKind, index int) *MediaSlot {
	for i := range c.Slots {
		if c.Slots[i].Kind == kind && c.Slots[i].SlotIndex == index {
			return &c.Slots[i]
		}
	}
	return nil
}

// ImageURLs returns slot_index -> remote URL for reconciled slots of a kind,
// in the shape the detail endpoint emits.
func (c *Content) ImageURLs(kind SlotKind) map[int]string {
	urls := make(map[int]string)
	for i := range c.Slots {
		if c.Slots[i].Kind == kind && c.Slots[i].RemoteURL != "" {
			urls[c.Slots[i].SlotIndex] = c.Slots[i].RemoteURL
		}
	}
	return urls
}

// Author is the minimal worker record content references; the newsletter
// names the author in the mail body. Worker management itself lives outside
// this service.
type Author struct {
	ID         string `json:"id"`
	Nombre     string `json:"nombre"`
	Apellido   string `json:"apellido"`
	Correo     string `json:"correo"`
	FotoPerfil string `json:"foto_perfil,omitempty"`
}

var categoryDisplay = map[Category]string{
	CategoryEditorials: "Editorials",
	CategoryIssues:     "Issues",
	CategoryMadeInArg:  "MadeInArg",
	CategoryNews:       "News",
	CategoryClubPompa:  "Club Pompa",
}

// Display returns the human-readable category name used in mail subjects.
func (c Category) Display() string {
	if d, ok := categoryDisplay[c]; ok {
		return d
	}
	return string(c)
}
