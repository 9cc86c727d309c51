package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SuscriptorModel struct {
	ID                 string    `gorm:"type:uuid;primary_key" json:"id"`
	Nombre             string    `gorm:"type:varchar(100);not null" json:"nombre"`
	Email              string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Activo             bool      `gorm:"default:true;index" json:"activo"`
	TokenDesuscripcion string    `gorm:"type:uuid;not null;uniqueIndex" json:"-"`
	FechaSuscripcion   time.Time `json:"fecha_suscripcion"`

	SuscritoEditorials bool `gorm:"default:true" json:"suscrito_editorials"`
	SuscritoIssues     bool `gorm:"default:true" json:"suscrito_issues"`
	SuscritoMadeinarg  bool `gorm:"default:true" json:"suscrito_madeinarg"`
	SuscritoNews       bool `gorm:"default:true" json:"suscrito_news"`
	SuscritoClubPompa  bool `gorm:"default:true" json:"suscrito_club_pompa"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SuscriptorModel) TableName() string {
	return "suscriptores"
}

func (s *SuscriptorModel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.TokenDesuscripcion == "" {
		s.TokenDesuscripcion = uuid.New().String()
	}
	if s.FechaSuscripcion.IsZero() {
		s.FechaSuscripcion = time.Now()
	}
	return nil
}

type NewsletterModel struct {
	ID                  string    `gorm:"type:uuid;primary_key" json:"id"`
	ContenidoID         string    `gorm:"type:uuid;not null;index" json:"contenido_id"`
	FechaEnvio          time.Time `json:"fecha_envio"`
	Automatico          bool      `gorm:"default:false" json:"automatico"`
	EnviadoExitosamente bool      `gorm:"default:false" json:"enviado_exitosamente"`
	TotalEnviados       int       `gorm:"default:0" json:"total_enviados"`
	TotalErrores        int       `gorm:"default:0" json:"total_errores"`
	LogErrores          string    `gorm:"type:text" json:"log_errores,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (NewsletterModel) TableName() string {
	return "newsletters"
}

func (n *NewsletterModel) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.FechaEnvio.IsZero() {
		n.FechaEnvio = time.Now()
	}
	return nil
}
