package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VisitaModel rows are append-only; the dedup query and both counters are
// derived from them, nothing updates them after insert.
type VisitaModel struct {
	ID          string    `gorm:"type:uuid;primary_key" json:"id"`
	ContenidoID string    `gorm:"type:uuid;not null;index:idx_visitas_contenido_fecha" json:"contenido_id"`
	Fecha       time.Time `gorm:"not null;index:idx_visitas_contenido_fecha" json:"fecha"`
	IPAddress   string    `gorm:"type:varchar(45)" json:"ip_address,omitempty"`
}

func (VisitaModel) TableName() string {
	return "visitas"
}

func (v *VisitaModel) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	if v.Fecha.IsZero() {
		v.Fecha = time.Now()
	}
	return nil
}
