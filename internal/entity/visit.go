package entity

import "time"

// Visit is one append-only audit row backing the visit counters and the
// short-window dedup. Never mutated after creation.
type Visit struct {
	ID          string    `json:"id"`
	ContenidoID string    `json:"contenido_id"`
	Fecha       time.Time `json:"fecha"`
	IPAddress   string    `json:"ip_address,omitempty"`
}

// VisitResult is what the visit boundary returns for one record-visit call.
type VisitResult struct {
	Counted              bool `json:"counted"`
	ContadorVisitas      int  `json:"contador_visitas"`
	ContadorVisitasTotal int  `json:"contador_visitas_total"`
}
