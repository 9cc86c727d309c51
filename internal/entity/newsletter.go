package entity

import "time"

// Newsletter is one notification-dispatch batch tied to a single content's
// publish event. Automatic batches are unique per content (the one-shot
// guarantee); manual resends create additional non-automatic rows.
type Newsletter struct {
	ID                  string    `json:"id"`
	ContenidoID         string    `json:"contenido_id"`
	FechaEnvio          time.Time `json:"fecha_envio"`
	Automatico          bool      `json:"automatico"`
	EnviadoExitosamente bool      `json:"enviado_exitosamente"`
	TotalEnviados       int       `json:"total_enviados"`
	TotalErrores        int       `json:"total_errores"`
	LogErrores          string    `json:"log_errores,omitempty"`
}

// DispatchResult aggregates one fan-out batch.
type DispatchResult struct {
	Sent   int      `json:"enviados"`
	Failed int      `json:"errores"`
	Errors []string `json:"log,omitempty"`
}
