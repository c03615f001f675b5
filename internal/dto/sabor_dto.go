package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearSaborRequest struct {
	Nombre string `json:"nombre" validate:"required,min=1"`
	Emoji  string `json:"emoji"  validate:"omitempty,max=8"`
	Color  string `json:"color"  validate:"omitempty,hexcolor"`
}

type ActualizarSaborRequest struct {
	Nombre *string `json:"nombre" validate:"omitempty,min=1"`
	Emoji  *string `json:"emoji"  validate:"omitempty,max=8"`
	Color  *string `json:"color"  validate:"omitempty,hexcolor"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaborResponse struct {
	ID        string `json:"id"`
	Nombre    string `json:"nombre"`
	Emoji     string `json:"emoji"`
	Color     string `json:"color"`
	Activo    bool   `json:"activo"`
	CreatedAt string `json:"created_at"`
}
