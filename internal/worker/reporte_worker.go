package worker

// reporte_worker.go — renders the corte de caja PDF and emails it to the
// business owner. Runs after the corte transaction commits; a failure here
// never touches the committed corte, the job just retries and eventually
// lands in the DLQ.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/infra"
	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type ReporteWorker struct {
	cajaRepo   repository.CajaRepository
	configRepo repository.ConfiguracionRepository
	mailer     *infra.Mailer
	cb         *infra.CircuitBreaker

	storagePath string
	emailTo     string
}

func NewReporteWorker(
	cajaRepo repository.CajaRepository,
	configRepo repository.ConfiguracionRepository,
	mailer *infra.Mailer,
	cb *infra.CircuitBreaker,
	storagePath, emailTo string,
) *ReporteWorker {
	return &ReporteWorker{
		cajaRepo:    cajaRepo,
		configRepo:  configRepo,
		mailer:      mailer,
		cb:          cb,
		storagePath: storagePath,
		emailTo:     emailTo,
	}
}

type reportePayload struct {
	CorteID string `json:"corte_id"`
}

func (w *ReporteWorker) Process(ctx context.Context, payload json.RawMessage) error {
	var p reportePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("reporte: payload inválido: %w", err)
	}
	corteID, err := uuid.Parse(p.CorteID)
	if err != nil {
		return fmt.Errorf("reporte: corte_id inválido: %w", err)
	}

	corte, err := w.cajaRepo.FindCorteByID(ctx, corteID)
	if err != nil {
		return fmt.Errorf("reporte: corte %s no encontrado: %w", p.CorteID, err)
	}

	nombreNegocio := "Control Cacahuate"
	if cfg, err := w.configRepo.Get(ctx); err == nil {
		nombreNegocio = cfg.NombreNegocio
	}

	pdfPath, err := infra.GenerateCortePDF(corte, nombreNegocio, w.storagePath)
	if err != nil {
		return err
	}
	log.Info().Str("fecha", corte.FechaDia).Str("pdf", pdfPath).Msg("reporte de corte generado")

	if w.emailTo == "" || w.mailer == nil {
		return nil
	}

	subject := fmt.Sprintf("Corte de caja %s — %s", corte.FechaDia, nombreNegocio)
	body := fmt.Sprintf(
		"Corte del %s\n\nEsperado: $%s\nContado: $%s\nDiferencia: $%s\nRetirado: $%s\nFondo para mañana: $%s\n",
		corte.FechaDia,
		corte.Esperado.StringFixed(2),
		corte.Contado.StringFixed(2),
		corte.Diferencia.StringFixed(2),
		corte.MontoRetirado.StringFixed(2),
		corte.FondoManana.StringFixed(2),
	)

	// The circuit breaker fast-fails when SMTP has been down for a while,
	// so report jobs don't hold workers hostage on a dead connection.
	sendErr := w.cb.Execute(func() error {
		return w.mailer.SendReporte(w.emailTo, subject, body, pdfPath)
	})
	if sendErr != nil {
		return fmt.Errorf("reporte: envío de correo falló: %w", sendErr)
	}

	log.Info().Str("fecha", corte.FechaDia).Str("to", w.emailTo).Msg("reporte de corte enviado")
	return nil
}
