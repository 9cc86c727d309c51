package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	VisitsCounted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "visitas_contadas_total",
		Help: "Total number of deduplicated visits counted.",
	})
	UploadsOK = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "imagenes_subidas_total",
		Help: "Total number of media slots uploaded to the external host.",
	})
	UploadsFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "imagenes_fallidas_total",
		Help: "Total number of media slot uploads that failed.",
	})
	NewslettersDispatched = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "newsletters_despachados_total",
		Help: "Total number of newsletter batches dispatched.",
	})
	MailsSent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "correos_enviados_total",
		Help: "Total number of subscriber mails sent successfully.",
	})
	MailsFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "correos_fallidos_total",
		Help: "Total number of subscriber mails that failed to send.",
	})
	NewsletterQueueDepth = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cola_newsletter_pendientes",
		Help: "Pending dispatch tasks in the newsletter queue.",
	})
)

func init() {
	prometheus.MustRegister(
		VisitsCounted,
		UploadsOK,
		UploadsFailed,
		NewslettersDispatched,
		MailsSent,
		MailsFailed,
		NewsletterQueueDepth,
	)
}
