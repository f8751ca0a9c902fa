package wire

import (
	"experience-booking/internal/adaptor"
	"experience-booking/pkg/middleware"
	"experience-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireScheduler exposes the cron sweep endpoints. They carry no user
// session; access is gated by a shared secret in the Authorization
// header, and an empty secret disables them entirely.
func wireScheduler(
	r chi.Router,
	schedulerHandler *adaptor.SchedulerHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/scheduler", func(r chi.Router) {
		r.Use(middleware.SchedulerSecret(config.Scheduler.Secret, log))

		r.Get("/expire-pending", schedulerHandler.ExpirePending)
		r.Get("/auto-complete", schedulerHandler.AutoComplete)
	})
}
