package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"diaryapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// The diary entry resource is served at /dairyentry/ and, when apiPrefix is set, again under it.
// Trailing slashes are optional because the app runs without strict routing.
func RegisterRoutes(app *fiber.App, db Pinger, svc service.DiaryEntryService, log *zap.Logger, apiPrefix string) {
	if log == nil {
		log = zap.NewNop()
	}

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	bases := []string{""}
	if apiPrefix != "" {
		bases = append(bases, apiPrefix)
	}
	for _, base := range bases {
		collection := base + "/dairyentry"
		item := collection + "/:id"

		app.Get(collection, ListDiaryEntries(svc, log))
		app.Post(collection, CreateDiaryEntry(svc, log))
		app.Get(item, GetDiaryEntry(svc, log))
		app.Put(item, UpdateDiaryEntry(svc, log, false))
		app.Patch(item, UpdateDiaryEntry(svc, log, true))
		app.Delete(item, DeleteDiaryEntry(svc, log))
	}
}
