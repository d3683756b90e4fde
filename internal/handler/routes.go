package handler

// Public paths. Probes and docs live at the root, the API under APIV1Prefix.
const (
	APIV1Prefix = "/api/v1"

	LivePath    = "/live"
	ReadyPath   = "/ready"
	OpenAPIPath = "/openapi.yaml"
	DocsPath    = "/docs"

	healthGroup   = "/health"
	statusPath    = "/status"
	remindersPath = "/reminders"
	usersPath     = "/users"
	idParam       = "/:id"
)
