package handler

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sellerverify/internal/database"
	"sellerverify/internal/model"
	"sellerverify/internal/navigation"
	"sellerverify/internal/service"
)

// readinessTimeout bounds the database check of /health.
const readinessTimeout = 2 * time.Second

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// db is nil when submissions are not stored in PostgreSQL; gatherer is nil to skip /metrics.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.VerificationService, gatherer prometheus.Gatherer) {
	var pinger database.Pinger
	if db != nil {
		pinger = db
	}

	app.Get("/health", HealthCheck(pinger))
	app.Get("/healthz", LivenessProbe())
	if gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	app.Get("/navigation/:role", Sidebar())

	app.Post("/verifications", StartVerification(svc))
	app.Get("/verifications/:id", GetVerification(svc))
	app.Delete("/verifications/:id", CloseVerification(svc))
	app.Post("/verifications/:id/documents/:documentId/select", SelectFile(svc))
	app.Post("/verifications/:id/documents/:documentId", UploadDocument(svc))
	app.Post("/verifications/:id/submit", SubmitVerification(svc))
	app.Get("/verifications/:id/notifications", Notifications(svc))
}

// HealthCheck godoc
// @Summary Readiness probe
// @Tags health
// @Success 200 {object} map[string]string
// @Failure 503 {object} errorPayload
// @Router /health [get]
func HealthCheck(p database.Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if p != nil {
			if err := database.Ping(c.UserContext(), p, readinessTimeout); err != nil {
				return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
			}
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a dependency-free liveness check.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

type sidebarResponse struct {
	Role     model.Role               `json:"role"`
	Sections []navigation.MenuSection `json:"sections,omitempty"`
	Items    []navigation.NavItem     `json:"items,omitempty"`
}

// Sidebar godoc
// @Summary Sidebar navigation for a role
// @Tags navigation
// @Param role path string true "buyer, seller or admin"
// @Success 200 {object} sidebarResponse
// @Failure 404 {object} errorPayload
// @Router /navigation/{role} [get]
func Sidebar() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := model.Role(c.Params("role"))
		res := sidebarResponse{Role: role}
		switch role {
		case model.RoleBuyer:
			res.Sections = navigation.BuyerMenuSections()
		case model.RoleSeller:
			res.Sections = navigation.SellerMenuSections()
		case model.RoleAdmin:
			res.Items = navigation.AdminMenuItems()
		default:
			return writeError(c, fiber.StatusNotFound, "UNKNOWN_ROLE", "unknown role")
		}
		return c.JSON(res)
	}
}

type startRequest struct {
	SellerID string `json:"seller_id"`
}

// StartVerification godoc
// @Summary Open a verification checklist
// @Tags verification
// @Accept json
// @Param body body startRequest true "seller"
// @Success 201 {object} service.Session
// @Failure 400 {object} errorPayload
// @Router /verifications [post]
func StartVerification(svc service.VerificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req startRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}
		sess, err := svc.Start(c.UserContext(), req.SellerID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(sess)
	}
}

// sessionID validates the :id path parameter.
func sessionID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

// GetVerification godoc
// @Summary Current checklist state
// @Tags verification
// @Param id path string true "session id"
// @Success 200 {object} service.Session
// @Failure 404 {object} errorPayload
// @Router /verifications/{id} [get]
func GetVerification(svc service.VerificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := sessionID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		sess, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(sess)
	}
}

// SelectFile godoc
// @Summary Open the file picker for a document
// @Tags verification
// @Param id path string true "session id"
// @Param documentId path string true "document id"
// @Success 200 {object} service.Picker
// @Failure 404 {object} errorPayload
// @Router /verifications/{id}/documents/{documentId}/select [post]
func SelectFile(svc service.VerificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := sessionID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		p, err := svc.SelectFile(c.UserContext(), id, c.Params("documentId"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(p)
	}
}

// UploadDocument godoc
// @Summary Record the chosen file for a document
// @Description Only the file name is used; the content is not read or stored.
// @Tags verification
// @Accept mpfd
// @Param id path string true "session id"
// @Param documentId path string true "document id"
// @Param file formData file true "document file"
// @Success 200 {object} verification.Upload
// @Failure 400 {object} errorPayload
// @Failure 415 {object} errorPayload
// @Router /verifications/{id}/documents/{documentId} [post]
func UploadDocument(svc service.VerificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := sessionID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		up, err := svc.Upload(c.UserContext(), id, c.Params("documentId"), fh.Filename, fh.Size)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(up)
	}
}

// SubmitVerification godoc
// @Summary Submit the checklist for review
// @Tags verification
// @Param id path string true "session id"
// @Success 202 {object} service.Session
// @Failure 409 {object} errorPayload
// @Failure 422 {object} errorPayload
// @Router /verifications/{id}/submit [post]
func SubmitVerification(svc service.VerificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := sessionID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		sess, err := svc.Submit(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusAccepted).JSON(sess)
	}
}

// Notifications godoc
// @Summary Drain pending notifications
// @Tags verification
// @Param id path string true "session id"
// @Success 200 {array} model.Notification
// @Router /verifications/{id}/notifications [get]
func Notifications(svc service.VerificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := sessionID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		ns, err := svc.Notifications(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": ns})
	}
}

// CloseVerification godoc
// @Summary Close a checklist session
// @Tags verification
// @Param id path string true "session id"
// @Success 204
// @Router /verifications/{id} [delete]
func CloseVerification(svc service.VerificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := sessionID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Close(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
