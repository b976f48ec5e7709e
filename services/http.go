package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	appContext "github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"

	"github.com/jesuspadres/Vibe-Check/dto"
	"github.com/jesuspadres/Vibe-Check/services/handlers"
	"github.com/jesuspadres/Vibe-Check/shared"
)

type HttpService struct {
	appContext.DefaultService

	rateLimitSvc *RateLimitService
	contentSvc   *ContentService
	analysisSvc  *AnalysisService

	port   int
	server *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *appContext.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)
	svc.contentSvc = svc.Service(CONTENT_SVC).(*ContentService)
	svc.analysisSvc = svc.Service(ANALYSIS_SVC).(*AnalysisService)

	app := fiber.New(fiber.Config{
		ErrorHandler: HandleError,
		JSONEncoder:  shared.JSONMarshal,
		JSONDecoder:  shared.JSONUnmarshal,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(MonitoringMiddleware())

	app.Get("/ping", svc.ping)

	auditHandler := handlers.NewAuditHandler(svc.rateLimitSvc, svc.contentSvc, svc.analysisSvc, RecordAudit)

	api := app.Group("/api")
	api.Post("/audit", auditHandler.AuditBrand)
	api.Get("/audit", auditHandler.MethodNotAllowed)

	svc.server = app

	log.Info().Int("port", svc.port).Msg("HTTP server started")
	return app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}

// HandleError is the outermost boundary: classified failures emit their
// prebuilt taxonomy body, router-level failures keep their own status,
// everything else is logged and collapsed into a generic internal_error.
func HandleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		if appErr.Err != nil {
			log.Warn().Err(appErr.Err).Str("code", appErr.Code).Str("path", c.Path()).Msg("Request failed")
		}
		return c.Status(appErr.StatusCode).JSON(appErr.Payload)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(dto.ErrorResponse{
			Error:   "request_error",
			Message: fiberErr.Message,
		})
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("Unhandled request error")
	return c.Status(http.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error:   "internal_error",
		Message: "An unexpected error occurred during brand analysis",
	})
}
