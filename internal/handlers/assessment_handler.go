package handlers

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"assessment-service/internal/database/minio"
	"assessment-service/internal/models"
	"assessment-service/internal/services"
	"assessment-service/internal/utils"

	"github.com/gofiber/fiber/v3"
)

type AssessmentHandler struct {
	assessmentService *services.AssessmentService
	minioClient       *minio.MinioClient
}

func NewAssessmentHandler(assessmentService *services.AssessmentService, minioClient *minio.MinioClient) *AssessmentHandler {
	return &AssessmentHandler{
		assessmentService: assessmentService,
		minioClient:       minioClient,
	}
}

func (h *AssessmentHandler) RegisterRoutes(app *fiber.App) {
	gr := app.Group("assessment/api/v1")

	gr.Post("/assessments", h.PerformAssessment)
	gr.Get("/assessments/:id", h.GetAssessment)
	gr.Get("/users/:userId/assessments", h.ListAssessments)
	gr.Post("/roof-images", h.UploadRoofImage)
}

func (h *AssessmentHandler) PerformAssessment(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(
			utils.CreateErrorResponse("unauthorized", "User ID is required"))
	}

	var req models.AssessmentRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			utils.CreateErrorResponse("bad_request", "Invalid request body"))
	}

	result, err := h.assessmentService.PerformAssessment(c.Context(), userID, req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.CreateSuccessResponse(result))
}

func (h *AssessmentHandler) GetAssessment(c fiber.Ctx) error {
	result, err := h.assessmentService.GetAssessment(c.Context(), c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(utils.CreateSuccessResponse(result))
}

func (h *AssessmentHandler) ListAssessments(c fiber.Ctx) error {
	userID := c.Params("userId")

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	page, err := h.assessmentService.ListAssessments(c.Context(), userID, limit, offset)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(utils.CreateSuccessResponse(page))
}

// UploadRoofImage stores a roof photo and returns the reference passed to
// the roof detector in a later assessment request.
func (h *AssessmentHandler) UploadRoofImage(c fiber.Ctx) error {
	if h.minioClient == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(
			utils.CreateErrorResponse("storage_unavailable", "Image storage is not configured"))
	}

	userID := c.Get("X-User-ID")
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(
			utils.CreateErrorResponse("unauthorized", "User ID is required"))
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			utils.CreateErrorResponse("bad_request", "image file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			utils.CreateErrorResponse("bad_request", "could not read uploaded file"))
	}
	defer file.Close()

	objectName := fmt.Sprintf("%s/%d%s", userID, time.Now().UnixNano(), filepath.Ext(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")

	imageRef, err := h.minioClient.UploadFile(c.Context(), minio.Storage.RoofImages, objectName, file, fileHeader.Size, contentType)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("internal_error", "failed to store image"))
	}

	return c.Status(fiber.StatusCreated).JSON(utils.CreateSuccessResponse(fiber.Map{
		"image_ref": imageRef,
	}))
}

// serviceError maps tagged service errors to HTTP statuses.
func serviceError(c fiber.Ctx, err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "validation:"):
		return c.Status(fiber.StatusBadRequest).JSON(utils.CreateErrorResponse("validation_error", msg))
	case strings.Contains(msg, "not_found:"):
		return c.Status(fiber.StatusNotFound).JSON(utils.CreateErrorResponse("not_found", msg))
	case strings.Contains(msg, "canceled:"):
		return c.Status(fiber.StatusRequestTimeout).JSON(utils.CreateErrorResponse("request_canceled", msg))
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(utils.CreateErrorResponse("internal_error", msg))
	}
}
