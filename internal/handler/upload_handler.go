package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/scentalux/storefront/internal/middleware"
	"github.com/scentalux/storefront/pkg/logger"
	"go.uber.org/zap"
)

// UploadImage forwards an admin-submitted product image to the backend's
// image store and returns the hosted URL
func UploadImage(c echo.Context) error {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing session", "redirect": middleware.LoginRedirect})
	}
	return forwardUpload(c, sess.Token, "image")
}

// UploadReceipt forwards a customer's payment-receipt image to the backend
// and returns the hosted URL
func UploadReceipt(c echo.Context) error {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing session", "redirect": middleware.LoginRedirect})
	}
	return forwardUpload(c, sess.Token, "receipt")
}

func forwardUpload(c echo.Context, token, kind string) error {
	log := logger.FromEcho(c)
	sess, _ := middleware.SessionFromContext(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file is required"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to read uploaded file"})
	}
	defer file.Close()

	var url string
	switch kind {
	case "receipt":
		url, err = backendClient.UploadReceipt(c.Request().Context(), token, fileHeader.Filename, file)
	default:
		url, err = backendClient.UploadImage(c.Request().Context(), token, fileHeader.Filename, file)
	}
	if err != nil {
		return handleBackendError(c, sess, err)
	}

	log.Info("File uploaded",
		zap.String("kind", kind),
		zap.String("filename", fileHeader.Filename))
	return c.JSON(http.StatusOK, echo.Map{"url": url})
}
