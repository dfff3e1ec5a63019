package handler_test

import (
	"bytes"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"public-vision-be/internal/domain"
	"public-vision-be/internal/handler"
	"public-vision-be/internal/middleware"
	"public-vision-be/internal/mocks"
	"public-vision-be/internal/service/media"
)

// imageStream fails every read after Close, so a test catches the body
// being closed before the response is written.
type imageStream struct {
	data   *bytes.Reader
	closed bool
}

func (r *imageStream) Read(p []byte) (int, error) {
	if r.closed {
		return 0, errors.New("read after close")
	}
	return r.data.Read(p)
}

func (r *imageStream) Close() error {
	r.closed = true
	return nil
}

func newMediaApp(mockMedia *mocks.MediaService) *fiber.App {
	h := handler.NewMediaHandler(mockMedia)
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	app.Get("/images/:id", h.GetImage)
	return app
}

func TestGetImage(t *testing.T) {
	t.Run("Streams Full Body", func(t *testing.T) {
		mockMedia := new(mocks.MediaService)
		app := newMediaApp(mockMedia)

		imageID := uuid.New()
		body := []byte("image-bytes")
		stream := &imageStream{data: bytes.NewReader(body)}
		image := &domain.ComplaintImage{ID: imageID, ContentType: "image/png", FileSize: int64(len(body))}

		mockMedia.On("Fetch", mock.Anything, imageID).Return(image, stream, nil).Once()

		resp, err := app.Test(httptest.NewRequest("GET", "/images/"+imageID.String(), nil))

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

		got, err := io.ReadAll(resp.Body)
		assert.NoError(t, err)
		assert.Equal(t, body, got)
		mockMedia.AssertExpectations(t)
	})

	t.Run("Unknown Image Returns 404", func(t *testing.T) {
		mockMedia := new(mocks.MediaService)
		app := newMediaApp(mockMedia)

		imageID := uuid.New()
		mockMedia.On("Fetch", mock.Anything, imageID).Return(nil, nil, media.ErrImageNotFound).Once()

		resp, err := app.Test(httptest.NewRequest("GET", "/images/"+imageID.String(), nil))

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("Invalid ID Rejected", func(t *testing.T) {
		app := newMediaApp(new(mocks.MediaService))

		resp, err := app.Test(httptest.NewRequest("GET", "/images/not-a-uuid", nil))

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}
