package server

import (
	"fmt"
	"image"
	"image/color"
	"net/http"
	"time"

	"gocv.io/x/gocv"

	"github.com/ritankar/handwave/internal/capture"
)

// StreamHandler serves MJPEG frames from the camera with a monitoring
// overlay: the vertical reference line and an alert banner while the alarm
// is active.
type StreamHandler struct {
	camera   capture.Camera
	alerting func() bool
	refLine  float64
}

// NewStreamHandler creates a StreamHandler. refLine is the horizontal
// position of the reference line as a fraction of the frame width.
func NewStreamHandler(camera capture.Camera, alerting func() bool, refLine float64) *StreamHandler {
	return &StreamHandler{
		camera:   camera,
		alerting: alerting,
		refLine:  refLine,
	}
}

// ServeHTTP streams MJPEG frames to connected clients.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	for {
		select {
		case <-r.Context().Done():
			return
		default:
		}

		frame, err := h.camera.ReadFrame()
		if err != nil {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		h.drawOverlay(frame)

		buf, err := gocv.IMEncode(".jpg", *frame)
		frame.Close()
		if err != nil {
			continue
		}

		fmt.Fprintf(w, "--frame\r\n")
		fmt.Fprintf(w, "Content-Type: image/jpeg\r\n")
		fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", buf.Len())
		w.Write(buf.GetBytes())
		fmt.Fprintf(w, "\r\n")
		buf.Close()

		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}

		time.Sleep(66 * time.Millisecond) // ~15 FPS
	}
}

// drawOverlay paints the reference line and, while the alarm is active, the
// alert banner onto the frame.
func (h *StreamHandler) drawOverlay(frame *gocv.Mat) {
	cols := frame.Cols()
	rows := frame.Rows()
	if cols == 0 || rows == 0 {
		return
	}

	x := int(h.refLine * float64(cols))
	lineColor := color.RGBA{G: 255}
	gocv.Line(frame, image.Point{X: x, Y: 0}, image.Point{X: x, Y: rows}, lineColor, 1)

	if h.alerting != nil && h.alerting() {
		bannerColor := color.RGBA{R: 255}
		gocv.Rectangle(frame, image.Rect(0, 0, cols, 30), bannerColor, -1)
		gocv.PutText(frame, "ALERT", image.Point{X: 10, Y: 22},
			gocv.FontHersheySimplex, 0.7, color.RGBA{R: 255, G: 255, B: 255}, 2)
	}
}
