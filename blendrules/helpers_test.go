package blendrules

import (
	"bytes"
	"log/slog"

	"github.com/milk9111/camrig/camera"
)

type namedCamera string

func (c namedCamera) Name() string { return string(c) }

func (c namedCamera) State() camera.CameraState { return camera.NewCameraState() }

func (c namedCamera) IsValid() bool { return true }

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}
