package api

import (
	"net/http"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"valo-editor/internal/core"
	imgio "valo-editor/internal/io"
	"valo-editor/internal/params"
)

type processRequest struct {
	Image  string             `json:"image" validate:"required"`
	Params params.Adjustments `json:"params"`
}

// cropRequest reads only the crop out of params; other adjustment fields are
// neither applied nor validated.
type cropRequest struct {
	Image  string `json:"image" validate:"required"`
	Params struct {
		Crop params.Crop `json:"crop"`
	} `json:"params"`
}

// removeBackgroundRequest ignores params entirely.
type removeBackgroundRequest struct {
	Image string `json:"image" validate:"required"`
}

type saveRequest struct {
	Image string `json:"image" validate:"required"`
	Path  string `json:"path"`
}

type imageResponse struct {
	Image string `json:"image"`
}

type saveResponse struct {
	OK      bool   `json:"ok"`
	SavedTo string `json:"saved_to"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleProcess runs the adjustment pipeline. The crop field is ignored here;
// cropping has its own endpoint.
func (s *Server) handleProcess(c echo.Context) error {
	req := processRequest{Params: params.DefaultAdjustments()}
	if err := s.bind(c, &req); err != nil {
		return err
	}

	img, err := s.decodeImage(c, req.Image)
	if err != nil {
		return err
	}
	defer img.Close()

	out, err := core.Compose(c.Request().Context(), img, req.Params)
	if err != nil {
		return err
	}
	return s.respondImage(c, out)
}

func (s *Server) handleRemoveBackground(c echo.Context) error {
	var req removeBackgroundRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}
	return s.applyOperation(c, req.Image, core.RemoveBackgroundOperation())
}

func (s *Server) handleCrop(c echo.Context) error {
	var req cropRequest
	req.Params.Crop = params.FullFrame()
	if err := s.bind(c, &req); err != nil {
		return err
	}
	return s.applyOperation(c, req.Image, core.CropOperation(req.Params.Crop))
}

// handleSave writes the image bytes as sent, without re-encoding, under the
// configured save directory.
func (s *Server) handleSave(c echo.Context) error {
	var req saveRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}

	rel, err := imgio.SanitizePath(req.Path)
	if err != nil {
		return err
	}
	raw, err := imgio.SaveBytes(req.Image)
	if err != nil {
		return err
	}

	dest := filepath.Join(s.opts.SaveDir, filepath.FromSlash(rel))
	if err := imgio.WriteFile(dest, raw); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"path": dest,
		"size": humanize.Bytes(uint64(len(raw))),
	}).Info("Saved image")

	return c.JSON(http.StatusOK, saveResponse{OK: true, SavedTo: rel})
}

func (s *Server) bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	if err := c.Validate(req); err != nil {
		return invalidInput(err)
	}
	return nil
}

func (s *Server) decodeImage(c echo.Context, dataURL string) (gocv.Mat, error) {
	raw, err := imgio.DataURLBytes(dataURL)
	if err != nil {
		return gocv.NewMat(), err
	}
	s.metrics.observeImage(routeLabel(c), len(raw))
	return imgio.Decode(raw)
}

func (s *Server) applyOperation(c echo.Context, dataURL string, op core.Operation) error {
	img, err := s.decodeImage(c, dataURL)
	if err != nil {
		return err
	}
	defer img.Close()

	out, err := op.Apply(img)
	if err != nil {
		return err
	}
	return s.respondImage(c, out)
}

func (s *Server) respondImage(c echo.Context, out gocv.Mat) error {
	defer out.Close()

	encoded, err := imgio.EncodeDataURL(out)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, imageResponse{Image: encoded})
}
