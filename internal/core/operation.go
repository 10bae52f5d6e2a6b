package core

import (
	"context"

	"gocv.io/x/gocv"

	"valo-editor/internal/algorithms"
	"valo-editor/internal/params"
)

// Operation derives a new buffer from an existing one. Implementations must not
// modify src and must return a Mat owned by the caller.
type Operation interface {
	Apply(src gocv.Mat) (gocv.Mat, error)
}

// OperationFunc adapts a plain function to Operation.
type OperationFunc func(src gocv.Mat) (gocv.Mat, error)

func (f OperationFunc) Apply(src gocv.Mat) (gocv.Mat, error) {
	return f(src)
}

// ProcessingStep applies one registered editor tool
type ProcessingStep struct {
	Algorithm  string
	Parameters map[string]interface{}
	Enabled    bool
}

// NewToolStep builds an enabled step from the tool's two slider positions.
func NewToolStep(tool string, primary, secondary int) (ProcessingStep, error) {
	algorithm, ok := algorithms.Get(tool)
	if !ok {
		return ProcessingStep{}, unknownTool(tool)
	}
	return ProcessingStep{
		Algorithm:  tool,
		Parameters: algorithm.FromSliders(primary, secondary),
		Enabled:    true,
	}, nil
}

// Apply runs the step. A disabled step copies its input.
func (s ProcessingStep) Apply(src gocv.Mat) (gocv.Mat, error) {
	if !s.Enabled {
		if err := checkBuffer(src); err != nil {
			return gocv.NewMat(), err
		}
		return src.Clone(), nil
	}
	if !algorithms.IsValidAlgorithm(s.Algorithm) {
		return gocv.NewMat(), unknownTool(s.Algorithm)
	}
	return algorithms.Apply(s.Algorithm, src, s.Parameters)
}

// AdjustmentsOperation runs the full pipeline with adj.
func AdjustmentsOperation(adj params.Adjustments) Operation {
	return OperationFunc(func(src gocv.Mat) (gocv.Mat, error) {
		return Compose(context.Background(), src, adj)
	})
}

// CropOperation crops to c. It is independent of the pipeline.
func CropOperation(c params.Crop) Operation {
	return OperationFunc(func(src gocv.Mat) (gocv.Mat, error) {
		return algorithms.Crop(src, c)
	})
}

// RemoveBackgroundOperation segments the foreground into a BGRA buffer.
func RemoveBackgroundOperation() Operation {
	return OperationFunc(algorithms.RemoveBackground)
}
