// Fixed-order adjustment pipeline
package core

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"gocv.io/x/gocv"

	"valo-editor/internal/algorithms"
	"valo-editor/internal/imgerr"
	"valo-editor/internal/params"
)

const tracerName = "valo-editor/internal/core"

type stage struct {
	name  string
	apply func(gocv.Mat) (gocv.Mat, error)
}

// Compose applies brightness, sharpen, denoise and finally either grayscale
// (mono) or the RGB gains. Crop is not part of the pipeline. The input is never
// modified; the result is a new Mat owned by the caller.
func Compose(ctx context.Context, input gocv.Mat, adj params.Adjustments) (gocv.Mat, error) {
	if err := checkBuffer(input); err != nil {
		return gocv.NewMat(), err
	}

	adj = adj.Normalize()
	if adj.IsIdentity() {
		return input.Clone(), nil
	}
	stages := []stage{
		{"brightness", func(m gocv.Mat) (gocv.Mat, error) { return algorithms.Brightness(m, adj.Brightness) }},
		{"sharpen", func(m gocv.Mat) (gocv.Mat, error) { return algorithms.Sharpen(m, adj.Sharpness) }},
		{"denoise", func(m gocv.Mat) (gocv.Mat, error) { return algorithms.Denoise(m, adj.Denoise) }},
	}
	if adj.Mono {
		stages = append(stages, stage{"grayscale", algorithms.Grayscale})
	} else {
		stages = append(stages, stage{"rgb_gain", func(m gocv.Mat) (gocv.Mat, error) {
			return algorithms.RGBGain(m, adj.Red, adj.Green, adj.Blue)
		}})
	}

	tracer := otel.Tracer(tracerName)
	current := input.Clone()
	for _, st := range stages {
		_, span := tracer.Start(ctx, "compose."+st.name)
		span.SetAttributes(
			attribute.Int("image.width", current.Cols()),
			attribute.Int("image.height", current.Rows()),
		)

		result, err := st.apply(current)
		span.End()
		current.Close()
		if err != nil {
			result.Close()
			return gocv.NewMat(), fmt.Errorf("%s: %w", st.name, err)
		}
		current = result
	}

	return current, nil
}

func checkBuffer(m gocv.Mat) error {
	if m.Empty() {
		return fmt.Errorf("%w: image is empty", imgerr.ErrInvalidInput)
	}
	return nil
}

func unknownTool(name string) error {
	return fmt.Errorf("%w: unknown tool: %s", imgerr.ErrInvalidInput, name)
}
