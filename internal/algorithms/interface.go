// Editor tool registry
package algorithms

import (
	"fmt"
	"sort"

	"gocv.io/x/gocv"
)

// Algorithm is an interactive editor tool driven by two sliders.
type Algorithm interface {
	// Apply runs the tool with parameters in the transform's native domain.
	Apply(input gocv.Mat, params map[string]interface{}) (gocv.Mat, error)
	// FromSliders maps the two slider positions to native parameters.
	FromSliders(primary, secondary int) map[string]interface{}
	GetDefaultSliders() (int, int)
	GetName() string
	GetDescription() string
	GetParameterInfo() []ParameterInfo
}

// ParameterInfo describes a slider for UI generation
type ParameterInfo struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Min         int    `json:"min"`
	Max         int    `json:"max"`
	Default     int    `json:"default"`
	Description string `json:"description"`
}

var algorithms = make(map[string]Algorithm)

func Register(name string, algorithm Algorithm) {
	algorithms[name] = algorithm
}

func Get(name string) (Algorithm, bool) {
	algorithm, exists := algorithms[name]
	return algorithm, exists
}

func Apply(name string, input gocv.Mat, params map[string]interface{}) (gocv.Mat, error) {
	algorithm, exists := algorithms[name]
	if !exists {
		return gocv.NewMat(), fmt.Errorf("algorithm not found: %s", name)
	}

	return algorithm.Apply(input, params)
}

func IsValidAlgorithm(name string) bool {
	_, exists := algorithms[name]
	return exists
}

// Names returns the registered tools in menu order.
func Names() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return menuOrder(names[i]) < menuOrder(names[j])
	})
	return names
}

func menuOrder(name string) int {
	for i, n := range []string{ToolBlur, ToolThreshold, ToolBrightnessContrast, ToolEdges} {
		if n == name {
			return i
		}
	}
	return len(algorithms)
}

func init() {
	Register(ToolBlur, NewGaussianBlur())
	Register(ToolThreshold, NewBinaryThreshold())
	Register(ToolBrightnessContrast, NewBrightnessContrast())
	Register(ToolEdges, NewCannyEdges())
}
