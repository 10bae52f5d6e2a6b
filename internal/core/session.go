// Editor session: an immutable original and a committed working buffer
package core

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"valo-editor/internal/imgerr"
	imgio "valo-editor/internal/io"
	"valo-editor/internal/metrics"
)

// State is the editing state of a session.
type State int

const (
	// Loaded means current equals the original.
	Loaded State = iota
	// Modified means at least one commit happened since load or reset.
	Modified
)

func (s State) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Modified:
		return "modified"
	default:
		return "unknown"
	}
}

// ImageMetadata contains image information
type ImageMetadata struct {
	Width    int
	Height   int
	Channels int
	Type     gocv.MatType
	Format   string
}

// MaxHistory bounds the number of undo steps a session keeps.
const MaxHistory = 20

// ErrNoHistory is returned by Undo and Redo when there is nothing to step to.
var ErrNoHistory = errors.New("no history")

type snapshot struct {
	mat   gocv.Mat
	state State
}

// Session owns an original buffer, set once, and a current buffer that only
// changes through Commit, Undo, Redo and Reset.
type Session struct {
	mu        sync.RWMutex
	original  gocv.Mat
	current   gocv.Mat
	state     State
	undo      []snapshot
	redo      []snapshot
	filepath  string
	metadata  ImageMetadata
	loader    *imgio.ImageLoader
	evaluator *metrics.Evaluator
	logger    logrus.FieldLogger
}

// Open loads path into a new session. On failure no session is created.
func Open(path string, loader *imgio.ImageLoader, logger logrus.FieldLogger) (*Session, error) {
	mat, err := loader.LoadImage(path)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	return NewSession(mat, path, loader, logger)
}

// NewSession starts a session from a decoded buffer. The buffer is copied.
func NewSession(mat gocv.Mat, path string, loader *imgio.ImageLoader, logger logrus.FieldLogger) (*Session, error) {
	if err := ValidateImage(mat); err != nil {
		return nil, err
	}

	s := &Session{
		original:  mat.Clone(),
		current:   mat.Clone(),
		state:     Loaded,
		filepath:  path,
		loader:    loader,
		evaluator: metrics.NewEvaluator(),
		logger:    logger.WithField("component", "session"),
		metadata: ImageMetadata{
			Width:    mat.Cols(),
			Height:   mat.Rows(),
			Channels: mat.Channels(),
			Type:     mat.Type(),
			Format:   getFormatFromPath(path),
		},
	}
	s.logger.WithFields(logrus.Fields{
		"filepath": path,
		"width":    s.metadata.Width,
		"height":   s.metadata.Height,
	}).Info("Session opened")
	return s, nil
}

// Preview computes op on the current buffer without committing it. The caller
// owns the returned Mat.
func (s *Session) Preview(op Operation) (gocv.Mat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpenUnsafe(); err != nil {
		return gocv.NewMat(), err
	}
	return op.Apply(s.current)
}

// Commit replaces the current buffer with op applied to it. On error the
// current buffer is left untouched.
func (s *Session) Commit(op Operation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpenUnsafe(); err != nil {
		return err
	}

	result, err := op.Apply(s.current)
	if err != nil {
		result.Close()
		return err
	}
	if result.Empty() {
		result.Close()
		return fmt.Errorf("%w: operation produced an empty image", imgerr.ErrInvalidInput)
	}

	s.undo = append(s.undo, snapshot{mat: s.current, state: s.state})
	if len(s.undo) > MaxHistory {
		s.undo[0].mat.Close()
		s.undo = s.undo[1:]
	}
	clearHistory(&s.redo)

	s.current = result
	s.state = Modified
	s.logger.WithFields(logrus.Fields{
		"width":    result.Cols(),
		"height":   result.Rows(),
		"channels": result.Channels(),
	}).Debug("Committed operation")
	return nil
}

// Reset restores current to a copy of the original.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpenUnsafe(); err != nil {
		return err
	}

	s.current.Close()
	s.current = s.original.Clone()
	s.state = Loaded
	clearHistory(&s.undo)
	clearHistory(&s.redo)
	s.logger.Debug("Reset to original image")
	return nil
}

// Undo restores the buffer as it was before the latest commit.
func (s *Session) Undo() error {
	return s.step(&s.undo, &s.redo, "Undo")
}

// Redo re-applies the latest undone commit.
func (s *Session) Redo() error {
	return s.step(&s.redo, &s.undo, "Redo")
}

// step pops from, pushing the current buffer onto to.
func (s *Session) step(from, to *[]snapshot, action string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpenUnsafe(); err != nil {
		return err
	}
	if len(*from) == 0 {
		return fmt.Errorf("%s: %w", strings.ToLower(action), ErrNoHistory)
	}

	last := (*from)[len(*from)-1]
	*from = (*from)[:len(*from)-1]
	*to = append(*to, snapshot{mat: s.current, state: s.state})

	s.current = last.mat
	s.state = last.state
	s.logger.WithField("state", s.state).Debug(action)
	return nil
}

func (s *Session) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.undo) > 0
}

func (s *Session) CanRedo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.redo) > 0
}

func clearHistory(h *[]snapshot) {
	for _, snap := range *h {
		snap.mat.Close()
	}
	*h = nil
}

// Save encodes the current buffer to path. Session state is unchanged either way.
func (s *Session) Save(path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpenUnsafe(); err != nil {
		return err
	}
	return s.loader.SaveImage(s.current, path)
}

// Compare returns quality metrics of the current buffer against the original.
func (s *Session) Compare() map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.original.Empty() || s.current.Empty() {
		return map[string]float64{}
	}
	return s.evaluator.CalculateAll(s.original, s.current)
}

// Original returns a copy of the original buffer.
func (s *Session) Original() gocv.Mat {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.original.Empty() {
		return gocv.NewMat()
	}
	return s.original.Clone()
}

// Current returns a copy of the current buffer.
func (s *Session) Current() gocv.Mat {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current.Empty() {
		return gocv.NewMat()
	}
	return s.current.Clone()
}

// Size returns the dimensions of the current buffer, which differ from the
// original after a crop.
func (s *Session) Size() (width, height int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Cols(), s.current.Rows()
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) Metadata() ImageMetadata {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metadata
}

func (s *Session) Filepath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filepath
}

// Close releases both buffers. The session is unusable afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.original.Empty() {
		s.original.Close()
	}
	if !s.current.Empty() {
		s.current.Close()
	}
	s.original = gocv.NewMat()
	s.current = gocv.NewMat()
	clearHistory(&s.undo)
	clearHistory(&s.redo)
}

func (s *Session) checkOpenUnsafe() error {
	if s.original.Empty() || s.current.Empty() {
		return fmt.Errorf("%w: session has no image", imgerr.ErrInvalidInput)
	}
	return nil
}

// ValidateImage validates an OpenCV Mat for basic requirements
func ValidateImage(mat gocv.Mat) error {
	if mat.Empty() {
		return fmt.Errorf("%w: image is empty", imgerr.ErrInvalidInput)
	}

	if mat.Cols() <= 0 || mat.Rows() <= 0 {
		return fmt.Errorf("%w: invalid dimensions: %dx%d", imgerr.ErrInvalidInput, mat.Cols(), mat.Rows())
	}

	channels := mat.Channels()
	if channels != 1 && channels != 3 && channels != 4 {
		return fmt.Errorf("%w: unsupported channel count: %d", imgerr.ErrInvalidInput, channels)
	}

	const maxDimension = 16384
	if mat.Cols() > maxDimension || mat.Rows() > maxDimension {
		return fmt.Errorf("%w: image too large: %dx%d (max: %d)", imgerr.ErrInvalidInput, mat.Cols(), mat.Rows(), maxDimension)
	}

	return nil
}

func getFormatFromPath(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return "unknown"
	}
	return ext
}
