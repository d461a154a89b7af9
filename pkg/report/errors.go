package report

import (
	"errors"
	"fmt"
)

var (
	ErrNilChart    = errors.New("chart is nil")
	ErrEmptyImage  = errors.New("rasterizer returned no image data")
	ErrEmptyLabel  = errors.New("metric label is empty")
	ErrEmptyTitle  = errors.New("chart title is empty")
	ErrRasterPanic = errors.New("rasterizer panicked")
)

// ChartRenderError reports that a single chart could not be converted into an image.
// The builder recovers from it by drawing a placeholder instead of the image.
type ChartRenderError struct {
	Title string
	Err   error
}

func (e *ChartRenderError) Error() string {
	return fmt.Sprintf("render chart %q: %v", e.Title, e.Err)
}

func (e *ChartRenderError) Unwrap() error {
	return e.Err
}

// DocumentAssemblyError aborts a build. Stage names the step that failed.
type DocumentAssemblyError struct {
	Stage string
	Err   error
}

func (e *DocumentAssemblyError) Error() string {
	return fmt.Sprintf("assemble report (%s): %v", e.Stage, e.Err)
}

func (e *DocumentAssemblyError) Unwrap() error {
	return e.Err
}
