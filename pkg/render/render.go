// Package render provides output renderers for the aggregated results model.
// Each renderer is a pure function of the model; none depends on another.
package render

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/dkoosis/foreport/pkg/results"
)

// Renderer converts the aggregated model to one output document.
type Renderer interface {
	Name() string
	Render(m *results.Model) (string, error)
}

// Output is one successfully rendered document.
type Output struct {
	Renderer string
	Content  string
}

// RenderError records a renderer that failed or panicked.
type RenderError struct {
	Renderer string
	Err      error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Renderer, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// RunAll invokes every renderer against m. A failing renderer does not stop
// the others: successful outputs are always returned, and failures are
// combined into a *multierror.Error of *RenderError values.
func RunAll(m *results.Model, renderers ...Renderer) ([]Output, error) {
	outputs := make([]Output, 0, len(renderers))
	var errs *multierror.Error
	for _, r := range renderers {
		content, err := safeRender(r, m)
		if err != nil {
			errs = multierror.Append(errs, &RenderError{Renderer: r.Name(), Err: err})
			continue
		}
		outputs = append(outputs, Output{Renderer: r.Name(), Content: content})
	}
	return outputs, errs.ErrorOrNil()
}

func safeRender(r Renderer, m *results.Model) (content string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return r.Render(m)
}

// RenderErrors unpacks the failures reported by RunAll.
func RenderErrors(err error) []*RenderError {
	if err == nil {
		return nil
	}
	var out []*RenderError
	if merr, ok := err.(*multierror.Error); ok {
		for _, e := range merr.Errors {
			if re, ok := e.(*RenderError); ok {
				out = append(out, re)
			}
		}
		return out
	}
	if re, ok := err.(*RenderError); ok {
		out = append(out, re)
	}
	return out
}
