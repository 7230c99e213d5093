package sink

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/forcegraph/pkg/render"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	compact bool
	layout  string
}

// WithCompactJSON disables indentation.
func WithCompactJSON() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

// WithJSONLayout records the layout mode name in the output.
func WithJSONLayout(mode string) JSONOption { return func(r *jsonRenderer) { r.layout = mode } }

type jsonOutput struct {
	Layout string `json:"layout,omitempty"`
	render.Frame
}

// RenderJSON exports the frame descriptors. Node input fields not mapped
// to descriptor fields are kept. Callbacks are not serialized.
func RenderJSON(f render.Frame, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	out := jsonOutput{Layout: r.layout, Frame: f}

	var (
		data []byte
		err  error
	)
	if r.compact {
		data, err = json.Marshal(out)
	} else {
		data, err = json.MarshalIndent(out, "", "  ")
	}
	if err != nil {
		return nil, fmt.Errorf("marshal frame: %w", err)
	}
	return data, nil
}
