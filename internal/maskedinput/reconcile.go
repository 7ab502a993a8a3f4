package maskedinput

import (
	"github.com/go-errors/errors"

	"github.com/abdullathedruid/maskform/internal/logger"
)

// reconcile brings the engine in line with props. A changed pattern is
// recompiled over the current raw value first, then the external value is
// always applied against the new pattern.
func (f *Field) reconcile(props Props) error {
	if props.Mask != f.adapter.Pattern() {
		if props.Mask == "" {
			return errors.Wrap(&ConfigurationFault{Mask: props.Mask, Err: errors.New("mask is required")}, 1)
		}
		if err := f.adapter.SetPattern(props.Mask); err != nil {
			return errors.Wrap(&ConfigurationFault{Mask: props.Mask, Err: err}, 1)
		}
		logger.Debug("maskedinput: pattern %q -> %q", f.props.Mask, props.Mask)
	}
	f.adapter.SetValue(props.Value)
	f.props = props

	f.control.SetMaxLength(f.adapter.PatternLength())
	if display := f.adapter.Display(); f.control.Text() != display {
		f.control.SetText(display)
	}
	return nil
}
