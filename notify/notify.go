// Package notify is the operator surface of the pipeline tools: blocking
// messages, string prompts and file pickers.
package notify

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/golemsfate/asset_pipeline/matmap"
)

// ErrCancelled is returned when operator closes picker or prompt
var ErrCancelled = errors.New("cancelled by operator")

type Notifier interface {
	Info(title, format string, a ...interface{})
	Error(title string, err error)
}

type Prompter interface {
	Ask(question string) (string, error)
}

type FilePicker interface {
	SaveFile(title, startDir string) (string, error)
	LoadFile(title, startDir string) (string, error)
}

// AssetNames asks prompter for material name of every object
func AssetNames(p Prompter) matmap.NameSource {
	return matmap.NameSourceFunc(func(object string) (string, error) {
		name, err := p.Ask(fmt.Sprintf("Enter the name for the material of object '%s':", object))
		if errors.Is(err, ErrCancelled) {
			return "", nil
		}
		return name, err
	})
}
