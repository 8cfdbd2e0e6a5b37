package notify

import (
	"github.com/pkg/errors"
	"github.com/sqweek/dialog"

	"github.com/golemsfate/asset_pipeline/status"
)

// Dialog shows native message boxes and file pickers.
// Native toolkit has no text input, so questions go to Prompter.
type Dialog struct {
	Prompter
	// file type filter of pickers, like "Material map" + "json"
	FilterName string
	FilterExt  []string
}

func NewDialog(p Prompter) *Dialog {
	return &Dialog{Prompter: p, FilterName: "JSON Files", FilterExt: []string{"json"}}
}

func (d *Dialog) Info(title, format string, a ...interface{}) {
	status.Info(format, a...)
	dialog.Message(format, a...).Title(title).Info()
}

func (d *Dialog) Error(title string, err error) {
	status.Error("%s: %v", title, err)
	dialog.Message("%v", err).Title(title).Error()
}

func (d *Dialog) file(title, startDir string) *dialog.FileBuilder {
	b := dialog.File().Title(title)
	if d.FilterName != "" {
		b = b.Filter(d.FilterName, d.FilterExt...)
	}
	if startDir != "" {
		b = b.SetStartDir(startDir)
	}
	return b
}

func cancelled(err error) error {
	if err == dialog.ErrCancelled {
		return ErrCancelled
	}
	return errors.Wrapf(err, "File dialog")
}

func (d *Dialog) SaveFile(title, startDir string) (string, error) {
	filename, err := d.file(title, startDir).Save()
	if err != nil {
		return "", cancelled(err)
	}
	return filename, nil
}

func (d *Dialog) LoadFile(title, startDir string) (string, error) {
	filename, err := d.file(title, startDir).Load()
	if err != nil {
		return "", cancelled(err)
	}
	return filename, nil
}
