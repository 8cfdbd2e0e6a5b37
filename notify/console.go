package notify

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/golemsfate/asset_pipeline/status"
)

// Console talks to operator over terminal
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

func (c *Console) Info(title, format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	status.Info("%s: %s", title, msg)
	fmt.Fprintf(c.out, "[%s] %s\n", title, msg)
}

func (c *Console) Error(title string, err error) {
	status.Error("%s: %v", title, err)
	fmt.Fprintf(c.out, "[%s] ERROR: %v\n", title, err)
}

func (c *Console) Ask(question string) (string, error) {
	fmt.Fprintf(c.out, "%s ", question)
	line, err := c.in.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		if err == io.EOF {
			return "", ErrCancelled
		}
		return "", errors.Wrapf(err, "Cannot read answer")
	}
	return strings.TrimSpace(line), nil
}

func (c *Console) pick(title, startDir string) (string, error) {
	if startDir != "" {
		title = fmt.Sprintf("%s (relative to %s)", title, startDir)
	}
	answer, err := c.Ask(title + ":")
	if err != nil {
		return "", err
	}
	if answer == "" {
		return "", ErrCancelled
	}
	if startDir != "" && !isAbs(answer) {
		answer = strings.TrimSuffix(startDir, "/") + "/" + answer
	}
	return answer, nil
}

func isAbs(p string) bool {
	return strings.HasPrefix(p, "/") || strings.HasPrefix(p, `\`) || (len(p) > 1 && p[1] == ':')
}

func (c *Console) SaveFile(title, startDir string) (string, error) { return c.pick(title, startDir) }
func (c *Console) LoadFile(title, startDir string) (string, error) { return c.pick(title, startDir) }
