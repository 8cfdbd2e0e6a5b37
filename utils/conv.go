package utils

import (
	"bytes"

	"github.com/pkg/errors"
	"golang.org/x/text/transform"

	"github.com/golemsfate/asset_pipeline/config"
)

// DecodeHostText converts text written by host tools into utf-8 using configured encoding
func DecodeHostText(bs []byte) ([]byte, error) {
	// utf-8 bom written by some windows hosts
	bs = bytes.TrimPrefix(bs, []byte{0xef, 0xbb, 0xbf})

	s, _, err := transform.Bytes(config.GetEncoding().NewDecoder(), bs)
	if err != nil {
		return nil, errors.Wrapf(err, "Cannot decode host text")
	}
	return s, nil
}
