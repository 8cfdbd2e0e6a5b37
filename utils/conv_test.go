package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golemsfate/asset_pipeline/config"
)

func TestDecodeHostText(t *testing.T) {
	s, err := DecodeHostText([]byte("\xef\xbb\xbfTür"))
	require.NoError(t, err)
	assert.Equal(t, "Tür", string(s))

	require.NoError(t, config.SetEncoding("Windows 1252"))
	defer config.SetEncoding(config.DefaultEncoding)

	s, err = DecodeHostText([]byte{'T', 0xfc, 'r'})
	require.NoError(t, err)
	assert.Equal(t, "Tür", string(s))
}
