package generator

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteMetrics(t *testing.T) {
	_, err := ReadExactly(&scripted{chunks: [][]byte{{1, 2, 3}}}, 3)
	require.NoError(t, err)

	var buf bytes.Buffer
	WriteMetrics(&buf)
	assert.Contains(t, buf.String(), "securerandom_bytes_read_total ")
	assert.Contains(t, buf.String(), "securerandom_rejections_total ")
}
