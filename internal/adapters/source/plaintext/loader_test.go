package plaintext

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neverho0d/readnlearn-sub001/internal/domain"
)

func TestLoadStripsBOM(t *testing.T) {
	l := New()
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello")...)
	res, err := l.Load("a.txt", data)
	require.NoError(t, err)
	require.Equal(t, "hello", res.Text)
	require.Equal(t, domain.FormatPlain, res.Format)
}

func TestLoadTitleFromFilename(t *testing.T) {
	l := New()
	res, err := l.Load("/stories/cuentos cortos.txt", []byte("x"))
	require.NoError(t, err)
	require.Equal(t, "cuentos cortos", res.Title)
}
