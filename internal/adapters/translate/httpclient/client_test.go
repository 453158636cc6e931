package httpclient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neverho0d/readnlearn-sub001/internal/ports"
)

func TestExtractTranslation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr bool
	}{
		{"plain json", `{"translation":"hola"}`, "hola", false},
		{"fenced json", "```json\n{\"translation\":\"hola\"}\n```", "hola", false},
		{"json inside prose", `Sure! Here you go: {"translation":"hola"} Hope that helps.`, "hola", false},
		{"labeled plain text", "Translation: hola", "hola", false},
		{"bare plain text", "hola", "hola", false},
		{"broken json", `{"translation": `, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractTranslation(tt.content)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDeepLBaseDependsOnKey(t *testing.T) {
	free := New("deepl", "abc:fx", "", "")
	require.Equal(t, "https://api-free.deepl.com", free.deeplBase())

	pro := New("deepl", "abc", "", "")
	require.Equal(t, "https://api.deepl.com", pro.deeplBase())

	custom := New("deepl", "abc", "http://localhost:9000/", "")
	require.Equal(t, "http://localhost:9000", custom.deeplBase())
}

func TestUnsupportedProviderType(t *testing.T) {
	c := New("yandex", "", "", "")
	_, err := c.Translate(context.Background(), "hi", ports.TranslateParams{})
	require.Error(t, err)
}
