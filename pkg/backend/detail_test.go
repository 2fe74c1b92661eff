package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractDetail(t *testing.T) {
	tests := []struct {
		name string
		body string
		want interface{}
	}{
		{"string detail", `{"detail": "Pedido no encontrado"}`, "Pedido no encontrado"},
		{"object detail", `{"detail": {"msg": "field required"}}`, map[string]interface{}{"msg": "field required"}},
		{"list detail", `{"detail": [{"msg": "field required"}]}`, []interface{}{map[string]interface{}{"msg": "field required"}}},
		{"no detail field", `{"error": "boom"}`, nil},
		{"not json", `<html>502 Bad Gateway</html>`, nil},
		{"empty body", ``, nil},
		{"json array body", `["a","b"]`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractDetail([]byte(tt.body)))
		})
	}
}

func TestFlattenDetail(t *testing.T) {
	tests := []struct {
		name   string
		detail interface{}
		want   string
	}{
		{"nil", nil, ""},
		{"string", "No autorizado", "No autorizado"},
		{"object msg", map[string]interface{}{"msg": "field required"}, "field required"},
		{"object message", map[string]interface{}{"message": "invalid email"}, "invalid email"},
		{"validation list", []interface{}{
			map[string]interface{}{"msg": "field required"},
			map[string]interface{}{"msg": "value too short"},
		}, "field required; value too short"},
		{"mixed list", []interface{}{"plain", map[string]interface{}{"message": "bad"}}, "plain; bad"},
		{"unknown shape", 42, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FlattenDetail(tt.detail))
		})
	}
}
