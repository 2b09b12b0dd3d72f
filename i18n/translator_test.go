package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslator_DefaultAndFrench(t *testing.T) {
	// default is en
	assert.Equal(t, "wrong type, expected number", T("wrong_type", map[string]string{"expected": "number"}))

	SetLanguage("fr")
	t.Cleanup(func() { SetLanguage("en") })
	assert.Equal(t, "champ inconnu", T("unknown_field", nil))
	assert.Equal(t, "valeur hors limites (>= 0)", T("out_of_range", map[string]string{"constraint": ">= 0"}))
}

func TestTranslator_UnknownCodeAndLanguage(t *testing.T) {
	SetLanguage("xx")
	assert.Equal(t, "unknown field", T("unknown_field", nil))
	assert.Equal(t, "no_such_code", T("no_such_code", nil))
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X:" + code }

func TestSetTranslator(t *testing.T) {
	SetTranslator(upper{})
	t.Cleanup(func() { SetTranslator(nil) })
	assert.Equal(t, "X:too_deep", T("too_deep", nil))
}
