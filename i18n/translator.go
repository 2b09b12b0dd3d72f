package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected", "constraint" or "value").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var catalogue = map[string]map[string]string{
	"en": {
		"missing_required":                 "required field is missing",
		"invalid_enum_value":               "value is not one of the allowed literals",
		"out_of_range":                     "value is out of range ({constraint})",
		"wrong_type":                       "wrong type, expected {expected}",
		"unknown_field":                    "unknown field",
		"precondition_failed":              "precondition failed",
		"parse_error":                      "payload could not be parsed",
		"duplicate_key":                    "duplicate key",
		"too_deep":                         "payload nesting too deep",
		"too_large":                        "payload too large",
		"parking_configuration_missing":    "parking spaces are required but no parking configuration is allowed",
		"attached_height_value_missing":    "custom attached ADU height rule without a maximum height",
		"attached_setback_details_missing": "custom attached ADU setback rule without details",
		"adu_types_none":                   "no ADU type is allowed; ADUs are effectively prohibited",
	},
	"fr": {
		"missing_required":                 "champ obligatoire manquant",
		"invalid_enum_value":               "valeur hors de la liste autorisée",
		"out_of_range":                     "valeur hors limites ({constraint})",
		"wrong_type":                       "type incorrect, attendu : {expected}",
		"unknown_field":                    "champ inconnu",
		"precondition_failed":              "précondition non satisfaite",
		"parse_error":                      "contenu illisible",
		"duplicate_key":                    "clé en double",
		"too_deep":                         "imbrication trop profonde",
		"too_large":                        "contenu trop volumineux",
		"parking_configuration_missing":    "stationnement exigé mais aucune configuration autorisée",
		"attached_height_value_missing":    "règle de hauteur personnalisée sans hauteur maximale",
		"attached_setback_details_missing": "règle de marge personnalisée sans précisions",
		"adu_types_none":                   "aucun type de logement accessoire n'est autorisé",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msgs, ok := catalogue[t.lang]
	if !ok {
		msgs = catalogue["en"]
	}
	msg, ok := msgs[code]
	if !ok {
		return code
	}
	for k, v := range data {
		msg = strings.ReplaceAll(msg, "{"+k+"}", v)
	}
	return msg
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// Languages lists the built-in catalogue languages.
func Languages() []string { return []string{"en", "fr"} }

// SetLanguage switches the built-in Translator language ("en"/"fr").
// Unknown languages fall back to English.
func SetLanguage(lang string) {
	if _, ok := catalogue[lang]; !ok {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
