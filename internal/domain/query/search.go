package query

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// LikeEscape carácter de escape usado en los patrones LIKE.
const LikeEscape = `\`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Fold pasa el texto a minúsculas con reglas Unicode completas ("ÑANDÚ" → "ñandú").
// Los almacenes que no saben hacerlo en SQL guardan el texto ya plegado con esta función.
func Fold(s string) string {
	return cases.Lower(language.Und).String(s)
}

// NormalizeTerm recorta espacios y pasa el término a minúsculas.
func NormalizeTerm(term string) string {
	return Fold(strings.TrimSpace(term))
}

// ContainsPattern construye el patrón LIKE de subcadena para un término ya normalizado.
// Los metacaracteres % y _ se escapan para que el término se compare literalmente.
// Un término vacío produce "%%", que coincide con cualquier valor no nulo.
func ContainsPattern(term string) string {
	return "%" + likeEscaper.Replace(NormalizeTerm(term)) + "%"
}
