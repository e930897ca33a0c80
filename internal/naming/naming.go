// Package naming converts identifiers between the casing conventions used by
// column names, model names and relation targets.
package naming

import (
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/jinzhu/inflection"
)

// Camel converts s to lower camel case ("user_name" -> "userName").
func Camel(s string) string {
	return strcase.ToLowerCamel(strings.TrimSpace(s))
}

// Pascal converts s to upper camel case ("order_item" -> "OrderItem").
func Pascal(s string) string {
	return strcase.ToCamel(strings.TrimSpace(s))
}

// Plural returns the English plural of s ("Category" -> "Categories").
func Plural(s string) string {
	if s == "" {
		return ""
	}
	return inflection.Plural(s)
}

// ModelName derives a model name from a file name. Everything from the
// first dot on is discarded, so "users.2024.csv" names the model "Users".
func ModelName(fileName string) string {
	base, _, _ := strings.Cut(fileName, ".")
	return Pascal(base)
}
