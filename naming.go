package plainjson

import "github.com/iancoleman/strcase"

// NamingPolicy maps a Go field name to its JSON member name.
// A `json:"name"` tag always wins over the policy.
type NamingPolicy uint8

const (
	NamingAsDeclared NamingPolicy = iota // Field name unchanged
	NamingCamelCase                      // fieldName
	NamingSnakeCase                      // field_name
	NamingKebabCase                      // field-name
)

func (n NamingPolicy) apply(name string) string {
	switch n {
	case NamingCamelCase:
		return strcase.ToLowerCamel(name)
	case NamingSnakeCase:
		return strcase.ToSnake(name)
	case NamingKebabCase:
		return strcase.ToKebab(name)
	default:
		return name
	}
}
