package typeconv

import "strings"

// Canonical normalizes a YQL type name (or one of its synonyms) for comparison.
// Unknown names are returned upper-cased so callers can report them.
func Canonical(typ string) string {
	t := strings.ToUpper(strings.TrimSpace(typ))
	if strings.HasPrefix(t, "DECIMAL(") {
		return "DECIMAL"
	}
	switch t {
	case "BOOL", "BOOLEAN":
		return "BOOL"
	case "INT8", "TINYINT":
		return "INT8"
	case "INT16", "SMALLINT":
		return "INT16"
	case "INT32", "INT", "INTEGER":
		return "INT32"
	case "INT64", "BIGINT":
		return "INT64"
	case "FLOAT", "REAL":
		return "FLOAT"
	case "DOUBLE":
		return "DOUBLE"
	case "STRING", "BYTES":
		return "BYTES"
	case "UTF8", "TEXT":
		return "TEXT"
	case "YSON":
		return "YSON"
	case "JSON":
		return "JSON"
	case "JSONDOCUMENT", "JSON_DOCUMENT":
		return "JSON_DOCUMENT"
	case "UUID":
		return "UUID"
	case "DATE":
		return "DATE"
	case "DATETIME":
		return "DATETIME"
	case "TIMESTAMP":
		return "TIMESTAMP"
	case "INTERVAL":
		return "INTERVAL"
	case "TZDATE", "TZ_DATE":
		return "TZ_DATE"
	case "TZDATETIME", "TZ_DATETIME":
		return "TZ_DATETIME"
	case "TZTIMESTAMP", "TZ_TIMESTAMP":
		return "TZ_TIMESTAMP"
	case "DECIMAL":
		return "DECIMAL"
	default:
		return t
	}
}

// Declare renders a YQL DECLARE clause for a named parameter.
func Declare(name, yqlType string) string {
	if !strings.HasPrefix(name, "$") {
		name = "$" + name
	}
	return "DECLARE " + name + " AS " + yqlType + ";"
}
