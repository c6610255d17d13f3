package spi

// Type is a declared parameter type: either a portable tag or an engine-native kind.
type Type interface {
	Name() string
}

// PortableType is a database-agnostic type tag defined by the access API.
type PortableType uint8

const (
	Boolean PortableType = iota + 1
	TinyInt
	SmallInt
	Integer
	BigInt
	Real
	Float
	Double
	Binary
	VarBinary
	Blob
	Char
	VarChar
	NChar
	NVarChar
	Clob
	NClob
	Date
	Time
	Timestamp
	TimeWithTimeZone
	TimestampWithTimeZone
	Numeric
	Decimal
	// Collection is part of the portable set but has no engine mapping.
	Collection
)

var portableNames = map[PortableType]string{
	Boolean:               "BOOLEAN",
	TinyInt:               "TINYINT",
	SmallInt:              "SMALLINT",
	Integer:               "INTEGER",
	BigInt:                "BIGINT",
	Real:                  "REAL",
	Float:                 "FLOAT",
	Double:                "DOUBLE",
	Binary:                "BINARY",
	VarBinary:             "VARBINARY",
	Blob:                  "BLOB",
	Char:                  "CHAR",
	VarChar:               "VARCHAR",
	NChar:                 "NCHAR",
	NVarChar:              "NVARCHAR",
	Clob:                  "CLOB",
	NClob:                 "NCLOB",
	Date:                  "DATE",
	Time:                  "TIME",
	Timestamp:             "TIMESTAMP",
	TimeWithTimeZone:      "TIME_WITH_TIME_ZONE",
	TimestampWithTimeZone: "TIMESTAMP_WITH_TIME_ZONE",
	Numeric:               "NUMERIC",
	Decimal:               "DECIMAL",
	Collection:            "COLLECTION",
}

// PortableTypes returns every portable tag in declaration order.
func PortableTypes() []PortableType {
	out := make([]PortableType, 0, len(portableNames))
	for t := Boolean; t <= Collection; t++ {
		out = append(out, t)
	}
	return out
}

// Name returns the upper-case tag name, e.g. "VARCHAR".
func (t PortableType) Name() string {
	if n, ok := portableNames[t]; ok {
		return n
	}
	return "UNKNOWN"
}

func (t PortableType) String() string {
	return t.Name()
}
