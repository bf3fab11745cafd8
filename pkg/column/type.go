package column

// Type is a Laravel schema Blueprint column method accepted in a column
// declaration. The zero value is TypeInvalid.
type Type int

const (
	TypeInvalid Type = iota
	TypeBigIncrements
	TypeBigInteger
	TypeBinary
	TypeBoolean
	TypeChar
	TypeDate
	TypeDateTime
	TypeDateTimeTz
	TypeDecimal
	TypeDouble
	TypeEnum
	TypeFloat
	TypeForeignID
	TypeForeignUUID
	TypeGeometry
	TypeGeometryCollection
	TypeIncrements
	TypeInteger
	TypeIPAddress
	TypeJSON
	TypeJSONB
	TypeLineString
	TypeLongText
	TypeMacAddress
	TypeMediumIncrements
	TypeMediumInteger
	TypeMediumText
	TypeMorphs
	TypeMultiLineString
	TypeMultiPoint
	TypeMultiPolygon
	TypeNullableMorphs
	TypeNullableUUIDMorphs
	TypePoint
	TypePolygon
	TypeRememberToken
	TypeSet
	TypeSmallIncrements
	TypeSmallInteger
	TypeSoftDeletes
	TypeSoftDeletesTz
	TypeString
	TypeText
	TypeTime
	TypeTimeTz
	TypeTimestamp
	TypeTimestampTz
	TypeTinyIncrements
	TypeTinyInteger
	TypeTinyText
	TypeUnsignedBigInteger
	TypeUnsignedDecimal
	TypeUnsignedInteger
	TypeUnsignedMediumInteger
	TypeUnsignedSmallInteger
	TypeUnsignedTinyInteger
	TypeUUID
	TypeUUIDMorphs
	TypeYear
	TypeID
	TypeULID
	TypeForeignULID
	TypeULIDMorphs
	TypeNullableULIDMorphs
	TypeGeography

	typeCount
)

// tokens holds the Blueprint method name for every Type, indexed by value.
var tokens = [typeCount]string{
	TypeInvalid:               "",
	TypeBigIncrements:         "bigIncrements",
	TypeBigInteger:            "bigInteger",
	TypeBinary:                "binary",
	TypeBoolean:               "boolean",
	TypeChar:                  "char",
	TypeDate:                  "date",
	TypeDateTime:              "dateTime",
	TypeDateTimeTz:            "dateTimeTz",
	TypeDecimal:               "decimal",
	TypeDouble:                "double",
	TypeEnum:                  "enum",
	TypeFloat:                 "float",
	TypeForeignID:             "foreignId",
	TypeForeignUUID:           "foreignUuid",
	TypeGeometry:              "geometry",
	TypeGeometryCollection:    "geometryCollection",
	TypeIncrements:            "increments",
	TypeInteger:               "integer",
	TypeIPAddress:             "ipAddress",
	TypeJSON:                  "json",
	TypeJSONB:                 "jsonb",
	TypeLineString:            "lineString",
	TypeLongText:              "longText",
	TypeMacAddress:            "macAddress",
	TypeMediumIncrements:      "mediumIncrements",
	TypeMediumInteger:         "mediumInteger",
	TypeMediumText:            "mediumText",
	TypeMorphs:                "morphs",
	TypeMultiLineString:       "multiLineString",
	TypeMultiPoint:            "multiPoint",
	TypeMultiPolygon:          "multiPolygon",
	TypeNullableMorphs:        "nullableMorphs",
	TypeNullableUUIDMorphs:    "nullableUuidMorphs",
	TypePoint:                 "point",
	TypePolygon:               "polygon",
	TypeRememberToken:         "rememberToken",
	TypeSet:                   "set",
	TypeSmallIncrements:       "smallIncrements",
	TypeSmallInteger:          "smallInteger",
	TypeSoftDeletes:           "softDeletes",
	TypeSoftDeletesTz:         "softDeletesTz",
	TypeString:                "string",
	TypeText:                  "text",
	TypeTime:                  "time",
	TypeTimeTz:                "timeTz",
	TypeTimestamp:             "timestamp",
	TypeTimestampTz:           "timestampTz",
	TypeTinyIncrements:        "tinyIncrements",
	TypeTinyInteger:           "tinyInteger",
	TypeTinyText:              "tinyText",
	TypeUnsignedBigInteger:    "unsignedBigInteger",
	TypeUnsignedDecimal:       "unsignedDecimal",
	TypeUnsignedInteger:       "unsignedInteger",
	TypeUnsignedMediumInteger: "unsignedMediumInteger",
	TypeUnsignedSmallInteger:  "unsignedSmallInteger",
	TypeUnsignedTinyInteger:   "unsignedTinyInteger",
	TypeUUID:                  "uuid",
	TypeUUIDMorphs:            "uuidMorphs",
	TypeYear:                  "year",
	TypeID:                    "id",
	TypeULID:                  "ulid",
	TypeForeignULID:           "foreignUlid",
	TypeULIDMorphs:            "ulidMorphs",
	TypeNullableULIDMorphs:    "nullableUlidMorphs",
	TypeGeography:             "geography",
}

var byToken = func() map[string]Type {
	m := make(map[string]Type, typeCount)
	for t := TypeInvalid + 1; t < typeCount; t++ {
		m[tokens[t]] = t
	}
	return m
}()

// ParseType maps a Blueprint method token to its Type. Matching is exact:
// Blueprint methods are case-sensitive.
func ParseType(token string) (Type, bool) {
	t, ok := byToken[token]
	return t, ok
}

// String returns the Blueprint method name.
func (t Type) String() string {
	if !t.Valid() {
		return "invalid"
	}
	return tokens[t]
}

func (t Type) Valid() bool {
	return t > TypeInvalid && t < typeCount
}

// IsJSON reports whether values of this column are stored as encoded JSON
// and need encode/decode accessors on the model.
func (t Type) IsJSON() bool {
	return t == TypeJSON || t == TypeJSONB
}

func (t Type) IsSoftDelete() bool {
	return t == TypeSoftDeletes || t == TypeSoftDeletesTz
}

// Supported returns every accepted token in declaration order.
func Supported() []string {
	out := make([]string, 0, typeCount-1)
	for t := TypeInvalid + 1; t < typeCount; t++ {
		out = append(out, tokens[t])
	}
	return out
}
