package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Price is a service price. Clients and older documents send it either as
// a number or as a numeric string; it is always stored as a double.
type Price float64

// UnmarshalJSON accepts 100, 100.5, "100" and "100.5". null and "" decode
// to zero so that required-field checks report them as missing.
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("price: %w", err)
		}
		return p.parse(s)
	}
	return p.parse(string(data))
}

// UnmarshalBSONValue reads prices stored as any numeric type or as a string.
func (p *Price) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Double:
		*p = Price(raw.Double())
	case bsontype.Int32:
		*p = Price(raw.Int32())
	case bsontype.Int64:
		*p = Price(raw.Int64())
	case bsontype.Decimal128:
		return p.parse(raw.Decimal128().String())
	case bsontype.String:
		return p.parse(raw.StringValue())
	case bsontype.Null, bsontype.Undefined:
		*p = 0
	default:
		return fmt.Errorf("price: cannot decode BSON %s", t)
	}
	return nil
}

func (p *Price) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*p = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("price: %q is not a number", s)
	}
	*p = Price(f)
	return nil
}
