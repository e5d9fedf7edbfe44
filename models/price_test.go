package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPrice_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		body    string
		want    Price
		wantErr bool
	}{
		{body: `{"price":100}`, want: 100},
		{body: `{"price":12.5}`, want: 12.5},
		{body: `{"price":"100"}`, want: 100},
		{body: `{"price":" 12.5 "}`, want: 12.5},
		{body: `{"price":""}`, want: 0},
		{body: `{"price":null}`, want: 0},
		{body: `{}`, want: 0},
		{body: `{"price":"cheap"}`, wantErr: true},
		{body: `{"price":"NaN"}`, wantErr: true},
		{body: `{"price":true}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			var in ServiceInput
			err := json.Unmarshal([]byte(tt.body), &in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, in.Price)
		})
	}
}

func TestPrice_UnmarshalBSONValue(t *testing.T) {
	dec, err := primitive.ParseDecimal128("42.75")
	require.NoError(t, err)

	tests := []struct {
		name  string
		value interface{}
		want  Price
	}{
		{name: "double", value: 19.99, want: 19.99},
		{name: "int32", value: int32(20), want: 20},
		{name: "int64", value: int64(30), want: 30},
		{name: "decimal128", value: dec, want: 42.75},
		{name: "string", value: "100", want: 100},
		{name: "null", value: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := bson.Marshal(bson.M{"title": "Tiling", "price": tt.value})
			require.NoError(t, err)

			var s Service
			require.NoError(t, bson.Unmarshal(raw, &s))
			assert.Equal(t, tt.want, s.Price)
		})
	}

	raw, err := bson.Marshal(bson.M{"price": "n/a"})
	require.NoError(t, err)
	var s Service
	assert.Error(t, bson.Unmarshal(raw, &s))
}

func TestPrice_StoredAsDouble(t *testing.T) {
	raw, err := bson.Marshal(Service{Price: 15})
	require.NoError(t, err)

	value := bson.Raw(raw).Lookup("price")
	assert.Equal(t, bson.TypeDouble, value.Type)
	assert.Equal(t, 15.0, value.Double())
}
