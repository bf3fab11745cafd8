package column

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(ttt *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []Spec
		wantErr bool
	}{
		{
			name:  "single column",
			input: "name:string",
			want:  []Spec{{Name: "name", Type: TypeString}},
		},
		{
			name:  "keeps declaration order",
			input: "total:decimal,name:string,meta:json",
			want: []Spec{
				{Name: "total", Type: TypeDecimal},
				{Name: "name", Type: TypeString},
				{Name: "meta", Type: TypeJSON},
			},
		},
		{
			name:  "trims whitespace",
			input: " name : string , paid_at:timestampTz",
			want: []Spec{
				{Name: "name", Type: TypeString},
				{Name: "paid_at", Type: TypeTimestampTz},
			},
		},
		{name: "empty", input: "", wantErr: true},
		{name: "missing colon", input: "namestring", wantErr: true},
		{name: "two colons", input: "name:string:extra", wantErr: true},
		{name: "trailing comma", input: "name:string,", wantErr: true},
		{name: "empty name", input: ":string", wantErr: true},
		{name: "unknown type", input: "name:varchar", wantErr: true},
		{name: "type is case sensitive", input: "name:String", wantErr: true},
		{name: "duplicate name", input: "name:string,name:text", wantErr: true},
	}
	for _, tt := range tests {
		ttt.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, got)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseUnsupportedTypeNamesOffender(t *testing.T) {
	_, err := Parse("name:string,total:money,other:alsobad")

	var unsupported *UnsupportedTypeError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "money", unsupported.Type)
	assert.Equal(t, "total", unsupported.Column)
	assert.Equal(t, Supported(), unsupported.Supported)
	assert.Contains(t, err.Error(), "invalid column type: money")
	assert.Contains(t, err.Error(), "bigIncrements, bigInteger")
}

func TestParseMalformedNamesToken(t *testing.T) {
	_, err := Parse("name:string,total")

	var malformed *MalformedDeclarationError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "total", malformed.Token)
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse("   ")
	require.True(t, errors.Is(err, ErrNoColumns))
}

func TestTypeRoundTrip(t *testing.T) {
	supported := Supported()
	require.Len(t, supported, 65)
	for _, token := range supported {
		typ, ok := ParseType(token)
		require.True(t, ok, token)
		require.Equal(t, token, typ.String())
	}
	_, ok := ParseType("")
	require.False(t, ok)
	require.Equal(t, "invalid", TypeInvalid.String())
}

func TestTypeKinds(t *testing.T) {
	assert.True(t, TypeJSON.IsJSON())
	assert.True(t, TypeJSONB.IsJSON())
	assert.False(t, TypeString.IsJSON())
	assert.True(t, TypeSoftDeletesTz.IsSoftDelete())
	assert.False(t, TypeTimestamp.IsSoftDelete())
}

func TestFormat(t *testing.T) {
	specs, err := Parse("name:string,total:decimal")
	require.NoError(t, err)
	assert.Equal(t, "name:string,total:decimal", Format(specs))
	assert.Equal(t, []string{"name", "total"}, Names(specs))
	assert.False(t, strings.Contains(Format(nil), ":"))
}
