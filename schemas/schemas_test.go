package schemas_test

import (
	"encoding/json"
	"os"
	"testing"

	internalschemas "github.com/jonathan/applicant-scorer/internal/schemas"
	"github.com/jonathan/applicant-scorer/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range schemas.Names() {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(schemaFile)
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			err = json.Unmarshal(data, &v)
			assert.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestSchemaFiles_HaveSchemaKeywords(t *testing.T) {
	for _, schemaFile := range schemas.Names() {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := schemas.Read(schemaFile)
			require.NoError(t, err)

			var schemaObj map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &schemaObj))

			assert.Equal(t, "http://json-schema.org/draft-07/schema#", schemaObj["$schema"])
			assert.Equal(t, "object", schemaObj["type"])
			assert.Contains(t, schemaObj, "properties")
		})
	}
}

func TestEmbeddedMatchesDisk(t *testing.T) {
	for _, schemaFile := range schemas.Names() {
		embedded, err := schemas.Read(schemaFile)
		require.NoError(t, err)
		onDisk, err := os.ReadFile(schemaFile)
		require.NoError(t, err)
		assert.Equal(t, string(onDisk), string(embedded), schemaFile)
	}
}

func TestRead_Unknown(t *testing.T) {
	_, err := schemas.Read("nope.schema.json")
	assert.Error(t, err)
}

func TestInternalDefinitionsResolve(t *testing.T) {
	// every schema must compile, which resolves its #/definitions references
	for _, schemaFile := range schemas.Names() {
		err := internalschemas.ValidateDocument(schemaFile, []byte(`{}`))
		if err != nil {
			_, isValidation := err.(*internalschemas.ValidationError)
			assert.True(t, isValidation, "%s: unexpected error %v", schemaFile, err)
		}
	}
}
