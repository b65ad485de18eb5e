package source

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/apisheet-go/pkg/apisheet/models"
)

const petstoreOAS3 = `
openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
  description: Sample API
paths:
  /pets/{petId}:
    summary: A single pet
    parameters:
      - name: petId
        in: path
        required: true
        description: path level
        schema: {type: string}
      - $ref: '#/components/parameters/Trace'
    delete:
      operationId: deletePet
      responses:
        "204": {description: Deleted}
    get:
      operationId: getPet
      summary: Info for a pet
      tags: [pets]
      parameters:
        - name: petId
          in: path
          required: true
          description: operation level
          schema: {type: integer, format: int64}
        - name: filter
          in: query
          content:
            application/json:
              schema: {$ref: '#/components/schemas/Filter'}
      responses:
        "200":
          description: Expected response
          headers:
            X-Rate-Limit:
              description: Calls per hour
              schema: {type: integer}
            X-Ref:
              $ref: '#/components/headers/Ref'
          content:
            application/xml:
              schema: {$ref: '#/components/schemas/Pet'}
            application/json:
              schema: {$ref: '#/components/schemas/Pet'}
        default:
          $ref: '#/components/responses/Error'
  /pets:
    post:
      operationId: createPet
      requestBody:
        $ref: '#/components/requestBodies/NewPet'
      responses:
        "201": {description: Created}
components:
  parameters:
    Trace:
      name: X-Trace
      in: header
      schema: {type: string}
  headers:
    Ref:
      description: referenced header
      required: true
      schema: {type: string}
  requestBodies:
    NewPet:
      description: Pet to add
      required: true
      content:
        application/json:
          schema: {$ref: '#/components/schemas/Pet'}
  responses:
    Error:
      description: Unexpected error
      content:
        application/json:
          schema:
            type: object
            required: [code]
            properties:
              code: {type: integer}
              message: {type: string}
  schemas:
    Filter:
      type: object
      properties:
        q: {type: string}
    Pet:
      type: object
      required: [name, id]
      properties:
        name: {type: string}
        id: {type: integer, format: int64}
        tags:
          type: array
          items: {type: string}
        owner:
          $ref: '#/components/schemas/Owner'
    Owner:
      type: object
      properties:
        nick: {type: string}
        pets:
          type: array
          items: {$ref: '#/components/schemas/Pet'}
`

func loadString(t *testing.T, doc string) *models.Document {
	t.Helper()
	d, err := Load([]byte(doc), Options{SourceName: "test.yaml"})
	require.NoError(t, err)
	return d
}

func propertyNames(t *testing.T, s models.Schema) []string {
	t.Helper()
	obj, ok := s.(*models.Object)
	require.True(t, ok, "expected object, got %T", s)
	names := make([]string, 0, len(obj.Properties))
	for _, p := range obj.Properties {
		names = append(names, p.Name)
	}
	return names
}

func TestLoadOAS3(t *testing.T) {
	doc := loadString(t, petstoreOAS3)

	assert.Equal(t, "Petstore", doc.Title)
	assert.Equal(t, "1.0.0", doc.Version)
	assert.Equal(t, "Sample API", doc.Description)
	assert.Equal(t, "3.0.3", doc.SourceVersion)
	assert.Empty(t, doc.Warnings)

	require.Len(t, doc.Operations, 3)
	ids := []string{doc.Operations[0].OperationID, doc.Operations[1].OperationID, doc.Operations[2].OperationID}
	assert.Equal(t, []string{"deletePet", "getPet", "createPet"}, ids, "paths and methods in declared order")

	get := doc.Operations[1]
	assert.Equal(t, models.MethodGet, get.Method)
	assert.Equal(t, "/pets/{petId}", get.Path)
	assert.Equal(t, "A single pet", get.PathSummary)
	assert.Equal(t, []string{"pets"}, get.Tags)

	require.Len(t, get.Parameters, 3)
	assert.Equal(t, "petId", get.Parameters[0].Name)
	assert.Equal(t, "operation level", get.Parameters[0].Description)
	assert.Equal(t, &models.Primitive{Type: "integer", Format: "int64"}, get.Parameters[0].Schema)
	assert.Equal(t, "X-Trace", get.Parameters[1].Name)
	assert.Equal(t, "header", get.Parameters[1].In)
	assert.Equal(t, "filter", get.Parameters[2].Name)
	assert.Equal(t, []string{"q"}, propertyNames(t, get.Parameters[2].Schema))

	require.Len(t, get.Responses, 2)
	ok := get.Responses[0]
	assert.Equal(t, "200", ok.StatusCode)
	assert.Equal(t, "Expected response", ok.Description)
	require.Len(t, ok.Headers, 2)
	assert.Equal(t, "X-Rate-Limit", ok.Headers[0].Name)
	assert.Equal(t, "X-Ref", ok.Headers[1].Name)
	assert.True(t, ok.Headers[1].Required)
	assert.Equal(t, "referenced header", ok.Headers[1].Description)

	require.Len(t, ok.Content, 2)
	assert.Equal(t, "application/xml", ok.Content[0].ContentType)
	assert.Equal(t, "application/json", ok.Content[1].ContentType)
	assert.Same(t, ok.Content[0].Schema, ok.Content[1].Schema, "a referenced schema is converted once")
	assert.Equal(t, []string{"name", "id", "tags", "owner"}, propertyNames(t, ok.Content[0].Schema))

	def := get.Responses[1]
	assert.Equal(t, "default", def.StatusCode)
	assert.Equal(t, "Unexpected error", def.Description)
	require.Len(t, def.Content, 1)
	errObj := def.Content[0].Schema.(*models.Object)
	assert.True(t, errObj.Properties[0].Required)
	assert.False(t, errObj.Properties[1].Required)

	create := doc.Operations[2]
	require.NotNil(t, create.RequestBody)
	assert.True(t, create.RequestBody.Required)
	assert.Equal(t, "Pet to add", create.RequestBody.Description)
	require.Len(t, create.RequestBody.Content, 1)
	assert.Same(t, ok.Content[0].Schema, create.RequestBody.Content[0].Schema)

	del := doc.Operations[0]
	require.Len(t, del.Parameters, 2)
	assert.Equal(t, "path level", del.Parameters[0].Description)
	assert.Nil(t, del.RequestBody)
}

func TestLoadRecursiveSchema(t *testing.T) {
	doc := loadString(t, petstoreOAS3)
	pet := doc.Operations[1].Responses[0].Content[0].Schema.(*models.Object)

	owner, ok := pet.Properties[3].Schema.(*models.Object)
	require.True(t, ok)
	pets, ok := owner.Properties[1].Schema.(*models.Array)
	require.True(t, ok)
	assert.Same(t, pet, pets.Items, "recursion becomes a pointer cycle")
}

func TestLoadOAS2(t *testing.T) {
	doc := loadString(t, `
swagger: "2.0"
info: {title: Legacy, version: "2"}
consumes: [application/xml]
produces: [application/json, text/plain]
paths:
  /items:
    parameters:
      - $ref: '#/parameters/Limit'
    post:
      operationId: addItem
      consumes: [application/json]
      parameters:
        - name: body
          in: body
          required: true
          description: The item
          schema: {$ref: '#/definitions/Item'}
        - name: tags
          in: query
          type: array
          items: {type: string}
      responses:
        "200":
          description: OK
          headers:
            X-Total:
              type: integer
              format: int32
          schema:
            type: array
            items: {$ref: '#/definitions/Item'}
        "404":
          $ref: '#/responses/NotFound'
    get:
      operationId: listItems
      parameters:
        - name: upload
          in: formData
          type: file
      responses:
        "200": {description: OK}
parameters:
  Limit:
    name: limit
    in: query
    type: integer
responses:
  NotFound:
    description: Not here
definitions:
  Item:
    type: object
    properties:
      sku: {type: string}
      qty: {type: integer}
`)
	assert.Equal(t, "2.0", doc.SourceVersion)
	require.Len(t, doc.Operations, 2)

	add := doc.Operations[0]
	assert.Equal(t, "addItem", add.OperationID)
	require.Len(t, add.Parameters, 2)
	assert.Equal(t, "limit", add.Parameters[0].Name)
	assert.Equal(t, &models.Primitive{Type: "integer"}, add.Parameters[0].Schema)
	assert.Equal(t, "tags", add.Parameters[1].Name)
	assert.Equal(t, &models.Array{Items: &models.Primitive{Type: "string"}}, add.Parameters[1].Schema)

	require.NotNil(t, add.RequestBody)
	assert.True(t, add.RequestBody.Required)
	assert.Equal(t, "The item", add.RequestBody.Description)
	require.Len(t, add.RequestBody.Content, 1)
	assert.Equal(t, "application/json", add.RequestBody.Content[0].ContentType)
	assert.Equal(t, []string{"sku", "qty"}, propertyNames(t, add.RequestBody.Content[0].Schema))

	require.Len(t, add.Responses, 2)
	ok := add.Responses[0]
	require.Len(t, ok.Content, 2)
	assert.Equal(t, "application/json", ok.Content[0].ContentType)
	assert.Equal(t, "text/plain", ok.Content[1].ContentType)
	arr, isArr := ok.Content[0].Schema.(*models.Array)
	require.True(t, isArr)
	assert.Same(t, add.RequestBody.Content[0].Schema, arr.Items)
	require.Len(t, ok.Headers, 1)
	assert.Equal(t, &models.Primitive{Type: "integer", Format: "int32"}, ok.Headers[0].Schema)
	assert.Equal(t, "Not here", add.Responses[1].Description)
	assert.Empty(t, add.Responses[1].Content)

	list := doc.Operations[1]
	assert.Nil(t, list.RequestBody)
	require.Len(t, list.Parameters, 2)
	assert.Equal(t, "formData", list.Parameters[1].In)
	assert.Equal(t, &models.Primitive{Type: "file"}, list.Parameters[1].Schema)
}

func TestLoadOAS2DefaultMediaType(t *testing.T) {
	doc := loadString(t, `
swagger: "2.0"
info: {title: T, version: "1"}
paths:
  /a:
    get:
      responses:
        "200":
          description: OK
          schema: {type: string}
`)
	require.Len(t, doc.Operations, 1)
	content := doc.Operations[0].Responses[0].Content
	require.Len(t, content, 1)
	assert.Equal(t, "application/json", content[0].ContentType)
}

func TestLoadUnresolvedReference(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	doc, err := Load([]byte(`
openapi: 3.0.3
info: {title: T, version: "1"}
paths:
  /a:
    get:
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                type: object
                properties:
                  ghost: {$ref: '#/components/schemas/Ghost'}
                  again: {$ref: '#/components/schemas/Ghost'}
`), Options{Logger: logger})
	require.NoError(t, err)

	obj := doc.Operations[0].Responses[0].Content[0].Schema.(*models.Object)
	assert.Equal(t, &models.Primitive{Type: "Ghost"}, obj.Properties[0].Schema)
	assert.Same(t, obj.Properties[0].Schema, obj.Properties[1].Schema)
	require.Len(t, doc.Warnings, 1)
	assert.Contains(t, doc.Warnings[0], "#/components/schemas/Ghost")
	assert.Contains(t, logs.String(), "document warning")
}

func TestLoadReferenceLoop(t *testing.T) {
	doc := loadString(t, `
openapi: 3.0.3
info: {title: T, version: "1"}
paths:
  /a:
    get:
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema: {$ref: '#/components/schemas/A'}
components:
  schemas:
    A: {$ref: '#/components/schemas/B'}
    B: {$ref: '#/components/schemas/A'}
`)
	s := doc.Operations[0].Responses[0].Content[0].Schema
	_, ok := s.(*models.Primitive)
	assert.True(t, ok)
	assert.NotEmpty(t, doc.Warnings)
}

func TestLoadComposites(t *testing.T) {
	doc := loadString(t, `
openapi: 3.1.0
info: {title: T, version: "1"}
paths:
  /a:
    get:
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                type: object
                properties:
                  mixed:
                    properties:
                      own: {type: string}
                    allOf:
                      - $ref: '#/components/schemas/Base'
                    oneOf:
                      - {type: string}
                      - {type: integer}
                  either:
                    anyOf:
                      - $ref: '#/components/schemas/Base'
                  nullable:
                    type: [string, "null"]
components:
  schemas:
    Base:
      type: object
      properties:
        id: {type: string}
`)
	obj := doc.Operations[0].Responses[0].Content[0].Schema.(*models.Object)

	mixed, ok := obj.Properties[0].Schema.(*models.Composite)
	require.True(t, ok)
	assert.Equal(t, models.AllOf, mixed.Kind)
	require.True(t, mixed.Mixed())
	assert.Equal(t, []string{"own"}, propertyNames(t, mixed.Own))
	require.Len(t, mixed.Branches, 2)
	assert.Equal(t, []string{"id"}, propertyNames(t, mixed.Branches[0]))
	oneOf := mixed.Branches[1].(*models.Composite)
	assert.Equal(t, models.OneOf, oneOf.Kind)
	assert.Len(t, oneOf.Branches, 2)

	either := obj.Properties[1].Schema.(*models.Composite)
	assert.Equal(t, models.AnyOf, either.Kind)
	assert.Same(t, mixed.Branches[0], either.Branches[0])

	assert.Equal(t, &models.Primitive{Type: "string"}, obj.Properties[2].Schema)
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"syntax", "openapi: [", ""},
		{"missing info", "openapi: 3.0.3\npaths: {}\n", "info"},
		{"no version", "info: {title: T, version: '1'}\npaths: {}\n", ""},
		{"missing responses", "openapi: 3.0.3\ninfo: {title: T, version: '1'}\npaths:\n  /a:\n    get: {}\n", "responses"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.doc), Options{SourceName: "bad.yaml"})
			require.Error(t, err)

			var diag *DiagnosticsError
			require.True(t, errors.As(err, &diag))
			assert.Equal(t, "bad.yaml", diag.Source)
			require.NotEmpty(t, diag.Diagnostics)
			assert.Contains(t, err.Error(), "bad.yaml: malformed document")
			if tt.want != "" {
				assert.Contains(t, strings.Join(diag.Diagnostics, "\n"), tt.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "petstore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(petstoreOAS3), 0o600))

	doc, err := LoadFile(path, Options{})
	require.NoError(t, err)
	assert.Len(t, doc.Operations, 3)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), Options{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiagnosticsErrorMessage(t *testing.T) {
	assert.Equal(t, "x: malformed document", (&DiagnosticsError{Source: "x"}).Error())
	assert.Equal(t, "x: malformed document: a (and 2 more)",
		(&DiagnosticsError{Source: "x", Diagnostics: []string{"a", "b", "c"}}).Error())
}
