package layout

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/apisheet-go/pkg/apisheet/models"
	"github.com/ukaji3/apisheet-go/pkg/apisheet/sheet"
)

func getPet() *models.Operation {
	return &models.Operation{
		Path:        "/pets/{id}",
		Method:      models.MethodGet,
		OperationID: "getPet",
		Summary:     "Get a pet",
		Tags:        []string{"pets"},
		Parameters: []models.Parameter{
			{Name: "id", In: "path", Required: true, Description: "Pet id",
				Schema: &models.Primitive{Type: "integer", Format: "int64"}},
			{Name: "filter", In: "query",
				Schema: models.NewObject(nil, models.Prop("a", str()))},
			{Name: "noschema", In: "header"},
		},
		Responses: []models.Response{
			{
				StatusCode:  "200",
				Description: "OK",
				Headers: []models.Header{
					{Name: "X-Rate", Schema: &models.Primitive{Type: "integer"}},
				},
				Content: []models.MediaType{{ContentType: "application/json", Schema: person()}},
			},
			{StatusCode: "default", Description: "default response"},
		},
	}
}

func composePage(t *testing.T, op *models.Operation, sep int) (*sheet.MemoryBook, models.SheetData, int) {
	t.Helper()
	b := sheet.NewMemoryBook("test.xlsx")
	sh := b.AddSheet("getPet")
	page := OperationPage{
		Labels:        EnglishLabels(),
		Flattener:     Flattener{MaxDepth: 10, Composites: CompositeExpand},
		SeparatorRows: sep,
		Home:          sheet.SheetAnchor("Info"),
	}
	end := page.Compose(sh, op)
	require.NoError(t, b.Err())
	ms := b.Sheet("getPet")
	assert.Equal(t, 0, ms.OpenSections())
	return b, ms.Data(), end
}

func cell(sd models.SheetData, row, col int) string {
	r := sd.Row(row)
	if r == nil {
		return ""
	}
	return r.C[strconv.Itoa(col)]
}

func TestOperationPageLayout(t *testing.T) {
	_, sd, end := composePage(t, getPet(), 1)

	assert.Equal(t, "Back to index", cell(sd, 1, 1))
	assert.Equal(t, "'Info'!A1", sd.Row(1).Links["1"])
	assert.Nil(t, sd.Row(2))

	assert.Equal(t, "Operation", cell(sd, 3, 1))
	assert.Equal(t, "GET", cell(sd, 4, 2))
	assert.Equal(t, "getPet", cell(sd, 5, 2))
	assert.Equal(t, "/pets/{id}", cell(sd, 6, 2))
	assert.Equal(t, "Operation summary", cell(sd, 7, 1))
	assert.Equal(t, "pets", cell(sd, 8, 2))

	assert.Equal(t, "Parameters", cell(sd, 10, 1))
	assert.Equal(t, "Location", cell(sd, 11, 2))
	assert.Equal(t, "Type", cell(sd, 11, 3))
	assert.Equal(t, "Description", cell(sd, 11, 6))

	assert.Equal(t, "id", cell(sd, 12, 1))
	assert.Equal(t, "PATH", cell(sd, 12, 2))
	assert.Equal(t, "integer", cell(sd, 12, 3))
	assert.Equal(t, "int64", cell(sd, 12, 4))
	assert.Equal(t, "Yes", cell(sd, 12, 5))
	assert.Equal(t, "Pet id", cell(sd, 12, 6))
	assert.Equal(t, "required", sd.Row(12).Roles["5"])

	assert.Equal(t, "filter", cell(sd, 13, 1))
	assert.Equal(t, "QUERY", cell(sd, 13, 2))
	assert.Equal(t, "object", cell(sd, 13, 3))
	assert.Equal(t, "  a", cell(sd, 14, 1))
	assert.Equal(t, "string", cell(sd, 14, 3))

	assert.Equal(t, "Responses", cell(sd, 16, 1))
	assert.Equal(t, "Response HttpCode: 200: OK", cell(sd, 17, 1))
	assert.Equal(t, "Response headers", cell(sd, 18, 1))
	assert.Equal(t, "Type", cell(sd, 19, 2))
	assert.Equal(t, "X-Rate", cell(sd, 20, 1))
	assert.Equal(t, "integer", cell(sd, 20, 2))
	assert.Equal(t, "Content-Type: application/json", cell(sd, 21, 1))
	assert.Equal(t, "Name", cell(sd, 22, 1))
	assert.Equal(t, "name", cell(sd, 23, 1))
	assert.Equal(t, "Yes", cell(sd, 23, 4))
	assert.Equal(t, "address", cell(sd, 24, 1))
	assert.Equal(t, "object", cell(sd, 24, 2))
	assert.Equal(t, "  city", cell(sd, 25, 1))
	assert.Equal(t, "Default response", cell(sd, 26, 1))
	assert.Equal(t, 28, end)

	assert.Equal(t, []models.RowRange{
		{R1: 1, R2: 1, Level: 1},
		{R1: 4, R2: 8, Level: 1},
		{R1: 11, R2: 14, Level: 1},
		{R1: 19, R2: 20, Level: 2},
		{R1: 22, R2: 25, Level: 2},
		{R1: 17, R2: 26, Level: 1},
	}, sd.Groups)
}

func TestOperationPageOptionalParts(t *testing.T) {
	op := &models.Operation{
		Path:       "/ping",
		Method:     models.MethodHead,
		Deprecated: true,
		Parameters: []models.Parameter{{Name: "x", In: "query"}},
	}
	_, sd, end := composePage(t, op, 2)

	assert.Equal(t, "Operation", cell(sd, 4, 1))
	assert.Equal(t, "HEAD", cell(sd, 5, 2))
	assert.Equal(t, "/ping", cell(sd, 6, 2))
	assert.Equal(t, "Deprecated", cell(sd, 7, 1))
	assert.Equal(t, "Yes", cell(sd, 7, 2))
	assert.Equal(t, 10, end)
	assert.Len(t, sd.Groups, 2)
	for _, r := range sd.Rows {
		assert.NotEqual(t, "Parameters", r.C["1"])
	}
}

func TestOperationPageRequestBody(t *testing.T) {
	item := models.NewObject([]string{"a"}, models.Prop("a", str()))
	op := &models.Operation{
		Path:   "/pets",
		Method: models.MethodPost,
		RequestBody: &models.RequestBody{
			Required:    true,
			Description: "<em>New</em> pets",
			Content: []models.MediaType{
				{ContentType: "application/json", Schema: &models.Array{Items: item}},
				{ContentType: "text/plain"},
			},
		},
	}
	_, sd, _ := composePage(t, op, 1)

	// 1 link, 2 blank, 3 title, 4 method, 5 path, 6 blank.
	assert.Equal(t, "Request body", cell(sd, 7, 1))
	assert.Equal(t, "Required", cell(sd, 8, 1))
	assert.Equal(t, "Yes", cell(sd, 8, 2))
	assert.Equal(t, "New pets", cell(sd, 9, 2))
	assert.Equal(t, "Content-Type: application/json", cell(sd, 10, 1))
	assert.Equal(t, "Name", cell(sd, 11, 1))
	assert.Equal(t, "<array>", cell(sd, 12, 1))
	assert.Equal(t, "synthetic", sd.Row(12).Roles["1"])
	assert.Equal(t, "a", cell(sd, 13, 1))
	assert.Equal(t, "Content-Type: text/plain", cell(sd, 14, 1))
	assert.Nil(t, sd.Row(15))
}

func TestStatusLine(t *testing.T) {
	l := EnglishLabels()
	assert.Equal(t, "Response HttpCode: 404", l.StatusLine("404", ""))
	assert.Equal(t, "Response HttpCode: 404: Not found", l.StatusLine("404", "Not found"))
	assert.Equal(t, "Default response", l.StatusLine("default", "Default response"))
	assert.Equal(t, "Default response: Unexpected", l.StatusLine("default", "Unexpected"))
}
