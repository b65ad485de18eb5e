package source

import (
	"github.com/erraggy/oastools/parser"

	"github.com/ukaji3/apisheet-go/pkg/apisheet/models"
)

// defaultMediaType is used when neither the operation nor the document
// declares consumes/produces.
const defaultMediaType = "application/json"

// oas2 projects a Swagger 2.0 document onto the models. Body parameters
// become request bodies and response schemas are repeated per produced
// media type, so the layout sees the same shape for both versions.
type oas2 struct {
	*converter
	doc *parser.OAS2Document
}

func projectOAS2(doc *parser.OAS2Document, order *KeyOrder) (*models.Document, []string) {
	p := &oas2{
		converter: newConverter(order, schemaRoots{prefix: "/definitions", schemas: doc.Definitions}),
		doc:       doc,
	}

	out := &models.Document{}
	out.Title, out.Version, out.Description = info(doc.Info)
	for _, path := range SortedKeys(order, "/paths", doc.Paths) {
		item, ptr := doc.Paths[path], Pointer("paths", path)
		if item == nil {
			continue
		}
		if item.Ref != "" {
			p.warnf("path item reference %q is not supported in Swagger 2.0", item.Ref)
			continue
		}
		pathParams := p.parameters(item.Parameters, ptr+"/parameters")
		ops := pathOperations(item)
		for _, m := range declaredMethods(order, ptr, ops) {
			out.Operations = append(out.Operations, p.operation(path, m, item, ops[m], ptr+"/"+m, pathParams))
		}
	}
	return out, p.warnings
}

func (p *oas2) operation(path, method string, item *parser.PathItem, op *parser.Operation, ptr string, pathParams []models.Parameter) models.Operation {
	out := models.Operation{
		Path:            path,
		Method:          models.Method(upperASCII(method)),
		OperationID:     op.OperationID,
		Summary:         op.Summary,
		Description:     op.Description,
		PathSummary:     item.Summary,
		PathDescription: item.Description,
		Deprecated:      op.Deprecated,
		Tags:            op.Tags,
	}

	consumes := firstNonEmpty(op.Consumes, p.doc.Consumes)
	for _, prm := range mergeParameters(pathParams, p.parameters(op.Parameters, ptr+"/parameters")) {
		if prm.In != "body" {
			out.Parameters = append(out.Parameters, prm)
			continue
		}
		if out.RequestBody != nil {
			p.warnf("%s %s: more than one body parameter, %q ignored", out.Method, path, prm.Name)
			continue
		}
		out.RequestBody = &models.RequestBody{
			Description: prm.Description,
			Required:    prm.Required,
			Content:     mediaTypesFor(consumes, prm.Schema),
		}
	}

	produces := firstNonEmpty(op.Produces, p.doc.Produces)
	out.Responses = p.responses(op.Responses, ptr+"/responses", produces)
	return out
}

func (p *oas2) parameters(params []*parser.Parameter, ptr string) []models.Parameter {
	var out []models.Parameter
	for i, prm := range params {
		if mp, ok := p.parameter(prm, pointerIndex(ptr, i)); ok {
			out = append(out, mp)
		}
	}
	return out
}

func (p *oas2) parameter(prm *parser.Parameter, ptr string) (models.Parameter, bool) {
	if prm == nil {
		return models.Parameter{}, false
	}
	if prm.Ref != "" {
		name, ok := componentName(prm.Ref, "/parameters")
		if !ok || p.doc.Parameters[name] == nil {
			p.warnf("unresolved parameter reference %q", prm.Ref)
			return models.Parameter{}, false
		}
		prm, ptr = p.doc.Parameters[name], Pointer("parameters", name)
	}
	var schema models.Schema
	if prm.In == "body" {
		schema = p.schema(prm.Schema, ptr+"/schema")
	} else {
		schema = simpleSchema(prm.Type, prm.Format, prm.Items)
	}
	return models.Parameter{
		Name:        prm.Name,
		In:          prm.In,
		Description: prm.Description,
		Required:    prm.Required,
		Deprecated:  prm.Deprecated,
		Schema:      schema,
	}, true
}

func (p *oas2) responses(rs *parser.Responses, ptr string, produces []string) []models.Response {
	var out []models.Response
	for _, code := range responseCodes(p.order, ptr, rs) {
		r, rptr := responseFor(rs, code), ptr+"/"+EscapePointer(code)
		if r.Ref != "" {
			name, ok := componentName(r.Ref, "/responses")
			if !ok || p.doc.Responses[name] == nil {
				p.warnf("unresolved response reference %q", r.Ref)
				out = append(out, models.Response{StatusCode: code})
				continue
			}
			r, rptr = p.doc.Responses[name], Pointer("responses", name)
		}
		resp := models.Response{StatusCode: code, Description: r.Description}
		if schema := p.schema(r.Schema, rptr+"/schema"); schema != nil {
			resp.Content = mediaTypesFor(produces, schema)
		}
		for _, name := range SortedKeys(p.order, rptr+"/headers", r.Headers) {
			h := r.Headers[name]
			if h == nil {
				continue
			}
			resp.Headers = append(resp.Headers, models.Header{
				Name:        name,
				Description: h.Description,
				Required:    h.Required,
				Schema:      simpleSchema(h.Type, h.Format, h.Items),
			})
		}
		out = append(out, resp)
	}
	return out
}

// mediaTypesFor pairs every content type with the same schema.
func mediaTypesFor(contentTypes []string, schema models.Schema) []models.MediaType {
	if schema == nil {
		return nil
	}
	if len(contentTypes) == 0 {
		contentTypes = []string{defaultMediaType}
	}
	out := make([]models.MediaType, 0, len(contentTypes))
	for _, ct := range contentTypes {
		out = append(out, models.MediaType{ContentType: ct, Schema: schema})
	}
	return out
}

func firstNonEmpty(lists ...[]string) []string {
	for _, l := range lists {
		if len(l) > 0 {
			return l
		}
	}
	return nil
}
