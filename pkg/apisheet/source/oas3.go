package source

import (
	"github.com/erraggy/oastools/parser"

	"github.com/ukaji3/apisheet-go/pkg/apisheet/models"
)

// oas3 projects an OpenAPI 3.x document onto the models.
type oas3 struct {
	*converter
	doc   *parser.OAS3Document
	comps *parser.Components
}

func projectOAS3(doc *parser.OAS3Document, order *KeyOrder) (*models.Document, []string) {
	comps := doc.Components
	if comps == nil {
		comps = &parser.Components{}
	}
	p := &oas3{
		converter: newConverter(order, schemaRoots{prefix: "/components/schemas", schemas: comps.Schemas}),
		doc:       doc,
		comps:     comps,
	}

	out := &models.Document{}
	out.Title, out.Version, out.Description = info(doc.Info)
	for _, path := range SortedKeys(order, "/paths", doc.Paths) {
		item, ptr := p.pathItem(doc.Paths[path], Pointer("paths", path))
		if item == nil {
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

func (p *oas3) pathItem(item *parser.PathItem, ptr string) (*parser.PathItem, string) {
	if item == nil || item.Ref == "" {
		return item, ptr
	}
	name, ok := componentName(item.Ref, "/components/pathItems")
	if !ok || p.comps.PathItems[name] == nil {
		p.warnf("unresolved path item reference %q", item.Ref)
		return nil, ptr
	}
	return p.comps.PathItems[name], Pointer("components", "pathItems", name)
}

func (p *oas3) operation(path, method string, item *parser.PathItem, op *parser.Operation, ptr string, pathParams []models.Parameter) models.Operation {
	return models.Operation{
		Path:            path,
		Method:          models.Method(upperASCII(method)),
		OperationID:     op.OperationID,
		Summary:         op.Summary,
		Description:     op.Description,
		PathSummary:     item.Summary,
		PathDescription: item.Description,
		Deprecated:      op.Deprecated,
		Tags:            op.Tags,
		Parameters:      mergeParameters(pathParams, p.parameters(op.Parameters, ptr+"/parameters")),
		RequestBody:     p.requestBody(op.RequestBody, ptr+"/requestBody"),
		Responses:       p.responses(op.Responses, ptr+"/responses"),
	}
}

func (p *oas3) parameters(params []*parser.Parameter, ptr string) []models.Parameter {
	var out []models.Parameter
	for i, prm := range params {
		if mp, ok := p.parameter(prm, pointerIndex(ptr, i)); ok {
			out = append(out, mp)
		}
	}
	return out
}

func (p *oas3) parameter(prm *parser.Parameter, ptr string) (models.Parameter, bool) {
	if prm == nil {
		return models.Parameter{}, false
	}
	if prm.Ref != "" {
		name, ok := componentName(prm.Ref, "/components/parameters")
		if !ok || p.comps.Parameters[name] == nil {
			p.warnf("unresolved parameter reference %q", prm.Ref)
			return models.Parameter{}, false
		}
		prm, ptr = p.comps.Parameters[name], Pointer("components", "parameters", name)
	}
	schema := p.schema(prm.Schema, ptr+"/schema")
	if schema == nil {
		schema = p.firstContentSchema(prm.Content, ptr+"/content")
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

func (p *oas3) firstContentSchema(content map[string]*parser.MediaType, ptr string) models.Schema {
	for _, mt := range p.mediaTypes(content, ptr) {
		if mt.Schema != nil {
			return mt.Schema
		}
	}
	return nil
}

func (p *oas3) mediaTypes(content map[string]*parser.MediaType, ptr string) []models.MediaType {
	var out []models.MediaType
	for _, ct := range SortedKeys(p.order, ptr, content) {
		mt := models.MediaType{ContentType: ct}
		if m := content[ct]; m != nil {
			mt.Schema = p.schema(m.Schema, ptr+"/"+EscapePointer(ct)+"/schema")
		}
		out = append(out, mt)
	}
	return out
}

func (p *oas3) requestBody(rb *parser.RequestBody, ptr string) *models.RequestBody {
	if rb == nil {
		return nil
	}
	if rb.Ref != "" {
		name, ok := componentName(rb.Ref, "/components/requestBodies")
		if !ok || p.comps.RequestBodies[name] == nil {
			p.warnf("unresolved request body reference %q", rb.Ref)
			return nil
		}
		rb, ptr = p.comps.RequestBodies[name], Pointer("components", "requestBodies", name)
	}
	return &models.RequestBody{
		Description: rb.Description,
		Required:    rb.Required,
		Content:     p.mediaTypes(rb.Content, ptr+"/content"),
	}
}

func (p *oas3) responses(rs *parser.Responses, ptr string) []models.Response {
	var out []models.Response
	for _, code := range responseCodes(p.order, ptr, rs) {
		r, rptr := responseFor(rs, code), ptr+"/"+EscapePointer(code)
		if r.Ref != "" {
			name, ok := componentName(r.Ref, "/components/responses")
			if !ok || p.comps.Responses[name] == nil {
				p.warnf("unresolved response reference %q", r.Ref)
				out = append(out, models.Response{StatusCode: code})
				continue
			}
			r, rptr = p.comps.Responses[name], Pointer("components", "responses", name)
		}
		resp := models.Response{
			StatusCode:  code,
			Description: r.Description,
			Content:     p.mediaTypes(r.Content, rptr+"/content"),
		}
		for _, name := range SortedKeys(p.order, rptr+"/headers", r.Headers) {
			if h, ok := p.header(name, r.Headers[name], rptr+"/headers/"+EscapePointer(name)); ok {
				resp.Headers = append(resp.Headers, h)
			}
		}
		out = append(out, resp)
	}
	return out
}

func (p *oas3) header(name string, h *parser.Header, ptr string) (models.Header, bool) {
	if h == nil {
		return models.Header{}, false
	}
	if h.Ref != "" {
		ref, ok := componentName(h.Ref, "/components/headers")
		if !ok || p.comps.Headers[ref] == nil {
			p.warnf("unresolved header reference %q", h.Ref)
			return models.Header{}, false
		}
		h, ptr = p.comps.Headers[ref], Pointer("components", "headers", ref)
	}
	schema := p.schema(h.Schema, ptr+"/schema")
	if schema == nil {
		schema = p.firstContentSchema(h.Content, ptr+"/content")
	}
	return models.Header{Name: name, Description: h.Description, Required: h.Required, Schema: schema}, true
}
