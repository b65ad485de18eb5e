// Package layout turns a models.Document into worksheet rows: schema
// flattening, the per-operation page and the index page.
package layout

// Labels holds every fixed text the composers write. Fields ending in
// Format are fmt patterns taking a single %s.
type Labels struct {
	// Table column titles.
	Name        string
	Location    string
	Type        string
	Format      string
	Required    string
	Description string

	// Required-flag values.
	Yes string
	No  string

	// Page part titles.
	OperationInfo   string
	Parameters      string
	RequestBody     string
	Responses       string
	ResponseHeaders string

	// Operation info row labels.
	Method               string
	OperationID          string
	Path                 string
	PathDescription      string
	PathSummary          string
	OperationDescription string
	OperationSummary     string
	Tags                 string
	Deprecated           string

	HomeLink string

	// Index page.
	IndexSheet        string
	UntitledAPI       string
	VersionFormat     string
	GeneratedAtFormat string
	Endpoints         string
	Summary           string

	ContentTypeFormat  string
	ResponseCodeFormat string
	DefaultResponse    string
}

// EnglishLabels returns the default label set.
func EnglishLabels() Labels {
	return Labels{
		Name:        "Name",
		Location:    "Location",
		Type:        "Type",
		Format:      "Format",
		Required:    "Required",
		Description: "Description",

		Yes: "Yes",
		No:  "No",

		OperationInfo:   "Operation",
		Parameters:      "Parameters",
		RequestBody:     "Request body",
		Responses:       "Responses",
		ResponseHeaders: "Response headers",

		Method:               "Method",
		OperationID:          "ID",
		Path:                 "Path",
		PathDescription:      "Path description",
		PathSummary:          "Path summary",
		OperationDescription: "Operation description",
		OperationSummary:     "Operation summary",
		Tags:                 "Tags",
		Deprecated:           "Deprecated",

		HomeLink: "Back to index",

		IndexSheet:        "Info",
		UntitledAPI:       "API",
		VersionFormat:     "Version %s",
		GeneratedAtFormat: "Generated: %s",
		Endpoints:         "Endpoints",
		Summary:           "Summary",

		ContentTypeFormat:  "Content-Type: %s",
		ResponseCodeFormat: "Response HttpCode: %s",
		DefaultResponse:    "Default response",
	}
}

// KoreanLabels returns the Korean label set.
func KoreanLabels() Labels {
	return Labels{
		Name:        "파라미터명",
		Location:    "위치",
		Type:        "타입",
		Format:      "형식",
		Required:    "필수여부",
		Description: "설명",

		Yes: "예",
		No:  "아니오",

		OperationInfo:   "API 정보",
		Parameters:      "파라미터",
		RequestBody:     "요청 본문",
		Responses:       "응답",
		ResponseHeaders: "응답 헤더",

		Method:               "METHOD",
		OperationID:          "ID",
		Path:                 "경로",
		PathDescription:      "경로 설명",
		PathSummary:          "경로 요약",
		OperationDescription: "작업 설명",
		OperationSummary:     "작업 요약",
		Tags:                 "태그",
		Deprecated:           "사용 중단",

		HomeLink: "표지로",

		IndexSheet:        "표지",
		UntitledAPI:       "API 명세서",
		VersionFormat:     "버전 %s",
		GeneratedAtFormat: "생성일: %s",
		Endpoints:         "API 엔드포인트 목록",
		Summary:           "설명",

		ContentTypeFormat:  "Content-Type: %s",
		ResponseCodeFormat: "응답 코드: %s",
		DefaultResponse:    "기본 응답",
	}
}
