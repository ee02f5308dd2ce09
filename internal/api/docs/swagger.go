package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
	"github.com/go-swagno/swagno/components/parameter"
)

// EmployeeResponse represents a registered employee
type EmployeeResponse struct {
	EmployeeID   string `json:"employee_id" example:"E042"`
	Name         string `json:"name" example:"Alice Martins"`
	Department   string `json:"department,omitempty" example:"Engineering"`
	Position     string `json:"position,omitempty" example:"Developer"`
	RegisteredAt string `json:"registered_at" example:"2026-08-28T09:00:00Z"`
}

// AvailabilityResponse represents the employee id availability check
type AvailabilityResponse struct {
	EmployeeID string `json:"employee_id" example:"E042"`
	Available  bool   `json:"available" example:"true"`
}

// ListEmployeesResponse wraps the employee listing
type ListEmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
	Total     int                `json:"total" example:"12"`
}

// MatchData represents one recognized face
type MatchData struct {
	EmployeeID string  `json:"employee_id" example:"E042"`
	Name       string  `json:"name" example:"Alice Martins"`
	Similarity float64 `json:"similarity" example:"0.91"`
	Department string  `json:"department,omitempty" example:"Engineering"`
	Position   string  `json:"position,omitempty" example:"Developer"`
}

// AttendanceRecordData represents one produced ledger record
type AttendanceRecordData struct {
	EmployeeID string  `json:"employee_id" example:"E042"`
	Name       string  `json:"name" example:"Alice Martins"`
	Date       string  `json:"date" example:"2026-08-28"`
	TimeIn     string  `json:"time_in" example:"09:00:00"`
	TimeOut    *string `json:"time_out" example:"17:30:00"`
	Status     string  `json:"status" example:"Present"`
}

// MarkAttendanceResponse represents the result of processing one frame
type MarkAttendanceResponse struct {
	Recognized []MatchData            `json:"recognized_faces"`
	TotalFaces int                    `json:"total_faces_detected" example:"3"`
	Records    []AttendanceRecordData `json:"attendance_records"`
}

// ReportRowData represents one row re-parsed from the daily artifact
type ReportRowData struct {
	EmployeeID string `json:"employee_id" example:"E042"`
	Name       string `json:"name" example:"Alice Martins"`
	Date       string `json:"date" example:"2026-08-28"`
	TimeIn     string `json:"time_in" example:"09:00:00"`
	TimeOut    string `json:"time_out" example:"17:30:00"`
	Status     string `json:"status" example:"Present"`
	Duration   string `json:"duration" example:"08:30:00"`
}

// TodayResponse wraps today's report rows
type TodayResponse struct {
	Date    string          `json:"date" example:"2026-08-28"`
	Records []ReportRowData `json:"records"`
	Total   int             `json:"total" example:"8"`
}

// SessionData represents one ledger session
type SessionData struct {
	EmployeeID string  `json:"employee_id" example:"E042"`
	Name       string  `json:"name" example:"Alice Martins"`
	Date       string  `json:"date" example:"2026-08-28"`
	TimeIn     string  `json:"time_in" example:"09:00:00"`
	TimeOut    *string `json:"time_out" example:"17:30:00"`
	Status     string  `json:"status" example:"Present"`
}

// HistoryResponse wraps the ledger range query result
type HistoryResponse struct {
	Sessions []SessionData `json:"sessions"`
	Total    int           `json:"total" example:"42"`
}

// ReportInfo represents one xlsx artifact on disk
type ReportInfo struct {
	Filename   string `json:"filename" example:"attendance_2026-08-28.xlsx"`
	SizeBytes  int64  `json:"size_bytes" example:"6021"`
	ModifiedAt string `json:"modified_at" example:"2026-08-28T17:30:01Z"`
}

// ListReportsResponse wraps the artifact listing
type ListReportsResponse struct {
	Reports []ReportInfo `json:"reports"`
	Total   int          `json:"total" example:"21"`
}

// FileDownloadResponse marks endpoints that stream a file body
type FileDownloadResponse struct{}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code    string `json:"code" example:"VALIDATION_FAILED"`
	Message string `json:"message" example:"Request validation failed"`
}

// NewSwagger creates and configures the Swagger documentation
func NewSwagger() *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "Ponto Attendance API",
		Version:     "v1.0.0",
		Description: "Face-recognition attendance tracking: employee enrollment, punch-in/punch-out by camera frame, daily xlsx reports",
		Host:        "localhost:3000",
		Path:        "/v1",
	})

	endpoints := []*endpoint.EndPoint{
		// POST /v1/employees - Register employee
		endpoint.New(
			endpoint.POST,
			"/employees",
			endpoint.WithTags("Employees"),
			endpoint.WithSummary("Register a new employee"),
			endpoint.WithDescription("Registers an employee from a single-face photo. The reference embedding is extracted and stored for matching."),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(EmployeeResponse{}, "201", "Employee registered successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "Request validation failed"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "EMPLOYEE_ALREADY_EXISTS", Message: "Employee ID is already registered"}, "409", "Conflict"),
				response.New(ErrorResponse{Code: "NO_FACE_DETECTED", Message: "No face detected in the image"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "MULTIPLE_FACES", Message: "Multiple faces detected"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// GET /v1/employees - List employees
		endpoint.New(
			endpoint.GET,
			"/employees",
			endpoint.WithTags("Employees"),
			endpoint.WithSummary("List registered employees"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(ListEmployeesResponse{}, "200", "Employees retrieved successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// GET /v1/employees/check/:employee_id - Availability check
		endpoint.New(
			endpoint.GET,
			"/employees/check/{employee_id}",
			endpoint.WithTags("Employees"),
			endpoint.WithSummary("Check employee id availability"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("employee_id", parameter.Path, parameter.WithDescription("Employee identifier to check")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(AvailabilityResponse{}, "200", "Check completed successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// POST /v1/attendance - Mark attendance
		endpoint.New(
			endpoint.POST,
			"/attendance",
			endpoint.WithTags("Attendance"),
			endpoint.WithSummary("Process a camera frame"),
			endpoint.WithDescription("Detects every face in the frame, matches against registered employees and applies punch-in/punch-out transitions. Unrecognized faces are ignored."),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(MarkAttendanceResponse{}, "200", "Frame processed successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "Request validation failed"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "NO_FACE_DETECTED", Message: "No face detected in the image"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "RATE_LIMIT_EXCEEDED", Message: "Rate limit exceeded"}, "429", "Too Many Requests"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// GET /v1/attendance/today - Today's rows
		endpoint.New(
			endpoint.GET,
			"/attendance/today",
			endpoint.WithTags("Attendance"),
			endpoint.WithSummary("Get today's attendance"),
			endpoint.WithDescription("Returns today's rows as last written to the daily report artifact."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(TodayResponse{}, "200", "Rows retrieved successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// GET /v1/attendance - History range query
		endpoint.New(
			endpoint.GET,
			"/attendance",
			endpoint.WithTags("Attendance"),
			endpoint.WithSummary("Query attendance history"),
			endpoint.WithDescription("Returns sessions straight from the ledger, optionally bounded by an inclusive date range."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("start", parameter.Query, parameter.WithDescription("Start date (YYYY-MM-DD)")),
				parameter.StrParam("end", parameter.Query, parameter.WithDescription("End date (YYYY-MM-DD)")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(HistoryResponse{}, "200", "Sessions retrieved successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "Invalid date format"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// GET /v1/reports - List report artifacts
		endpoint.New(
			endpoint.GET,
			"/reports",
			endpoint.WithTags("Reports"),
			endpoint.WithSummary("List daily report files"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(ListReportsResponse{}, "200", "Reports retrieved successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// GET /v1/reports/:filename - Download report
		endpoint.New(
			endpoint.GET,
			"/reports/{filename}",
			endpoint.WithTags("Reports"),
			endpoint.WithSummary("Download a daily report"),
			endpoint.WithProduce([]mime.MIME{mime.MIME("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")}),
			endpoint.WithParams(
				parameter.StrParam("filename", parameter.Path, parameter.WithDescription("Artifact filename (attendance_YYYY-MM-DD.xlsx)")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(FileDownloadResponse{}, "200", "File streamed successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "INVALID_FILENAME", Message: "Invalid report filename"}, "400", "Bad Request"),
				response.New(ErrorResponse{Code: "REPORT_NOT_FOUND", Message: "No attendance report exists for this date"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
