package common

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// HTTP Status Code Constants
const (
	// Success Codes (2xx)
	StatusOK        = 200 // Thành công
	StatusCreated   = 201 // Tạo mới thành công
	StatusAccepted  = 202 // Yêu cầu được chấp nhận
	StatusNoContent = 204 // Thành công nhưng không có nội dung trả về

	// Client Error Codes (4xx)
	StatusBadRequest         = 400 // Yêu cầu không hợp lệ
	StatusUnauthorized       = 401 // Chưa xác thực
	StatusForbidden          = 403 // Không có quyền truy cập
	StatusNotFound           = 404 // Không tìm thấy tài nguyên
	StatusMethodNotAllowed   = 405 // Phương thức HTTP không được hỗ trợ
	StatusConflict           = 409 // Xung đột dữ liệu
	StatusGone               = 410 // Tài nguyên không còn tồn tại
	StatusPreconditionFailed = 412 // Điều kiện tiên quyết không thỏa mãn
	StatusTooManyRequests    = 429 // Quá nhiều yêu cầu

	// Server Error Codes (5xx)
	StatusInternalServerError = 500 // Lỗi server
	StatusNotImplemented      = 501 // Chức năng chưa được triển khai
	StatusServiceUnavailable  = 503 // Dịch vụ không khả dụng
)

// Response Messages
const (
	// Success Messages
	MsgSuccess = "Thao tác thành công"
	MsgCreated = "Tạo mới thành công"

	// Error Messages
	MsgBadRequest   = "Yêu cầu không hợp lệ"
	MsgUnauthorized = "Vui lòng đăng nhập"
	MsgForbidden    = "Không có quyền truy cập"
	MsgNotFound     = "Không tìm thấy tài nguyên"

	// Token Messages
	MsgTokenMissing = "Thiếu token xác thực"
	MsgTokenInvalid = "Token không hợp lệ"
	MsgTokenExpired = "Token đã hết hạn"

	// Validation Messages
	MsgValidationError = "Dữ liệu không hợp lệ"
	MsgDatabaseError   = "Lỗi tương tác với cơ sở dữ liệu"
	MsgInvalidFormat   = "Định dạng dữ liệu không hợp lệ"
)

// ErrorCode định nghĩa mã lỗi chi tiết
type ErrorCode struct {
	Code        string // Mã lỗi (ví dụ: AUTH_001)
	Category    string // Phân loại lỗi (ví dụ: Authentication)
	SubCategory string // Phân loại con (ví dụ: Token)
	Description string // Mô tả chi tiết
}

// Định nghĩa các mã lỗi theo hệ thống phân cấp
var (
	// System Errors (SYS_xxx)
	ErrCodeInternalServer = ErrorCode{
		Code:        "SYS_001",
		Category:    "System",
		SubCategory: "Internal",
		Description: "Lỗi hệ thống nội bộ",
	}

	// Authentication Errors (AUTH_xxx)
	ErrCodeAuthToken = ErrorCode{
		Code:        "AUTH_001",
		Category:    "Authentication",
		SubCategory: "Token",
		Description: "Lỗi liên quan đến token",
	}

	ErrCodeAuthCredentials = ErrorCode{
		Code:        "AUTH_002",
		Category:    "Authentication",
		SubCategory: "Credentials",
		Description: "Lỗi thông tin đăng nhập",
	}

	ErrCodeAuthRole = ErrorCode{
		Code:        "AUTH_003",
		Category:    "Authentication",
		SubCategory: "Role",
		Description: "Lỗi liên quan đến vai trò người dùng",
	}

	// Validation Errors (VAL_xxx)
	ErrCodeValidationInput = ErrorCode{
		Code:        "VAL_001",
		Category:    "Validation",
		SubCategory: "Input",
		Description: "Lỗi dữ liệu đầu vào",
	}

	ErrCodeValidationFormat = ErrorCode{
		Code:        "VAL_002",
		Category:    "Validation",
		SubCategory: "Format",
		Description: "Lỗi định dạng dữ liệu",
	}

	// Database Errors (DB_xxx)
	ErrCodeDatabase = ErrorCode{
		Code:        "DB",
		Category:    "Database",
		SubCategory: "General",
		Description: "Lỗi cơ sở dữ liệu chung",
	}

	ErrCodeDatabaseConnection = ErrorCode{
		Code:        "DB_001",
		Category:    "Database",
		SubCategory: "Connection",
		Description: "Lỗi kết nối cơ sở dữ liệu",
	}

	ErrCodeDatabaseQuery = ErrorCode{
		Code:        "DB_002",
		Category:    "Database",
		SubCategory: "Query",
		Description: "Lỗi truy vấn dữ liệu",
	}

	ErrCodeConcurrency = ErrorCode{
		Code:        "DB_003",
		Category:    "Database",
		SubCategory: "Concurrency",
		Description: "Xung đột phiên bản dữ liệu (optimistic concurrency)",
	}

	// Workflow Errors (WF_xxx)
	ErrCodeWorkflowRule = ErrorCode{
		Code:        "WF_001",
		Category:    "Workflow",
		SubCategory: "Rule",
		Description: "Vi phạm quy tắc nghiệp vụ của workflow",
	}

	ErrCodeWorkflowTransition = ErrorCode{
		Code:        "WF_002",
		Category:    "Workflow",
		SubCategory: "Transition",
		Description: "Chuyển trạng thái không nằm trong bảng trạng thái hợp lệ",
	}

	ErrCodeWorkflowPermission = ErrorCode{
		Code:        "WF_003",
		Category:    "Workflow",
		SubCategory: "Permission",
		Description: "Người dùng không đủ quyền thực hiện thao tác workflow",
	}
)

// Tên các business rule của workflow (trả về trong Details["rule"] để client render message)
const (
	RuleInvalidStatus      = "InvalidStatus"      // Trạng thái hiện tại không cho phép thao tác
	RuleInvalidTeam        = "InvalidTeam"        // Approval record mới nhất không thuộc team này
	RuleWorkflowNotEnabled = "WorkflowNotEnabled" // Team chưa bật yêu cầu duyệt
)

// Error định nghĩa cấu trúc lỗi chi tiết
type Error struct {
	Code       ErrorCode // Mã lỗi chi tiết
	Message    string    // Thông báo lỗi
	StatusCode int       // HTTP status code
	Details    any       // Thông tin chi tiết thêm về lỗi
}

// Error trả về message của lỗi
func (e *Error) Error() string {
	return e.Message
}

// Is kiểm tra xem error có phải là target error không (hỗ trợ errors.Is)
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if targetErr, ok := target.(*Error); ok {
		return e.Code.Code == targetErr.Code.Code && e.Message == targetErr.Message
	}
	return false
}

// NewError tạo một error mới với đầy đủ thông tin
func NewError(code ErrorCode, message string, statusCode int, details any) error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// NewWorkflowRuleError tạo lỗi vi phạm business rule của workflow.
// Tên rule (InvalidStatus, InvalidTeam, WorkflowNotEnabled) được đưa vào Details["rule"]
// để caller render message mà không cần parse free text.
func NewWorkflowRuleError(rule string, message string, details map[string]interface{}) error {
	if details == nil {
		details = make(map[string]interface{})
	}
	details["rule"] = rule
	return &Error{
		Code:       ErrCodeWorkflowRule,
		Message:    message,
		StatusCode: StatusBadRequest,
		Details:    details,
	}
}

// NewInvalidTransitionError tạo lỗi chuyển trạng thái không hợp lệ, nêu rõ cả hai trạng thái.
func NewInvalidTransitionError(from string, to string) error {
	return &Error{
		Code:       ErrCodeWorkflowTransition,
		Message:    fmt.Sprintf("Không thể chuyển trạng thái từ '%s' sang '%s'", from, to),
		StatusCode: StatusBadRequest,
		Details: map[string]interface{}{
			"fromStatus": from,
			"toStatus":   to,
		},
	}
}

// NewAccessDeniedError tạo lỗi từ chối truy cập, nêu rõ quyền còn thiếu (ví dụ "permission to approve").
func NewAccessDeniedError(permission string) error {
	return &Error{
		Code:       ErrCodeWorkflowPermission,
		Message:    fmt.Sprintf("Không có quyền thực hiện thao tác (missing %s)", permission),
		StatusCode: StatusForbidden,
		Details: map[string]interface{}{
			"permission": permission,
		},
	}
}

// WorkflowRuleName trả về tên rule từ một workflow rule error ("" nếu không phải loại lỗi này).
func WorkflowRuleName(err error) string {
	var customErr *Error
	if !errors.As(err, &customErr) {
		return ""
	}
	if customErr.Code.Code != ErrCodeWorkflowRule.Code {
		return ""
	}
	if details, ok := customErr.Details.(map[string]interface{}); ok {
		if rule, ok := details["rule"].(string); ok {
			return rule
		}
	}
	return ""
}

// Custom errors
var (
	// Authentication Errors
	ErrTokenExpired = NewError(ErrCodeAuthToken, "Phiên đăng nhập đã hết hạn", StatusUnauthorized, nil)
	ErrTokenInvalid = NewError(ErrCodeAuthToken, "Token không hợp lệ", StatusUnauthorized, nil)
	ErrTokenMissing = NewError(ErrCodeAuthToken, "Thiếu token xác thực", StatusUnauthorized, nil)

	// Validation Errors
	ErrInvalidInput  = NewError(ErrCodeValidationInput, "Dữ liệu đầu vào không hợp lệ", StatusBadRequest, nil)
	ErrInvalidFormat = NewError(ErrCodeValidationFormat, "Định dạng dữ liệu không hợp lệ", StatusBadRequest, nil)
	ErrRequiredField = NewError(ErrCodeValidationInput, "Thiếu thông tin bắt buộc", StatusBadRequest, nil)

	// Database Errors
	ErrNotFound            = NewError(ErrCodeDatabaseQuery, "Không tìm thấy dữ liệu", StatusNotFound, nil)
	ErrDuplicate           = NewError(ErrCodeDatabaseQuery, "Dữ liệu đã tồn tại", StatusConflict, nil)
	ErrConnection          = NewError(ErrCodeDatabaseConnection, "Lỗi kết nối cơ sở dữ liệu", StatusServiceUnavailable, nil)
	ErrConcurrencyConflict = NewError(ErrCodeConcurrency, "Dữ liệu đã bị thay đổi bởi thao tác khác, vui lòng tải lại và thử lại", StatusConflict, nil)

	// Workflow / Authorization Errors
	ErrContentItemNotFound = NewError(ErrCodeDatabaseQuery, "Không tìm thấy nội dung", StatusNotFound, nil)
	ErrTeamNotFound        = NewError(ErrCodeDatabaseQuery, "Không tìm thấy team", StatusNotFound, nil)
	ErrNotContentOwner     = NewError(ErrCodeAuthRole, "Chỉ chủ sở hữu nội dung mới được thực hiện thao tác này", StatusForbidden, nil)
	ErrNotTeamMember       = NewError(ErrCodeWorkflowPermission, "Người dùng không phải thành viên của team", StatusForbidden, nil)
	ErrItemDeleted         = NewError(ErrCodeWorkflowRule, "Nội dung đã bị xóa, cần khôi phục trước khi thao tác", StatusGone, nil)
)

// ConvertMongoError chuyển đổi lỗi MongoDB sang lỗi hệ thống
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}

	// Không convert các lỗi đã được chuẩn hóa
	var customErr *Error
	if errors.As(err, &customErr) {
		return err
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}

	var mongoErr mongo.CommandError
	if errors.As(err, &mongoErr) {
		switch {
		case mongoErr.Code >= 100 && mongoErr.Code < 200:
			return NewError(ErrCodeDatabaseConnection, "Lỗi kết nối MongoDB", StatusServiceUnavailable, err)
		case mongoErr.Code >= 200 && mongoErr.Code < 300:
			return NewError(ErrCodeDatabaseConnection, "Lỗi xác thực MongoDB", StatusUnauthorized, err)
		}
	}

	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if mongo.IsNetworkError(err) {
		return NewError(ErrCodeDatabaseConnection, "Lỗi mạng khi kết nối MongoDB", StatusServiceUnavailable, err)
	}
	if mongo.IsTimeout(err) {
		return NewError(ErrCodeDatabaseConnection, "Kết nối MongoDB bị timeout", StatusServiceUnavailable, err)
	}

	return NewError(ErrCodeDatabase, MsgDatabaseError, StatusInternalServerError, err)
}
