// Package events cung cấp cơ chế event trung tâm cho thay đổi dữ liệu và workflow.
// Các service CRUD không cần override từng method — BaseServiceMongoImpl tự động phát event.
// Logic phản ứng (notification, cache invalidation, ...) đăng ký qua OnDataChanged / OnWorkflowEvent.
package events

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"creator_studio/internal/logger"
)

// logHandlerPanic ghi lại panic từ event handler. Logger lazy-init và có thể
// panic nếu chưa tạo được thư mục logs; recover lần nữa để không làm sập app.
func logHandlerPanic(source string, v interface{}) {
	defer func() { _ = recover() }()
	logger.GetAppLogger().WithField("panic", v).Errorf("💥 Panic trong %s handler", source)
}

// OpInsert, OpUpdate, OpUpsert, OpDelete là các loại thao tác CRUD.
const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpUpsert = "upsert"
	OpDelete = "delete"
)

// DataChangeEvent mô tả sự kiện thay đổi dữ liệu.
// Document là bản ghi sau khi thay đổi (nil nếu delete).
type DataChangeEvent struct {
	CollectionName string
	Operation      string
	Document       interface{}
}

// DataChangeHandler xử lý sự kiện thay đổi dữ liệu.
type DataChangeHandler func(ctx context.Context, e DataChangeEvent)

var (
	dataHandlers   []DataChangeHandler
	dataHandlersMu sync.RWMutex
)

// OnDataChanged đăng ký handler. Gọi khi init.
func OnDataChanged(h DataChangeHandler) {
	dataHandlersMu.Lock()
	defer dataHandlersMu.Unlock()
	dataHandlers = append(dataHandlers, h)
}

// EmitDataChanged phát sự kiện. Gọi từ BaseServiceMongoImpl sau mỗi CRUD thành công.
// Mỗi handler chạy trong goroutine riêng, panic được recover để không ảnh hưởng handler khác.
func EmitDataChanged(ctx context.Context, e DataChangeEvent) {
	dataHandlersMu.RLock()
	list := make([]DataChangeHandler, len(dataHandlers))
	copy(list, dataHandlers)
	dataHandlersMu.RUnlock()

	for _, h := range list {
		go func(fn DataChangeHandler) {
			defer func() {
				if r := recover(); r != nil {
					logHandlerPanic("data change", r)
				}
			}()
			fn(ctx, e)
		}(h)
	}
}

// Các loại sự kiện workflow của nội dung.
const (
	WorkflowStatusChanged    = "status_changed"    // Nội dung đổi trạng thái
	WorkflowSubmitted        = "submitted"         // Nội dung được gửi duyệt
	WorkflowApproved         = "approved"          // Nội dung được duyệt
	WorkflowChangesRequested = "changes_requested" // Nội dung bị yêu cầu chỉnh sửa
	WorkflowPublished        = "published"         // Nội dung được xuất bản
)

// WorkflowEvent mô tả một sự kiện trong vòng đời duyệt nội dung.
// Sự kiện chỉ được phát SAU khi transaction ghi dữ liệu đã commit (at-most-once):
// command handler thu thập event trong lúc xử lý rồi gọi EmitWorkflow khi commit xong.
type WorkflowEvent struct {
	Type          string
	ContentItemID primitive.ObjectID
	TeamID        primitive.ObjectID // zero nếu nội dung không thuộc team nào
	ActorID       primitive.ObjectID
	FromStatus    string
	ToStatus      string
	Feedback      string
	OccurredAt    int64 // Unix millis
}

// WorkflowHandler xử lý sự kiện workflow.
type WorkflowHandler func(ctx context.Context, e WorkflowEvent)

var (
	workflowHandlers   []WorkflowHandler
	workflowHandlersMu sync.RWMutex
)

// OnWorkflowEvent đăng ký handler cho sự kiện workflow (notification dispatcher, ...).
func OnWorkflowEvent(h WorkflowHandler) {
	workflowHandlersMu.Lock()
	defer workflowHandlersMu.Unlock()
	workflowHandlers = append(workflowHandlers, h)
}

// EmitWorkflow phát sự kiện workflow cho tất cả handlers đã đăng ký.
// Mỗi handler chạy trong goroutine riêng, panic được recover.
// Handler lỗi không được retry: hệ thống chấp nhận mất thông báo, không chấp nhận gửi trùng.
func EmitWorkflow(ctx context.Context, e WorkflowEvent) {
	workflowHandlersMu.RLock()
	list := make([]WorkflowHandler, len(workflowHandlers))
	copy(list, workflowHandlers)
	workflowHandlersMu.RUnlock()

	for _, h := range list {
		go func(fn WorkflowHandler) {
			defer func() {
				if r := recover(); r != nil {
					logHandlerPanic("workflow", r)
				}
			}()
			fn(ctx, e)
		}(h)
	}
}
