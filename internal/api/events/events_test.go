// Package events - Test cơ chế phát event và recover panic của handler.
package events

import (
	"context"
	"testing"
	"time"
)

func TestEmitWorkflow_RecoversHandlerPanic(t *testing.T) {
	panicked := make(chan struct{})
	delivered := make(chan struct{})
	OnWorkflowEvent(func(ctx context.Context, e WorkflowEvent) {
		defer close(panicked)
		panic("handler nổ")
	})
	OnWorkflowEvent(func(ctx context.Context, e WorkflowEvent) {
		close(delivered)
	})

	EmitWorkflow(context.Background(), WorkflowEvent{Type: WorkflowSubmitted})

	// Handler panic không được làm sập process và không chặn handler khác
	select {
	case <-panicked:
	case <-time.After(time.Second):
		t.Fatal("handler panic không được gọi")
	}
	select {
	case <-delivered:
	case <-time.After(time.Second):
		t.Fatal("handler còn lại phải vẫn nhận được event")
	}
}

func TestEmitDataChanged_RecoversHandlerPanic(t *testing.T) {
	done := make(chan struct{})
	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		defer close(done)
		panic("handler nổ")
	})

	EmitDataChanged(context.Background(), DataChangeEvent{CollectionName: "content_items", Operation: OpUpdate})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler panic không được gọi")
	}
}
