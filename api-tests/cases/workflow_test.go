package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"creator_studio_tests/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitForHealth chờ server sẵn sàng, skip toàn bộ test nếu server không chạy.
func waitForHealth(baseURL string, attempts int, delay time.Duration, t *testing.T) {
	client := utils.NewHTTPClient(baseURL, 5)
	for i := 0; i < attempts; i++ {
		resp, _, err := client.GET("/system/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			return
		}
		time.Sleep(delay)
	}
	t.Skipf("Server không chạy tại %s, bỏ qua API test", baseURL)
}

// parseBody parse JSON response body thành map.
func parseBody(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &result), "phải parse được JSON response: %s", string(body))
	return result
}

// dataOf lấy field data (object) từ response envelope.
func dataOf(t *testing.T, result map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := result["data"].(map[string]interface{})
	require.True(t, ok, "response phải có data object, nhận: %v", result)
	return data
}

// itemVersion lấy version hiện tại của content item từ response data.
func itemVersion(t *testing.T, data map[string]interface{}) int64 {
	t.Helper()
	v, ok := data["version"].(float64)
	require.True(t, ok, "item phải có version, nhận: %v", data)
	return int64(v)
}

// TestApprovalWorkflow chạy kịch bản duyệt nội dung đầy đủ:
// tạo team, bật workflow, submit, từ chối sai quyền, approve, request changes, resubmit.
func TestApprovalWorkflow(t *testing.T) {
	baseURL := "http://localhost:8080/api/v1"
	waitForHealth(baseURL, 10, 1*time.Second, t)

	ownerID := utils.NewObjectIDHex()
	approverID := utils.NewObjectIDHex()
	contributorID := utils.NewObjectIDHex()

	ownerToken, err := utils.MintToken(ownerID)
	require.NoError(t, err)
	approverToken, err := utils.MintToken(approverID)
	require.NoError(t, err)
	contributorToken, err := utils.MintToken(contributorID)
	require.NoError(t, err)

	ownerClient := utils.NewHTTPClient(baseURL, 10)
	ownerClient.SetToken(ownerToken)
	approverClient := utils.NewHTTPClient(baseURL, 10)
	approverClient.SetToken(approverToken)
	contributorClient := utils.NewHTTPClient(baseURL, 10)
	contributorClient.SetToken(contributorToken)

	var teamID string
	var itemID string
	var version int64

	t.Run("Tạo team và thành viên", func(t *testing.T) {
		resp, body, err := ownerClient.POST("/teams/insert-one", map[string]interface{}{
			"name": fmt.Sprintf("Workflow Team %d", time.Now().UnixNano()),
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, "tạo team thất bại: %s", string(body))
		data := dataOf(t, parseBody(t, body))
		teamID, _ = data["id"].(string)
		require.NotEmpty(t, teamID, "team phải có ID")

		resp, body, err = ownerClient.POST(fmt.Sprintf("/teams/%s/members", teamID), map[string]interface{}{
			"userId": approverID,
			"role":   "editor",
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, "thêm editor thất bại: %s", string(body))

		resp, body, err = ownerClient.POST(fmt.Sprintf("/teams/%s/members", teamID), map[string]interface{}{
			"userId": contributorID,
			"role":   "contributor",
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, "thêm contributor thất bại: %s", string(body))
	})

	t.Run("Tạo content item trong team", func(t *testing.T) {
		resp, body, err := ownerClient.POST("/content/items/insert-one", map[string]interface{}{
			"title":        fmt.Sprintf("Video ra mắt %d", time.Now().UnixNano()),
			"notes":        "kịch bản nháp",
			"teamId":       teamID,
			"platformTags": []string{"YouTube", "TikTok", "youtube"},
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, "tạo item thất bại: %s", string(body))
		data := dataOf(t, parseBody(t, body))
		itemID, _ = data["id"].(string)
		require.NotEmpty(t, itemID, "item phải có ID")
		assert.Equal(t, "idea", data["status"], "item mới phải ở trạng thái idea")
		version = itemVersion(t, data)
		assert.Equal(t, int64(1), version, "item mới phải có version 1")

		tags, _ := data["platformTags"].([]interface{})
		assert.Len(t, tags, 2, "tag phải được chuẩn hóa và dedupe")
	})

	t.Run("Submit khi team chưa bật workflow bị từ chối", func(t *testing.T) {
		resp, body, err := ownerClient.POST(fmt.Sprintf("/content/items/%s/submit", itemID), nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "submit khi workflow tắt phải bị từ chối: %s", string(body))
	})

	t.Run("Bật workflow policy", func(t *testing.T) {
		resp, body, err := ownerClient.PUT(fmt.Sprintf("/teams/%s/workflow", teamID), map[string]interface{}{
			"requiresApproval": true,
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, "bật workflow thất bại: %s", string(body))
	})

	t.Run("Submit từ trạng thái idea bị từ chối", func(t *testing.T) {
		resp, body, err := ownerClient.POST(fmt.Sprintf("/content/items/%s/submit", itemID), nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "submit từ idea phải bị từ chối: %s", string(body))
	})

	t.Run("Chuyển idea sang draft", func(t *testing.T) {
		resp, body, err := ownerClient.POST(fmt.Sprintf("/content/items/%s/status", itemID), map[string]interface{}{
			"status":  "draft",
			"version": version,
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, "chuyển sang draft thất bại: %s", string(body))
		data := dataOf(t, parseBody(t, body))
		assert.Equal(t, "draft", data["status"])
		version = itemVersion(t, data)
	})

	t.Run("Version cũ bị từ chối với 409", func(t *testing.T) {
		resp, body, err := ownerClient.POST(fmt.Sprintf("/content/items/%s/status", itemID), map[string]interface{}{
			"status":  "in_review",
			"version": version - 1,
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, resp.StatusCode, "version cũ phải trả 409: %s", string(body))
	})

	t.Run("Người không phải chủ item không submit được", func(t *testing.T) {
		resp, body, err := contributorClient.POST(fmt.Sprintf("/content/items/%s/submit", itemID), nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, "submit bởi người khác phải bị cấm: %s", string(body))
	})

	t.Run("Chủ item submit thành công", func(t *testing.T) {
		resp, body, err := ownerClient.POST(fmt.Sprintf("/content/items/%s/submit", itemID), nil)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, "submit thất bại: %s", string(body))
		data := dataOf(t, parseBody(t, body))
		assert.Equal(t, "in_review", data["status"], "sau submit phải ở in_review")
		version = itemVersion(t, data)
	})

	t.Run("Contributor không approve được", func(t *testing.T) {
		resp, body, err := contributorClient.POST(fmt.Sprintf("/content/items/%s/approve", itemID), nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, "contributor approve phải bị cấm: %s", string(body))
	})

	t.Run("Editor request changes với feedback", func(t *testing.T) {
		resp, body, err := approverClient.POST(fmt.Sprintf("/content/items/%s/request-changes", itemID), map[string]interface{}{
			"feedback": "Cần sửa lại phần mở đầu",
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, "request changes thất bại: %s", string(body))
		data := dataOf(t, parseBody(t, body))
		assert.Equal(t, "changes_requested", data["status"])
		version = itemVersion(t, data)
	})

	t.Run("Resubmit từ changes_requested", func(t *testing.T) {
		resp, body, err := ownerClient.POST(fmt.Sprintf("/content/items/%s/submit", itemID), nil)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, "resubmit thất bại: %s", string(body))
		data := dataOf(t, parseBody(t, body))
		assert.Equal(t, "in_review", data["status"])
		version = itemVersion(t, data)
	})

	t.Run("Editor approve thành công", func(t *testing.T) {
		resp, body, err := approverClient.POST(fmt.Sprintf("/content/items/%s/approve", itemID), nil)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, "approve thất bại: %s", string(body))
		data := dataOf(t, parseBody(t, body))
		assert.Equal(t, "approved", data["status"])
		version = itemVersion(t, data)
	})

	t.Run("Approve lại khi không còn in_review bị từ chối", func(t *testing.T) {
		resp, body, err := approverClient.POST(fmt.Sprintf("/content/items/%s/approve", itemID), nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "approve ngoài in_review phải bị từ chối: %s", string(body))
	})

	t.Run("Lịch sử duyệt đầy đủ và theo thứ tự", func(t *testing.T) {
		resp, body, err := ownerClient.GET(fmt.Sprintf("/content/items/%s/approval-history", itemID))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, "đọc lịch sử thất bại: %s", string(body))
		result := parseBody(t, body)
		history, ok := result["data"].([]interface{})
		require.True(t, ok, "lịch sử phải là mảng: %v", result)
		// submitted, changes_requested, resubmitted, approved
		require.Len(t, history, 4, "lịch sử phải có 4 record")

		latest, _ := history[0].(map[string]interface{})
		assert.Equal(t, "approved", latest["action"], "record mới nhất phải là approved")
	})

	t.Run("Lên lịch và xuất bản", func(t *testing.T) {
		scheduledAt := time.Now().Add(24*time.Hour).UnixMilli() / 1000 * 1000
		resp, body, err := ownerClient.POST(fmt.Sprintf("/content/items/%s/schedule", itemID), map[string]interface{}{
			"scheduledAt": scheduledAt,
			"version":     version,
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, "đặt lịch thất bại: %s", string(body))
		version = itemVersion(t, dataOf(t, parseBody(t, body)))

		resp, body, err = ownerClient.POST(fmt.Sprintf("/content/items/%s/status", itemID), map[string]interface{}{
			"status":  "scheduled",
			"version": version,
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, "chuyển sang scheduled thất bại: %s", string(body))
		version = itemVersion(t, dataOf(t, parseBody(t, body)))

		resp, body, err = ownerClient.POST(fmt.Sprintf("/content/items/%s/status", itemID), map[string]interface{}{
			"status":  "published",
			"version": version,
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, "xuất bản thất bại: %s", string(body))
		data := dataOf(t, parseBody(t, body))
		assert.Equal(t, "published", data["status"])
	})
}

// TestSoftDeleteLifecycle kiểm tra soft delete chặn mutation và restore mở lại.
func TestSoftDeleteLifecycle(t *testing.T) {
	baseURL := "http://localhost:8080/api/v1"
	waitForHealth(baseURL, 10, 1*time.Second, t)

	ownerID := utils.NewObjectIDHex()
	ownerToken, err := utils.MintToken(ownerID)
	require.NoError(t, err)
	client := utils.NewHTTPClient(baseURL, 10)
	client.SetToken(ownerToken)

	resp, body, err := client.POST("/content/items/insert-one", map[string]interface{}{
		"title": fmt.Sprintf("Bài test soft delete %d", time.Now().UnixNano()),
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, "tạo item thất bại: %s", string(body))
	data := dataOf(t, parseBody(t, body))
	itemID, _ := data["id"].(string)
	version := itemVersion(t, data)

	resp, body, err = client.POST(fmt.Sprintf("/content/items/%s/soft-delete", itemID), map[string]interface{}{
		"version": version,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, "soft delete thất bại: %s", string(body))
	data = dataOf(t, parseBody(t, body))
	assert.Equal(t, true, data["isDeleted"])
	version = itemVersion(t, data)

	// Mutation trên item đã xóa bị chặn
	resp, body, err = client.POST(fmt.Sprintf("/content/items/%s/status", itemID), map[string]interface{}{
		"status":  "draft",
		"version": version,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusGone, resp.StatusCode, "mutation trên item đã xóa phải trả 410: %s", string(body))

	// Restore mở lại mutation
	resp, body, err = client.POST(fmt.Sprintf("/content/items/%s/restore", itemID), map[string]interface{}{
		"version": version,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, "restore thất bại: %s", string(body))
	data = dataOf(t, parseBody(t, body))
	assert.Equal(t, false, data["isDeleted"])
	version = itemVersion(t, data)

	resp, body, err = client.POST(fmt.Sprintf("/content/items/%s/status", itemID), map[string]interface{}{
		"status":  "draft",
		"version": version,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "mutation sau restore phải hoạt động: %s", string(body))
}
