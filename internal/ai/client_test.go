package ai

import (
	"bytes"
	"collaborative-docs-backend/internal/middleware"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt_Verbatim(t *testing.T) {
	assert.Equal(t, "hello", BuildPrompt("hello", "", false))
	// include_doc without content still passes the message through
	assert.Equal(t, "hello", BuildPrompt("hello", "", true))
	// content without include_doc is ignored
	assert.Equal(t, "hello", BuildPrompt("hello", "some doc", false))
}

func TestBuildPrompt_WrapsDocument(t *testing.T) {
	prompt := BuildPrompt("what is this about?", "# Title\nbody", true)

	assert.Contains(t, prompt, "# Title\nbody")
	assert.Contains(t, prompt, "Question: what is this about?")
}

func completionServer(t *testing.T, reply string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]any
		json.NewDecoder(r.Body).Decode(&req)
		assert.Equal(t, "gpt-4o-mini", req["model"])

		if status != http.StatusOK {
			w.WriteHeader(status)
			w.Write([]byte(`{"error": "upstream broke"}`))
			return
		}

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": reply}},
			},
		})
	}))
}

func TestComplete_ReturnsFirstChoice(t *testing.T) {
	server := completionServer(t, "the answer", http.StatusOK)
	defer server.Close()

	client := NewClient(server.URL, "test-key", "gpt-4o-mini")
	reply, err := client.Complete(context.Background(), "a question")

	assert.NoError(t, err)
	assert.Equal(t, "the answer", reply)
}

func TestComplete_UpstreamError(t *testing.T) {
	server := completionServer(t, "", http.StatusBadGateway)
	defer server.Close()

	client := NewClient(server.URL, "test-key", "gpt-4o-mini")
	_, err := client.Complete(context.Background(), "a question")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status=502")
}

func TestComplete_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "gpt-4o-mini")
	_, err := client.Complete(context.Background(), "a question")

	assert.Error(t, err)
}

func TestChatHandler_Success(t *testing.T) {
	server := completionServer(t, "hi there", http.StatusOK)
	defer server.Close()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler())
	handler := NewHandler(NewClient(server.URL, "test-key", "gpt-4o-mini"))
	router.POST("/ai/chat", handler.Chat)

	payload, _ := json.Marshal(gin.H{"message": "hello"})
	req, _ := http.NewRequest("POST", "/ai/chat", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "hi there", resp["reply"])
}

func TestChatHandler_UpstreamFailure(t *testing.T) {
	server := completionServer(t, "", http.StatusServiceUnavailable)
	defer server.Close()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler())
	handler := NewHandler(NewClient(server.URL, "test-key", "gpt-4o-mini"))
	router.POST("/ai/chat", handler.Chat)

	payload, _ := json.Marshal(gin.H{"message": "hello"})
	req, _ := http.NewRequest("POST", "/ai/chat", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]any
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "AI service unavailable", resp["error"])
	assert.NotEmpty(t, resp["detail"])
}

func TestChatHandler_MissingMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler())
	handler := NewHandler(NewClient("http://unused", "test-key", "gpt-4o-mini"))
	router.POST("/ai/chat", handler.Chat)

	payload, _ := json.Marshal(gin.H{"room_content": "doc only"})
	req, _ := http.NewRequest("POST", "/ai/chat", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
