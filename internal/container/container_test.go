package container

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"go-menu-gallery/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Host:               "127.0.0.1",
		Port:               "8080",
		RequestTimeout:     5 * time.Second,
		ProbeTimeout:       time.Second,
		MaxRequestBodySize: 1 << 20,
		MaxUploadSize:      10 << 20,
		StoreType:          config.StoreMemory,
		WriteMode:          config.WriteRepair,
	}
}

func TestNewContainer_WiresHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, err := NewContainer(testConfig())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer c.Close()

	body := `{"images":[{"url":"https://firebasestorage.googleapis.com/v0/b/x/o/a.png","order":7}]}`
	req := httptest.NewRequest(http.MethodPut, "/circles/c1/menu-images", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected repair mode to accept the set, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"order":0`) {
		t.Errorf("Expected renumbered order, got %s", w.Body.String())
	}
	if c.Config().WriteMode != config.WriteRepair || c.Service() == nil {
		t.Error("Expected container to expose its config and service")
	}
}

func TestNewContainer_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"bad host pattern", func(c *config.Config) { c.StorageHostPattern = "([" }},
		{"unknown store", func(c *config.Config) { c.StoreType = "ftp" }},
		{"unknown write mode", func(c *config.Config) { c.WriteMode = "lenient" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(cfg)
			if _, err := NewContainer(cfg); err == nil {
				t.Error("Expected error")
			}
		})
	}
}
