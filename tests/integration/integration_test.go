//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go/modules/compose"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	baseURL    string
	httpClient *http.Client
)

// Response types — defined locally to keep tests truly black-box (no internal imports).

type idResponse struct {
	ID string `json:"id"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

type pageInfo struct {
	Next     *int `json:"next"`
	Limit    int  `json:"limit"`
	Previous *int `json:"previous"`
}

type productListResponse struct {
	Data []productResponse `json:"data"`
	Page pageInfo          `json:"page"`
}

type productResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type orderListResponse struct {
	Data []orderResponse `json:"data"`
	Page pageInfo        `json:"page"`
}

type orderResponse struct {
	ID    string              `json:"id"`
	Items []orderItemResponse `json:"items"`
	Total float64             `json:"total"`
}

type orderItemResponse struct {
	ProductDetails productDetails `json:"productDetails"`
	Qty            int            `json:"qty"`
}

type productDetails struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestMain(m *testing.M) {
	os.Exit(testMain(m))
}

func testMain(m *testing.M) int {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	dc, err := tc.NewDockerCompose("docker-compose.test.yml")
	if err != nil {
		log.Fatalf("compose init: %v", err)
	}

	// Start postgres + api, wait until the API health check passes.
	err = dc.
		WaitForService("api", wait.ForHTTP("/readyz").WithPort("8080/tcp")).
		Up(ctx, tc.Wait(true))
	if err != nil {
		log.Fatalf("compose up: %v", err)
	}

	apiContainer, err := dc.ServiceContainer(ctx, "api")
	if err != nil {
		log.Fatalf("api container: %v", err)
	}

	host, err := apiContainer.Host(ctx)
	if err != nil {
		log.Fatalf("host: %v", err)
	}

	mappedPort, err := apiContainer.MappedPort(ctx, "8080/tcp")
	if err != nil {
		log.Fatalf("mapped port: %v", err)
	}

	baseURL = fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
	httpClient = &http.Client{Timeout: 10 * time.Second}
	log.Printf("API available at %s", baseURL)

	code := m.Run()

	downCtx, downCancel := context.WithTimeout(context.Background(), time.Minute)
	defer downCancel()
	if err := dc.Down(downCtx, tc.RemoveOrphans(true), tc.RemoveVolumes(true)); err != nil {
		log.Printf("compose down: %v", err)
	}

	return code
}

// --- HTTP helpers ---

func postJSON(t *testing.T, path string, body any) (*http.Response, []byte) {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}

	resp, err := httpClient.Post(baseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, raw
}

func getJSON(t *testing.T, path string) (*http.Response, []byte) {
	t.Helper()

	resp, err := httpClient.Get(baseURL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, raw
}

func mustUnmarshal[T any](t *testing.T, raw []byte) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("unmarshal %q: %v", raw, err)
	}
	return v
}
