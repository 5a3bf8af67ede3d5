package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClient creates a Client backed by a test HTTP server.
// The handler receives real S3 XML-protocol requests.
func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	return testClientIn(t, "eu-central-1", handler)
}

func testClientIn(t *testing.T, region string, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := s3.New(s3.Options{
		Region:           region,
		BaseEndpoint:     aws.String(server.URL),
		UsePathStyle:     true,
		RetryMaxAttempts: 1,
		Credentials:      credentials.NewStaticCredentialsProvider("test-key", "test-secret", ""),
	})

	return &Client{s3: client, region: region}
}

// xmlResponse writes an S3-style XML response.
func xmlResponse(w http.ResponseWriter, statusCode int, body string) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(statusCode)
	_, _ = w.Write([]byte(body))
}

func errorBody(code string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<Error>
  <Code>%s</Code>
  <Message>%s</Message>
</Error>`, code, code)
}

func TestNewClient(t *testing.T) {
	client, err := NewClient(context.Background(), Options{
		Endpoint:  "https://objects.example.com",
		Region:    "eu-central-1",
		AccessKey: "key",
		SecretKey: "secret",
		PathStyle: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "eu-central-1", client.region)
}

func TestPutObject_Success(t *testing.T) {
	var (
		mu          sync.Mutex
		body        []byte
		path        string
		contentType string
	)

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		mu.Lock()
		body, _ = io.ReadAll(r.Body)
		path = r.URL.Path
		contentType = r.Header.Get("Content-Type")
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))

	err := client.PutObject(context.Background(), "forms", "submissions/a.yaml", "application/yaml", []byte("money: 1"))
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "money: 1", string(body))
	assert.Equal(t, "/forms/submissions/a.yaml", path)
	assert.Equal(t, "application/yaml", contentType)
}

func TestPutObject_Error(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		xmlResponse(w, http.StatusForbidden, errorBody("AccessDenied"))
	}))

	err := client.PutObject(context.Background(), "forms", "a.yaml", "", []byte("x"))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "failed to put object a.yaml in bucket forms"))
	assert.False(t, IsRetryable(err))
}

func TestBucketExists(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		want    bool
		wantErr bool
	}{
		{"exists", http.StatusOK, true, false},
		{"missing", http.StatusNotFound, false, false},
		{"forbidden", http.StatusForbidden, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))

			got, err := client.BucketExists(context.Background(), "forms")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnsureBucket_CreatesMissingBucket(t *testing.T) {
	var (
		mu      sync.Mutex
		created bool
	)

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodHead:
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPut:
			mu.Lock()
			created = true
			mu.Unlock()
			xmlResponse(w, http.StatusOK, `<?xml version="1.0" encoding="UTF-8"?><CreateBucketResult/>`)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	require.NoError(t, client.EnsureBucket(context.Background(), "forms"))

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, created)
}

// createBucketBody records the body of the CreateBucket request.
func createBucketBody(t *testing.T, region string) string {
	t.Helper()
	var (
		mu   sync.Mutex
		body []byte
	)

	client := testClientIn(t, region, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodHead:
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPut:
			data, _ := io.ReadAll(r.Body)
			mu.Lock()
			body = data
			mu.Unlock()
			xmlResponse(w, http.StatusOK, `<?xml version="1.0" encoding="UTF-8"?><CreateBucketResult/>`)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	require.NoError(t, client.EnsureBucket(context.Background(), "forms"))

	mu.Lock()
	defer mu.Unlock()
	return string(body)
}

func TestEnsureBucket_SendsLocationConstraint(t *testing.T) {
	body := createBucketBody(t, "eu-central-1")
	assert.Contains(t, body, "<LocationConstraint>eu-central-1</LocationConstraint>")
}

func TestEnsureBucket_NoLocationConstraintInUSEast1(t *testing.T) {
	body := createBucketBody(t, "us-east-1")
	assert.NotContains(t, body, "LocationConstraint")
}

func TestEnsureBucket_AlreadyOwned(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		xmlResponse(w, http.StatusConflict, errorBody("BucketAlreadyOwnedByYou"))
	}))

	assert.NoError(t, client.EnsureBucket(context.Background(), "forms"))
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", fmt.Errorf("put: %w", context.Canceled), false},
		{"no such bucket", fmt.Errorf("put: %w", &s3types.NoSuchBucket{}), false},
		{"access denied", &smithy.GenericAPIError{Code: "AccessDenied", Fault: smithy.FaultClient}, false},
		{"other client fault", &smithy.GenericAPIError{Code: "InvalidArgument", Fault: smithy.FaultClient}, false},
		{"server fault", &smithy.GenericAPIError{Code: "InternalError", Fault: smithy.FaultServer}, true},
		{"slow down", &smithy.GenericAPIError{Code: "SlowDown"}, true},
		{"network", errors.New("connection reset by peer"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestIsBucketAlreadyOwnedByYou(t *testing.T) {
	assert.False(t, isBucketAlreadyOwnedByYou(nil))
	assert.True(t, isBucketAlreadyOwnedByYou(fmt.Errorf("outer: %w", &s3types.BucketAlreadyOwnedByYou{})))
	assert.True(t, isBucketAlreadyOwnedByYou(&smithy.GenericAPIError{Code: "BucketAlreadyOwnedByYou"}))
	assert.False(t, isBucketAlreadyOwnedByYou(errors.New("inner error")))
}

func TestIsNotFoundError(t *testing.T) {
	assert.False(t, isNotFoundError(nil))
	assert.True(t, isNotFoundError(fmt.Errorf("outer: %w", &s3types.NoSuchBucket{})))
	assert.True(t, isNotFoundError(fmt.Errorf("outer: %w", &s3types.NotFound{})))
	assert.True(t, isNotFoundError(&smithy.GenericAPIError{Code: "404"}))
	assert.False(t, isNotFoundError(errors.New("inner error")))
}
