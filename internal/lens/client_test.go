package lens

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/lenstube-reports/internal/models"
	"github.com/ignatzorin/lenstube-reports/internal/report"
)

type capturedRequest struct {
	Query     string          `json:"query"`
	Variables json.RawMessage `json:"variables"`
}

func newTestServer(t *testing.T, status int, body string, captured *capturedRequest, auth *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		if captured != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}
		if auth != nil {
			*auth = r.Header.Get("Authorization")
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_ReportPublication_SendsRequest(t *testing.T) {
	var captured capturedRequest
	var auth string
	srv := newTestServer(t, http.StatusOK, `{"data":{"reportPublication":null}}`, &captured, &auth)

	client := NewClient(srv.URL).WithAccessToken("lens-token")
	err := client.ReportPublication(context.Background(), models.NewReportRequest("0x0f-0x01", models.DefaultReasonID))
	require.NoError(t, err)

	assert.Contains(t, captured.Query, "reportPublication(request: $request)")
	assert.JSONEq(t, `{"request": {
		"publicationId": "0x0f-0x01",
		"reason": {"illegalReason": {"reason": "ILLEGAL", "subreason": "ANIMAL_ABUSE"}},
		"additionalComments": "ILLEGAL - ANIMAL_ABUSE"
	}}`, string(captured.Variables))
	assert.Equal(t, "Bearer lens-token", auth)
}

func TestClient_WithAccessTokenDoesNotMutateOriginal(t *testing.T) {
	var auth string
	srv := newTestServer(t, http.StatusOK, `{"data":{}}`, nil, &auth)

	base := NewClient(srv.URL)
	_ = base.WithAccessToken("other")
	require.NoError(t, base.Do(context.Background(), "query { ping }", nil, nil))
	assert.Empty(t, auth)
}

func TestClient_GraphQLErrorCarriesServerMessage(t *testing.T) {
	srv := newTestServer(t, http.StatusOK,
		`{"data":null,"errors":[{"message":"Not found","extensions":{"code":"NOT_FOUND"}}]}`, nil, nil)

	err := NewClient(srv.URL).ReportPublication(context.Background(), models.NewReportRequest("0x01", models.DefaultReasonID))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Not found", apiErr.Message)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
	assert.Equal(t, "Not found", report.ErrorMessage(err))
}

func TestClient_HTTPErrorWithMessage(t *testing.T) {
	srv := newTestServer(t, http.StatusUnauthorized, `{"message":"Authentication required"}`, nil, nil)

	err := NewClient(srv.URL).Do(context.Background(), "query { ping }", nil, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Authentication required", report.ErrorMessage(err))
}

func TestClient_HTTPErrorWithoutMessageUsesGenericText(t *testing.T) {
	srv := newTestServer(t, http.StatusBadGateway, `<html>bad gateway</html>`, nil, nil)

	err := NewClient(srv.URL).Do(context.Background(), "query { ping }", nil, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Empty(t, apiErr.ServerMessage())
	assert.Equal(t, "lens: код ответа 502", report.ErrorMessage(err))
}

func TestClient_HTTPErrorWithGraphQLErrors(t *testing.T) {
	srv := newTestServer(t, http.StatusBadRequest,
		`{"errors":[{"message":"Invalid publication id","extensions":{"code":"GRAPHQL_VALIDATION_FAILED"}}]}`, nil, nil)

	err := NewClient(srv.URL).Do(context.Background(), "query { ping }", nil, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "GRAPHQL_VALIDATION_FAILED", apiErr.Code)
	assert.Equal(t, "Invalid publication id", report.ErrorMessage(err))
}

func TestClient_TransportErrorIsNotAPIError(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{}`, nil, nil)
	url := srv.URL
	srv.Close()

	err := NewClient(url).Do(context.Background(), "query { ping }", nil, nil)
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.Contains(t, err.Error(), "lens: запрос не выполнен")
}

func TestClient_EmptyEndpoint(t *testing.T) {
	err := NewClient("").Do(context.Background(), "query { ping }", nil, nil)
	assert.Error(t, err)
}

func TestClient_CollectModule(t *testing.T) {
	var captured capturedRequest
	srv := newTestServer(t, http.StatusOK, `{"data":{"publication":{
		"__typename":"Post",
		"collectModule":{"type":"TimedFeeCollectModule","recipient":"0xr","endTimestamp":"2022-09-01T00:00:00.000Z",
			"referralFee":0,"contractAddress":"0xc","followerOnly":false,
			"amount":{"asset":{"symbol":"WMATIC","decimals":18,"address":"0xa"},"value":"0.01"}}
	}}}`, &captured, nil)

	module, err := NewClient(srv.URL).CollectModule(context.Background(), "0x0f-0x01")
	require.NoError(t, err)

	settings, ok := module.(models.TimedFeeCollectModuleSettings)
	require.True(t, ok)
	assert.Equal(t, "0xr", settings.Recipient)
	assert.Equal(t, "0.01", settings.Amount.Value)

	assert.Contains(t, captured.Query, "...CollectFields")
	assert.Contains(t, captured.Query, "fragment CollectFields on CollectModule")
	assert.JSONEq(t, `{"request":{"publicationId":"0x0f-0x01"}}`, string(captured.Variables))
}

func TestClient_CollectModule_NotFound(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"data":{"publication":null}}`, nil, nil)

	_, err := NewClient(srv.URL).CollectModule(context.Background(), "0x01")
	assert.ErrorIs(t, err, ErrPublicationNotFound)
}

func TestClient_CollectModule_UnknownVariant(t *testing.T) {
	srv := newTestServer(t, http.StatusOK,
		`{"data":{"publication":{"__typename":"Post","collectModule":{"type":"RevertCollectModule"}}}}`, nil, nil)

	_, err := NewClient(srv.URL).CollectModule(context.Background(), "0x01")
	assert.ErrorIs(t, err, models.ErrUnknownCollectModule)
}

// fragmentSelections возвращает поля верхнего уровня каждого inline-фрагмента.
func fragmentSelections(fragment string) map[string][]string {
	out := make(map[string][]string)
	var current string
	depth := 0
	for _, line := range strings.Split(fragment, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "... on ") {
			current = strings.TrimSuffix(strings.TrimPrefix(line, "... on "), " {")
			depth = 1
			continue
		}
		if current == "" || line == "" {
			continue
		}
		if line == "}" {
			depth--
			if depth == 0 {
				sort.Strings(out[current])
				current = ""
			}
			continue
		}
		if depth == 1 {
			out[current] = append(out[current], strings.TrimSuffix(line, " {"))
		}
		if strings.HasSuffix(line, "{") {
			depth++
		}
	}
	return out
}

func TestCollectFieldsFragment_MatchesModels(t *testing.T) {
	variants := map[string]models.CollectModule{
		"FreeCollectModuleSettings":            models.FreeCollectModuleSettings{},
		"FeeCollectModuleSettings":             models.FeeCollectModuleSettings{},
		"LimitedFeeCollectModuleSettings":      models.LimitedFeeCollectModuleSettings{},
		"LimitedTimedFeeCollectModuleSettings": models.LimitedTimedFeeCollectModuleSettings{},
		"TimedFeeCollectModuleSettings":        models.TimedFeeCollectModuleSettings{},
	}

	selections := fragmentSelections(CollectFieldsFragment)
	require.Len(t, selections, len(variants))

	for name, module := range variants {
		raw, err := json.Marshal(module)
		require.NoError(t, err)
		var fields map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(raw, &fields))

		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		assert.Equal(t, keys, selections[name], name)
	}
}
