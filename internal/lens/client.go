package lens

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	graphql "github.com/hasura/go-graphql-client"

	"github.com/ignatzorin/lenstube-reports/internal/models"
)

var ErrPublicationNotFound = errors.New("lens: публикация не найдена")

// APIError - ошибка, которую вернул сервер GraphQL.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return "lens: " + e.Message
	}
	return fmt.Sprintf("lens: код ответа %d", e.Status)
}

// ServerMessage возвращает сообщение сервера как есть.
func (e *APIError) ServerMessage() string {
	return e.Message
}

// Client - клиент Lens GraphQL API.
type Client struct {
	endpoint    string
	accessToken string
	gql         *graphql.Client
}

// NewClient создаёт клиента. Таймаут не задаётся: отправленная мутация
// не прерывается.
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		gql:      graphql.NewClient(endpoint, &http.Client{}),
	}
}

// WithAccessToken возвращает копию клиента, подписывающую запросы токеном.
func (c *Client) WithAccessToken(token string) *Client {
	cp := *c
	cp.accessToken = token
	cp.gql = c.gql.WithRequestModifier(func(r *http.Request) {
		if token != "" {
			r.Header.Set("Authorization", "Bearer "+token)
		}
	})
	return &cp
}

// errorBody - тело ответа Lens с кодом 4xx/5xx.
type errorBody struct {
	Message string `json:"message"`
	Errors  []struct {
		Message    string `json:"message"`
		Extensions struct {
			Code string `json:"code"`
		} `json:"extensions"`
	} `json:"errors"`
}

// Do выполняет запрос и раскладывает data в out (если out не nil).
func (c *Client) Do(ctx context.Context, query string, variables map[string]any, out any) error {
	if c.endpoint == "" {
		return errors.New("lens: endpoint не задан")
	}

	data, err := c.gql.ExecRaw(ctx, query, variables)
	if err != nil {
		return toAPIError(err)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("lens: не удалось разобрать data: %w", err)
	}
	return nil
}

// toAPIError переводит ошибки graphql-клиента в APIError. Ошибки
// транспорта возвращаются обёрнутыми.
func toAPIError(err error) error {
	var gqlErrs graphql.Errors
	if !errors.As(err, &gqlErrs) || len(gqlErrs) == 0 {
		return fmt.Errorf("lens: запрос не выполнен: %w", err)
	}
	first := gqlErrs[0]

	var netErr graphql.NetworkError
	if errors.As(first, &netErr) {
		apiErr := &APIError{Status: netErr.StatusCode()}
		var body errorBody
		if json.Unmarshal([]byte(netErr.Body()), &body) == nil {
			apiErr.Message = body.Message
			if len(body.Errors) > 0 {
				apiErr.Message = body.Errors[0].Message
				apiErr.Code = body.Errors[0].Extensions.Code
			}
		}
		return apiErr
	}

	code, _ := first.Extensions["code"].(string)
	switch code {
	case graphql.ErrRequestError, graphql.ErrJsonEncode, graphql.ErrJsonDecode:
		return fmt.Errorf("lens: запрос не выполнен: %w", err)
	}
	return &APIError{Status: http.StatusOK, Code: code, Message: first.Message}
}

// ReportPublication отправляет мутацию reportPublication.
func (c *Client) ReportPublication(ctx context.Context, req models.ReportRequest) error {
	return c.Do(ctx, reportPublicationMutation, map[string]any{"request": req}, nil)
}

// CollectModule запрашивает настройки collect-модуля публикации.
func (c *Client) CollectModule(ctx context.Context, publicationID string) (models.CollectModule, error) {
	var out struct {
		Publication *struct {
			Typename      string          `json:"__typename"`
			CollectModule json.RawMessage `json:"collectModule"`
		} `json:"publication"`
	}

	vars := map[string]any{
		"request": map[string]any{"publicationId": publicationID},
	}
	if err := c.Do(ctx, publicationCollectModuleQuery, vars, &out); err != nil {
		return nil, err
	}
	if out.Publication == nil {
		return nil, ErrPublicationNotFound
	}

	return models.DecodeCollectModule(out.Publication.CollectModule)
}
