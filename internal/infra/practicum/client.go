// internal/infra/practicum/client.go
package practicum

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"homework_status_bot/internal/domain/homework"

	"github.com/sirupsen/logrus"
)

const DefaultEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"

// Client queries the homework statuses API for a single account.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
	logger   *logrus.Entry
}

func NewClient(endpoint, token string, timeout time.Duration, logger *logrus.Entry) *Client {
	return &Client{
		endpoint: endpoint,
		token:    token,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// Fetch asks for homework updates since cursor and returns the decoded JSON body.
// Non-200 answers never reach the caller as data.
func (c *Client) Fetch(ctx context.Context, cursor int64) (any, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, &homework.Error{Kind: homework.KindNetworkFailure, Message: "invalid API endpoint", Err: err}
	}
	q := u.Query()
	q.Set("from_date", strconv.FormatInt(cursor, 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &homework.Error{Kind: homework.KindNetworkFailure, Message: "cannot build API request", Err: err}
	}
	req.Header.Set("Authorization", "OAuth "+c.token)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, &homework.Error{Kind: homework.KindNetworkFailure, Message: "API request failed", Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &homework.Error{Kind: homework.KindNetworkFailure, Message: "cannot read API response", StatusCode: res.StatusCode, Err: err}
	}

	// Decode before looking at the status: the error shape is recognised by its keys.
	var answer any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&answer); err != nil {
		return nil, &homework.Error{Kind: homework.KindMalformedResponse, Message: "cannot decode API response as JSON", StatusCode: res.StatusCode, Err: err}
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			err = fmt.Errorf("unexpected data after top-level JSON value")
		}
		return nil, &homework.Error{Kind: homework.KindMalformedResponse, Message: "cannot decode API response as JSON", StatusCode: res.StatusCode, Err: err}
	}

	if res.StatusCode != http.StatusOK {
		if errText, code, ok := errorPayload(answer); ok {
			return nil, &homework.Error{
				Kind:       homework.KindServerFailure,
				Message:    fmt.Sprintf("API error %s, %s (HTTP %d)", errText, code, res.StatusCode),
				StatusCode: res.StatusCode,
				Code:       code,
			}
		}
		return nil, &homework.Error{
			Kind:       homework.KindUnexpectedStatus,
			Message:    fmt.Sprintf("API returned HTTP %d: %s", res.StatusCode, bytes.TrimSpace(body)),
			StatusCode: res.StatusCode,
		}
	}

	c.logger.WithField("from_date", cursor).Debug("Received answer from homework API")
	return answer, nil
}

// errorPayload recognises a body whose key set is exactly {error, code}.
func errorPayload(answer any) (errText, code string, ok bool) {
	obj, isObj := answer.(map[string]any)
	if !isObj || len(obj) != 2 {
		return "", "", false
	}
	e, hasErr := obj["error"]
	c, hasCode := obj["code"]
	if !hasErr || !hasCode {
		return "", "", false
	}
	return fmt.Sprint(e), fmt.Sprint(c), true
}
