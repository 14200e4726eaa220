package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
)

var _ Generator = (*Remote)(nil)

// Remote posts the project input to another instance's generate endpoint
// and returns the response body as the document.
type Remote struct {
	endpoint string
	client   *http.Client
}

func NewRemote(endpoint string, client *http.Client) *Remote {
	if client == nil {
		client = http.DefaultClient
	}

	return &Remote{endpoint: endpoint, client: client}
}

func (r *Remote) Generate(ctx context.Context, req *Request) (string, error) {
	body, err := json.Marshal(req.Input)
	if err != nil {
		return "", failure(0, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", failure(0, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	logrus.Infof("generating prd through %s", r.endpoint)

	res, err := r.client.Do(httpReq)
	if err != nil {
		return "", failure(0, err)
	}
	defer res.Body.Close()

	text, err := io.ReadAll(res.Body)
	if err != nil {
		return "", failure(res.StatusCode, err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", failure(res.StatusCode, fmt.Errorf("unexpected response: %s", bytes.TrimSpace(text)))
	}

	if len(bytes.TrimSpace(text)) == 0 {
		return "", failure(res.StatusCode, errEmptyCompletion)
	}

	return string(text), nil
}
