// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonclient 实现 json rpc 客户端请求功能
package jsonclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// JSONClient a object of jsonclient
type JSONClient struct {
	url    string
	client *http.Client
}

// NewJSONClient produce a json object, addr 可以不带 http:// 前缀
func NewJSONClient(addr string) (*JSONClient, error) {
	if addr == "" {
		return nil, errors.New("jsonclient: empty address")
	}
	if !strings.HasPrefix(addr, "http://") && !strings.HasPrefix(addr, "https://") {
		addr = "http://" + addr
	}
	return &JSONClient{url: addr, client: &http.Client{Timeout: 60 * time.Second}}, nil
}

type clientRequest struct {
	Method string         `json:"method"`
	Params [1]interface{} `json:"params"`
	ID     string         `json:"id"`
}

type clientResponse struct {
	ID     string           `json:"id"`
	Result *json.RawMessage `json:"result"`
	Error  interface{}      `json:"error"`
}

// Call jsonclinet call method, result 为 nil 时忽略返回值
func (client *JSONClient) Call(method string, params, result interface{}) error {
	req := &clientRequest{Method: method, ID: uuid.New().String()}
	req.Params[0] = params
	data, err := json.Marshal(req)
	if err != nil {
		return err
	}
	postresp, err := client.client.Post(client.url, "application/json", bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	defer postresp.Body.Close()
	b, err := io.ReadAll(postresp.Body)
	if err != nil {
		return err
	}
	var cresp clientResponse
	if err := json.Unmarshal(b, &cresp); err != nil {
		return errors.Wrapf(err, "jsonclient: status %d", postresp.StatusCode)
	}
	if cresp.Error != nil {
		return errors.New(fmt.Sprint(cresp.Error))
	}
	if cresp.ID != req.ID {
		return errors.Errorf("jsonclient: response id %s not equal to %s", cresp.ID, req.ID)
	}
	if cresp.Result == nil {
		return errors.New("jsonclient: empty result")
	}
	if result == nil {
		return nil
	}
	return json.Unmarshal(*cresp.Result, result)
}
