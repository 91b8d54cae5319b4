package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"
)

var errEmptyBase = errors.New("backend url is empty")

// BuildRequest builds an HTTP request for call against the API base URL.
// Writes carry JSON, or multipart/form-data when the call has files.
func BuildRequest(ctx context.Context, apiBase string, call domain.Call) (*http.Request, error) {
	if strings.TrimSpace(apiBase) == "" {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Err:  errEmptyBase,
		}
	}

	method := call.Method
	if method == "" {
		method = http.MethodGet
	}

	target := strings.TrimRight(apiBase, "/") + "/" + strings.TrimLeft(call.Path, "/")
	if len(call.Query) > 0 {
		target += "?" + call.Query.Encode()
	}

	var (
		body        io.Reader = http.NoBody
		contentType string
	)

	switch {
	case call.Multipart():
		buf, ct, err := encodeMultipart(call)
		if err != nil {
			return nil, err
		}
		body, contentType = buf, ct

	case call.JSON != nil && method != http.MethodGet:
		payload, err := json.Marshal(call.JSON)
		if err != nil {
			return nil, &domain.OpError{
				Op:   "httpclient.build",
				Kind: domain.KindInvalidInput,
				Path: call.Path,
				Err:  err,
			}
		}
		body, contentType = bytes.NewReader(payload), "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Path: call.Path,
			Err:  err,
		}
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

func encodeMultipart(call domain.Call) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)

	for _, k := range sortedKeys(call.JSON) {
		if err := mw.WriteField(k, formValue(call.JSON[k])); err != nil {
			return nil, "", multipartErr(call.Path, err)
		}
	}

	names := make([]string, 0, len(call.Files))
	for k := range call.Files {
		names = append(names, k)
	}
	sort.Strings(names)

	for _, field := range names {
		path := call.Files[field]
		f, err := os.Open(path)
		if err != nil {
			return nil, "", &domain.OpError{
				Op:   "httpclient.build.file",
				Kind: domain.KindInvalidInput,
				Path: path,
				Err:  err,
			}
		}
		part, err := mw.CreateFormFile(field, filepath.Base(path))
		if err == nil {
			_, err = io.Copy(part, f)
		}
		_ = f.Close()
		if err != nil {
			return nil, "", multipartErr(call.Path, err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", multipartErr(call.Path, err)
	}
	return buf, mw.FormDataContentType(), nil
}

func formValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
		return ""
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func multipartErr(path string, err error) error {
	return &domain.OpError{
		Op:   "httpclient.build.multipart",
		Kind: domain.KindExecution,
		Path: path,
		Err:  err,
	}
}
