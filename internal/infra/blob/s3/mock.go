package s3

import (
	"bytes"
	"context"
	"crypto/md5" // #nosec G501 -- mirrors the S3 ETag format, not used for security
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const metaHeaderPrefix = "X-Amz-Meta-"

// NewMockForTests returns a Store whose client talks to an in-process fake
// bucket. It understands HEAD, GET, PUT, DELETE and ListObjectsV2.
func NewMockForTests() *Store {
	rt := &fakeBucket{objects: make(map[string]fakeObject)}
	cfg, _ := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(defaultRegion),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("AKIA", "SECRET", "")),
	)
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.HTTPClient = &http.Client{Transport: rt}
		o.UsePathStyle = true
		o.BaseEndpoint = aws.String("https://mock.s3.local")
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	})
	return &Store{client: client, bucket: "mock-bucket"}
}

type fakeObject struct {
	body        []byte
	contentType string
	meta        http.Header
	modified    time.Time
}

func (o fakeObject) etag() string {
	sum := md5.Sum(o.body) // #nosec G401
	return `"` + hex.EncodeToString(sum[:]) + `"`
}

func (o fakeObject) header() http.Header {
	h := http.Header{
		"Content-Length": {strconv.Itoa(len(o.body))},
		"Content-Type":   {o.contentType},
		"Etag":           {o.etag()},
		"Last-Modified":  {o.modified.Format(http.TimeFormat)},
	}
	for k, v := range o.meta {
		h[k] = v
	}
	return h
}

type fakeBucket struct {
	mu      sync.Mutex
	objects map[string]fakeObject
}

func reply(status int, body []byte, h http.Header) *http.Response {
	if h == nil {
		h = http.Header{}
	}
	return &http.Response{StatusCode: status, Body: io.NopCloser(bytes.NewReader(body)), Header: h}
}

func (b *fakeBucket) RoundTrip(req *http.Request) (*http.Response, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// path style: /<bucket>/<key>
	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}
	if req.Method == http.MethodGet && req.URL.Query().Get("list-type") == "2" {
		return b.list(req.URL.Query().Get("prefix")), nil
	}
	obj, exists := b.objects[key]
	switch req.Method {
	case http.MethodHead:
		if !exists {
			return reply(http.StatusNotFound, nil, nil), nil
		}
		return reply(http.StatusOK, nil, obj.header()), nil
	case http.MethodGet:
		if !exists {
			return reply(http.StatusNotFound, []byte(`<?xml version="1.0"?><Error><Code>NoSuchKey</Code></Error>`),
				http.Header{"Content-Type": {"application/xml"}}), nil
		}
		return reply(http.StatusOK, bytes.Clone(obj.body), obj.header()), nil
	case http.MethodPut:
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		if dec, ok := decodeSingleChunk(body); ok {
			body = dec
		}
		meta := http.Header{}
		for k, v := range req.Header {
			if strings.HasPrefix(http.CanonicalHeaderKey(k), metaHeaderPrefix) {
				meta[http.CanonicalHeaderKey(k)] = v
			}
		}
		stored := fakeObject{body: body, contentType: req.Header.Get("Content-Type"), meta: meta, modified: time.Now().UTC().Truncate(time.Second)}
		b.objects[key] = stored
		return reply(http.StatusOK, nil, http.Header{"Etag": {stored.etag()}}), nil
	case http.MethodDelete:
		delete(b.objects, key)
		return reply(http.StatusNoContent, nil, nil), nil
	}
	return reply(http.StatusNotImplemented, nil, nil), nil
}

func (b *fakeBucket) list(prefix string) *http.Response {
	keys := make([]string, 0, len(b.objects))
	for k := range b.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0"?><ListBucketResult><IsTruncated>false</IsTruncated>`)
	for _, k := range keys {
		obj := b.objects[k]
		fmt.Fprintf(&sb, "<Contents><Key>%s</Key><Size>%d</Size><ETag>%s</ETag><LastModified>%s</LastModified></Contents>",
			k, len(obj.body), obj.etag(), obj.modified.Format(time.RFC3339))
	}
	sb.WriteString("</ListBucketResult>")
	return reply(http.StatusOK, []byte(sb.String()), http.Header{"Content-Type": {"application/xml"}})
}

// decodeSingleChunk unwraps an aws-chunked body holding one data chunk:
// <hex size>\r\n<data>\r\n0\r\n[trailers]
func decodeSingleChunk(b []byte) ([]byte, bool) {
	parts := strings.Split(string(b), "\r\n")
	if len(parts) < 3 || parts[2] != "0" {
		return nil, false
	}
	size, err := strconv.ParseInt(strings.SplitN(parts[0], ";", 2)[0], 16, 64)
	if err != nil || size != int64(len(parts[1])) {
		return nil, false
	}
	return []byte(parts[1]), true
}
