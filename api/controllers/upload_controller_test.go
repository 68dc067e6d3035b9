/*
 * @module api/controllers/upload_controller_test
 * @description 图片上传控制器单元测试
 */

package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"mall-service/service/image"
	"mall-service/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartUpload(t *testing.T, fieldName string, content []byte) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(fieldName, "test.png")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func pngBytes() []byte {
	return []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0}
}

func TestUploadImageDiskMode(t *testing.T) {
	store, err := image.NewStore(image.ModeDisk, t.TempDir(), "/uploads")
	require.NoError(t, err)
	controller := NewUploadController(store, nil)

	body, contentType := multipartUpload(t, "file", pngBytes())
	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	controller.UploadImage(w, req)

	helper := testutil.NewHTTPTestHelper()
	envelope := helper.DecodeEnvelope(t, w)
	require.Equal(t, float64(0), envelope["status"])
	data := envelope["data"].(map[string]interface{})
	ref := data["image"].(string)
	assert.True(t, strings.HasPrefix(ref, "/uploads/"))
	// 返回的引用路径可直接写入商品记录
	assert.Equal(t, ref, image.Normalize(ref))
}

func TestUploadImageInlineMode(t *testing.T) {
	store, err := image.NewStore(image.ModeInline, "", "")
	require.NoError(t, err)
	controller := NewUploadController(store, nil)

	body, contentType := multipartUpload(t, "file", pngBytes())
	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	controller.UploadImage(w, req)

	helper := testutil.NewHTTPTestHelper()
	envelope := helper.DecodeEnvelope(t, w)
	require.Equal(t, float64(0), envelope["status"])
	data := envelope["data"].(map[string]interface{})
	assert.True(t, image.IsInline(data["image"].(string)))
}

func TestUploadImageRejectsNonImage(t *testing.T) {
	store, err := image.NewStore(image.ModeInline, "", "")
	require.NoError(t, err)
	controller := NewUploadController(store, nil)

	body, contentType := multipartUpload(t, "file", []byte("plain text content"))
	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	controller.UploadImage(w, req)

	helper := testutil.NewHTTPTestHelper()
	envelope := helper.DecodeEnvelope(t, w)
	assert.Equal(t, float64(400), envelope["status"])
}

func TestUploadImageMissingFileField(t *testing.T) {
	store, err := image.NewStore(image.ModeInline, "", "")
	require.NoError(t, err)
	controller := NewUploadController(store, nil)

	body, contentType := multipartUpload(t, "attachment", pngBytes())
	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	controller.UploadImage(w, req)

	helper := testutil.NewHTTPTestHelper()
	envelope := helper.DecodeEnvelope(t, w)
	assert.Equal(t, float64(400), envelope["status"])
}
