package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"chequeprinter/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutHandler_DefaultsAndCRUD(t *testing.T) {
	r := newTestRouter(t, setupTestStore(t), false)

	w, env := doJSON(t, r, "GET", "/api/v1/layouts", nil, "")
	require.Equal(t, 200, w.Code)
	var list []models.Layout
	decodeData(t, env, &list)
	assert.Len(t, list, 3)

	// acPayee 未提供时取默认值
	w, env = doJSON(t, r, "POST", "/api/v1/layouts", map[string]interface{}{"name": "Axis Bank", "payeeX": 40, "payeeY": 50}, "")
	require.Equal(t, 200, w.Code, w.Body.String())
	var created models.Layout
	decodeData(t, env, &created)
	assert.Equal(t, 40, created.PayeeX)
	assert.Equal(t, 110, created.AcPayeeX)
	assert.Equal(t, 80, created.AcPayeeY)

	w, env = doJSON(t, r, "PUT", "/api/v1/layouts/"+created.ID, map[string]interface{}{"name": "Axis", "payeeX": 41, "acPayeeX": 5, "acPayeeY": 6}, "")
	require.Equal(t, 200, w.Code, w.Body.String())
	var updated models.Layout
	decodeData(t, env, &updated)
	assert.Equal(t, "Axis", updated.Name)
	assert.Equal(t, 41, updated.PayeeX)
	assert.Equal(t, 0, updated.PayeeY)
	assert.Equal(t, 5, updated.AcPayeeX)

	w, _ = doJSON(t, r, "POST", "/api/v1/layouts", map[string]interface{}{"name": "Bad", "dateX": -3}, "")
	assert.Equal(t, 400, w.Code)

	w, _ = doJSON(t, r, "PUT", "/api/v1/layouts/missing", map[string]interface{}{"name": "X"}, "")
	assert.Equal(t, 404, w.Code)

	w, _ = doJSON(t, r, "DELETE", "/api/v1/layouts/"+created.ID, nil, "")
	assert.Equal(t, 200, w.Code)
	w, _ = doJSON(t, r, "GET", "/api/v1/layouts/"+created.ID, nil, "")
	assert.Equal(t, 404, w.Code)
}

func TestLayoutHandler_ExportImport(t *testing.T) {
	r := newTestRouter(t, setupTestStore(t), false)

	w, _ := doJSON(t, r, "GET", "/api/v1/layouts/hdfc/export", nil, "")
	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "HDFC_Bank_layout.json")

	var file map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &file))
	assert.Equal(t, "HDFC Bank", file["name"])
	assert.NotContains(t, file, "id")
	exported := w.Body.Bytes()

	// JSON 请求体导入
	w, env := doJSON(t, r, "POST", "/api/v1/layouts/import", string(exported), "")
	require.Equal(t, 200, w.Code, w.Body.String())
	var imported models.Layout
	decodeData(t, env, &imported)
	assert.NotEqual(t, "hdfc", imported.ID)
	assert.Equal(t, 950, imported.AmountX)

	// multipart 上传
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "axis_layout.json")
	require.NoError(t, err)
	_, err = part.Write([]byte(`{"name":"Axis","coordinates":{"payeeX":1,"payeeY":2,"amountX":3,"amountY":4,"amountWordsX":5,"amountWordsY":6,"dateX":7,"dateY":8}}`))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/api/v1/layouts/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, 200, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"acPayeeX":110`)

	w, env = doJSON(t, r, "POST", "/api/v1/layouts/import", "{oops", "")
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, env.Message, "文件格式错误")

	w, _ = doJSON(t, r, "POST", "/api/v1/layouts/import", "", "")
	assert.Equal(t, 400, w.Code)
}
