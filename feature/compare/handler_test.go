package compare

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"schemadiff/core/omf"
	"schemadiff/core/preview"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(defaults omf.Options) *fiber.App {
	app := fiber.New()
	NewHandler(NewService(defaults, zap.NewNop(), nil)).RegisterRoutes(app)
	return app
}

func post(t *testing.T, app *fiber.App, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", "/compare", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

const tablePair = `{
  "source": {"_type": "db.mysql.Table", "_id": "db.t", "name": "Table", "comment": "123456"},
  "target": {"_type": "db.mysql.Table", "_id": "db.t", "name": "TABLE", "comment": "12345"},
  "options": %s
}`

func TestHandleCompare(t *testing.T) {
	app := setupTestApp(omf.Options{})

	status, body := post(t, app, strings.Replace(tablePair, "%s", `{}`, 1))
	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["changed"])
	summary := body["summary"].(map[string]any)
	assert.Equal(t, 2.0, summary["modified"])

	status, body = post(t, app, strings.Replace(tablePair, "%s", `{"CaseSensitive": false, "maxTableCommentLength": 5}`, 1))
	assert.Equal(t, 200, status)
	assert.Equal(t, false, body["changed"])
	assert.Empty(t, body["changes"])
}

func TestHandleCompare_Defaults(t *testing.T) {
	app := setupTestApp(omf.Options{omf.OptCaseSensitive: false})

	status, body := post(t, app, strings.Replace(tablePair, "%s", `{"maxTableCommentLength": 5}`, 1))
	assert.Equal(t, 200, status)
	assert.Equal(t, false, body["changed"])
}

func TestHandleCompare_Errors(t *testing.T) {
	app := setupTestApp(omf.Options{})

	tests := []struct {
		name string
		body string
		want int
	}{
		{"Invalid JSON", `{`, 400},
		{"Missing target", `{"source": 1}`, 400},
		{"Unknown option", `{"source": 1, "target": 1, "options": {"nope": 1}}`, 400},
		{"Bad option value", `{"source": 1, "target": 1, "options": {"CaseSensitive": "maybe"}}`, 400},
		{"Identity mismatch", `{"source": {"_type": "T", "_id": "1"}, "target": {"_type": "T", "_id": "2"}}`, 422},
		{"Malformed", `{"source": {"_type": "T", "_id": "1", "a": 1}, "target": {"_type": "T", "_id": "1"}}`, 422},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := post(t, app, tt.body)
			assert.Equal(t, tt.want, status)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestService_CompareTree(t *testing.T) {
	svc := NewService(omf.Options{}, zap.NewNop(), nil)
	report, err := svc.Compare(Request{
		Source: []byte(`{"list": [0, 1, 2, 3, 4, 5]}`),
		Target: []byte(`{"list": [0, 1, 5, 3, 4, 2]}`),
		Tree:   true,
	})
	require.NoError(t, err)
	assert.True(t, report.Changed)
	assert.Equal(t, preview.Summary{Moved: 2}, report.Summary)
	require.NotNil(t, report.Tree)
	assert.Equal(t, "DictModified", report.Tree.Type)
}

func TestLoader(t *testing.T) {
	feature := NewFeature(omf.Options{}, zap.NewNop(), nil)
	assert.Equal(t, "compare", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NoError(t, feature.Load(fiber.New()))
}
