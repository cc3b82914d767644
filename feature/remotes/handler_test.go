package remotes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"remote-loader/core/document"
	"remote-loader/core/remote"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T, modules remote.ModuleLoader, store *Store) (*fiber.App, *Service) {
	t.Helper()
	app := fiber.New()
	svc := newService(t, modules, store)
	NewHandler(svc).RegisterRoutes(app)
	return app, svc
}

func decode(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&m))
	return m
}

func TestHandleList(t *testing.T) {
	app, _ := setupTestApp(t, routesLoader(nil, nil), nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/remotes", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decode(t, resp.Body)
	list, ok := body["remotes"].([]any)
	require.True(t, ok)
	assert.Len(t, list, 2)
	assert.Equal(t, "billing", list[0].(map[string]any)["name"])
}

func TestHandleRoutes(t *testing.T) {
	t.Run("Loaded", func(t *testing.T) {
		routes := []any{
			map[string]any{"path": "", "title": "Scheduling"},
			map[string]any{"path": "gantt", "loadComponent": func() {}},
		}
		app, _ := setupTestApp(t, routesLoader(routes, nil), nil)

		resp, err := app.Test(httptest.NewRequest("GET", "/remotes/scheduling/routes", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		body := decode(t, resp.Body)
		assert.Equal(t, "scheduling", body["name"])
		assert.Equal(t, false, body["fallback"])
		assert.Nil(t, body["error"])
		got := body["routes"].([]any)
		require.Len(t, got, 2)
		assert.Equal(t, "[function]", got[1].(map[string]any)["loadComponent"])
	})

	t.Run("Fallback", func(t *testing.T) {
		app, _ := setupTestApp(t, routesLoader(nil, errors.New("remoteEntry.js 404")), nil)

		resp, err := app.Test(httptest.NewRequest("GET", "/remotes/billing/routes", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		body := decode(t, resp.Body)
		assert.Equal(t, true, body["fallback"])
		assert.Contains(t, body["error"], "remoteEntry.js 404")
		assert.Equal(t, []any{map[string]any{"path": ""}}, body["routes"])
	})

	t.Run("Unknown", func(t *testing.T) {
		app, _ := setupTestApp(t, routesLoader(nil, nil), nil)

		resp, err := app.Test(httptest.NewRequest("GET", "/remotes/ghost/routes", nil))
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	})
}

func TestHandleSave(t *testing.T) {
	post := func(app *fiber.App, body string) int {
		req := httptest.NewRequest("POST", "/remotes", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	t.Run("NoStore", func(t *testing.T) {
		app, _ := setupTestApp(t, routesLoader(nil, nil), nil)
		assert.Equal(t, 503, post(app, `{"name":"x","entry_url":"https://cdn/x/remoteEntry.js","exposed_key":"./Module"}`))
	})

	t.Run("Created", func(t *testing.T) {
		app, svc := setupTestApp(t, routesLoader(nil, nil), newSQLiteStore(t))
		assert.Equal(t, 201, post(app, `{"name":"x","entry_url":"https://cdn/x/remoteEntry.js","exposed_key":"./Module"}`))

		_, err := svc.Find(context.Background(), "x")
		assert.NoError(t, err)
	})

	t.Run("Invalid", func(t *testing.T) {
		app, _ := setupTestApp(t, routesLoader(nil, nil), newSQLiteStore(t))
		assert.Equal(t, 400, post(app, `{"name":"x","entry_url":"ftp://cdn/x/remoteEntry.js","exposed_key":"./Module"}`))
		assert.Equal(t, 400, post(app, `{not json`))
	})
}

func TestHandleDelete(t *testing.T) {
	app, svc := setupTestApp(t, routesLoader(nil, nil), newSQLiteStore(t))
	require.NoError(t, svc.Save(context.Background(), remote.Definition{
		Name: "x", EntryURL: "https://cdn/x/remoteEntry.js", ExposedKey: "./Module",
	}))

	resp, err := app.Test(httptest.NewRequest("DELETE", "/remotes/x", nil))
	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("DELETE", "/remotes/x", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandleStylesheets(t *testing.T) {
	app := fiber.New()
	head := document.NewHead()
	head.Append(remote.Link{Href: "https://cdn/x/a.css", Key: "https://cdn/x/a.css"})
	NewHandler(NewService(nil, head, nil, nil, remote.Config{}, nil)).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/stylesheets", nil))
	require.NoError(t, err)
	body := decode(t, resp.Body)
	assert.Len(t, body["stylesheets"], 1)

	resp, err = app.Test(httptest.NewRequest("GET", "/stylesheets.html", nil))
	require.NoError(t, err)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	html, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(html), `<link rel="stylesheet" href="https://cdn/x/a.css"`)
}

func TestSanitize(t *testing.T) {
	in := []remote.RouteEntry{
		map[string]any{"path": "a", "children": []any{map[string]any{"guard": func() bool { return true }}}},
		"plain",
		nil,
	}
	out := Sanitize(in)

	children := out[0].(map[string]any)["children"].([]any)
	assert.Equal(t, "[function]", children[0].(map[string]any)["guard"])
	assert.Equal(t, "plain", out[1])
	assert.Nil(t, out[2])

	_, err := json.Marshal(out)
	assert.NoError(t, err)
}

func TestSanitize_TypedValues(t *testing.T) {
	guard := func() bool { return true }
	in := []remote.RouteEntry{
		remote.ModuleRecord{"path": "typed", "canActivate": guard},
		map[string]any{"children": []map[string]any{{"path": "child", "resolve": guard}}},
		map[string]any{"ids": map[int]any{1: guard}, "raw": []byte("ok"), "ch": make(chan int)},
		&map[string]any{"path": "ptr", "load": guard},
	}
	out := Sanitize(in)

	record, ok := out[0].(map[string]any)
	require.True(t, ok, "ModuleRecord becomes a plain map")
	assert.Equal(t, "typed", record["path"])
	assert.Equal(t, "[function]", record["canActivate"])

	children := out[1].(map[string]any)["children"].([]any)
	assert.Equal(t, "[function]", children[0].(map[string]any)["resolve"])

	misc := out[2].(map[string]any)
	assert.Equal(t, "[function]", misc["ids"].(map[string]any)["1"])
	assert.Equal(t, []byte("ok"), misc["raw"])
	assert.Nil(t, misc["ch"])

	assert.Equal(t, "[function]", out[3].(map[string]any)["load"])

	_, err := json.Marshal(out)
	assert.NoError(t, err)
}

func TestLoader(t *testing.T) {
	svc := newService(t, routesLoader(nil, nil), nil)
	feature := NewFeature(svc)

	assert.Equal(t, "remotes", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NoError(t, feature.Load(fiber.New()))

	assert.False(t, NewFeature(NewService(nil, nil, nil, nil, remote.Config{}, nil)).IsEnabled())
}
