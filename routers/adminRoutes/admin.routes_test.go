package adminRoutes

import (
	"encoding/csv"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"tincadia/catalog"
	"tincadia/clients/backend"
	"tincadia/config"
	"tincadia/logger"
	"tincadia/middleware"
	"tincadia/services/forms"
	"tincadia/services/notifications"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/forms/submissions":
			_, _ = io.WriteString(w, `{"success":true,"data":[
				{"id":"1","formType":"contact","name":"Ana","email":"ana@example.com","phone":"300","createdAt":"2026-03-01T10:00:00Z","data":{"message":"hola"}},
				{"id":"2","formType":"business","name":"Inclusiva SAS","email":"rrhh@inclusiva.co","createdAt":"2026-03-04T10:00:00Z","data":{}},
				{"id":"3","formType":"contact","name":"Luis","email":"luis@example.com","createdAt":"2026-03-05T10:00:00Z","data":{}}]}`)
		case "/notifications":
			_, _ = io.WriteString(w, `{"success":true,"data":[{"id":"n1","type":"payment_approved","title":"Pago","createdAt":"2026-03-01T10:00:00Z"}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	config.AppConfig = &config.Config{JWTKey: "test-secret"}
	cat, err := catalog.Default()
	require.NoError(t, err)
	client := backend.New(backend.Config{BaseURL: srv.URL})

	app := fiber.New()
	SetupAdminRoutes(app, forms.NewInbox(client, cat), notifications.NewInbox(client, cat), logger.Nop())
	return app
}

func get(t *testing.T, app *fiber.App, path, role string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if role != "" {
		token, err := middleware.GenerateJWT("u-1", "Admin", role, "admin@tincadia.com")
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	app := newApp(t)

	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/admin/forms", "").StatusCode)
	assert.Equal(t, fiber.StatusForbidden, get(t, app, "/admin/forms", "student").StatusCode)
	assert.Equal(t, fiber.StatusOK, get(t, app, "/admin/forms", "admin").StatusCode)
}

func TestExportFormsCSV(t *testing.T) {
	app := newApp(t)

	resp := get(t, app, "/admin/forms/export?type=contact", "admin")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")

	records, err := csv.NewReader(resp.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Fecha", "Tipo", "Nombre", "Email", "Teléfono", "Documento"}, records[0])
	assert.Equal(t, "Luis", records[1][2])
	assert.Equal(t, "2", resp.Header.Get("X-Total-Count"))
}

func TestFormsRejectsBadDates(t *testing.T) {
	app := newApp(t)

	resp := get(t, app, "/admin/forms?from=2026-03-10&to=2026-03-01", "admin")
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp = get(t, app, "/admin/forms?from=ayer", "admin")
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp = get(t, app, "/admin/forms?from=2026-03-04&to=2026-03-05", "admin")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestNotificationsList(t *testing.T) {
	app := newApp(t)

	resp := get(t, app, "/admin/notifications?category=payments", "super_admin")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
