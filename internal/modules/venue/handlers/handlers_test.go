package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/auth"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/export"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/filestore"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/llm"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/repositories"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/services"
)

type stubGenerator struct{}

func (stubGenerator) Generate(ctx context.Context, req llm.CompletionRequest) llm.Result {
	return llm.Result{Text: "ответ модели", OK: true}
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	dir := t.TempDir()
	files, err := filestore.New(filepath.Join(dir, "backups"))
	require.NoError(t, err)

	knowledgeRepo, err := repositories.NewKnowledgeRepo(files, filepath.Join(dir, "kb.json"), repositories.DefaultKnowledge("D-Space"))
	require.NoError(t, err)
	suggestionRepo, err := repositories.NewSuggestionRepo(files, filepath.Join(dir, "suggestions.json"))
	require.NoError(t, err)
	categoryRepo, err := repositories.NewCategoryRepo(files, filepath.Join(dir, "categories.json"))
	require.NoError(t, err)
	menuRepo := repositories.NewMenuRepo(files, filepath.Join(dir, "menu.json"))
	logRepo := repositories.NewChatLogRepo(files, filepath.Join(dir, "log.json"), 0)

	exporter := export.NewService("")
	knowledge := services.NewKnowledgeService(knowledgeRepo)
	suggestions := services.NewSuggestionService(suggestionRepo)
	chat := services.NewChatService(knowledgeRepo, suggestionRepo, menuRepo, logRepo, stubGenerator{}, services.NewHistory(10), "system")

	creds, err := auth.NewCredentials("admin", "secret")
	require.NoError(t, err)
	sessions := auth.NewSessions(time.Hour, false)

	bookingRepo := repositories.NewBookingRepo(files, filepath.Join(dir, "bookings.json"))
	h := &Handlers{
		Health:      NewHealthHandler(knowledge, "stub"),
		Chat:        NewChatHandler(chat, suggestions),
		Menu:        NewMenuHandler(services.NewMenuService(menuRepo, categoryRepo), "admin"),
		Booking:     NewBookingHandler(services.NewBookingService(bookingRepo, exporter), exporter),
		Feedback:    NewFeedbackHandler(services.NewFeedbackService(repositories.NewFeedbackRepo(files, filepath.Join(dir, "feedback.json")))),
		Admin:       NewAdminHandler(creds, sessions),
		Knowledge:   NewKnowledgeHandler(knowledge, "admin"),
		Suggestions: NewSuggestionHandler(suggestions, "admin"),
		Logs:        NewLogHandler(services.NewLogService(logRepo, exporter), knowledge, exporter, "admin"),
		Stats:       NewStatsHandler(services.NewStatsService(logRepo, bookingRepo)),
	}

	app := fiber.New(fiber.Config{UnescapePath: true})
	RegisterRoutes(app, h, sessions)
	return app
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	var r io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func login(t *testing.T, app *fiber.App) *http.Cookie {
	t.Helper()
	resp, err := app.Test(jsonRequest(http.MethodPost, "/admin/login", LoginRequest{Username: "admin", Password: "secret"}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, c := range resp.Cookies() {
		if c.Name == "session_id" {
			return c
		}
	}
	t.Fatal("no session cookie")
	return nil
}

func TestChat_KnowledgeAnswer(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/chat", ChatRequest{Message: "Привет"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, "knowledge_base", body["source"])
	assert.Contains(t, body["answer"], "D-Space")
	assert.Len(t, body["suggestions"], 2)
}

func TestAsk_LegacyShape(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/ask", AskRequest{Question: "где вы находитесь"}))
	require.NoError(t, err)
	body := decode(t, resp)
	assert.Equal(t, "ответ модели", body["answer"])
	assert.NotContains(t, body, "source")
}

func TestSuggestionEndpoints(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/suggestions/"+url.PathEscape("батуты"), nil))
	require.NoError(t, err)
	assert.Len(t, decode(t, resp)["suggestions"], 4)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/suggestions/unknown", nil))
	require.NoError(t, err)
	assert.Len(t, decode(t, resp)["suggestions"], 2)

	resp, err = app.Test(jsonRequest(http.MethodPost, "/suggestion-answer", AskRequest{Question: "нет такого"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(jsonRequest(http.MethodPost, "/suggestion-answer", AskRequest{Question: ""}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBooking_FormAndValidation(t *testing.T) {
	app := newTestApp(t)

	form := url.Values{"name": {"Анна"}, "phone": {"+7 900"}, "date": {"2024-06-01"}, "guests": {"abc"}, "event_type": {"ДР"}}
	req := httptest.NewRequest(http.MethodPost, "/booking", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode(t, resp)["error"], "guests")

	form.Set("guests", "8")
	req = httptest.NewRequest(http.MethodPost, "/booking", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestMenuDisplay(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/menu-display", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var items []map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 6)
	assert.Equal(t, "vr", items[0]["question"])
}

func TestAdmin_RequiresLogin(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/knowledge", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(jsonRequest(http.MethodPost, "/admin/login", LoginRequest{Username: "admin", Password: "wrong"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdmin_KnowledgeCRUD(t *testing.T) {
	app := newTestApp(t)
	cookie := login(t, app)

	do := func(req *http.Request) *http.Response {
		req.AddCookie(cookie)
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	resp := do(jsonRequest(http.MethodPost, "/admin/knowledge", KnowledgeRequest{Question: "да", Answer: "нет"}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(jsonRequest(http.MethodPost, "/admin/knowledge", KnowledgeRequest{Question: "Часы работы", Answer: "10-22"}))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(jsonRequest(http.MethodPost, "/admin/knowledge", KnowledgeRequest{Question: "часы работы", Answer: "10-23"}))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = do(jsonRequest(http.MethodPut, "/admin/knowledge", KnowledgeRequest{Question: "часы работы", NewQuestion: "режим работы", Answer: "10-23"}))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(httptest.NewRequest(http.MethodGet, "/admin/knowledge?q="+url.QueryEscape("10-23"), nil))
	body := decode(t, resp)
	assert.EqualValues(t, 1, body["total"])

	resp = do(httptest.NewRequest(http.MethodDelete, "/admin/knowledge?question="+url.QueryEscape("часы работы"), nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(httptest.NewRequest(http.MethodDelete, "/admin/knowledge?question="+url.QueryEscape("режим работы"), nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdmin_KnowledgeImportAndExport(t *testing.T) {
	app := newTestApp(t)
	cookie := login(t, app)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "kb.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("Question;Answer\nЦены на VR;от 300 ₽\nок;коротко\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/knowledge/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(cookie)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode(t, resp)
	assert.EqualValues(t, 1, body["added"])
	assert.Len(t, body["skipped"], 1)

	req = httptest.NewRequest(http.MethodGet, "/admin/knowledge/export?format=csv", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".csv")
	assert.Contains(t, string(data), "цены на vr;от 300 ₽")
}

func TestAdmin_CategoryRules(t *testing.T) {
	app := newTestApp(t)
	cookie := login(t, app)

	req := httptest.NewRequest(http.MethodDelete, "/admin/categories/events", nil)
	req.AddCookie(cookie)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	req = jsonRequest(http.MethodPost, "/admin/categories", CategoryRequest{Key: "parties", Name: "Вечеринки"})
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	req = httptest.NewRequest(http.MethodDelete, "/admin/categories/parties", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdmin_LogsAndEditResponse(t *testing.T) {
	app := newTestApp(t)
	cookie := login(t, app)

	_, err := app.Test(jsonRequest(http.MethodPost, "/chat", ChatRequest{Message: "есть ли парковка"}))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/logs", nil)
	req.AddCookie(cookie)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.EqualValues(t, 1, decode(t, resp)["total"])

	req = jsonRequest(http.MethodPost, "/admin/edit-response", EditResponseRequest{Question: "есть ли парковка", Answer: "Да, бесплатная"})
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest(http.MethodPost, "/chat", ChatRequest{Message: "Есть ли парковка"}))
	require.NoError(t, err)
	body := decode(t, resp)
	assert.Equal(t, "knowledge_base", body["source"])
	assert.Equal(t, "Да, бесплатная", body["answer"])

	req = httptest.NewRequest(http.MethodGet, "/admin/logs/export?format=docx", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAdmin_Logout(t *testing.T) {
	app := newTestApp(t)
	cookie := login(t, app)

	req := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	req.AddCookie(cookie)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdmin_Stats(t *testing.T) {
	app := newTestApp(t)
	cookie := login(t, app)

	_, err := app.Test(jsonRequest(http.MethodPost, "/chat", ChatRequest{Message: "Привет"}))
	require.NoError(t, err)
	_, err = app.Test(jsonRequest(http.MethodPost, "/chat", ChatRequest{Message: "есть ли парковка"}))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/stats?period=today", nil)
	req.AddCookie(cookie)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, "today", body["period"])
	cards := body["cards"].([]interface{})
	require.Len(t, cards, 4)
	assert.Equal(t, "2", cards[0].(map[string]interface{})["value"])
	unanswered := body["unanswered"].([]interface{})
	require.Len(t, unanswered, 1)
	assert.Equal(t, "есть ли парковка", unanswered[0].(map[string]interface{})["key"])

	req = httptest.NewRequest(http.MethodGet, "/admin/stats?period=forever", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	body := decode(t, resp)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "stub", body["provider"])
	assert.Greater(t, body["knowledge_entries"], float64(0))
}
