package services

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/export"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/filestore"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/kbfile"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/llm"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/notification"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/upload"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/models"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/repositories"
)

type fakeGenerator struct {
	calls   int
	lastReq llm.CompletionRequest
	result  llm.Result
}

func (g *fakeGenerator) Generate(ctx context.Context, req llm.CompletionRequest) llm.Result {
	g.calls++
	g.lastReq = req
	return g.result
}

type fixture struct {
	dir         string
	files       *filestore.Files
	knowledge   repositories.KnowledgeRepo
	suggestions repositories.SuggestionRepo
	menu        repositories.MenuRepo
	categories  repositories.CategoryRepo
	logs        repositories.ChatLogRepo
	generator   *fakeGenerator
	chat        *ChatService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	files, err := filestore.New(filepath.Join(dir, "backups"))
	require.NoError(t, err)

	knowledge, err := repositories.NewKnowledgeRepo(files, filepath.Join(dir, "kb.json"), repositories.DefaultKnowledge("D-Space"))
	require.NoError(t, err)
	suggestions, err := repositories.NewSuggestionRepo(files, filepath.Join(dir, "suggestions.json"))
	require.NoError(t, err)
	categories, err := repositories.NewCategoryRepo(files, filepath.Join(dir, "categories.json"))
	require.NoError(t, err)

	f := &fixture{
		dir:         dir,
		files:       files,
		knowledge:   knowledge,
		suggestions: suggestions,
		menu:        repositories.NewMenuRepo(files, filepath.Join(dir, "menu.json")),
		categories:  categories,
		logs:        repositories.NewChatLogRepo(files, filepath.Join(dir, "log.json"), 0),
		generator:   &fakeGenerator{result: llm.Result{Text: "ответ модели", OK: true}},
	}
	f.chat = NewChatService(f.knowledge, f.suggestions, f.menu, f.logs, f.generator, NewHistory(20), "system")
	return f
}

func (f *fixture) logEntries(t *testing.T) []models.LogEntry {
	t.Helper()
	entries, err := f.logs.List()
	require.NoError(t, err)
	return entries
}

func TestChat_SuggestionTriggerBeatsKnowledge(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.knowledge.Add("цены", "из базы знаний"))

	res := f.chat.Resolve(context.Background(), "u1", "  Цены ")

	assert.Equal(t, models.SourceSuggestionMap, res.Source)
	assert.Contains(t, res.Answer, "Цены зависят")
	assert.Len(t, res.Suggestions, 2)
	assert.Equal(t, 0, f.generator.calls)
}

func TestChat_KnowledgeHitSkipsModel(t *testing.T) {
	f := newFixture(t)

	res := f.chat.Resolve(context.Background(), "", "Привет")

	assert.Equal(t, models.SourceKnowledgeBase, res.Source)
	assert.Contains(t, res.Answer, "D-Space")
	assert.Equal(t, 0, f.generator.calls)

	entries := f.logEntries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, DefaultUserID, entries[0].UserID)
	assert.Equal(t, "привет", entries[0].Question)
	assert.Equal(t, models.DefaultTopic, entries[0].Topic)
}

func TestChat_ModelFallbackUsesMenuTopic(t *testing.T) {
	f := newFixture(t)

	res := f.chat.Resolve(context.Background(), "u1", " VR ")

	assert.Equal(t, models.SourceExternalModel, res.Source)
	assert.Equal(t, "ответ модели", res.Answer)
	assert.Equal(t, 1, f.generator.calls)
	assert.Equal(t, "VR", f.generator.lastReq.UserMessage)
	assert.Equal(t, "system", f.generator.lastReq.SystemPrompt)
	require.Len(t, res.Suggestions, 4)
	assert.Equal(t, "игры в vr", res.Suggestions[0].Question)
}

func TestChat_ModelSeesEarlierTurns(t *testing.T) {
	f := newFixture(t)

	f.chat.Resolve(context.Background(), "u1", "первый вопрос")
	f.chat.Resolve(context.Background(), "u1", "второй вопрос")

	require.Len(t, f.generator.lastReq.History, 2)
	assert.Equal(t, llm.RoleUser, f.generator.lastReq.History[0].Role)
	assert.Equal(t, "первый вопрос", f.generator.lastReq.History[0].Text)

	f.chat.Resolve(context.Background(), "u2", "третий вопрос")
	assert.Empty(t, f.generator.lastReq.History)
}

func TestChat_EmptyInput(t *testing.T) {
	f := newFixture(t)

	res := f.chat.Resolve(context.Background(), "u1", "   ")

	assert.Equal(t, MsgEmptyQuestion, res.Answer)
	assert.Equal(t, models.SourceError, res.Source)
	assert.NotNil(t, res.Suggestions)
	assert.Equal(t, 0, f.generator.calls)
	assert.Empty(t, f.logEntries(t))
}

func TestChat_ModelFailureIsLoggedAsError(t *testing.T) {
	f := newFixture(t)
	f.generator.result = llm.Result{Text: llm.MsgUnavailable, OK: false}

	res := f.chat.Resolve(context.Background(), "u1", "сколько стоит квест")

	assert.Equal(t, models.SourceError, res.Source)
	assert.Equal(t, llm.MsgUnavailable, res.Answer)
	assert.Empty(t, f.chat.History().Messages("u1"))

	entries := f.logEntries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, models.SourceError, entries[0].Source)
}

func TestHistory_KeepsNewestMessages(t *testing.T) {
	h := NewHistory(4)
	for _, text := range []string{"1", "2", "3", "4", "5", "6"} {
		h.Append("u", llm.Message{Role: llm.RoleUser, Text: text})
	}

	msgs := h.Messages("u")
	require.Len(t, msgs, 4)
	assert.Equal(t, "3", msgs[0].Text)
	assert.Equal(t, "6", msgs[3].Text)
}

func TestHistory_EvictIdle(t *testing.T) {
	h := NewHistory(10)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return now }

	h.Append("old", llm.Message{Role: llm.RoleUser, Text: "a"})
	now = now.Add(2 * time.Hour)
	h.Append("fresh", llm.Message{Role: llm.RoleUser, Text: "b"})

	assert.Equal(t, 1, h.EvictIdle(time.Hour))
	assert.Equal(t, 1, h.Users())
	assert.Nil(t, h.Messages("old"))
}

func TestMenuService_CategoryRules(t *testing.T) {
	f := newFixture(t)
	svc := NewMenuService(f.menu, f.categories)

	assert.ErrorIs(t, svc.DeleteCategory("admin", "events"), repositories.ErrSystemCategory)
	assert.ErrorIs(t, svc.AddCategory("admin", "Party Room", "Пати"), repositories.ErrInvalid)

	require.NoError(t, svc.AddCategory("admin", "party", "🥳 Вечеринки"))
	_, err := svc.Add("admin", MenuItemInput{AdminText: "Пати", DisplayText: "🥳 Пати", Question: "Пати", Category: "party"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteCategory("admin", "party"), ErrCategoryInUse)

	items, err := svc.List()
	require.NoError(t, err)
	_, err = svc.Delete("admin", len(items)-1)
	require.NoError(t, err)
	assert.NoError(t, svc.DeleteCategory("admin", "party"))
	assert.ErrorIs(t, svc.DeleteCategory("admin", "party"), repositories.ErrNotFound)
}

func TestMenuService_AddDefaults(t *testing.T) {
	f := newFixture(t)
	svc := NewMenuService(f.menu, f.categories)

	item, err := svc.Add("admin", MenuItemInput{AdminText: "Квест", DisplayText: "🔐 Квест", Question: " Квест "})
	require.NoError(t, err)
	assert.Equal(t, "attractions", item.Category)
	assert.Equal(t, models.DefaultTopic, item.SuggestionTopic)
	assert.Equal(t, "квест", item.Question)

	_, err = svc.Add("admin", MenuItemInput{AdminText: "X", DisplayText: "X", Question: "икс", Category: "nope"})
	assert.ErrorIs(t, err, repositories.ErrInvalid)

	byCat, err := svc.ByCategory("events")
	require.NoError(t, err)
	assert.Len(t, byCat, 3)
}

func TestSuggestionService(t *testing.T) {
	f := newFixture(t)
	svc := NewSuggestionService(f.suggestions)

	assert.Len(t, svc.ForTopic("unknown"), 2)
	assert.Len(t, svc.ForTopic("vr"), 4)

	_, err := svc.Answer("  ")
	assert.ErrorIs(t, err, repositories.ErrInvalid)
	_, err = svc.Answer("нет такого")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	answer, err := svc.Answer("Стоимость VR")
	require.NoError(t, err)
	assert.Contains(t, answer, "300")

	assert.ErrorIs(t, svc.Add("admin", SuggestionInput{Topic: "vr", Text: "Часы"}), repositories.ErrInvalid)
	require.NoError(t, svc.Add("admin", SuggestionInput{Topic: "Нерф", Text: "Цены", Question: "Стоимость нерфа", Answer: "от 2500"}))
	items := svc.ForTopic("нерф")
	require.Len(t, items, 1)
	assert.Equal(t, "стоимость нерфа", items[0].Question)
}

func TestChat_MixedCaseTopicFromFile(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(f.dir, "custom_suggestions.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"VR": [
			{"text": "Цены", "question": "цены vr", "answer": "300 ₽"},
			{"text": "Возраст", "question": "возраст vr", "answer": "с 7 лет"}
		],
		"vr": [
			{"text": "Время", "question": "время vr", "answer": "15 минут"}
		]
	}`), 0o644))
	suggestions, err := repositories.NewSuggestionRepo(f.files, path)
	require.NoError(t, err)
	chat := NewChatService(f.knowledge, suggestions, f.menu, f.logs, f.generator, NewHistory(20), "system")

	res := chat.Resolve(context.Background(), "u1", "цены VR")

	assert.Equal(t, models.SourceSuggestionMap, res.Source)
	assert.Equal(t, "300 ₽", res.Answer)
	require.Len(t, res.Suggestions, 3)
	assert.Equal(t, "Цены", res.Suggestions[0].Text)
	assert.Equal(t, "Время", res.Suggestions[2].Text)
	assert.Equal(t, []string{"vr"}, suggestions.Topics())
}

func TestSuggestionService_DeleteMatchesAddNormalization(t *testing.T) {
	f := newFixture(t)
	svc := NewSuggestionService(f.suggestions)

	require.NoError(t, svc.Add("admin", SuggestionInput{Topic: "Party", Text: "Цены", Question: "цены пати", Answer: "от 5000"}))
	require.Len(t, svc.ForTopic("Party"), 1)

	require.NoError(t, svc.Delete("admin", " Party ", "Цены"))
	items, _ := f.suggestions.Items("party")
	assert.Empty(t, items)
}

func TestMenuService_DeleteCategoryMatchesAddNormalization(t *testing.T) {
	f := newFixture(t)
	svc := NewMenuService(f.menu, f.categories)

	require.NoError(t, svc.AddCategory("admin", "Party", "🥳 Вечеринки"))
	require.NoError(t, svc.DeleteCategory("admin", "Party"))
	assert.ErrorIs(t, svc.DeleteCategory("admin", "party"), repositories.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteCategory("admin", " EVENTS "), repositories.ErrSystemCategory)
}

func TestKnowledgeService_ImportCSV(t *testing.T) {
	f := newFixture(t)
	svc := NewKnowledgeService(f.knowledge)

	csv := "Question;Answer\nЧасы работы;С 10 до 22\n;По выходным до 23\nда;коротко\nпривет;Здравствуйте!\n"
	res, err := svc.Import("admin", kbfile.FormatCSV, strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 1, res.Updated)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "да", res.Skipped[0].Question)

	answer, ok := f.knowledge.Lookup("часы работы")
	require.True(t, ok)
	assert.Equal(t, "С 10 до 22\nПо выходным до 23", answer)

	_, err = svc.Import("admin", kbfile.FormatCSV, strings.NewReader("foo;bar\n"))
	assert.ErrorIs(t, err, repositories.ErrInvalid)
}

func TestKnowledgeService_ExportJSON(t *testing.T) {
	f := newFixture(t)
	svc := NewKnowledgeService(f.knowledge)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(kbfile.FormatJSON, &buf))
	assert.Contains(t, buf.String(), `"привет"`)
}

func TestBookingService_Validation(t *testing.T) {
	f := newFixture(t)
	svc := NewBookingService(repositories.NewBookingRepo(f.files, filepath.Join(f.dir, "bookings.json")), export.NewService(""))

	_, err := svc.Create(BookingInput{Name: "Анна", Phone: "+7", Date: "2024-06-01", Guests: "0", EventType: "ДР"})
	assert.ErrorIs(t, err, repositories.ErrInvalid)
	_, err = svc.Create(BookingInput{Name: "Анна", Phone: "+7", Date: "2024-06-01", Guests: "10"})
	assert.ErrorIs(t, err, repositories.ErrInvalid)

	b, err := svc.Create(BookingInput{Name: " Анна ", Phone: "+7 900", Date: "2024-06-01", Guests: "12", EventType: "День рождения"})
	require.NoError(t, err)
	assert.Equal(t, "Анна", b.Name)
	assert.Equal(t, 12, b.Guests)

	list, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, list, 1)

	data, err := svc.Export(export.FormatCSV)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Анна;+7 900;2024-06-01;12;День рождения")
}

type recordingNotifier struct {
	got []notification.Notification
}

func (r *recordingNotifier) Enqueue(n notification.Notification) bool {
	r.got = append(r.got, n)
	return true
}

func TestBookingService_NotifiesStaff(t *testing.T) {
	f := newFixture(t)
	rec := &recordingNotifier{}
	svc := NewBookingService(repositories.NewBookingRepo(f.files, filepath.Join(f.dir, "bookings.json")), export.NewService("")).
		WithNotifier(rec)

	_, err := svc.Create(BookingInput{Name: "Анна", Phone: "+7", Date: "2024-06-01", Guests: "-1", EventType: "ДР"})
	require.Error(t, err)
	assert.Empty(t, rec.got)

	_, err = svc.Create(BookingInput{Name: "Анна", Phone: "+7 900", Date: "2024-06-01", Guests: "8", EventType: "ДР"})
	require.NoError(t, err)
	require.Len(t, rec.got, 1)
	assert.Equal(t, "Новая бронь: 2024-06-01, Анна", rec.got[0].Subject)
	assert.Equal(t, "booking", rec.got[0].Kind)
	assert.Equal(t, "8", rec.got[0].Fields[3].Value)
}

func TestLogService_NewestFirst(t *testing.T) {
	f := newFixture(t)
	svc := NewLogService(f.logs, export.NewService(""))

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for i, q := range []string{"первый", "второй", "третий"} {
		require.NoError(t, f.logs.Append(&models.LogEntry{
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Question:  q,
			Answer:    "a",
			Source:    models.SourceKnowledgeBase,
		}))
	}

	recent, err := svc.Recent(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "третий", recent[0].Question)
	assert.Equal(t, "второй", recent[1].Question)

	data, err := svc.ExportJSON()
	require.NoError(t, err)
	assert.Less(t, strings.Index(string(data), "первый"), strings.Index(string(data), "третий"))

	xlsx, err := svc.ExportTable(export.FormatExcel)
	require.NoError(t, err)
	assert.NotEmpty(t, xlsx)
}

func TestFeedbackService(t *testing.T) {
	f := newFixture(t)
	svc := NewFeedbackService(repositories.NewFeedbackRepo(f.files, filepath.Join(f.dir, "feedback.json")))

	assert.ErrorIs(t, svc.Submit("q", " "), repositories.ErrInvalid)
	require.NoError(t, svc.Submit("цены", "👍"))

	list, err := svc.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].Timestamp.IsZero())
}

func TestMaintenanceService_SnapshotAndPrune(t *testing.T) {
	f := newFixture(t)
	kbPath := filepath.Join(f.dir, "kb.json")
	missing := filepath.Join(f.dir, "missing.json")
	svc := NewMaintenanceService(f.files, []string{kbPath, missing}, 2, NewHistory(5), time.Hour)

	for i := 0; i < 3; i++ {
		created, err := svc.Snapshot()
		require.NoError(t, err)
		assert.Len(t, created, 1)
	}

	pruned, err := svc.Prune()
	require.NoError(t, err)
	assert.Equal(t, 1, pruned)

	backups, err := f.files.ListBackups(kbPath)
	require.NoError(t, err)
	assert.Len(t, backups, 2)
	assert.Equal(t, 0, svc.EvictIdle())
}

func TestMaintenanceService_CopiesSnapshotsOffsite(t *testing.T) {
	f := newFixture(t)
	mirror := t.TempDir()
	local, err := upload.NewLocalProvider(mirror)
	require.NoError(t, err)

	svc := NewMaintenanceService(f.files, []string{filepath.Join(f.dir, "kb.json")}, 0, nil, 0).
		WithOffsite(upload.NewService(local, "daily"))

	created, err := svc.Snapshot()
	require.NoError(t, err)
	require.Len(t, created, 1)

	n, err := svc.CopyOffsite(context.Background(), created)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.FileExists(t, filepath.Join(mirror, "daily", filepath.Base(created[0])))

	n, err = NewMaintenanceService(f.files, nil, 0, nil, 0).CopyOffsite(context.Background(), created)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestStatsService_Compute(t *testing.T) {
	f := newFixture(t)
	bookings := repositories.NewBookingRepo(f.files, filepath.Join(f.dir, "bookings.json"))
	now := time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC)

	add := func(at time.Time, q, source string) {
		require.NoError(t, f.logs.Append(&models.LogEntry{Timestamp: at, Question: q, Answer: "a", Source: source}))
	}
	add(now.Add(-time.Hour), "цены", models.SourceKnowledgeBase)
	add(now.Add(-2*time.Hour), "парковка", models.SourceExternalModel)
	add(now.AddDate(0, 0, -1), "парковка", models.SourceExternalModel)
	add(now.AddDate(0, 0, -2), "vr", models.SourceSuggestionMap)
	add(now.AddDate(0, 0, -10), "старый", models.SourceKnowledgeBase)

	require.NoError(t, bookings.Create(&models.Booking{Name: "Анна", Phone: "+7", Date: "2024-06-20", Guests: 10, EventType: "ДР", CreatedAt: now.Add(-time.Hour)}))

	svc := NewStatsService(f.logs, bookings)
	svc.now = func() time.Time { return now }

	stats, err := svc.Compute("")
	require.NoError(t, err)
	assert.Equal(t, DefaultStatsPeriod, stats.Period)
	require.Len(t, stats.Cards, 4)
	assert.Equal(t, "4", stats.Cards[0].Value)
	assert.Equal(t, "50.0%", stats.Cards[1].Value)
	assert.Equal(t, "1", stats.Cards[2].Value)
	assert.Equal(t, "10", stats.Cards[3].Value)

	require.NotEmpty(t, stats.Unanswered)
	assert.Equal(t, "парковка", stats.Unanswered[0].Key)
	assert.Equal(t, 2, stats.Unanswered[0].Count)

	assert.Len(t, stats.QuestionsPerDay.Labels, 7)
	assert.Equal(t, 2, stats.QuestionsPerDay.Data[0].Values[6])
	assert.Equal(t, []string{models.SourceExternalModel, models.SourceKnowledgeBase, models.SourceSuggestionMap}, stats.Sources.Labels)

	_, err = svc.Compute("forever")
	assert.ErrorIs(t, err, repositories.ErrInvalid)
}
