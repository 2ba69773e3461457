package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var venueSender = Sender{Email: "bot@venue.test", Name: "D-Space", ReplyTo: "hello@venue.test"}

func bookingMessage() Message {
	return Message{
		To:      "staff@venue.test",
		Subject: "Новая бронь",
		HTML:    "<p>hi</p>",
		Text:    "hi",
		Tag:     "booking",
	}
}

func TestBrevoProvider_Send(t *testing.T) {
	var got brevoEmailRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/smtp/email", r.URL.Path)
		assert.Equal(t, "key-1", r.Header.Get("api-key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	p := NewBrevoProvider("key-1", venueSender).WithBaseURL(srv.URL)
	require.NoError(t, p.Send(context.Background(), bookingMessage()))

	assert.Equal(t, "bot@venue.test", got.Sender.Email)
	assert.Equal(t, "D-Space", got.Sender.Name)
	require.Len(t, got.To, 1)
	assert.Equal(t, "staff@venue.test", got.To[0].Email)
	require.NotNil(t, got.ReplyTo)
	assert.Equal(t, "hello@venue.test", got.ReplyTo.Email)
	assert.Equal(t, "<p>hi</p>", got.HTMLContent)
	assert.Equal(t, "hi", got.TextContent)
	assert.Equal(t, []string{"booking"}, got.Tags)
	assert.Equal(t, "D-Space", got.Headers["X-Venue"])
}

func TestBrevoPayload_OmitsEmptyOptionals(t *testing.T) {
	p := NewBrevoProvider("k", Sender{Email: "bot@venue.test"})
	raw, err := json.Marshal(p.brevoPayload(Message{To: "a@b.c", Subject: "s", HTML: "b"}))
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "replyTo")
	assert.NotContains(t, string(raw), "tags")
	assert.NotContains(t, string(raw), "headers")
}

func TestResendProvider_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer rk", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid from"}`))
	}))
	defer srv.Close()

	p := NewResendProvider("rk", Sender{Email: "bot@venue.test"}).WithBaseURL(srv.URL)
	err := p.Send(context.Background(), Message{To: "staff@venue.test", Subject: "s", HTML: "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 422")
	assert.Contains(t, err.Error(), "invalid from")
}

func TestResendProvider_Payload(t *testing.T) {
	var got resendEmailRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewResendProvider("rk", venueSender).WithBaseURL(srv.URL)
	require.NoError(t, p.Send(context.Background(), bookingMessage()))

	assert.Equal(t, "D-Space <bot@venue.test>", got.From)
	assert.Equal(t, []string{"staff@venue.test"}, got.To)
	assert.Equal(t, []string{"hello@venue.test"}, got.ReplyTo)
	assert.Equal(t, "hi", got.Text)
	assert.Equal(t, []resendTag{{Name: "category", Value: "booking"}}, got.Tags)
	assert.Equal(t, "D-Space", got.Headers["X-Venue"])
}

func TestNewServiceFromConfig(t *testing.T) {
	svc, err := NewServiceFromConfig("none", "", "", Sender{})
	require.NoError(t, err)
	assert.Nil(t, svc)
	assert.Equal(t, "none", svc.GetProviderName())
	assert.Error(t, svc.Send(context.Background(), bookingMessage()))

	_, err = NewServiceFromConfig("brevo", "", "", Sender{Email: "bot@venue.test"})
	assert.Error(t, err)

	_, err = NewServiceFromConfig("mailgun", "", "", Sender{})
	assert.Error(t, err)

	svc, err = NewServiceFromConfig("Resend", "", "rk", Sender{Email: "bot@venue.test"})
	require.NoError(t, err)
	assert.Equal(t, "resend", svc.GetProviderName())
	assert.Error(t, svc.Send(context.Background(), Message{Subject: "no recipient"}))
}

func TestBuildHTML_EscapesValues(t *testing.T) {
	out := BuildHTML(TemplateData{
		Title:  "Новая бронь",
		Fields: []Field{{Label: "Имя", Value: "<script>x</script>"}},
		Footer: "f",
	})
	assert.Contains(t, out, "<h1>Новая бронь</h1>")
	assert.Contains(t, out, "&lt;script&gt;x&lt;/script&gt;")
	assert.NotContains(t, out, "<script>")
}

func TestBuildText(t *testing.T) {
	out := BuildText(TemplateData{
		Title:  "Новая бронь",
		Fields: []Field{{Label: "Имя", Value: "Анна"}, {Label: "Гостей", Value: "8"}},
		Footer: "Отправлено ассистентом «D-Space»",
	})
	assert.Equal(t, "Новая бронь\n\nИмя: Анна\nГостей: 8\n\n-- \nОтправлено ассистентом «D-Space»\n", out)
}
