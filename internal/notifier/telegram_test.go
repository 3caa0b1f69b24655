package notifier

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/go-cmp/cmp"
)

type mockAPI struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (m *mockAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		m.sent = append(m.sent, msg)
	}
	if m.err != nil {
		return tgbotapi.Message{}, m.err
	}
	return tgbotapi.Message{MessageID: len(m.sent)}, nil
}

func TestNotify(t *testing.T) {
	api := &mockAPI{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	n := NewWithAPI(api, 777, log)

	n.Notify("hello")

	if diff := cmp.Diff(1, len(api.sent)); diff != "" {
		t.Fatalf("sent count mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(int64(777), api.sent[0].ChatID); diff != "" {
		t.Errorf("chatID mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("hello", api.sent[0].Text); diff != "" {
		t.Errorf("text mismatch (-want +got):\n%s", diff)
	}
}

func TestNotifySwallowsSendError(t *testing.T) {
	api := &mockAPI{err: errors.New("telegram is down")}
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	n := NewWithAPI(api, 1, log)

	n.Notify("hello")
	n.Notify("again")

	if diff := cmp.Diff(2, len(api.sent)); diff != "" {
		t.Errorf("every notify should attempt a send (-want +got):\n%s", diff)
	}
	if !strings.Contains(buf.String(), "telegram is down") {
		t.Errorf("expected send failure to be logged, got %q", buf.String())
	}
}

type mockTransport struct {
	err  error
	reqs []*http.Request
	form []url.Values
}

func (m *mockTransport) Do(req *http.Request) (*http.Response, error) {
	m.reqs = append(m.reqs, req)
	if m.err != nil {
		return nil, m.err
	}
	body, _ := io.ReadAll(req.Body)
	form, _ := url.ParseQuery(string(body))
	m.form = append(m.form, form)
	return &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(strings.NewReader(`{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":777,"type":"private"}}}`)),
	}, nil
}

func TestNewWithClientWorksWhileNetworkIsDown(t *testing.T) {
	transport := &mockTransport{err: errors.New("dial tcp: lookup api.telegram.org: no such host")}
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	n := NewWithClient("123456:ABCDEF", 777, transport, log)

	if diff := cmp.Diff(0, len(transport.reqs)); diff != "" {
		t.Fatalf("construction should not touch the network (-want +got):\n%s", diff)
	}

	n.Notify("hello")

	if diff := cmp.Diff(1, len(transport.reqs)); diff != "" {
		t.Errorf("request count mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(buf.String(), "no such host") {
		t.Errorf("expected send failure to be logged, got %q", buf.String())
	}
}

func TestNewWithClientSendsMessage(t *testing.T) {
	transport := &mockTransport{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	n := NewWithClient("123456:ABCDEF", 777, transport, log)
	n.Notify("hello")

	if diff := cmp.Diff(1, len(transport.reqs)); diff != "" {
		t.Fatalf("request count mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("/bot123456:ABCDEF/sendMessage", transport.reqs[0].URL.Path); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("777", transport.form[0].Get("chat_id")); diff != "" {
		t.Errorf("chat_id mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("hello", transport.form[0].Get("text")); diff != "" {
		t.Errorf("text mismatch (-want +got):\n%s", diff)
	}
}
