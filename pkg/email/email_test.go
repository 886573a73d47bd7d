package email

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"go-website-backend/config"
	"go-website-backend/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, from string, msg Message) error {
	return m.Called(ctx, from, msg).Error(0)
}

func (m *MockSender) Name() string { return "mock" }

func TestValidAddress(t *testing.T) {
	assert.True(t, ValidAddress("jane@example.com"))
	assert.False(t, ValidAddress("jane@example"))
	assert.False(t, ValidAddress("jane@example.com\r\nBcc: all@example.com"))
	assert.False(t, ValidAddress("jane@example.com\n"))
	assert.False(t, ValidAddress("jane\x00@example.com"))
	assert.False(t, ValidAddress(""))
}

func TestSanitizeSubject(t *testing.T) {
	assert.Equal(t, "Hello  Bcc: x@example.com", SanitizeSubject("Hello\r\nBcc: x@example.com"))
	assert.NotContains(t, SanitizeSubject("a\nb\rc"), "\n")

	long := strings.Repeat("a", 997) + "é" // 999 bytes, é straddles the limit
	got := SanitizeSubject(long)
	assert.LessOrEqual(t, len(got), MaxSubjectLength)
	assert.Equal(t, strings.Repeat("a", 997), got)

	assert.Len(t, SanitizeSubject(strings.Repeat("b", 2000)), MaxSubjectLength)
}

func TestDispatcher_Send(t *testing.T) {
	t.Run("sanitizes subject before handing off", func(t *testing.T) {
		sender := new(MockSender)
		d := NewDispatcher(sender, "site@example.com", zap.NewNop(), nil)

		sender.On("Send", mock.Anything, "site@example.com", mock.MatchedBy(func(msg Message) bool {
			return msg.Subject == "Hi  there" && msg.HTML == "<p>x</p>"
		})).Return(nil).Once()

		err := d.Send(context.Background(), Message{
			To:      []string{"owner@example.com"},
			Subject: "Hi\r\nthere",
			HTML:    "<p>x</p>",
		})
		require.NoError(t, err)
		sender.AssertExpectations(t)
	})

	t.Run("rejects injected recipient without sending", func(t *testing.T) {
		sender := new(MockSender)
		d := NewDispatcher(sender, "site@example.com", zap.NewNop(), nil)

		err := d.Send(context.Background(), Message{To: []string{"a@example.com\r\nBcc: b@example.com"}})
		assert.ErrorIs(t, err, ErrInvalidAddress)

		err = d.Send(context.Background(), Message{To: []string{"a@example.com"}, ReplyTo: "bad\n@example.com"})
		assert.ErrorIs(t, err, ErrInvalidAddress)

		err = d.Send(context.Background(), Message{})
		assert.ErrorIs(t, err, ErrInvalidAddress)

		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("provider error is opaque", func(t *testing.T) {
		sender := new(MockSender)
		m := metrics.New()
		d := NewDispatcher(sender, "site@example.com", zap.NewNop(), m)
		sender.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("api key sk_live_123 rejected"))

		err := d.Send(context.Background(), Message{To: []string{"owner@example.com"}})
		assert.Equal(t, ErrSendFailed, err)
		assert.NotContains(t, err.Error(), "sk_live")
	})

	t.Run("best effort swallows failure", func(t *testing.T) {
		sender := new(MockSender)
		d := NewDispatcher(sender, "site@example.com", zap.NewNop(), nil)
		sender.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("down"))

		assert.NotPanics(t, func() {
			d.SendBestEffort(context.Background(), Message{To: []string{"user@example.com"}})
		})
		sender.AssertNumberOfCalls(t, "Send", 1)
	})
}

func TestSMTPSender(t *testing.T) {
	s := NewSMTPSender("smtp.example.com", "587", "user", "pass")
	require.True(t, s.IsConfigured())

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	s.sendMail = func(_ context.Context, addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	err := s.Send(context.Background(), "site@example.com", Message{
		To:      []string{"owner@example.com"},
		Subject: "Contact Form: Grüße",
		HTML:    "<p>hi</p>",
		ReplyTo: "jane@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "site@example.com", gotFrom)
	assert.Equal(t, []string{"owner@example.com"}, gotTo)
	raw := string(gotMsg)
	assert.Contains(t, raw, "Reply-To: jane@example.com\r\n")
	assert.Contains(t, raw, "Subject: =?UTF-8?q?")
	assert.Contains(t, raw, "Content-Type: text/html; charset=UTF-8\r\n\r\n<p>hi</p>")
}

func TestSMTPSender_ContextCancelled(t *testing.T) {
	s := NewSMTPSender("smtp.example.com", "587", "user", "pass")
	block := make(chan struct{})
	defer close(block)
	s.sendMail = func(context.Context, string, smtp.Auth, string, []string, []byte) error {
		<-block
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := s.Send(ctx, "site@example.com", Message{To: []string{"owner@example.com"}})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSMTPSender_TimeoutBoundsDetachedContext(t *testing.T) {
	s := NewSMTPSender("smtp.example.com", "587", "user", "pass")
	s.timeout = 50 * time.Millisecond
	block := make(chan struct{})
	defer close(block)
	s.sendMail = func(context.Context, string, smtp.Auth, string, []string, []byte) error {
		<-block
		return nil
	}

	d := NewDispatcher(s, "site@example.com", zap.NewNop(), nil)
	reqCtx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		d.SendBestEffort(context.WithoutCancel(reqCtx), Message{To: []string{"user@example.com"}, Subject: "Thanks"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("best-effort send was not bounded by the SMTP timeout")
	}
}

func TestSMTPSender_StalledRelay(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	// Accept and never greet, like a relay that hangs after TCP connect.
	held := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			held <- conn
		}
	}()
	defer func() {
		select {
		case conn := <-held:
			conn.Close()
		default:
		}
	}()

	host, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	s := NewSMTPSender(host, port, "user", "pass")
	s.timeout = 100 * time.Millisecond

	start := time.Now()
	err = s.deliver(timeoutCtx(t, s.timeout), ln.Addr().String(), nil, "site@example.com", []string{"owner@example.com"}, []byte("hi"))
	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func timeoutCtx(t *testing.T, d time.Duration) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	t.Cleanup(cancel)
	return ctx
}

func TestResendSender(t *testing.T) {
	var got resendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		if got.Subject == "fail" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"message":"invalid from"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"abc"}`))
	}))
	defer srv.Close()

	s := NewResendSender("re_test").WithEndpoint(srv.URL)

	err := s.Send(context.Background(), "site@example.com", Message{
		To: []string{"owner@example.com"}, Subject: "ok", HTML: "<p>x</p>", ReplyTo: "jane@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "site@example.com", got.From)
	assert.Equal(t, "jane@example.com", got.ReplyTo)

	err = s.Send(context.Background(), "site@example.com", Message{To: []string{"owner@example.com"}, Subject: "fail"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")

	assert.Error(t, s.Send(context.Background(), "", Message{To: []string{"owner@example.com"}}))
}

func TestNewSender(t *testing.T) {
	t.Run("resend wins", func(t *testing.T) {
		s, from := NewSender(&config.Config{ResendAPIKey: "re_x", EmailFrom: "site@example.com", SMTPHost: "h", SMTPUsername: "u", SMTPPassword: "p"}, zap.NewNop())
		assert.Equal(t, "resend", s.Name())
		assert.Equal(t, "site@example.com", from)
	})

	t.Run("smtp falls back to login as sender", func(t *testing.T) {
		s, from := NewSender(&config.Config{SMTPHost: "h", SMTPPort: "587", SMTPUsername: "u@example.com", SMTPPassword: "p"}, zap.NewNop())
		assert.Equal(t, "smtp", s.Name())
		assert.Equal(t, "u@example.com", from)
	})

	t.Run("log when nothing configured", func(t *testing.T) {
		s, _ := NewSender(&config.Config{}, zap.NewNop())
		assert.Equal(t, "log", s.Name())
		assert.NoError(t, s.Send(context.Background(), "x@example.com", Message{To: []string{"a@example.com"}, HTML: strings.Repeat("x", 500)}))
	})
}

func TestTemplatesEscapeUserInput(t *testing.T) {
	html, err := RenderContactNotification(ContactEmailData{
		SenderName:  `<script>alert("x")</script>`,
		SenderEmail: "jane@example.com",
		Subject:     "Tom & Jerry",
		Message:     "line one\n<b>line two</b>",
	})
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;alert(&quot;x&quot;)&lt;&#x2F;script&gt;")
	assert.Contains(t, html, "Tom &amp; Jerry")
	assert.Contains(t, html, "line one<br>&lt;b&gt;line two&lt;&#x2F;b&gt;")

	reply, err := RenderContactAutoReply("O'Brien")
	require.NoError(t, err)
	assert.Contains(t, reply, "Hi O&#x27;Brien,")

	note, err := RenderNewsletterNotification("sub@example.com")
	require.NoError(t, err)
	assert.Contains(t, note, "sub@example.com")

	welcome, err := RenderNewsletterWelcome()
	require.NoError(t, err)
	assert.Contains(t, welcome, "Welcome to our newsletter!")
}
