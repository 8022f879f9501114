package sender

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/talent-marketplace/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/talent-marketplace/internal/lib/smtp"
)

type MockTransport struct{ mock.Mock }

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *MockTransport) From() string {
	return m.Called().String(0)
}

type MockSMTPClient struct{ mock.Mock }

func (m *MockSMTPClient) Mail(from string) error { return m.Called(from).Error(0) }
func (m *MockSMTPClient) Rcpt(to string) error   { return m.Called(to).Error(0) }
func (m *MockSMTPClient) Quit() error            { return m.Called().Error(0) }
func (m *MockSMTPClient) Close() error           { return m.Called().Error(0) }

func (m *MockSMTPClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

// bufWriter запоминает записанное письмо.
type bufWriter struct {
	strings.Builder
	closed bool
}

func (w *bufWriter) Close() error {
	w.closed = true
	return nil
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const validJob = `{"notification_id":"n1","user_id":"u1","email":"talent@example.com","type":"CONTACT_REQUEST","subject":"New contact request","body":"Hello"}`

func TestService_HandleEmailJob_Success(t *testing.T) {
	transport := new(MockTransport)
	client := new(MockSMTPClient)
	writer := &bufWriter{}

	transport.On("From").Return("no-reply@example.com")
	transport.On("Connect").Return(client, nil).Once()
	client.On("Mail", "no-reply@example.com").Return(nil).Once()
	client.On("Rcpt", "talent@example.com").Return(nil).Once()
	client.On("Data").Return(writer, nil).Once()
	client.On("Quit").Return(nil).Once()
	client.On("Close").Return(nil).Once()

	svc := NewService(transport, newNoopLogger())
	require.NoError(t, svc.HandleEmailJob(context.Background(), []byte(validJob)))

	assert.True(t, writer.closed)
	body := writer.String()
	assert.Contains(t, body, "Subject: New contact request\r\n")
	assert.Contains(t, body, "To: talent@example.com\r\n")
	assert.True(t, strings.HasSuffix(body, "\r\n\r\nHello"))
	transport.AssertExpectations(t)
	client.AssertExpectations(t)
}

func TestService_HandleEmailJob_Dropped(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "invalid JSON", body: `invalid json`},
		{name: "missing recipient", body: `{"user_id":"u1","subject":"hi"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := new(MockTransport)
			svc := NewService(transport, newNoopLogger())

			err := svc.HandleEmailJob(context.Background(), []byte(tt.body))
			assert.ErrorIs(t, err, rabbitmq.ErrPermanent)
			transport.AssertNotCalled(t, "Connect")
		})
	}
}

func TestService_HandleEmailJob_TransportErrors(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(*MockTransport, *MockSMTPClient)
		want      string
		permanent bool
	}{
		{
			name: "connect error",
			setup: func(tr *MockTransport, _ *MockSMTPClient) {
				tr.On("Connect").Return(nil, errors.New("connection error")).Once()
			},
			want: "connection error",
		},
		{
			name: "auth rejected at connect is retried",
			setup: func(tr *MockTransport, _ *MockSMTPClient) {
				tr.On("Connect").Return(nil, &textproto.Error{Code: 535, Msg: "authentication failed"}).Once()
			},
			want: "535",
		},
		{
			name: "rcpt rejected permanently",
			setup: func(tr *MockTransport, c *MockSMTPClient) {
				tr.On("Connect").Return(c, nil).Once()
				c.On("Mail", "no-reply@example.com").Return(nil)
				c.On("Rcpt", "talent@example.com").Return(&textproto.Error{Code: 550, Msg: "mailbox unavailable"})
				c.On("Close").Return(nil)
			},
			want:      "550 mailbox unavailable",
			permanent: true,
		},
		{
			name: "mailbox busy",
			setup: func(tr *MockTransport, c *MockSMTPClient) {
				tr.On("Connect").Return(c, nil).Once()
				c.On("Mail", "no-reply@example.com").Return(&textproto.Error{Code: 451, Msg: "try again later"})
				c.On("Close").Return(nil)
			},
			want: "451",
		},
		{
			name: "data error",
			setup: func(tr *MockTransport, c *MockSMTPClient) {
				tr.On("Connect").Return(c, nil).Once()
				c.On("Mail", "no-reply@example.com").Return(nil)
				c.On("Rcpt", "talent@example.com").Return(nil)
				c.On("Data").Return(nil, errors.New("data refused"))
				c.On("Close").Return(nil)
			},
			want: "data refused",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := new(MockTransport)
			client := new(MockSMTPClient)
			transport.On("From").Return("no-reply@example.com")
			tt.setup(transport, client)

			svc := NewService(transport, newNoopLogger())
			err := svc.HandleEmailJob(context.Background(), []byte(validJob))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Contains(t, err.Error(), "sender.HandleEmailJob")
			assert.Equal(t, tt.permanent, errors.Is(err, rabbitmq.ErrPermanent))
		})
	}
}

func TestSanitizeHeader(t *testing.T) {
	assert.Equal(t, "a  b", sanitizeHeader("a\r\nb"))
}
