package notifier

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
	"github.com/wneessen/go-mail"

	"github.com/openshift-online/heartbeat/pkg/config"
	"github.com/openshift-online/heartbeat/pkg/errors"
)

type fakeSender struct {
	mux      sync.Mutex
	messages []*mail.Msg
	err      error
}

func (f *fakeSender) DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error {
	f.mux.Lock()
	defer f.mux.Unlock()
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, messages...)
	return nil
}

func testSMTPConfig() *config.SMTPConfig {
	return &config.SMTPConfig{
		Hostname:    "smtp.example.com",
		Port:        587,
		Username:    "monitor",
		Password:    "secret",
		FromName:    "Heartbeat",
		FromEmail:   "heartbeat@example.com",
		ToName:      "Operations",
		ToEmail:     "ops@example.com",
		DownSubject: "%NAME% is down",
		DownBody:    "Server %NAME% (%UUID%) stopped sending heartbeats.",
		UpSubject:   "%NAME% is up",
		UpBody:      "Server %NAME% (%UUID%) is back online.",
		Timeout:     time.Second,
	}
}

func bodyOf(msg *mail.Msg) string {
	parts := msg.GetParts()
	Expect(parts).To(HaveLen(1))
	content, err := parts[0].GetContent()
	Expect(err).NotTo(HaveOccurred())
	return string(content)
}

func TestSMTPNotifierDown(t *testing.T) {
	RegisterTestingT(t)

	sender := &fakeSender{}
	n := newSMTPNotifier(sender, testSMTPConfig())
	id := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	Expect(n.Down(context.Background(), id, "alpha")).To(Succeed())
	Expect(sender.messages).To(HaveLen(1))

	msg := sender.messages[0]
	Expect(msg.GetGenHeader(mail.HeaderSubject)).To(Equal([]string{"alpha is down"}))
	Expect(bodyOf(msg)).To(Equal("Server alpha (11111111-1111-1111-1111-111111111111) stopped sending heartbeats."))
	Expect(msg.GetAddrHeaderString(mail.HeaderFrom)).To(ConsistOf(ContainSubstring("heartbeat@example.com")))
	Expect(msg.GetAddrHeaderString(mail.HeaderTo)).To(ConsistOf(ContainSubstring("ops@example.com")))
}

func TestSMTPNotifierUp(t *testing.T) {
	RegisterTestingT(t)

	sender := &fakeSender{}
	n := newSMTPNotifier(sender, testSMTPConfig())
	id := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	Expect(n.Up(context.Background(), id, "alpha")).To(Succeed())
	Expect(sender.messages).To(HaveLen(1))
	Expect(sender.messages[0].GetGenHeader(mail.HeaderSubject)).To(Equal([]string{"alpha is up"}))
	Expect(bodyOf(sender.messages[0])).To(Equal("Server alpha (11111111-1111-1111-1111-111111111111) is back online."))
}

func TestSMTPNotifierErrors(t *testing.T) {
	id := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	cases := []struct {
		name    string
		sendErr error
		mutate  func(c *config.SMTPConfig)
	}{
		{
			name:    "send failure",
			sendErr: fmt.Errorf("535 authentication failed"),
		},
		{
			name:   "invalid sender address",
			mutate: func(c *config.SMTPConfig) { c.FromEmail = "not an address" },
		},
		{
			name:   "invalid recipient address",
			mutate: func(c *config.SMTPConfig) { c.ToEmail = "not an address" },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			RegisterTestingT(t)
			c := testSMTPConfig()
			if tc.mutate != nil {
				tc.mutate(c)
			}
			sender := &fakeSender{err: tc.sendErr}
			n := newSMTPNotifier(sender, c)

			err := n.Down(context.Background(), id, "alpha")
			Expect(err).To(HaveOccurred())
			Expect(errors.IsNotificationError(err)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("alpha"))
			Expect(sender.messages).To(BeEmpty())
		})
	}
}

func TestNewSMTPNotifier(t *testing.T) {
	RegisterTestingT(t)

	n, err := NewSMTPNotifier(testSMTPConfig())
	Expect(err).NotTo(HaveOccurred())
	Expect(n).NotTo(BeNil())

	c := testSMTPConfig()
	c.Hostname = ""
	_, err = NewSMTPNotifier(c)
	Expect(err).To(HaveOccurred())
	Expect(errors.IsConfigError(err)).To(BeTrue())

	c = testSMTPConfig()
	c.Port = 70000
	_, err = NewSMTPNotifier(c)
	Expect(err).To(HaveOccurred())
	Expect(errors.IsConfigError(err)).To(BeTrue())
}

func TestLogNotifier(t *testing.T) {
	RegisterTestingT(t)

	n := NewLogNotifier(NewTemplates(testSMTPConfig()))
	id := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	Expect(n.Down(context.Background(), id, "alpha")).To(Succeed())
	Expect(n.Up(context.Background(), id, "alpha")).To(Succeed())
}
