package smtpingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-smtp"
	"go.uber.org/zap"

	"github.com/riskdash/riskdash/internal/core"
)

// Ingest is an SMTP front end for the risk engine. It accepts mail from an
// upstream MTA, scores the body, records the scan, and either rejects spam or
// relays the message onward with risk headers attached.
type Ingest struct {
	service      *core.AnalysisService
	logger       *zap.Logger
	listenAddr   string
	server       *smtp.Server
	blockSpam    bool
	statusHeader string
	scoreHeader  string
	flagsHeader  string
	relayAddr    string
	relayPort    int
	relayEnabled bool
}

// NewIngest creates a new SMTP ingest adapter.
func NewIngest(
	service *core.AnalysisService,
	logger *zap.Logger,
	listenAddr string,
	blockSpam bool,
	statusHeader string,
	scoreHeader string,
	flagsHeader string,
	relayAddr string,
	relayPort int,
	relayEnabled bool,
) *Ingest {
	return &Ingest{
		service:      service,
		logger:       logger,
		listenAddr:   listenAddr,
		blockSpam:    blockSpam,
		statusHeader: statusHeader,
		scoreHeader:  scoreHeader,
		flagsHeader:  flagsHeader,
		relayAddr:    relayAddr,
		relayPort:    relayPort,
		relayEnabled: relayEnabled,
	}
}

// Start starts the SMTP server in the background.
func (f *Ingest) Start() error {
	f.server = smtp.NewServer(&smtpBackend{ingest: f})
	f.server.Addr = f.listenAddr
	f.server.Domain = "localhost"
	f.server.ReadTimeout = 30 * time.Second
	f.server.WriteTimeout = 30 * time.Second
	f.server.MaxMessageBytes = 10 * 1024 * 1024
	f.server.MaxRecipients = 50
	f.server.AllowInsecureAuth = true

	f.logger.Info("SMTP ingest starting", zap.String("address", f.listenAddr))

	go func() {
		if err := f.server.ListenAndServe(); err != nil && err != smtp.ErrServerClosed {
			f.logger.Error("SMTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop stops the SMTP server.
func (f *Ingest) Stop() error {
	if f.server != nil {
		return f.server.Close()
	}
	return nil
}

// relay hands the tagged message on to the configured next hop.
func (f *Ingest) relay(sender string, recipients []string, data []byte) error {
	addr := fmt.Sprintf("%s:%d", f.relayAddr, f.relayPort)

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}

	conn, err := net.DialTimeout("tcp", addr, 10*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to relay: %w", err)
	}
	if err := conn.SetDeadline(time.Now().Add(30 * time.Second)); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set connection deadline: %w", err)
	}

	c := smtp.NewClient(conn)
	defer c.Close()

	if err := c.Hello(hostname); err != nil {
		return fmt.Errorf("EHLO failed: %w", err)
	}
	if err := c.Mail(sender, nil); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}

	accepted := false
	for _, rcpt := range recipients {
		if err := c.Rcpt(rcpt, nil); err != nil {
			f.logger.Warn("RCPT TO failed for recipient",
				zap.String("recipient", rcpt),
				zap.Error(err))
		} else {
			accepted = true
		}
	}
	if !accepted {
		return fmt.Errorf("all recipients were rejected")
	}

	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("DATA command failed: %w", err)
	}
	if _, err := wc.Write(data); err != nil {
		wc.Close()
		return fmt.Errorf("failed to send message data: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	if err := c.Quit(); err != nil {
		f.logger.Warn("QUIT command failed", zap.Error(err))
	}
	return nil
}

type smtpBackend struct {
	ingest *Ingest
}

func (b *smtpBackend) NewSession(c *smtp.Conn) (smtp.Session, error) {
	return &smtpSession{
		ingest:     b.ingest,
		recipients: make([]string, 0),
	}, nil
}

type smtpSession struct {
	ingest     *Ingest
	sender     string
	recipients []string
}

func (s *smtpSession) Reset() {
	s.sender = ""
	s.recipients = make([]string, 0)
}

func (s *smtpSession) AuthPlain(_ []byte) error {
	return smtp.ErrAuthUnsupported
}

func (s *smtpSession) Mail(from string, _ *smtp.MailOptions) error {
	s.sender = from
	return nil
}

func (s *smtpSession) Rcpt(to string, _ *smtp.RcptOptions) error {
	s.recipients = append(s.recipients, to)
	return nil
}

func (s *smtpSession) Data(r io.Reader) error {
	rawData, err := io.ReadAll(r)
	if err != nil {
		s.ingest.logger.Error("Failed to read message data", zap.Error(err))
		return err
	}

	msg, err := mail.ReadMessage(bytes.NewReader(rawData))
	if err != nil {
		s.ingest.logger.Error("Failed to parse message", zap.Error(err))
		return err
	}

	subject := msg.Header.Get("Subject")
	body, err := io.ReadAll(msg.Body)
	if err != nil {
		s.ingest.logger.Error("Failed to read message body", zap.Error(err))
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rec, err := s.ingest.service.Analyze(ctx, core.AnalyzeRequest{
		Content: subject + "\n" + string(body),
		Channel: core.ChannelEmail,
		Sender:  s.sender,
		Subject: subject,
	})
	if err != nil {
		s.ingest.logger.Error("Failed to analyze message", zap.Error(err))
		return err
	}

	if rec.Result == core.ResultSpam && s.ingest.blockSpam {
		s.ingest.logger.Info("Rejecting spam message",
			zap.String("from", s.sender),
			zap.Float64("risk_score", rec.RiskScore),
			zap.String("category", string(rec.Category)))
		return &smtp.SMTPError{
			Code:         550,
			EnhancedCode: smtp.EnhancedCode{5, 7, 1},
			Message:      fmt.Sprintf("Rejected as spam (risk score: %.0f)", rec.RiskScore),
		}
	}

	if s.ingest.relayEnabled {
		tagged := s.tagMessage(rawData, rec)
		if err := s.ingest.relay(s.sender, s.recipients, tagged); err != nil {
			s.ingest.logger.Error("Failed to relay message",
				zap.Error(err),
				zap.String("sender", s.sender))
			return err
		}
	}

	s.ingest.logger.Info("Processed message",
		zap.String("from", s.sender),
		zap.String("result", string(rec.Result)),
		zap.Float64("risk_score", rec.RiskScore))

	return nil
}

// tagMessage prepends the risk headers to the raw message, leaving the
// original headers and body untouched.
func (s *smtpSession) tagMessage(rawData []byte, rec *core.ScanRecord) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s: %s\r\n", s.ingest.statusHeader, rec.Result)
	fmt.Fprintf(&buf, "%s: %.0f\r\n", s.ingest.scoreHeader, rec.RiskScore)
	if len(rec.Flags) > 0 {
		fmt.Fprintf(&buf, "%s: %s\r\n", s.ingest.flagsHeader, strings.Join(rec.Flags, "; "))
	}
	buf.Write(rawData)
	return buf.Bytes()
}

func (s *smtpSession) Logout() error {
	return nil
}
