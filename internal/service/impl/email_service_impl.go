package impl

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"portfolio/internal/observability/metrics"
	"portfolio/internal/observability/middleware"

	"github.com/wneessen/go-mail"
)

type MailConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromName    string
	FrontendURL string
}

// mailSender is the part of *mail.Client the service uses.
type mailSender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// EmailServiceImpl renders HTML templates and delivers them over SMTP.
type EmailServiceImpl struct {
	cfg    MailConfig
	sender mailSender
}

func NewEmailServiceSMTP(cfg MailConfig) (*EmailServiceImpl, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(15 * time.Second),
	}
	if cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	}
	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &EmailServiceImpl{cfg: cfg, sender: client}, nil
}

var (
	verificationTmpl = template.Must(template.New("verification").Parse(`<!DOCTYPE html>
<html><body style="font-family:Arial,sans-serif;color:#1f2937">
<h2>Halo {{.Name}},</h2>
<p>Gunakan kode berikut untuk memverifikasi akun Anda:</p>
<p style="font-size:28px;font-weight:bold;letter-spacing:6px">{{.Code}}</p>
<p>Kode ini berlaku selama {{.Minutes}} menit. Abaikan email ini jika Anda tidak merasa mendaftar.</p>
</body></html>`))

	welcomeTmpl = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html><body style="font-family:Arial,sans-serif;color:#1f2937">
<h2>Selamat datang, {{.Name}}!</h2>
<p>Akun Anda sudah aktif. Terima kasih telah bergabung.</p>
<p><a href="{{.URL}}">Kunjungi situs</a></p>
</body></html>`))
)

func (e *EmailServiceImpl) SendVerification(ctx context.Context, to, name, code string) error {
	body, err := render(verificationTmpl, map[string]any{
		"Name":    name,
		"Code":    code,
		"Minutes": int(verificationTTL / time.Minute),
	})
	if err != nil {
		return err
	}
	return e.send(ctx, "verification", to, "Kode Verifikasi Akun Anda", body)
}

func (e *EmailServiceImpl) SendWelcome(ctx context.Context, to, name string) error {
	body, err := render(welcomeTmpl, map[string]any{"Name": name, "URL": e.cfg.FrontendURL})
	if err != nil {
		return err
	}
	return e.send(ctx, "welcome", to, "Selamat Datang!", body)
}

func (e *EmailServiceImpl) send(ctx context.Context, tmpl, to, subject, body string) error {
	result := "success"
	defer func() {
		metrics.EmailsSentTotal.WithLabelValues(tmpl, result).Inc()
	}()

	msg := mail.NewMsg()
	if err := msg.FromFormat(e.cfg.FromName, e.cfg.Username); err != nil {
		result = "failure"
		return fmt.Errorf("mail from: %w", err)
	}
	if err := msg.To(to); err != nil {
		result = "failure"
		return fmt.Errorf("mail to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, body)

	if err := e.sender.DialAndSendWithContext(ctx, msg); err != nil {
		result = "failure"
		slog.Error("send email failed", append([]any{"template", tmpl, "to", to, "error", err}, middleware.LogAttrs(ctx)...)...)
		return fmt.Errorf("send %s email: %w", tmpl, err)
	}
	slog.Info("email sent", append([]any{"template", tmpl, "to", to}, middleware.LogAttrs(ctx)...)...)
	return nil
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}
