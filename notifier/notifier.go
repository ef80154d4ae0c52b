// Package notifier tells the warehouse when materials run low.
package notifier

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"sync"

	"pos-kemasan/models"

	"gopkg.in/gomail.v2"
)

// LowStockNotifier receives materials whose stock fell to or below their
// threshold. Implementations must not block the caller.
type LowStockNotifier interface {
	NotifyLowStock(ctx context.Context, materials []models.Material)
}

// LogNotifier only writes a warning per material. Used when SMTP is not
// configured.
type LogNotifier struct {
	Log *slog.Logger
}

func (n LogNotifier) NotifyLowStock(_ context.Context, materials []models.Material) {
	log := n.Log
	if log == nil {
		log = slog.Default()
	}
	for _, m := range materials {
		log.Warn("material stock low",
			"material_id", m.ID,
			"material", m.Name,
			"stock", m.Stock.String(),
			"threshold", m.LowStockThreshold.String(),
		)
	}
}

// Sender is the part of *gomail.Dialer the mailer needs.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends low stock emails from a single background worker fed by a
// bounded queue. A full queue drops the alert with a warning.
type Mailer struct {
	sender Sender
	from   string
	to     []string
	log    *slog.Logger

	queue chan []models.Material
	wg    sync.WaitGroup
	once  sync.Once
}

func NewMailer(host string, port int, user, password, from string, to []string, log *slog.Logger) *Mailer {
	return NewMailerWithSender(gomail.NewDialer(host, port, user, password), from, to, log)
}

func NewMailerWithSender(sender Sender, from string, to []string, log *slog.Logger) *Mailer {
	if log == nil {
		log = slog.Default()
	}
	m := &Mailer{
		sender: sender,
		from:   from,
		to:     to,
		log:    log,
		queue:  make(chan []models.Material, 32),
	}
	m.wg.Add(1)
	go m.run()
	return m
}

func (m *Mailer) NotifyLowStock(_ context.Context, materials []models.Material) {
	if len(materials) == 0 || len(m.to) == 0 {
		return
	}
	select {
	case m.queue <- materials:
	default:
		m.log.Warn("low stock mail queue full, alert dropped", "materials", len(materials))
	}
}

// Close stops accepting alerts and waits for queued mail to be sent.
func (m *Mailer) Close() {
	m.once.Do(func() { close(m.queue) })
	m.wg.Wait()
}

func (m *Mailer) run() {
	defer m.wg.Done()
	for materials := range m.queue {
		if err := m.send(materials); err != nil {
			m.log.Error("failed to send low stock mail", "error", err, "to", m.to)
			continue
		}
		m.log.Info("low stock mail sent", "to", m.to, "materials", len(materials))
	}
}

func (m *Mailer) send(materials []models.Material) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to...)
	msg.SetHeader("Subject", Subject(materials))
	msg.SetBody("text/html", Body(materials))
	return m.sender.DialAndSend(msg)
}

func Subject(materials []models.Material) string {
	if len(materials) == 1 {
		return fmt.Sprintf("Stok bahan menipis: %s", materials[0].Name)
	}
	return fmt.Sprintf("Stok %d bahan menipis", len(materials))
}

func Body(materials []models.Material) string {
	var b strings.Builder
	b.WriteString(`<html><body><p>Bahan berikut sudah mencapai batas stok minimum:</p>`)
	b.WriteString(`<table border="1" cellpadding="4" cellspacing="0">`)
	b.WriteString(`<tr><th>Bahan</th><th>Stok</th><th>Batas</th><th>Satuan</th></tr>`)
	for _, mat := range materials {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			html.EscapeString(mat.Name),
			mat.Stock.String(),
			mat.LowStockThreshold.String(),
			html.EscapeString(mat.Unit),
		)
	}
	b.WriteString(`</table></body></html>`)
	return b.String()
}
