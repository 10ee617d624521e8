package email

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/google/uuid"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// DevSender writes each message to an HTML file instead of delivering it, so
// reset codes can be read locally without ever appearing in logs.
type DevSender struct {
	dir  string
	logg *logger.Logger
	now  func() time.Time
}

func NewDevSender(dir string, logg *logger.Logger) *DevSender {
	return &DevSender{dir: dir, logg: logg, now: time.Now}
}

func (d *DevSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("%w: create outbox dir: %v", ErrFailedToSend, err)
	}

	name := fmt.Sprintf("%s_%s_%s.html", d.now().UTC().Format("2006_01_02_150405.000000"), sanitizeFilename(msg.Subject), uuid.NewString())
	path := filepath.Join(d.dir, name)

	var body strings.Builder
	fmt.Fprintf(&body, "<!-- from: %s -->\n<!-- to: %s -->\n<!-- subject: %s -->\n", msg.From, msg.To, msg.Subject)
	if msg.Text != "" {
		fmt.Fprintf(&body, "<p>%s</p>\n", msg.Text)
	}
	body.WriteString(msg.HTML)

	if err := os.WriteFile(path, []byte(body.String()), 0o600); err != nil {
		return fmt.Errorf("%w: write outbox file: %v", ErrFailedToSend, err)
	}

	if d.logg != nil {
		logCtx := d.logg.WithFields(ctx, map[string]any{
			"to":      msg.To,
			"subject": msg.Subject,
			"file":    path,
		})
		d.logg.Info(logCtx, "email.dev.written")
	}
	return nil
}

func sanitizeFilename(value string) string {
	clean := strings.Trim(unsafeFilenameChars.ReplaceAllString(strings.ToLower(value), "_"), "_")
	if clean == "" {
		return "message"
	}
	return clean
}
