package service

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(sessionID string) ([]byte, error)
	Link(sessionID string) string
}

// PayAtTableQR encodes the guest-facing checkout link of a session.
type PayAtTableQR struct {
	BaseURL string
	Size    int
}

func (g PayAtTableQR) Link(sessionID string) string {
	return fmt.Sprintf("%s/pay?session_id=%s", strings.TrimRight(g.BaseURL, "/"), sessionID)
}

func (g PayAtTableQR) Generate(sessionID string) ([]byte, error) {
	size := g.Size
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(g.Link(sessionID), qrcode.Medium, size)
}

var _ QRGenerator = PayAtTableQR{}
