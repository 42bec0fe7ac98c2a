package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/interviewlab/interviewlab-backend/internal/http/handlers"
	"github.com/interviewlab/interviewlab-backend/internal/http/response"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
)

const (
	WebhookSignatureHeader = "ElevenLabs-Signature"

	defaultSignatureTolerance = 30 * time.Minute
)

// WebhookSignature verifies "t=<unix>,v0=<hex hmac-sha256 of "<t>.<body>">"
// when secret is set. With an empty secret every request passes.
func WebhookSignature(log *logger.Logger, secret string, tolerance time.Duration, now func() time.Time) gin.HandlerFunc {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return func(c *gin.Context) { c.Next() }
	}
	if tolerance <= 0 {
		tolerance = defaultSignatureTolerance
	}
	if now == nil {
		now = time.Now
	}
	mwLog := log.With("middleware", "WebhookSignature")

	return func(c *gin.Context) {
		body, err := handlers.ReadWebhookBody(c)
		if err != nil {
			handlers.AbortBodyError(c, mwLog, err)
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		ts, sig, ok := parseSignatureHeader(c.GetHeader(WebhookSignatureHeader))
		if !ok {
			mwLog.Warn("Webhook rejected", "reason", "missing_or_malformed_signature")
			response.AbortError(c, http.StatusUnauthorized, "invalid_signature", "Firma del webhook inválida.")
			return
		}
		age := now().Sub(time.Unix(ts, 0))
		if age > tolerance || age < -tolerance {
			mwLog.Warn("Webhook rejected", "reason", "stale_timestamp", "age", age.String())
			response.AbortError(c, http.StatusUnauthorized, "invalid_signature", "Firma del webhook inválida.")
			return
		}
		if !hmac.Equal(sig, SignWebhook(secret, ts, body)) {
			mwLog.Warn("Webhook rejected", "reason", "signature_mismatch")
			response.AbortError(c, http.StatusUnauthorized, "invalid_signature", "Firma del webhook inválida.")
			return
		}
		c.Next()
	}
}

// SignWebhook returns the raw HMAC for ts and body.
func SignWebhook(secret string, ts int64, body []byte) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(ts, 10)))
	mac.Write([]byte("."))
	mac.Write(body)
	return mac.Sum(nil)
}

func parseSignatureHeader(h string) (int64, []byte, bool) {
	var (
		ts  int64
		sig []byte
	)
	for _, part := range strings.Split(h, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return 0, nil, false
			}
			ts = n
		case "v0":
			b, err := hex.DecodeString(v)
			if err != nil {
				return 0, nil, false
			}
			sig = b
		}
	}
	return ts, sig, ts > 0 && len(sig) > 0
}
