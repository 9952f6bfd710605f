package sentinel

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
)

// CanonicalString is the newline-joined request metadata covered by the signature.
func CanonicalString(date string, contentLength int, method, contentType, resource string) string {
	return method + "\n" +
		strconv.Itoa(contentLength) + "\n" +
		contentType + "\n" +
		"x-ms-date:" + date + "\n" +
		resource
}

// Sign returns the Authorization header value for a Data Collector API request:
// "SharedKey {workspaceID}:{base64(HMAC-SHA256(key, canonical))}".
func Sign(workspaceID string, key []byte, date string, contentLength int, method, contentType, resource string) string {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(CanonicalString(date, contentLength, method, contentType, resource)))
	return "SharedKey " + workspaceID + ":" + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// BuildSignature signs request metadata with the submitter's credentials.
func (s *Submitter) BuildSignature(date string, contentLength int, method, contentType, resource string) string {
	return Sign(s.workspaceID, s.key, date, contentLength, method, contentType, resource)
}
