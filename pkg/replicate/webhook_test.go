package replicate

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "test-signing-key"

func testSecret() string {
	return "whsec_" + base64.StdEncoding.EncodeToString([]byte(testKey))
}

func sign(id, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(testKey))
	mac.Write([]byte(id + "." + timestamp + "."))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestVerifySignatureAccepts(t *testing.T) {
	body := []byte(`{"status":"succeeded"}`)
	sig := sign("msg_1", "1700000000", body)

	ok, err := VerifySignature(testSecret(), "msg_1", "1700000000", body, "v1,"+sig)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifySignatureAcceptsAnyToken(t *testing.T) {
	// During key rotation the header carries several signatures; one valid
	// token is enough.
	body := []byte(`{"status":"failed"}`)
	sig := sign("msg_2", "1700000001", body)
	header := "v1,AAAAinvalidAAAA= v1," + sig

	ok, err := VerifySignature(testSecret(), "msg_2", "1700000001", body, header)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifySignatureRejectsNoMatch(t *testing.T) {
	body := []byte(`{"status":"succeeded"}`)
	sig := sign("msg_3", "1700000002", body)

	// Same signature but tampered body.
	ok, err := VerifySignature(testSecret(), "msg_3", "1700000002", []byte(`{"status":"failed"}`), "v1,"+sig)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifySignatureRejectsWrongID(t *testing.T) {
	body := []byte(`{}`)
	sig := sign("msg_4", "1700000003", body)

	ok, err := VerifySignature(testSecret(), "msg_other", "1700000003", body, "v1,"+sig)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifySignatureEmptyHeader(t *testing.T) {
	ok, err := VerifySignature(testSecret(), "msg_5", "1700000004", []byte(`{}`), "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifySignatureMalformedTokensIgnored(t *testing.T) {
	body := []byte(`{"status":"canceled"}`)
	sig := sign("msg_6", "1700000005", body)
	header := "garbage v1," + sig

	ok, err := VerifySignature(testSecret(), "msg_6", "1700000005", body, header)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifySignatureBadSecret(t *testing.T) {
	_, err := VerifySignature("no-prefix-secret-without-underscore", "msg", "ts", []byte(`{}`), "v1,abc")
	assert.Error(t, err)

	_, err = VerifySignature("whsec_%%%notbase64%%%", "msg", "ts", []byte(`{}`), "v1,abc")
	assert.Error(t, err)
}
