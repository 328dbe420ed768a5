package test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/diegoclair/vigil-bot/internal/handlers"
	"github.com/diegoclair/vigil-bot/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const SigningSecret = "test-signing-secret"

type ServiceMocks struct {
	VigilServiceMock *mocks.MockVigilService
}

func GetHandlerTest(t *testing.T) (m ServiceMocks, handler *handlers.SlackHandler, ctrl *gomock.Controller) {
	t.Helper()

	ctrl = gomock.NewController(t)
	m = ServiceMocks{
		VigilServiceMock: mocks.NewMockVigilService(ctrl),
	}
	handler = handlers.New(m.VigilServiceMock, SigningSecret)
	return
}

// CreateSlackRequest builds a signed /vigil slash command sent from the
// #night-owls channel
func CreateSlackRequest(t *testing.T, text, channelID, userID string) *http.Request {
	t.Helper()

	form := url.Values{}
	form.Set("command", "/vigil")
	form.Set("text", text)
	form.Set("channel_id", channelID)
	form.Set("channel_name", "night-owls")
	form.Set("user_id", userID)
	form.Set("team_id", "T0VIGIL")

	req := signedRequest(t, "/slack/commands", form.Encode(), SigningSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// CreateEventRequest builds an Events API callback signed with signingSecret
func CreateEventRequest(t *testing.T, body, signingSecret string) *http.Request {
	t.Helper()

	req := signedRequest(t, "/slack/events", body, signingSecret)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func signedRequest(t *testing.T, path, body, signingSecret string) *http.Request {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, path, strings.NewReader(body))
	require.NoError(t, err)

	ts := strconv.FormatInt(time.Now().Unix(), 10)
	mac := hmac.New(sha256.New, []byte(signingSecret))
	mac.Write([]byte("v0:" + ts + ":" + body))

	req.Header.Set("X-Slack-Request-Timestamp", ts)
	req.Header.Set("X-Slack-Signature", "v0="+hex.EncodeToString(mac.Sum(nil)))
	return req
}

func CreateTestRecorder() *httptest.ResponseRecorder {
	return httptest.NewRecorder()
}
