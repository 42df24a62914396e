package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"yuanfen_backend/internal/auth"
	"yuanfen_backend/internal/config"
	"yuanfen_backend/internal/handlers"
	"yuanfen_backend/internal/models"
	"yuanfen_backend/internal/services/dto"
	"yuanfen_backend/internal/validator"
	"yuanfen_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{}
	config.AppConfig.JWT.Secret = "handlers-test-secret"
	config.AppConfig.JWT.TTL = 60
}

// Stub services: each call returns the canned error when set, otherwise a
// minimal success value. Status-code mapping is what these tests pin down.

type stubFeedService struct{ err error }

func (s *stubFeedService) GetFeed(scene models.Scene, role models.Role, page, pageSize int) (*dto.FeedPage, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.FeedPage{
		Cards:      []dto.CardView{{ID: "card-1", Scene: scene, OwnerRole: models.RoleProvider}},
		Pagination: dto.Pagination{Page: page, PageSize: pageSize, Total: 1},
	}, nil
}

type stubActionService struct {
	err    error
	userID string
	cardID string
	action models.ActionType
}

func (s *stubActionService) SubmitAction(userID, cardID string, action models.ActionType) (*dto.ActionResult, error) {
	s.userID, s.cardID, s.action = userID, cardID, action
	if s.err != nil {
		return nil, s.err
	}
	matchID := "match-1"
	return &dto.ActionResult{IsMatch: true, MatchID: &matchID}, nil
}

type stubMatchService struct{ err error }

func (s *stubMatchService) ListMatches(userID, statusFilter string, page, pageSize int) (*dto.MatchListPage, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.MatchListPage{Pagination: dto.Pagination{Page: page, PageSize: pageSize}}, nil
}

func (s *stubMatchService) GetMatch(matchID, userID string) (*dto.MatchDetailView, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.MatchDetailView{MatchView: dto.MatchView{ID: matchID}}, nil
}

func (s *stubMatchService) UpdateStatus(matchID, userID string, next models.MatchStatus) error {
	return s.err
}

func (s *stubMatchService) Unmatch(matchID, userID string) error { return s.err }

func (s *stubMatchService) ExpireMatch(matchID string) error { return s.err }

type stubChatService struct{ err error }

func (s *stubChatService) SendMessage(userID string, req *dto.SendMessageRequest) (*dto.MessageView, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.MessageView{ID: "msg-1", MatchID: req.MatchID, SenderUserID: userID}, nil
}

func (s *stubChatService) GetHistory(matchID, userID string, page, pageSize int) (*dto.HistoryPage, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.HistoryPage{Pagination: dto.Pagination{Page: page, PageSize: pageSize}}, nil
}

func (s *stubChatService) MarkRead(userID string, req *dto.MarkReadRequest) (*dto.MarkReadResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.MarkReadResult{Success: true, Updated: 1}, nil
}

type testEnv struct {
	router *gin.Engine
	feed   *stubFeedService
	action *stubActionService
	match  *stubMatchService
	chat   *stubChatService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		feed:   &stubFeedService{},
		action: &stubActionService{},
		match:  &stubMatchService{},
		chat:   &stubChatService{},
	}

	base := handlers.NewBaseHandler(validator.New())
	router := gin.New()
	api := router.Group("/api/v1")
	handlers.NewFeedHandler(base, env.feed).RegisterRoutes(api)
	handlers.NewMatchHandler(base, env.action, env.match).RegisterRoutes(api)
	handlers.NewChatHandler(base, env.chat).RegisterRoutes(api)

	env.router = router
	return env
}

func (env *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func testToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.GenerateToken(userID)
	require.NoError(t, err)
	return token
}

func TestAuth_MissingOrBadToken(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, "GET", "/api/v1/matches/cards?scene=dating&role=seeker", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, "GET", "/api/v1/matches", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestFeed_OK(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, "GET", "/api/v1/matches/cards?scene=dating&role=seeker", testToken(t, "alice"), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var feed dto.FeedPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feed))
	require.Len(t, feed.Cards, 1)
	assert.Equal(t, "card-1", feed.Cards[0].ID)
	assert.Equal(t, 1, feed.Pagination.Page)
	assert.Equal(t, 10, feed.Pagination.PageSize, "default page size")
}

func TestFeed_ServiceErrorMapsTo400(t *testing.T) {
	env := newTestEnv()
	env.feed.err = apperrors.ErrUnknownScene

	rec := env.do(t, "GET", "/api/v1/matches/cards?scene=karaoke&role=seeker", testToken(t, "alice"), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), string(apperrors.CodeInvalidArgument))
}

func TestPaging_MalformedValuesAre400(t *testing.T) {
	env := newTestEnv()
	token := testToken(t, "alice")

	paths := []string{
		"/api/v1/matches/cards?scene=dating&role=seeker&page=abc",
		"/api/v1/matches/cards?scene=dating&role=seeker&pageSize=ten",
		"/api/v1/matches?page=abc",
		"/api/v1/chat/history/match-1?pageSize=many",
	}
	for _, path := range paths {
		rec := env.do(t, "GET", path, token, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "path %s", path)
		assert.Contains(t, rec.Body.String(), string(apperrors.CodeInvalidArgument))
	}
}

func TestSubmitAction_PassesCallerIdentity(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, "POST", "/api/v1/matches/action", testToken(t, "alice"), gin.H{
		"cardId": "card-7",
		"action": "like",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", env.action.userID)
	assert.Equal(t, "card-7", env.action.cardID)
	assert.Equal(t, models.ActionLike, env.action.action)

	var result dto.ActionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.IsMatch)
}

func TestSubmitAction_MissingFields(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, "POST", "/api/v1/matches/action", testToken(t, "alice"), gin.H{"cardId": "card-7"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitAction_CardNotFound(t *testing.T) {
	env := newTestEnv()
	env.action.err = apperrors.ErrCardNotFound

	rec := env.do(t, "POST", "/api/v1/matches/action", testToken(t, "alice"), gin.H{
		"cardId": "gone",
		"action": "like",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), string(apperrors.CodeNotFound))
}

func TestGetMatch_Forbidden(t *testing.T) {
	env := newTestEnv()
	env.match.err = apperrors.ErrNotParticipant

	rec := env.do(t, "GET", "/api/v1/matches/match-1", testToken(t, "mallory"), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), string(apperrors.CodeForbidden))
}

func TestUpdateStatus_InvalidStateMapsTo409(t *testing.T) {
	env := newTestEnv()
	env.match.err = apperrors.ErrInvalidState("match", "cannot transition from cancelled to accepted")

	rec := env.do(t, "PUT", "/api/v1/matches/match-1/status", testToken(t, "alice"), gin.H{
		"status": "accepted",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), string(apperrors.CodeInvalidState))
}

func TestExpireMatch_RejectsUserTokens(t *testing.T) {
	env := newTestEnv()

	// A valid user token is not a scheduler credential: no match may be
	// driven to expired by a bystander, participant or not.
	rec := env.do(t, "POST", "/api/v1/admin/matches/match-1/expire", testToken(t, "mallory"), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, "POST", "/api/v1/admin/matches/match-1/expire", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExpireMatch_SchedulerToken(t *testing.T) {
	env := newTestEnv()

	token, err := auth.GenerateTokenWithRole("expiry-scheduler", auth.RoleScheduler)
	require.NoError(t, err)

	rec := env.do(t, "POST", "/api/v1/admin/matches/match-1/expire", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "success")
}

func TestUnmatch_OK(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, "POST", "/api/v1/matches/match-1/unmatch", testToken(t, "alice"), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "success")
}

func TestChatSend_MalformedBodyIs422(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, "POST", "/api/v1/chat/send", testToken(t, "alice"), gin.H{
		"matchId": "match-1",
		// content and type missing
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), string(apperrors.CodeUnprocessable))
}

func TestChatSend_OK(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, "POST", "/api/v1/chat/send", testToken(t, "alice"), gin.H{
		"matchId": "match-1",
		"content": "hello",
		"type":    "text",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var msg dto.MessageView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.Equal(t, "match-1", msg.MatchID)
	assert.Equal(t, "alice", msg.SenderUserID)
}

func TestChatHistory_DefaultsAndErrors(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, "GET", "/api/v1/chat/history/match-1", testToken(t, "bob"), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var history dto.HistoryPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	assert.Equal(t, 20, history.Pagination.PageSize, "default chat page size")

	env.chat.err = apperrors.ErrMatchNotFound
	rec = env.do(t, "GET", "/api/v1/chat/history/gone", testToken(t, "bob"), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChatRead_OK(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, "POST", "/api/v1/chat/read", testToken(t, "bob"), gin.H{
		"matchId":       "match-1",
		"lastMessageId": "msg-1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result dto.MarkReadResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, int64(1), result.Updated)
}
