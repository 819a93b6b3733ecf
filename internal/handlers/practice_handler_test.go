// internal/handlers/practice_handler_test.go
package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go_5_word_memorizer/internal/handlers"
	"go_5_word_memorizer/internal/middleware"
	"go_5_word_memorizer/internal/model"
	"go_5_word_memorizer/internal/service/mocks"
)

func newPracticeRouter(mockService *mocks.PracticeService) http.Handler {
	handler := handlers.NewPracticeHandler(mockService, newTestLogger())
	router := chi.NewRouter()
	router.Use(middleware.DevTenantContextMiddleware)
	router.Route("/api/v1/practice/sessions", func(r chi.Router) {
		r.Post("/", handler.StartSession)
		r.Route("/{session_id}", func(r chi.Router) {
			r.Get("/", handler.GetSession)
			r.Post("/answers", handler.SubmitAnswer)
			r.Post("/restart", handler.RestartSession)
			r.Post("/finalize", handler.FinalizeSession)
			r.Delete("/", handler.AbandonSession)
		})
	})
	return router
}

func TestPracticeHandler_StartSession(t *testing.T) {
	tenantID := uuid.New()
	sessionID := uuid.New()

	started := &model.PracticeSessionResponse{
		SessionID:   sessionID,
		Stage:       1,
		StageKind:   "recall_term",
		TotalStages: 4,
		Words: []model.PracticeWordView{
			{WordID: uuid.New(), Prompt: "apple"},
		},
	}

	tests := []struct {
		name           string
		tenantID       *uuid.UUID
		body           interface{}
		setupMock      func(m *mocks.PracticeService)
		expectedStatus int
	}{
		{
			name:     "正常系: セッション開始成功 (ボディなし)",
			tenantID: &tenantID,
			body:     nil,
			setupMock: func(m *mocks.PracticeService) {
				m.On("StartSession", mock.Anything, tenantID, &model.StartPracticeRequest{}).
					Return(started, nil).Once()
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:     "正常系: リスト指定でセッション開始",
			tenantID: &tenantID,
			body:     model.StartPracticeRequest{},
			setupMock: func(m *mocks.PracticeService) {
				m.On("StartSession", mock.Anything, tenantID, mock.AnythingOfType("*model.StartPracticeRequest")).
					Return(started, nil).Once()
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:     "異常系: 復習対象の単語がない",
			tenantID: &tenantID,
			body:     nil,
			setupMock: func(m *mocks.PracticeService) {
				m.On("StartSession", mock.Anything, tenantID, &model.StartPracticeRequest{}).
					Return(nil, model.NewAppError("NOT_FOUND", "復習対象の単語がありません。", "", model.ErrNotFound)).Once()
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "異常系: 認証ヘッダーなし",
			tenantID:       nil,
			body:           nil,
			setupMock:      func(m *mocks.PracticeService) { /* Serviceは呼ばれない */ },
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(mocks.PracticeService)
			tt.setupMock(mockService)
			router := newPracticeRouter(mockService)

			rec := doJSONRequest(t, router, http.MethodPost, "/api/v1/practice/sessions", tt.tenantID, tt.body)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusCreated {
				var got model.PracticeSessionResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				assert.Equal(t, sessionID, got.SessionID)
				assert.Equal(t, 1, got.Stage)
				assert.Equal(t, "recall_term", got.StageKind)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestPracticeHandler_SubmitAnswer(t *testing.T) {
	tenantID := uuid.New()
	sessionID := uuid.New()
	wordID := uuid.New()

	validReq := model.SubmitAnswerRequest{WordID: wordID, Response: "known"}

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(m *mocks.PracticeService)
		expectedStatus int
	}{
		{
			name: "正常系: 回答適用成功",
			body: validReq,
			setupMock: func(m *mocks.PracticeService) {
				m.On("SubmitAnswer", mock.Anything, tenantID, sessionID, &validReq).
					Return(&model.SubmitAnswerResponse{Grade: 5, StageAdvanced: false, Finished: false}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "異常系: バリデーションエラー (response欠落)",
			body:           model.SubmitAnswerRequest{WordID: wordID},
			setupMock:      func(m *mocks.PracticeService) { /* Serviceは呼ばれない */ },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "異常系: セッションが存在しない",
			body: validReq,
			setupMock: func(m *mocks.PracticeService) {
				m.On("SubmitAnswer", mock.Anything, tenantID, sessionID, &validReq).
					Return(nil, model.NewAppError("SESSION_GONE", "セッションが存在しないか、すでに終了しています。", "", model.ErrSessionGone)).Once()
			},
			expectedStatus: http.StatusGone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(mocks.PracticeService)
			tt.setupMock(mockService)
			router := newPracticeRouter(mockService)

			path := "/api/v1/practice/sessions/" + sessionID.String() + "/answers"
			rec := doJSONRequest(t, router, http.MethodPost, path, &tenantID, tt.body)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestPracticeHandler_FinalizeSession(t *testing.T) {
	tenantID := uuid.New()
	sessionID := uuid.New()

	t.Run("正常系: 確定成功", func(t *testing.T) {
		mockService := new(mocks.PracticeService)
		mockService.On("FinalizeSession", mock.Anything, tenantID, sessionID).
			Return(&model.FinalizePracticeResponse{UpdatedCount: 3, SkippedCount: 1}, nil).Once()
		router := newPracticeRouter(mockService)

		path := "/api/v1/practice/sessions/" + sessionID.String() + "/finalize"
		rec := doJSONRequest(t, router, http.MethodPost, path, &tenantID, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var got model.FinalizePracticeResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, 3, got.UpdatedCount)
		assert.Equal(t, 1, got.SkippedCount)
		mockService.AssertExpectations(t)
	})

	t.Run("異常系: セッションが存在しない", func(t *testing.T) {
		mockService := new(mocks.PracticeService)
		mockService.On("FinalizeSession", mock.Anything, tenantID, sessionID).
			Return(nil, model.NewAppError("SESSION_GONE", "セッションが存在しないか、すでに終了しています。", "", model.ErrSessionGone)).Once()
		router := newPracticeRouter(mockService)

		path := "/api/v1/practice/sessions/" + sessionID.String() + "/finalize"
		rec := doJSONRequest(t, router, http.MethodPost, path, &tenantID, nil)

		assert.Equal(t, http.StatusGone, rec.Code)
		mockService.AssertExpectations(t)
	})
}

func TestPracticeHandler_AbandonSession(t *testing.T) {
	tenantID := uuid.New()
	sessionID := uuid.New()

	t.Run("正常系: セッション破棄成功", func(t *testing.T) {
		mockService := new(mocks.PracticeService)
		mockService.On("AbandonSession", mock.Anything, tenantID, sessionID).Return(nil).Once()
		router := newPracticeRouter(mockService)

		path := "/api/v1/practice/sessions/" + sessionID.String()
		rec := doJSONRequest(t, router, http.MethodDelete, path, &tenantID, nil)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		mockService.AssertExpectations(t)
	})
}
